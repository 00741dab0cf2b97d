// Copyright 2026 Richter Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/richterhq/richter/pkg/env"
	"github.com/richterhq/richter/pkg/log"
)

// AccessLogMiddleware logs slow or failed requests. Fast 2xx/3xx traffic is
// skipped to keep the log volume down under CI ingestion bursts.
// RICHTER_ACCESS_LOG_ALL=true logs every request;
// RICHTER_SLOW_REQUEST_THRESHOLD tunes the latency cutoff.
func AccessLogMiddleware() fiber.Handler {
	logAll := env.GetEnvBool("RICHTER_ACCESS_LOG_ALL", false)
	slowThreshold := env.GetEnvDuration("RICHTER_SLOW_REQUEST_THRESHOLD", 300*time.Millisecond)

	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		latency := time.Since(start)
		status := c.Response().StatusCode()

		if !logAll && status < 400 && latency < slowThreshold {
			return err
		}

		log.Warnw("http access",
			"ip", c.IP(),
			"method", c.Method(),
			"path", c.Path(),
			"status", status,
			"latency", latency,
			"requestId", RequestId(c),
			"error", err,
		)

		return err
	}
}
