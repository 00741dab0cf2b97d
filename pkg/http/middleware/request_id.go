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
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	requestIdKey    = "requestId"
	RequestIdHeader = "X-Request-Id"
)

// RequestIdMiddleware attaches a request id, honoring one supplied by the
// caller (CI pipelines often propagate their own).
func RequestIdMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(RequestIdHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Locals(requestIdKey, id)
		c.Set(RequestIdHeader, id)
		return c.Next()
	}
}

// RequestId returns the request id attached by RequestIdMiddleware.
func RequestId(c *fiber.Ctx) string {
	if id, ok := c.Locals(requestIdKey).(string); ok {
		return id
	}
	return ""
}
