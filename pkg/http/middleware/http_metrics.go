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
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "richter_http_request_duration_seconds",
			Help: "HTTP request duration in seconds",
			// Ingestion writes and single-row reads sit well under a
			// second; the tail buckets catch wide stat queries.
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "family", "status_class"},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "richter_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "family", "status_class"},
	)

	httpInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "richter_http_requests_in_flight",
			Help: "Number of HTTP requests currently being served",
		},
	)
)

// RegisterHttpMetrics attaches the HTTP collectors to the given registry.
func RegisterHttpMetrics(registry *prometheus.Registry) error {
	for _, c := range []prometheus.Collector{httpDuration, httpRequests, httpInFlight} {
		if err := registry.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// routeFamily buckets a route template into its endpoint family, so the
// label set stays small no matter how many jobs or builds exist. Result
// routes nest under builds and are checked first.
func routeFamily(route string) string {
	switch {
	case strings.Contains(route, "/builds/") && strings.Contains(route, "/cases/"):
		return "results"
	case strings.Contains(route, "/builds"):
		return "builds"
	case strings.Contains(route, "/cases"):
		return "cases"
	case strings.Contains(route, "/jobs"):
		return "jobs"
	}
	return "other"
}

// HttpMetricsMiddleware records duration, count and in-flight gauge per
// request, labeled by endpoint family rather than raw path.
func HttpMetricsMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		httpInFlight.Inc()
		start := time.Now()
		err := c.Next()
		dur := time.Since(start).Seconds()
		httpInFlight.Dec()

		family := "other"
		if r := c.Route(); r != nil && r.Path != "" {
			family = routeFamily(r.Path)
		}

		status := c.Response().StatusCode()
		statusClass := strconv.Itoa(status/100) + "xx"
		method := c.Method()

		httpDuration.WithLabelValues(method, family, statusClass).Observe(dur)
		httpRequests.WithLabelValues(method, family, statusClass).Inc()

		return err
	}
}
