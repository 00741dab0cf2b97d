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
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestRouteFamily(t *testing.T) {
	tests := []struct {
		route string
		want  string
	}{
		{"/api/v1/jobs", "jobs"},
		{"/api/v1/jobs/:jobName", "jobs"},
		{"/api/v1/jobs/:jobName/builds", "builds"},
		{"/api/v1/jobs/:jobName/builds/:buildName/start", "builds"},
		{"/api/v1/jobs/:jobName/cases/:caseName/stat", "cases"},
		{"/api/v1/jobs/:jobName/cases/stat", "cases"},
		{"/api/v1/jobs/:jobName/builds/:buildName/cases/:caseName", "results"},
		{"/metrics", "other"},
	}
	for _, tt := range tests {
		if got := routeFamily(tt.route); got != tt.want {
			t.Fatalf("routeFamily(%q) = %q, want %q", tt.route, got, tt.want)
		}
	}
}

func TestRegisterHttpMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()
	if err := RegisterHttpMetrics(registry); err != nil {
		t.Fatalf("register: %v", err)
	}
	// Re-registering the same collectors must surface the conflict.
	if err := RegisterHttpMetrics(registry); err == nil {
		t.Fatal("expected duplicate registration error")
	}
}
