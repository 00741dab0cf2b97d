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

package serialize

import (
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"gorm.io/datatypes"

	"github.com/richterhq/richter/internal/engine/model"
)

func TestObjectKeyOrder(t *testing.T) {
	obj := NewObject().
		Set("result", 1).
		Set("total_count", 2).
		Set("current_count", 3)

	data, err := sonic.Marshal(obj)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"result":1,"total_count":2,"current_count":3}`
	if string(data) != want {
		t.Fatalf("got %s, want %s", data, want)
	}
}

func TestObjectSetExistingKeyKeepsPosition(t *testing.T) {
	obj := NewObject().
		Set("a", 1).
		Set("b", 2).
		Set("a", 3)

	data, err := sonic.Marshal(obj)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"a":3,"b":2}`
	if string(data) != want {
		t.Fatalf("got %s, want %s", data, want)
	}
}

func TestObjectNested(t *testing.T) {
	inner := NewObject().Set("name", "c1")
	obj := NewEnvelope(inner).Set("job", NewObject().Set("name", "demo"))

	data, err := sonic.Marshal(obj)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"result":{"name":"c1"},"job":{"name":"demo"}}`
	if string(data) != want {
		t.Fatalf("got %s, want %s", data, want)
	}
}

func TestJobProjection(t *testing.T) {
	created := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	job := &model.Job{
		Name:        "demo",
		Created:     datatypes.Date(created),
		Description: "nightly suite",
	}

	data, err := sonic.Marshal(Job(job))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"name":"demo","created":"2026-03-14","description":"nightly suite"}`
	if string(data) != want {
		t.Fatalf("got %s, want %s", data, want)
	}
}

func TestBuildProjectionFieldOrder(t *testing.T) {
	build := &model.Build{
		Name:         "b1",
		Date:         time.Date(2026, 3, 14, 15, 9, 0, 0, time.UTC),
		Runtime:      10.5,
		FailCount:    0,
		IsRunning:    false,
		TestsCount:   4,
		ErrorCount:   0,
		WasSuccess:   true,
		SuccessCount: 4,
	}

	data, err := sonic.Marshal(Build(build, map[string]string{"branch": "main"}))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"name":"b1","date":"2026-03-14 15:09","runtime":10.5,` +
		`"fail_count":0,"is_running":false,"tests_count":4,"error_count":0,` +
		`"was_success":true,"success_count":4,"metadata":{"branch":"main"}}`
	if string(data) != want {
		t.Fatalf("got %s, want %s", data, want)
	}
}

func TestBuildProjectionNilMetadata(t *testing.T) {
	data, err := sonic.Marshal(Build(&model.Build{Name: "b1"}, nil))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var parsed map[string]any
	if err := sonic.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	meta, ok := parsed["metadata"].(map[string]any)
	if !ok {
		t.Fatalf("metadata is %T, want object", parsed["metadata"])
	}
	if len(meta) != 0 {
		t.Fatalf("metadata = %v, want empty", meta)
	}
}

func TestCaseResultProjectionNestsCase(t *testing.T) {
	kase := &model.Case{
		Name:    "c1",
		Created: datatypes.Date(time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)),
	}
	result := &model.CaseResult{
		Date:    time.Date(2026, 3, 14, 15, 9, 0, 0, time.UTC),
		Reason:  "timeout",
		Status:  model.CaseStatusFailed,
		Runtime: 1.2,
	}

	data, err := sonic.Marshal(CaseResult(result, kase, nil))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"date":"2026-03-14 15:09","reason":"timeout","status":"failed",` +
		`"case":{"name":"c1","created":"2026-03-14","description":""},` +
		`"runtime":1.2,"metadata":{}}`
	if string(data) != want {
		t.Fatalf("got %s, want %s", data, want)
	}
}
