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
	"time"

	"github.com/richterhq/richter/internal/engine/model"
)

// Wire formats for date and datetime values.
const (
	DateFormat     = "2006-01-02"
	DateTimeFormat = "2006-01-02 15:04"
)

// FormatDate renders a date-valued column.
func FormatDate(t time.Time) string {
	return t.Format(DateFormat)
}

// FormatDateTime renders a datetime-valued column.
func FormatDateTime(t time.Time) string {
	return t.Format(DateTimeFormat)
}

// Job projects a job.
func Job(j *model.Job) *Object {
	return NewObject().
		Set("name", j.Name).
		Set("created", FormatDate(time.Time(j.Created))).
		Set("description", j.Description)
}

// Case projects a case.
func Case(c *model.Case) *Object {
	return NewObject().
		Set("name", c.Name).
		Set("created", FormatDate(time.Time(c.Created))).
		Set("description", c.Description)
}

// Build projects a build with its metadata mapping inlined.
func Build(b *model.Build, metadata map[string]string) *Object {
	if metadata == nil {
		metadata = map[string]string{}
	}
	return NewObject().
		Set("name", b.Name).
		Set("date", FormatDateTime(b.Date)).
		Set("runtime", b.Runtime).
		Set("fail_count", b.FailCount).
		Set("is_running", b.IsRunning).
		Set("tests_count", b.TestsCount).
		Set("error_count", b.ErrorCount).
		Set("was_success", b.WasSuccess).
		Set("success_count", b.SuccessCount).
		Set("metadata", metadata)
}

// CaseResult projects a case result with its owning case nested and the
// metadata mapping inlined.
func CaseResult(r *model.CaseResult, c *model.Case, metadata map[string]string) *Object {
	if metadata == nil {
		metadata = map[string]string{}
	}
	obj := NewObject().
		Set("date", FormatDateTime(r.Date)).
		Set("reason", r.Reason).
		Set("status", r.Status)
	if c != nil {
		obj.Set("case", Case(c))
	} else {
		obj.Set("case", nil)
	}
	return obj.
		Set("runtime", r.Runtime).
		Set("metadata", metadata)
}
