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

// Package apiv1 parses the query string surface of the v1 API into typed
// repository filters.
package apiv1

import (
	"strconv"
	"time"

	"github.com/richterhq/richter/internal/engine/repo"
	"github.com/richterhq/richter/internal/engine/serialize"
	"github.com/richterhq/richter/internal/engine/service"
)

// AutoCreationParam enables on-the-fly creation of the parent object when set
// to any non-empty value.
const AutoCreationParam = "autocreation"

// BadBody wraps a request body decoding failure as a validation error.
func BadBody(err error) *service.ValidationError {
	return service.NewValidationError("malformed request body: %s", err)
}

// MissingField reports request body fields that must be present.
func MissingField(names string) *service.ValidationError {
	return service.NewValidationError("missing required fields: %s", names)
}

// ParseDate accepts either a minute-resolution datetime or a bare date.
func ParseDate(value string) (time.Time, error) {
	if t, err := time.Parse(serialize.DateTimeFormat, value); err == nil {
		return t, nil
	}
	return time.Parse(serialize.DateFormat, value)
}

// ParseDateFrom parses an inclusive lower date bound.
func ParseDateFrom(value string) (*time.Time, *service.ValidationError) {
	if value == "" {
		return nil, nil
	}
	t, err := ParseDate(value)
	if err != nil {
		return nil, service.NewValidationError("%q is not a date", value)
	}
	return &t, nil
}

// ParseDateTo parses an inclusive upper date bound. A bare date covers the
// whole day, so it is pushed to the last microsecond of that day.
func ParseDateTo(value string) (*time.Time, *service.ValidationError) {
	if value == "" {
		return nil, nil
	}
	if t, err := time.Parse(serialize.DateTimeFormat, value); err == nil {
		return &t, nil
	}
	t, err := time.Parse(serialize.DateFormat, value)
	if err != nil {
		return nil, service.NewValidationError("%q is not a date", value)
	}
	t = t.Add(24*time.Hour - time.Microsecond)
	return &t, nil
}

// ParseFloat parses an optional float parameter.
func ParseFloat(value string) (*float64, *service.ValidationError) {
	if value == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, service.NewValidationError("%q is not float", value)
	}
	return &f, nil
}

// ParseInt parses an optional integer parameter.
func ParseInt(value string) (*int, *service.ValidationError) {
	if value == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return nil, service.NewValidationError("%q is not integer", value)
	}
	return &n, nil
}

// ParseBool parses an optional boolean parameter. Only the exact literals
// "true" and "false" are accepted.
func ParseBool(value string) (*bool, *service.ValidationError) {
	switch value {
	case "":
		return nil, nil
	case "true":
		b := true
		return &b, nil
	case "false":
		b := false
		return &b, nil
	}
	return nil, service.NewValidationError("%q is not in (true, false)", value)
}

// ParseWindow reads the from/to page indexes, defaulting to the first page.
// A supplied value is honored verbatim, so to=0 selects an empty page.
func ParseWindow(q func(string) string) (repo.Window, *service.ValidationError) {
	w := repo.DefaultWindow()
	if from, err := ParseInt(q("from")); err != nil {
		return w, err
	} else if from != nil {
		w.From = *from
	}
	if to, err := ParseInt(q("to")); err != nil {
		return w, err
	} else if to != nil {
		w.To = *to
	}
	return w, nil
}

func parseFloatThreshold(q func(string) string, name string) (repo.Threshold[float64], *service.ValidationError) {
	var t repo.Threshold[float64]
	var err *service.ValidationError
	if t.More, err = ParseFloat(q(name + "_more")); err != nil {
		return t, err
	}
	if t.Less, err = ParseFloat(q(name + "_less")); err != nil {
		return t, err
	}
	return t, nil
}

func parseIntThreshold(q func(string) string, name string) (repo.Threshold[int], *service.ValidationError) {
	var t repo.Threshold[int]
	var err *service.ValidationError
	if t.More, err = ParseInt(q(name + "_more")); err != nil {
		return t, err
	}
	if t.Less, err = ParseInt(q(name + "_less")); err != nil {
		return t, err
	}
	return t, nil
}

// ParseBuildFilters reads the build listing filters from the query string.
// q returns the raw value of a parameter, empty when absent.
func ParseBuildFilters(q func(string) string) (repo.BuildFilters, *service.ValidationError) {
	var f repo.BuildFilters
	var err *service.ValidationError

	if f.DateFrom, err = ParseDateFrom(q("date_from")); err != nil {
		return f, err
	}
	if f.DateTo, err = ParseDateTo(q("date_to")); err != nil {
		return f, err
	}
	if f.WasSuccess, err = ParseBool(q("was_success")); err != nil {
		return f, err
	}
	if f.Runtime, err = parseFloatThreshold(q, "runtime"); err != nil {
		return f, err
	}
	if f.FailCount, err = parseIntThreshold(q, "fail_count"); err != nil {
		return f, err
	}
	if f.ErrorCount, err = parseIntThreshold(q, "error_count"); err != nil {
		return f, err
	}
	if f.SuccessCount, err = parseIntThreshold(q, "success_count"); err != nil {
		return f, err
	}
	return f, nil
}

// ParseResultFilters reads the case result filters from the query string.
// An unknown status value is passed through and ignored by the storage layer.
func ParseResultFilters(q func(string) string) (repo.ResultFilters, *service.ValidationError) {
	var f repo.ResultFilters
	var err *service.ValidationError

	f.Status = q("status")
	if f.DateFrom, err = ParseDateFrom(q("date_from")); err != nil {
		return f, err
	}
	if f.DateTo, err = ParseDateTo(q("date_to")); err != nil {
		return f, err
	}
	if f.Runtime, err = parseFloatThreshold(q, "runtime"); err != nil {
		return f, err
	}
	return f, nil
}
