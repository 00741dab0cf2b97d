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

package env

import (
	"testing"
	"time"
)

func TestGetEnvString(t *testing.T) {
	t.Setenv("RICHTER_TEST_STRING", "value")
	if got := GetEnvString("RICHTER_TEST_STRING", "def"); got != "value" {
		t.Fatalf("GetEnvString set = %q, want %q", got, "value")
	}

	t.Setenv("RICHTER_TEST_STRING", "")
	if got := GetEnvString("RICHTER_TEST_STRING", "def"); got != "def" {
		t.Fatalf("GetEnvString empty = %q, want %q", got, "def")
	}
}

func TestGetEnvBool(t *testing.T) {
	t.Setenv("RICHTER_TEST_BOOL", "true")
	if got := GetEnvBool("RICHTER_TEST_BOOL", false); got != true {
		t.Fatalf("GetEnvBool true = %v, want true", got)
	}

	t.Setenv("RICHTER_TEST_BOOL", "not-bool")
	if got := GetEnvBool("RICHTER_TEST_BOOL", true); got != true {
		t.Fatalf("GetEnvBool invalid = %v, want true", got)
	}
}

func TestGetEnvDuration(t *testing.T) {
	t.Setenv("RICHTER_TEST_DURATION", "1h2m3s")
	want := time.Hour + 2*time.Minute + 3*time.Second
	if got := GetEnvDuration("RICHTER_TEST_DURATION", 5*time.Second); got != want {
		t.Fatalf("GetEnvDuration valid = %v, want %v", got, want)
	}

	t.Setenv("RICHTER_TEST_DURATION", "nope")
	if got := GetEnvDuration("RICHTER_TEST_DURATION", 5*time.Second); got != 5*time.Second {
		t.Fatalf("GetEnvDuration invalid = %v, want 5s", got)
	}
}
