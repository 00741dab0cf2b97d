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

package model

import (
	"time"
)

// Build is one execution run of a job's suite. It starts with zeroed
// counters and IsRunning=true; the stop operation writes the final counters
// and flips IsRunning. Counters are caller-supplied and stored as-is.
type Build struct {
	Id           uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	JobId        uint      `gorm:"column:job_id;not null;uniqueIndex:uq_build_name" json:"job_id"`
	Name         string    `gorm:"column:name;type:varchar(255);not null;uniqueIndex:uq_build_name" json:"name"`
	Date         time.Time `gorm:"column:date;not null" json:"date"`
	TestsCount   int       `gorm:"column:tests_count;not null" json:"tests_count"`
	SuccessCount int       `gorm:"column:success_count;not null" json:"success_count"`
	FailCount    int       `gorm:"column:fail_count;not null" json:"fail_count"`
	ErrorCount   int       `gorm:"column:error_count;not null" json:"error_count"`
	Runtime      float64   `gorm:"column:runtime;not null" json:"runtime"`
	WasSuccess   bool      `gorm:"column:was_success;not null" json:"was_success"`
	IsRunning    bool      `gorm:"column:is_running;not null" json:"is_running"`
}

func (Build) TableName() string {
	return "build"
}

// BuildMetadata is a key/value annotation row attached to a build. Multiple
// rows per build form a mapping; the key column carries no unique constraint.
type BuildMetadata struct {
	Id      uint   `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	BuildId uint   `gorm:"column:build_id;not null;index" json:"build_id"`
	Key     string `gorm:"column:key;type:varchar(255);not null" json:"key"`
	Value   string `gorm:"column:value;type:text;not null" json:"value"`
}

func (BuildMetadata) TableName() string {
	return "build_metadata"
}
