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

	"gorm.io/datatypes"
)

// Case result statuses.
const (
	CaseStatusPassed  = "passed"
	CaseStatusSkipped = "skipped"
	CaseStatusFailed  = "failed"
	CaseStatusError   = "error"
)

// CaseStatuses lists the valid case result statuses.
var CaseStatuses = []string{CaseStatusPassed, CaseStatusSkipped, CaseStatusFailed, CaseStatusError}

// ValidCaseStatus reports whether s is a recognized case result status.
func ValidCaseStatus(s string) bool {
	for _, status := range CaseStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// Case is a named individual test within a job. Append-only.
type Case struct {
	Id          uint           `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	JobId       uint           `gorm:"column:job_id;not null;uniqueIndex:uq_case_name" json:"job_id"`
	Created     datatypes.Date `gorm:"column:created;not null" json:"created"`
	Name        string         `gorm:"column:name;type:varchar(255);not null;uniqueIndex:uq_case_name" json:"name"`
	Description string         `gorm:"column:description;type:text;not null" json:"description"`
}

func (Case) TableName() string {
	return "case"
}

// CaseResult is the outcome of one case within one build. One row per
// submission; (case_id, build_id) deliberately carries no unique constraint,
// matching the permissive ingestion contract.
type CaseResult struct {
	Id      uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	CaseId  uint      `gorm:"column:case_id;not null;index" json:"case_id"`
	BuildId uint      `gorm:"column:build_id;not null;index" json:"build_id"`
	Date    time.Time `gorm:"column:date;not null" json:"date"`
	Reason  string    `gorm:"column:reason;type:text;not null" json:"reason"`
	Runtime float64   `gorm:"column:runtime;not null" json:"runtime"`
	Status  string    `gorm:"column:status;type:varchar(32);not null" json:"status"`
}

func (CaseResult) TableName() string {
	return "case_result"
}

// CaseResultMetadata is a key/value annotation row attached to a case result.
type CaseResultMetadata struct {
	Id           uint   `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	CaseResultId uint   `gorm:"column:case_result_id;not null;index" json:"case_result_id"`
	Key          string `gorm:"column:key;type:varchar(255);not null" json:"key"`
	Value        string `gorm:"column:value;type:text;not null" json:"value"`
}

func (CaseResultMetadata) TableName() string {
	return "case_result_metadata"
}
