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
	"gorm.io/datatypes"
)

// Job is the top-level named owner of a test suite. Jobs are never hard
// deleted; IsActive=false hides them from name lookup and listings while
// dependent builds keep resolving the row by id.
type Job struct {
	Id          uint           `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Created     datatypes.Date `gorm:"column:created;not null" json:"created"`
	Name        string         `gorm:"column:name;type:varchar(255);not null;uniqueIndex:uq_job_name" json:"name"`
	Description string         `gorm:"column:description;type:text;not null" json:"description"`
	IsActive    bool           `gorm:"column:is_active;not null" json:"is_active"`
}

func (Job) TableName() string {
	return "job"
}
