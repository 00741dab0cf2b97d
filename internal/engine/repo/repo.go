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

package repo

import (
	"strings"

	"github.com/richterhq/richter/pkg/database"
	"gorm.io/gorm"
)

// DefaultRecordsOnPage bounds a page when the caller gives no upper index.
const DefaultRecordsOnPage = 100

// Window selects a page of a result set. From/To are 1-based inclusive-from
// indexes: Window{1, 100} is the first hundred records. A window past the end
// of the set, or with To below From, yields an empty page rather than an
// error. The zero Window is a sentinel for "no bounds given" and maps to
// DefaultWindow; any other value is honored as supplied, so an explicit
// To of 0 selects the empty slice [From-1, 0).
type Window struct {
	From int
	To   int
}

// DefaultWindow is the page used when the caller gives no bounds.
func DefaultWindow() Window {
	return Window{From: 1, To: DefaultRecordsOnPage}
}

// Bounds translates the window into SQL offset/limit. A non-positive limit
// means the page is empty and no query should run.
func (w Window) Bounds() (offset, limit int) {
	if w == (Window{}) {
		w = DefaultWindow()
	}
	from := w.From
	if from <= 0 {
		from = 1
	}
	return from - 1, w.To - (from - 1)
}

// Count runs a COUNT on the narrowed query.
func Count(tx *gorm.DB) (int64, error) {
	var total int64
	// Session guards the source query from Count's clause mutations.
	err := tx.Session(&gorm.Session{}).Count(&total).Error
	return total, err
}

// PageFind counts the narrowed set, then loads the window slice into dest.
// Records come back ordered by id so pages are stable across requests.
func PageFind(tx *gorm.DB, w Window, dest any) (total int64, err error) {
	return pageFind(tx, w, "id ASC", dest)
}

func pageFind(tx *gorm.DB, w Window, order string, dest any) (total int64, err error) {
	total, err = Count(tx)
	if err != nil {
		return 0, err
	}
	offset, limit := w.Bounds()
	if limit <= 0 {
		return total, nil
	}
	err = tx.Order(order).Offset(offset).Limit(limit).Find(dest).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}

// Threshold is a pair of optional strict bounds on a numeric column. When
// both are supplied only More is honored; Less is deliberately ignored.
type Threshold[T int | float64] struct {
	More *T
	Less *T
}

func (t Threshold[T]) apply(tx *gorm.DB, column string) *gorm.DB {
	switch {
	case t.More != nil:
		return tx.Where(column+" > ?", *t.More)
	case t.Less != nil:
		return tx.Where(column+" < ?", *t.Less)
	}
	return tx
}

// IsDuplicateEntry reports whether err is a unique-constraint violation.
// Covers the MySQL and SQLite error phrasings.
func IsDuplicateEntry(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate entry") || strings.Contains(msg, "unique constraint")
}

// Repositories bundles every repository over one database handle.
type Repositories struct {
	Job            IJobRepository
	Build          IBuildRepository
	Case           ICaseRepository
	CaseResult     ICaseResultRepository
	BuildMeta      IMetadataRepository
	CaseResultMeta IMetadataRepository
}

// NewRepositories wires all repositories.
func NewRepositories(db database.IDatabase) *Repositories {
	return &Repositories{
		Job:            NewJobRepo(db),
		Build:          NewBuildRepo(db),
		Case:           NewCaseRepo(db),
		CaseResult:     NewCaseResultRepo(db),
		BuildMeta:      NewBuildMetadataRepo(db),
		CaseResultMeta: NewCaseResultMetadataRepo(db),
	}
}
