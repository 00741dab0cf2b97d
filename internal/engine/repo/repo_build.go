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
	"context"
	"errors"
	"time"

	"github.com/richterhq/richter/internal/engine/model"
	"github.com/richterhq/richter/pkg/database"
	"gorm.io/gorm"
)

// BuildFilters narrows a build listing. Nil fields apply no constraint.
// Date bounds are inclusive; callers expand a date-only upper bound to the
// end of that day before passing it here.
type BuildFilters struct {
	DateFrom     *time.Time
	DateTo       *time.Time
	WasSuccess   *bool
	Runtime      Threshold[float64]
	FailCount    Threshold[int]
	ErrorCount   Threshold[int]
	SuccessCount Threshold[int]
}

func (f BuildFilters) apply(tx *gorm.DB) *gorm.DB {
	if f.WasSuccess != nil {
		tx = tx.Where("was_success = ?", *f.WasSuccess)
	}
	if f.DateFrom != nil {
		tx = tx.Where("date >= ?", *f.DateFrom)
	}
	if f.DateTo != nil {
		tx = tx.Where("date <= ?", *f.DateTo)
	}
	tx = f.Runtime.apply(tx, "runtime")
	tx = f.FailCount.apply(tx, "fail_count")
	tx = f.ErrorCount.apply(tx, "error_count")
	tx = f.SuccessCount.apply(tx, "success_count")
	return tx
}

// FinishStats carries the final counters written by the stop operation.
type FinishStats struct {
	Runtime      float64
	WasSuccess   bool
	TestsCount   int
	SuccessCount int
	FailCount    int
	ErrorCount   int
}

// IBuildRepository defines build persistence. Name lookups are scoped by the
// owning job.
type IBuildRepository interface {
	Create(ctx context.Context, build *model.Build) error
	GetByName(ctx context.Context, jobId uint, name string) (*model.Build, error)
	Finish(ctx context.Context, buildId uint, stats FinishStats) error
	List(ctx context.Context, jobId uint, f BuildFilters, w Window) ([]*model.Build, int64, error)
}

type BuildRepo struct {
	database.IDatabase
}

// NewBuildRepo creates a build repository.
func NewBuildRepo(db database.IDatabase) IBuildRepository {
	return &BuildRepo{IDatabase: db}
}

// Create creates a build. The date defaults to now.
func (r *BuildRepo) Create(ctx context.Context, build *model.Build) error {
	if build.Date.IsZero() {
		build.Date = time.Now()
	}
	return r.Database().WithContext(ctx).Create(build).Error
}

// GetByName returns the build with the given name under jobId, or (nil, nil).
func (r *BuildRepo) GetByName(ctx context.Context, jobId uint, name string) (*model.Build, error) {
	var one model.Build
	err := r.Database().WithContext(ctx).
		Where("job_id = ? AND name = ?", jobId, name).
		First(&one).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &one, nil
}

// Finish writes the final counters and marks the build as no longer running.
// A repeated finish overwrites the previous counters.
func (r *BuildRepo) Finish(ctx context.Context, buildId uint, stats FinishStats) error {
	return r.Database().WithContext(ctx).
		Model(&model.Build{}).
		Where("id = ?", buildId).
		Updates(map[string]any{
			"is_running":    false,
			"runtime":       stats.Runtime,
			"was_success":   stats.WasSuccess,
			"tests_count":   stats.TestsCount,
			"success_count": stats.SuccessCount,
			"fail_count":    stats.FailCount,
			"error_count":   stats.ErrorCount,
		}).Error
}

// List returns the window of builds under jobId matching the filters, plus
// the total filtered count.
func (r *BuildRepo) List(ctx context.Context, jobId uint, f BuildFilters, w Window) ([]*model.Build, int64, error) {
	tx := r.Database().WithContext(ctx).
		Model(&model.Build{}).
		Where("job_id = ?", jobId)
	tx = f.apply(tx)

	var builds []*model.Build
	total, err := PageFind(tx, w, &builds)
	if err != nil {
		return nil, 0, err
	}
	return builds, total, nil
}
