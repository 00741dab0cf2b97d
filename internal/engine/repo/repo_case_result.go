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

// ResultFilters narrows a case result listing. An unrecognized Status value
// applies no constraint rather than failing the query.
type ResultFilters struct {
	Status   string
	DateFrom *time.Time
	DateTo   *time.Time
	Runtime  Threshold[float64]
}

func (f ResultFilters) apply(tx *gorm.DB) *gorm.DB {
	if model.ValidCaseStatus(f.Status) {
		tx = tx.Where("case_result.status = ?", f.Status)
	}
	if f.DateFrom != nil {
		tx = tx.Where("case_result.date >= ?", *f.DateFrom)
	}
	if f.DateTo != nil {
		tx = tx.Where("case_result.date <= ?", *f.DateTo)
	}
	tx = f.Runtime.apply(tx, "case_result.runtime")
	return tx
}

// ICaseResultRepository defines case result persistence. Duplicate rows for
// the same (case, build) pair are allowed; GetOne returns the earliest.
type ICaseResultRepository interface {
	Create(ctx context.Context, result *model.CaseResult) error
	GetOne(ctx context.Context, buildId, caseId uint) (*model.CaseResult, error)
	ListByCase(ctx context.Context, caseId uint, f ResultFilters, w Window) ([]*model.CaseResult, int64, error)
	ListByJob(ctx context.Context, jobId uint, f ResultFilters, w Window) ([]*model.CaseResult, int64, error)
}

type CaseResultRepo struct {
	database.IDatabase
}

// NewCaseResultRepo creates a case result repository.
func NewCaseResultRepo(db database.IDatabase) ICaseResultRepository {
	return &CaseResultRepo{IDatabase: db}
}

// Create creates a case result. The date defaults to now.
func (r *CaseResultRepo) Create(ctx context.Context, result *model.CaseResult) error {
	if result.Date.IsZero() {
		result.Date = time.Now()
	}
	return r.Database().WithContext(ctx).Create(result).Error
}

// GetOne returns the first result for the (build, case) pair, or (nil, nil).
func (r *CaseResultRepo) GetOne(ctx context.Context, buildId, caseId uint) (*model.CaseResult, error) {
	var one model.CaseResult
	err := r.Database().WithContext(ctx).
		Where("build_id = ? AND case_id = ?", buildId, caseId).
		First(&one).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &one, nil
}

// ListByCase returns the window of results for one case across all builds.
func (r *CaseResultRepo) ListByCase(ctx context.Context, caseId uint, f ResultFilters, w Window) ([]*model.CaseResult, int64, error) {
	tx := r.Database().WithContext(ctx).
		Model(&model.CaseResult{}).
		Where("case_result.case_id = ?", caseId)
	tx = f.apply(tx)

	var results []*model.CaseResult
	total, err := PageFind(tx, w, &results)
	if err != nil {
		return nil, 0, err
	}
	return results, total, nil
}

// ListByJob returns the window of results across every build of the job.
func (r *CaseResultRepo) ListByJob(ctx context.Context, jobId uint, f ResultFilters, w Window) ([]*model.CaseResult, int64, error) {
	tx := r.Database().WithContext(ctx).
		Model(&model.CaseResult{}).
		Select("case_result.*").
		Joins("JOIN build ON build.id = case_result.build_id").
		Where("build.job_id = ?", jobId)
	tx = f.apply(tx)

	var results []*model.CaseResult
	total, err := pageFind(tx, w, "case_result.id ASC", &results)
	if err != nil {
		return nil, 0, err
	}
	return results, total, nil
}
