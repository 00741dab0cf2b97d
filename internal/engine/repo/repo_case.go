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
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ICaseRepository defines case persistence. Cases are append-only.
type ICaseRepository interface {
	Create(ctx context.Context, c *model.Case) error
	GetByName(ctx context.Context, jobId uint, name string) (*model.Case, error)
	GetById(ctx context.Context, id uint) (*model.Case, error)
	List(ctx context.Context, jobId uint, w Window) ([]*model.Case, int64, error)
}

type CaseRepo struct {
	database.IDatabase
}

// NewCaseRepo creates a case repository.
func NewCaseRepo(db database.IDatabase) ICaseRepository {
	return &CaseRepo{IDatabase: db}
}

// Create creates a case. The created date defaults to today.
func (r *CaseRepo) Create(ctx context.Context, c *model.Case) error {
	if time.Time(c.Created).IsZero() {
		c.Created = datatypes.Date(time.Now())
	}
	return r.Database().WithContext(ctx).Create(c).Error
}

// GetByName returns the case with the given name under jobId, or (nil, nil).
func (r *CaseRepo) GetByName(ctx context.Context, jobId uint, name string) (*model.Case, error) {
	var one model.Case
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

// GetById returns the case by primary key, or (nil, nil).
func (r *CaseRepo) GetById(ctx context.Context, id uint) (*model.Case, error) {
	var one model.Case
	err := r.Database().WithContext(ctx).
		Where("id = ?", id).
		First(&one).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &one, nil
}

// List returns the window of cases under jobId plus the total count.
func (r *CaseRepo) List(ctx context.Context, jobId uint, w Window) ([]*model.Case, int64, error) {
	tx := r.Database().WithContext(ctx).
		Model(&model.Case{}).
		Where("job_id = ?", jobId)

	var cases []*model.Case
	total, err := PageFind(tx, w, &cases)
	if err != nil {
		return nil, 0, err
	}
	return cases, total, nil
}
