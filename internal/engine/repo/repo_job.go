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

// IJobRepository defines job persistence. Name lookups see active jobs only;
// id lookups resolve soft-deleted rows as well, since builds keep referencing
// them by foreign key.
type IJobRepository interface {
	Create(ctx context.Context, job *model.Job) error
	GetByName(ctx context.Context, name string) (*model.Job, error)
	GetById(ctx context.Context, id uint) (*model.Job, error)
	List(ctx context.Context, w Window) ([]*model.Job, int64, error)
	Deactivate(ctx context.Context, id uint) error
}

type JobRepo struct {
	database.IDatabase
}

// NewJobRepo creates a job repository.
func NewJobRepo(db database.IDatabase) IJobRepository {
	return &JobRepo{IDatabase: db}
}

// Create creates a job. The created date defaults to today.
func (r *JobRepo) Create(ctx context.Context, job *model.Job) error {
	if time.Time(job.Created).IsZero() {
		job.Created = datatypes.Date(time.Now())
	}
	return r.Database().WithContext(ctx).Create(job).Error
}

// GetByName returns the active job with the given name, or (nil, nil).
func (r *JobRepo) GetByName(ctx context.Context, name string) (*model.Job, error) {
	var one model.Job
	err := r.Database().WithContext(ctx).
		Where("name = ? AND is_active = ?", name, true).
		First(&one).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &one, nil
}

// GetById returns the job row regardless of its active flag, or (nil, nil).
func (r *JobRepo) GetById(ctx context.Context, id uint) (*model.Job, error) {
	var one model.Job
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

// List returns the window of active jobs plus the total active count.
func (r *JobRepo) List(ctx context.Context, w Window) ([]*model.Job, int64, error) {
	tx := r.Database().WithContext(ctx).
		Model(&model.Job{}).
		Where("is_active = ?", true)

	var jobs []*model.Job
	total, err := PageFind(tx, w, &jobs)
	if err != nil {
		return nil, 0, err
	}
	return jobs, total, nil
}

// Deactivate soft-deletes the job. The row stays resolvable by id.
func (r *JobRepo) Deactivate(ctx context.Context, id uint) error {
	return r.Database().WithContext(ctx).
		Model(&model.Job{}).
		Where("id = ?", id).
		Update("is_active", false).Error
}
