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

package service

import (
	"context"

	"github.com/richterhq/richter/internal/engine/model"
	"github.com/richterhq/richter/internal/engine/repo"
	"github.com/richterhq/richter/internal/engine/serialize"
)

// JobService implements the jobs endpoint family.
type JobService struct {
	repos *repo.Repositories
}

// NewJobService creates the job service.
func NewJobService(repos *repo.Repositories) *JobService {
	return &JobService{repos: repos}
}

// List returns the page of active jobs.
func (s *JobService) List(ctx context.Context, w repo.Window) (*serialize.Object, error) {
	jobs, total, err := s.repos.Job.List(ctx, w)
	if err != nil {
		return nil, err
	}

	items := make([]*serialize.Object, 0, len(jobs))
	for _, job := range jobs {
		items = append(items, serialize.Job(job))
	}
	return serialize.NewEnvelope(items).
		Set("total_count", total).
		Set("current_count", len(items)), nil
}

// Create creates a job. The name is globally unique across active and
// soft-deleted jobs.
func (s *JobService) Create(ctx context.Context, name, description string) (*serialize.Object, error) {
	job := &model.Job{
		Name:        name,
		Description: description,
		IsActive:    true,
	}
	if err := s.repos.Job.Create(ctx, job); err != nil {
		if repo.IsDuplicateEntry(err) {
			return nil, NewConflictError("job %q already exists", name)
		}
		return nil, err
	}

	return serialize.NewEnvelope(serialize.Job(job)).
		Set("location", apiLocation("/jobs/%s", name)), nil
}

// GetByName returns one active job by name.
func (s *JobService) GetByName(ctx context.Context, name string) (*serialize.Object, error) {
	job, err := resolveJob(ctx, s.repos, name)
	if err != nil {
		return nil, err
	}
	return serialize.NewEnvelope(serialize.Job(job)), nil
}

// Delete soft-deletes a job by name. The row keeps resolving by id from its
// builds; only name lookup and listings stop seeing it.
func (s *JobService) Delete(ctx context.Context, name string) (*serialize.Object, error) {
	job, err := resolveJob(ctx, s.repos, name)
	if err != nil {
		return nil, err
	}
	if err := s.repos.Job.Deactivate(ctx, job.Id); err != nil {
		return nil, err
	}
	job.IsActive = false
	return serialize.NewEnvelope(serialize.Job(job)), nil
}
