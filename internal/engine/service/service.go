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

// Package service implements one operation per endpoint family. Every
// operation resolves its hierarchy path by name (job, then build, then
// case) and returns ErrNotFound the instant any segment is absent.
package service

import (
	"context"
	"fmt"

	"github.com/richterhq/richter/internal/engine/model"
	"github.com/richterhq/richter/internal/engine/repo"
)

const apiPrefix = "/api/v1"

// apiLocation renders the canonical resource path for a created entity.
func apiLocation(format string, args ...any) string {
	return apiPrefix + fmt.Sprintf(format, args...)
}

// Services bundles all endpoint-family services.
type Services struct {
	Job   *JobService
	Build *BuildService
	Case  *CaseService
}

// NewServices wires the services over one repository set.
func NewServices(repos *repo.Repositories) *Services {
	return &Services{
		Job:   NewJobService(repos),
		Build: NewBuildService(repos),
		Case:  NewCaseService(repos),
	}
}

// resolveJob looks up an active job by name, translating absence to
// ErrNotFound.
func resolveJob(ctx context.Context, repos *repo.Repositories, name string) (*model.Job, error) {
	job, err := repos.Job.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, ErrNotFound
	}
	return job, nil
}

// resolveBuild looks up a build by name under a job.
func resolveBuild(ctx context.Context, repos *repo.Repositories, jobId uint, name string) (*model.Build, error) {
	build, err := repos.Build.GetByName(ctx, jobId, name)
	if err != nil {
		return nil, err
	}
	if build == nil {
		return nil, ErrNotFound
	}
	return build, nil
}

// resolveCase looks up a case by name under a job.
func resolveCase(ctx context.Context, repos *repo.Repositories, jobId uint, name string) (*model.Case, error) {
	c, err := repos.Case.GetByName(ctx, jobId, name)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrNotFound
	}
	return c, nil
}
