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

// BuildService implements the builds endpoint family.
type BuildService struct {
	repos *repo.Repositories
}

// NewBuildService creates the build service.
func NewBuildService(repos *repo.Repositories) *BuildService {
	return &BuildService{repos: repos}
}

// serializeBuild projects a build with its metadata loaded.
func (s *BuildService) serializeBuild(ctx context.Context, build *model.Build) (*serialize.Object, error) {
	metadata, err := s.repos.BuildMeta.Load(ctx, build.Id)
	if err != nil {
		return nil, err
	}
	return serialize.Build(build, metadata), nil
}

// ListForJob returns the filtered page of builds under a job.
func (s *BuildService) ListForJob(ctx context.Context, jobName string, f repo.BuildFilters, w repo.Window) (*serialize.Object, error) {
	job, err := resolveJob(ctx, s.repos, jobName)
	if err != nil {
		return nil, err
	}

	builds, total, err := s.repos.Build.List(ctx, job.Id, f, w)
	if err != nil {
		return nil, err
	}

	items := make([]*serialize.Object, 0, len(builds))
	for _, build := range builds {
		obj, err := s.serializeBuild(ctx, build)
		if err != nil {
			return nil, err
		}
		items = append(items, obj)
	}
	return serialize.NewEnvelope(items).
		Set("total_count", total).
		Set("current_count", len(items)).
		Set("job", serialize.Job(job)), nil
}

// Start creates a build under the named job with zeroed counters and
// is_running=true. When autoCreate is set, a missing job is created on the
// fly with just its name.
func (s *BuildService) Start(ctx context.Context, jobName, buildName string, metadata map[string]string, autoCreate bool) (*serialize.Object, error) {
	job, err := s.repos.Job.GetByName(ctx, jobName)
	if err != nil {
		return nil, err
	}
	if job == nil {
		if !autoCreate {
			return nil, ErrNotFound
		}
		job = &model.Job{Name: jobName, IsActive: true}
		if err := s.repos.Job.Create(ctx, job); err != nil {
			if repo.IsDuplicateEntry(err) {
				return nil, NewConflictError("job %q already exists", jobName)
			}
			return nil, err
		}
	}

	build := &model.Build{
		JobId:     job.Id,
		Name:      buildName,
		IsRunning: true,
	}
	if err := s.repos.Build.Create(ctx, build); err != nil {
		if repo.IsDuplicateEntry(err) {
			return nil, NewConflictError("build %q already exists in job %q", buildName, jobName)
		}
		return nil, err
	}

	if len(metadata) > 0 {
		if err := s.repos.BuildMeta.Replace(ctx, build.Id, metadata); err != nil {
			return nil, err
		}
	}

	obj, err := s.serializeBuild(ctx, build)
	if err != nil {
		return nil, err
	}
	return serialize.NewEnvelope(obj).
		Set("job", serialize.Job(job)).
		Set("location", apiLocation("/jobs/%s/builds/%s", jobName, buildName)), nil
}

// Stop writes the final counters of a started build and flips is_running.
// A second stop overwrites the counters of the first; the storage layer
// does not fence repeated stops.
func (s *BuildService) Stop(ctx context.Context, jobName, buildName string, stats repo.FinishStats) (*serialize.Object, error) {
	job, err := resolveJob(ctx, s.repos, jobName)
	if err != nil {
		return nil, err
	}
	build, err := resolveBuild(ctx, s.repos, job.Id, buildName)
	if err != nil {
		return nil, err
	}

	if err := s.repos.Build.Finish(ctx, build.Id, stats); err != nil {
		return nil, err
	}

	// Re-read so the response reflects the stored row.
	build, err = resolveBuild(ctx, s.repos, job.Id, buildName)
	if err != nil {
		return nil, err
	}

	obj, err := s.serializeBuild(ctx, build)
	if err != nil {
		return nil, err
	}
	return serialize.NewEnvelope(obj).
		Set("job", serialize.Job(job)).
		Set("location", apiLocation("/jobs/%s/builds/%s", jobName, buildName)), nil
}

// GetByName returns one build by name under a job.
func (s *BuildService) GetByName(ctx context.Context, jobName, buildName string) (*serialize.Object, error) {
	job, err := resolveJob(ctx, s.repos, jobName)
	if err != nil {
		return nil, err
	}
	build, err := resolveBuild(ctx, s.repos, job.Id, buildName)
	if err != nil {
		return nil, err
	}

	obj, err := s.serializeBuild(ctx, build)
	if err != nil {
		return nil, err
	}
	return serialize.NewEnvelope(obj).
		Set("job", serialize.Job(job)), nil
}
