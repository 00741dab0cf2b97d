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

// CaseService implements the cases and case results endpoint families.
type CaseService struct {
	repos *repo.Repositories
}

// NewCaseService creates the case service.
func NewCaseService(repos *repo.Repositories) *CaseService {
	return &CaseService{repos: repos}
}

// AddToJob registers a test case under the named job.
func (s *CaseService) AddToJob(ctx context.Context, jobName, caseName, description string) (*serialize.Object, error) {
	job, err := resolveJob(ctx, s.repos, jobName)
	if err != nil {
		return nil, err
	}

	kase := &model.Case{
		JobId:       job.Id,
		Name:        caseName,
		Description: description,
	}
	if err := s.repos.Case.Create(ctx, kase); err != nil {
		if repo.IsDuplicateEntry(err) {
			return nil, NewConflictError("case %q already exists in job %q", caseName, jobName)
		}
		return nil, err
	}

	return serialize.NewEnvelope(serialize.Case(kase)).
		Set("job", serialize.Job(job)), nil
}

// GetFromJob returns one case by name under a job.
func (s *CaseService) GetFromJob(ctx context.Context, jobName, caseName string) (*serialize.Object, error) {
	job, err := resolveJob(ctx, s.repos, jobName)
	if err != nil {
		return nil, err
	}
	kase, err := resolveCase(ctx, s.repos, job.Id, caseName)
	if err != nil {
		return nil, err
	}

	return serialize.NewEnvelope(serialize.Case(kase)).
		Set("job", serialize.Job(job)), nil
}

// ListForJob returns the page of cases under a job.
func (s *CaseService) ListForJob(ctx context.Context, jobName string, w repo.Window) (*serialize.Object, error) {
	job, err := resolveJob(ctx, s.repos, jobName)
	if err != nil {
		return nil, err
	}

	cases, total, err := s.repos.Case.List(ctx, job.Id, w)
	if err != nil {
		return nil, err
	}

	items := make([]*serialize.Object, 0, len(cases))
	for _, kase := range cases {
		items = append(items, serialize.Case(kase))
	}
	return serialize.NewEnvelope(items).
		Set("total_count", total).
		Set("current_count", len(items)).
		Set("job", serialize.Job(job)), nil
}

// serializeResult projects a case result with its metadata loaded.
func (s *CaseService) serializeResult(ctx context.Context, result *model.CaseResult, kase *model.Case) (*serialize.Object, error) {
	metadata, err := s.repos.CaseResultMeta.Load(ctx, result.Id)
	if err != nil {
		return nil, err
	}
	return serialize.CaseResult(result, kase, metadata), nil
}

// CaseStat returns the filtered run history of one case across builds.
func (s *CaseService) CaseStat(ctx context.Context, jobName, caseName string, f repo.ResultFilters, w repo.Window) (*serialize.Object, error) {
	job, err := resolveJob(ctx, s.repos, jobName)
	if err != nil {
		return nil, err
	}
	kase, err := resolveCase(ctx, s.repos, job.Id, caseName)
	if err != nil {
		return nil, err
	}

	results, total, err := s.repos.CaseResult.ListByCase(ctx, kase.Id, f, w)
	if err != nil {
		return nil, err
	}

	items := make([]*serialize.Object, 0, len(results))
	for _, result := range results {
		obj, err := s.serializeResult(ctx, result, kase)
		if err != nil {
			return nil, err
		}
		items = append(items, obj)
	}
	return serialize.NewEnvelope(items).
		Set("total_count", total).
		Set("current_count", len(items)).
		Set("job", serialize.Job(job)).
		Set("case", serialize.Case(kase)), nil
}

// JobStat returns the filtered run history across every case of a job.
// Cases are looked up per result; results keep their own row order.
func (s *CaseService) JobStat(ctx context.Context, jobName string, f repo.ResultFilters, w repo.Window) (*serialize.Object, error) {
	job, err := resolveJob(ctx, s.repos, jobName)
	if err != nil {
		return nil, err
	}

	results, total, err := s.repos.CaseResult.ListByJob(ctx, job.Id, f, w)
	if err != nil {
		return nil, err
	}

	// Small per-request cache so a case repeated across builds is read once.
	cases := make(map[uint]*model.Case)
	items := make([]*serialize.Object, 0, len(results))
	for _, result := range results {
		kase, ok := cases[result.CaseId]
		if !ok {
			kase, err = s.repos.Case.GetById(ctx, result.CaseId)
			if err != nil {
				return nil, err
			}
			cases[result.CaseId] = kase
		}
		obj, err := s.serializeResult(ctx, result, kase)
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

// ResultInput carries the reported outcome of one case in one build.
type ResultInput struct {
	Status   string
	Runtime  float64
	Reason   string
	Metadata map[string]string
}

// AddResult records the outcome of a case within a build. When autoCreate is
// set, a missing case is registered on the fly; the job and build must exist
// regardless. Repeated reports for the same pair are stored as-is.
func (s *CaseService) AddResult(ctx context.Context, jobName, buildName, caseName string, in ResultInput, autoCreate bool) (*serialize.Object, error) {
	job, err := resolveJob(ctx, s.repos, jobName)
	if err != nil {
		return nil, err
	}
	build, err := resolveBuild(ctx, s.repos, job.Id, buildName)
	if err != nil {
		return nil, err
	}

	kase, err := s.repos.Case.GetByName(ctx, job.Id, caseName)
	if err != nil {
		return nil, err
	}
	if kase == nil {
		if !autoCreate {
			return nil, ErrNotFound
		}
		kase = &model.Case{JobId: job.Id, Name: caseName}
		if err := s.repos.Case.Create(ctx, kase); err != nil {
			if repo.IsDuplicateEntry(err) {
				return nil, NewConflictError("case %q already exists in job %q", caseName, jobName)
			}
			return nil, err
		}
	}

	result := &model.CaseResult{
		CaseId:  kase.Id,
		BuildId: build.Id,
		Status:  in.Status,
		Runtime: in.Runtime,
		Reason:  in.Reason,
	}
	if err := s.repos.CaseResult.Create(ctx, result); err != nil {
		return nil, err
	}

	if len(in.Metadata) > 0 {
		if err := s.repos.CaseResultMeta.Replace(ctx, result.Id, in.Metadata); err != nil {
			return nil, err
		}
	}

	buildMeta, err := s.repos.BuildMeta.Load(ctx, build.Id)
	if err != nil {
		return nil, err
	}
	obj, err := s.serializeResult(ctx, result, kase)
	if err != nil {
		return nil, err
	}
	return serialize.NewEnvelope(obj).
		Set("job", serialize.Job(job)).
		Set("case", serialize.Case(kase)).
		Set("build", serialize.Build(build, buildMeta)), nil
}

// GetResult returns the earliest stored result of a case within a build.
func (s *CaseService) GetResult(ctx context.Context, jobName, buildName, caseName string) (*serialize.Object, error) {
	job, err := resolveJob(ctx, s.repos, jobName)
	if err != nil {
		return nil, err
	}
	build, err := resolveBuild(ctx, s.repos, job.Id, buildName)
	if err != nil {
		return nil, err
	}
	kase, err := resolveCase(ctx, s.repos, job.Id, caseName)
	if err != nil {
		return nil, err
	}

	result, err := s.repos.CaseResult.GetOne(ctx, build.Id, kase.Id)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, ErrNotFound
	}

	buildMeta, err := s.repos.BuildMeta.Load(ctx, build.Id)
	if err != nil {
		return nil, err
	}
	obj, err := s.serializeResult(ctx, result, kase)
	if err != nil {
		return nil, err
	}
	return serialize.NewEnvelope(obj).
		Set("job", serialize.Job(job)).
		Set("case", serialize.Case(kase)).
		Set("build", serialize.Build(build, buildMeta)), nil
}
