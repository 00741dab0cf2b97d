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
	"fmt"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/richterhq/richter/internal/engine/model"
	"github.com/richterhq/richter/internal/engine/repo"
	"github.com/richterhq/richter/internal/engine/serialize"
	"github.com/richterhq/richter/pkg/database"
)

func newTestServices(t *testing.T) *Services {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, model.AutoMigrate(db))
	return NewServices(repo.NewRepositories(database.NewFromDB(db)))
}

// resultOf unwraps the envelope's result into a generic map for assertions.
func resultOf(t *testing.T, obj *serialize.Object) map[string]any {
	t.Helper()
	raw, ok := obj.Get("result")
	require.True(t, ok, "envelope has no result")
	data, err := sonic.Marshal(raw)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, sonic.Unmarshal(data, &out))
	return out
}

func TestBuildLifecycle(t *testing.T) {
	services := newTestServices(t)
	ctx := context.Background()

	_, err := services.Job.Create(ctx, "demo", "nightly suite")
	require.NoError(t, err)

	started, err := services.Build.Start(ctx, "demo", "b1",
		map[string]string{"branch": "main"}, false)
	require.NoError(t, err)

	result := resultOf(t, started)
	require.Equal(t, "b1", result["name"])
	require.Equal(t, true, result["is_running"])
	require.Equal(t, false, result["was_success"])

	loc, ok := started.Get("location")
	require.True(t, ok)
	require.Equal(t, "/api/v1/jobs/demo/builds/b1", loc)

	stopped, err := services.Build.Stop(ctx, "demo", "b1", repo.FinishStats{
		Runtime:      10.5,
		WasSuccess:   true,
		TestsCount:   4,
		SuccessCount: 4,
	})
	require.NoError(t, err)

	result = resultOf(t, stopped)
	require.Equal(t, false, result["is_running"])
	require.Equal(t, true, result["was_success"])
	require.EqualValues(t, 10.5, result["runtime"])
	require.EqualValues(t, 4, result["tests_count"])
	require.EqualValues(t, 4, result["success_count"])
	require.Equal(t, map[string]any{"branch": "main"}, result["metadata"])
}

func TestBuildStartDuplicate(t *testing.T) {
	services := newTestServices(t)
	ctx := context.Background()

	_, err := services.Job.Create(ctx, "demo", "")
	require.NoError(t, err)
	_, err = services.Build.Start(ctx, "demo", "b1", nil, false)
	require.NoError(t, err)

	_, err = services.Build.Start(ctx, "demo", "b1", nil, false)
	require.True(t, IsConflict(err), "expected conflict, got %v", err)
}

func TestBuildStartAutoCreatesJob(t *testing.T) {
	services := newTestServices(t)
	ctx := context.Background()

	_, err := services.Build.Start(ctx, "ghost", "b1", nil, false)
	require.True(t, IsNotFound(err), "expected not found, got %v", err)

	_, err = services.Build.Start(ctx, "ghost", "b1", nil, true)
	require.NoError(t, err)

	obj, err := services.Job.GetByName(ctx, "ghost")
	require.NoError(t, err)
	require.Equal(t, "ghost", resultOf(t, obj)["name"])
}

func TestJobCreateConflict(t *testing.T) {
	services := newTestServices(t)
	ctx := context.Background()

	_, err := services.Job.Create(ctx, "demo", "")
	require.NoError(t, err)

	_, err = services.Job.Create(ctx, "demo", "")
	require.True(t, IsConflict(err), "expected conflict, got %v", err)
}

func TestJobDeleteHidesJob(t *testing.T) {
	services := newTestServices(t)
	ctx := context.Background()

	_, err := services.Job.Create(ctx, "demo", "")
	require.NoError(t, err)

	_, err = services.Job.Delete(ctx, "demo")
	require.NoError(t, err)

	_, err = services.Job.GetByName(ctx, "demo")
	require.True(t, IsNotFound(err), "expected not found, got %v", err)
}

func TestJobListCounts(t *testing.T) {
	services := newTestServices(t)
	ctx := context.Background()
	for i := 0; i < 7; i++ {
		_, err := services.Job.Create(ctx, fmt.Sprintf("job-%d", i), "")
		require.NoError(t, err)
	}

	obj, err := services.Job.List(ctx, repo.Window{From: 1, To: 5})
	require.NoError(t, err)

	total, _ := obj.Get("total_count")
	require.EqualValues(t, 7, total)
	current, _ := obj.Get("current_count")
	require.EqualValues(t, 5, current)
}

func TestCaseResultRoundTrip(t *testing.T) {
	services := newTestServices(t)
	ctx := context.Background()

	_, err := services.Job.Create(ctx, "demo", "")
	require.NoError(t, err)
	_, err = services.Build.Start(ctx, "demo", "b1", nil, false)
	require.NoError(t, err)
	_, err = services.Case.AddToJob(ctx, "demo", "c1", "login check")
	require.NoError(t, err)

	in := ResultInput{
		Status:   model.CaseStatusFailed,
		Runtime:  1.2,
		Reason:   "timeout",
		Metadata: map[string]string{"attempt": "1"},
	}
	added, err := services.Case.AddResult(ctx, "demo", "b1", "c1", in, false)
	require.NoError(t, err)

	result := resultOf(t, added)
	require.Equal(t, "failed", result["status"])
	require.Equal(t, "timeout", result["reason"])
	require.EqualValues(t, 1.2, result["runtime"])
	nested, ok := result["case"].(map[string]any)
	require.True(t, ok, "result has no nested case")
	require.Equal(t, "c1", nested["name"])

	got, err := services.Case.GetResult(ctx, "demo", "b1", "c1")
	require.NoError(t, err)
	result = resultOf(t, got)
	require.Equal(t, "failed", result["status"])
	require.Equal(t, map[string]any{"attempt": "1"}, result["metadata"])

	// The extras identify the full path of the result.
	for _, key := range []string{"job", "case", "build"} {
		_, ok := got.Get(key)
		require.True(t, ok, "missing %s extra", key)
	}
}

func TestAddResultAutoCreatesCase(t *testing.T) {
	services := newTestServices(t)
	ctx := context.Background()

	_, err := services.Job.Create(ctx, "demo", "")
	require.NoError(t, err)
	_, err = services.Build.Start(ctx, "demo", "b1", nil, false)
	require.NoError(t, err)

	in := ResultInput{Status: model.CaseStatusPassed, Runtime: 0.3}
	_, err = services.Case.AddResult(ctx, "demo", "b1", "ghost-case", in, false)
	require.True(t, IsNotFound(err), "expected not found, got %v", err)

	_, err = services.Case.AddResult(ctx, "demo", "b1", "ghost-case", in, true)
	require.NoError(t, err)

	obj, err := services.Case.GetFromJob(ctx, "demo", "ghost-case")
	require.NoError(t, err)
	require.Equal(t, "ghost-case", resultOf(t, obj)["name"])
}

func TestCaseStat(t *testing.T) {
	services := newTestServices(t)
	ctx := context.Background()

	_, err := services.Job.Create(ctx, "demo", "")
	require.NoError(t, err)
	_, err = services.Case.AddToJob(ctx, "demo", "c1", "")
	require.NoError(t, err)

	for i, status := range []string{model.CaseStatusPassed, model.CaseStatusFailed} {
		_, err = services.Build.Start(ctx, "demo", fmt.Sprintf("b%d", i), nil, false)
		require.NoError(t, err)
		in := ResultInput{Status: status, Runtime: 0.5}
		_, err = services.Case.AddResult(ctx, "demo", fmt.Sprintf("b%d", i), "c1", in, false)
		require.NoError(t, err)
	}

	obj, err := services.Case.CaseStat(ctx, "demo", "c1",
		repo.ResultFilters{Status: model.CaseStatusFailed}, repo.Window{})
	require.NoError(t, err)

	total, _ := obj.Get("total_count")
	require.EqualValues(t, 1, total)
	_, ok := obj.Get("case")
	require.True(t, ok, "missing case extra")
}

func TestJobStatSpansCases(t *testing.T) {
	services := newTestServices(t)
	ctx := context.Background()

	_, err := services.Job.Create(ctx, "demo", "")
	require.NoError(t, err)
	_, err = services.Build.Start(ctx, "demo", "b1", nil, false)
	require.NoError(t, err)

	for _, name := range []string{"c1", "c2"} {
		_, err = services.Case.AddToJob(ctx, "demo", name, "")
		require.NoError(t, err)
		in := ResultInput{Status: model.CaseStatusPassed, Runtime: 0.1}
		_, err = services.Case.AddResult(ctx, "demo", "b1", name, in, false)
		require.NoError(t, err)
	}

	obj, err := services.Case.JobStat(ctx, "demo", repo.ResultFilters{}, repo.Window{})
	require.NoError(t, err)

	total, _ := obj.Get("total_count")
	require.EqualValues(t, 2, total)
	current, _ := obj.Get("current_count")
	require.EqualValues(t, 2, current)
}
