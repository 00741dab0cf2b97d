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

package router

import (
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/richterhq/richter/internal/engine/model"
	"github.com/richterhq/richter/internal/engine/repo"
	"github.com/richterhq/richter/internal/engine/service"
	"github.com/richterhq/richter/pkg/database"
	pkghttp "github.com/richterhq/richter/pkg/http"
)

func newTestApp(t *testing.T) *fiber.App {
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

	cfg := pkghttp.Http{}
	cfg.SetDefaults()
	app := pkghttp.NewApp(cfg)

	services := service.NewServices(repo.NewRepositories(database.NewFromDB(db)))
	NewRouter(services).Register(app)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string) (int, string) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(data)
}

func TestMissingJobIs404WithEmptyBody(t *testing.T) {
	app := newTestApp(t)
	status, body := doJSON(t, app, "GET", "/api/v1/jobs/ghost", "")
	require.Equal(t, fiber.StatusNotFound, status)
	require.Empty(t, body)
}

func TestCreateJob(t *testing.T) {
	app := newTestApp(t)
	status, body := doJSON(t, app, "POST", "/api/v1/jobs/demo",
		`{"description":"nightly suite"}`)
	require.Equal(t, fiber.StatusCreated, status)

	var parsed map[string]any
	require.NoError(t, sonic.Unmarshal([]byte(body), &parsed))
	require.Equal(t, "/api/v1/jobs/demo", parsed["location"])
	result, ok := parsed["result"].(map[string]any)
	require.True(t, ok, "body has no result: %s", body)
	require.Equal(t, "demo", result["name"])
	require.Equal(t, "nightly suite", result["description"])
}

func TestCreateJobTwiceConflicts(t *testing.T) {
	app := newTestApp(t)
	status, _ := doJSON(t, app, "POST", "/api/v1/jobs/demo", "")
	require.Equal(t, fiber.StatusCreated, status)

	status, body := doJSON(t, app, "POST", "/api/v1/jobs/demo", "")
	require.Equal(t, fiber.StatusConflict, status)
	require.Contains(t, body, "error")
}

func TestListJobsEnvelopeKeyOrder(t *testing.T) {
	app := newTestApp(t)
	doJSON(t, app, "POST", "/api/v1/jobs/demo", "")

	status, body := doJSON(t, app, "GET", "/api/v1/jobs", "")
	require.Equal(t, fiber.StatusOK, status)
	require.True(t, strings.HasPrefix(body, `{"result":[`), "body = %s", body)
	require.Less(t, strings.Index(body, `"total_count"`), strings.Index(body, `"current_count"`))
}

func TestExplicitZeroToIsEmptyPage(t *testing.T) {
	app := newTestApp(t)
	for _, name := range []string{"j1", "j2", "j3"} {
		doJSON(t, app, "POST", "/api/v1/jobs/"+name, "")
	}

	status, body := doJSON(t, app, "GET", "/api/v1/jobs?to=0", "")
	require.Equal(t, fiber.StatusOK, status)
	require.Contains(t, body, `"total_count":3`)
	require.Contains(t, body, `"current_count":0`)
	require.Contains(t, body, `"result":[]`)
}

func TestBadWasSuccessIs400(t *testing.T) {
	app := newTestApp(t)
	doJSON(t, app, "POST", "/api/v1/jobs/demo", "")

	status, body := doJSON(t, app, "GET", "/api/v1/jobs/demo/builds?was_success=yes", "")
	require.Equal(t, fiber.StatusBadRequest, status)
	require.Contains(t, body, `is not in (true, false)`)
}

func TestBuildStartStopOverHTTP(t *testing.T) {
	app := newTestApp(t)
	doJSON(t, app, "POST", "/api/v1/jobs/demo", "")

	status, body := doJSON(t, app, "POST",
		"/api/v1/jobs/demo/builds/b1/start", `{"metadata":{"branch":"main"}}`)
	require.Equal(t, fiber.StatusCreated, status)
	require.Contains(t, body, `"is_running":true`)

	status, _ = doJSON(t, app, "PUT", "/api/v1/jobs/demo/builds/b1/stop",
		`{"runtime":10.5,"was_success":true,"tests_count":4,"success_count":4,"fail_count":0,"error_count":0}`)
	require.Equal(t, fiber.StatusOK, status)

	status, body = doJSON(t, app, "GET", "/api/v1/jobs/demo/builds/b1", "")
	require.Equal(t, fiber.StatusOK, status)
	require.Contains(t, body, `"is_running":false`)
	require.Contains(t, body, `"was_success":true`)
	require.Contains(t, body, `"metadata":{"branch":"main"}`)
}

func TestStopMissingCountersIs400(t *testing.T) {
	app := newTestApp(t)
	doJSON(t, app, "POST", "/api/v1/jobs/demo", "")
	doJSON(t, app, "POST", "/api/v1/jobs/demo/builds/b1/start", "")

	status, body := doJSON(t, app, "PUT",
		"/api/v1/jobs/demo/builds/b1/stop", `{"runtime":10.5}`)
	require.Equal(t, fiber.StatusBadRequest, status)
	require.Contains(t, body, "missing required fields")
}

func TestAddResultInvalidStatusIs400(t *testing.T) {
	app := newTestApp(t)
	doJSON(t, app, "POST", "/api/v1/jobs/demo", "")
	doJSON(t, app, "POST", "/api/v1/jobs/demo/builds/b1/start", "")
	doJSON(t, app, "POST", "/api/v1/jobs/demo/cases/c1", "")

	status, body := doJSON(t, app, "POST",
		"/api/v1/jobs/demo/builds/b1/cases/c1", `{"status":"flaky","runtime":0.5}`)
	require.Equal(t, fiber.StatusBadRequest, status)
	require.Contains(t, body, `"flaky" is not in`)
}

func TestAutoCreationOverHTTP(t *testing.T) {
	app := newTestApp(t)

	status, _ := doJSON(t, app, "POST", "/api/v1/jobs/ghost/builds/b1/start", "")
	require.Equal(t, fiber.StatusNotFound, status)

	status, _ = doJSON(t, app, "POST",
		"/api/v1/jobs/ghost/builds/b1/start?autocreation=1", "")
	require.Equal(t, fiber.StatusCreated, status)

	status, body := doJSON(t, app, "POST",
		"/api/v1/jobs/ghost/builds/b1/cases/c1?autocreation=1",
		`{"status":"passed","runtime":0.5}`)
	require.Equal(t, fiber.StatusCreated, status)
	require.Contains(t, body, `"status":"passed"`)

	status, body = doJSON(t, app, "GET",
		"/api/v1/jobs/ghost/builds/b1/cases/c1", "")
	require.Equal(t, fiber.StatusOK, status)
	require.Contains(t, body, `"case":{"name":"c1"`)
}

func TestCaseStatRoute(t *testing.T) {
	app := newTestApp(t)
	doJSON(t, app, "POST", "/api/v1/jobs/demo", "")
	doJSON(t, app, "POST", "/api/v1/jobs/demo/builds/b1/start", "")
	doJSON(t, app, "POST", "/api/v1/jobs/demo/builds/b1/cases/c1?autocreation=1",
		`{"status":"failed","runtime":1.2,"reason":"timeout"}`)

	status, body := doJSON(t, app, "GET", "/api/v1/jobs/demo/cases/c1/stat", "")
	require.Equal(t, fiber.StatusOK, status)
	require.Contains(t, body, `"total_count":1`)
	require.Contains(t, body, `"reason":"timeout"`)

	// The literal stat segment must not be taken for a case name.
	status, body = doJSON(t, app, "GET", "/api/v1/jobs/demo/cases/stat", "")
	require.Equal(t, fiber.StatusOK, status)
	require.Contains(t, body, `"total_count":1`)
}

func TestDeleteJob(t *testing.T) {
	app := newTestApp(t)
	doJSON(t, app, "POST", "/api/v1/jobs/demo", "")

	status, _ := doJSON(t, app, "DELETE", "/api/v1/jobs/demo", "")
	require.Equal(t, fiber.StatusOK, status)

	status, _ = doJSON(t, app, "GET", "/api/v1/jobs/demo", "")
	require.Equal(t, fiber.StatusNotFound, status)
}
