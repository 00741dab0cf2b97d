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
	"github.com/gofiber/fiber/v2"

	"github.com/richterhq/richter/internal/engine/apiv1"
	"github.com/richterhq/richter/internal/engine/serialize"
	"github.com/richterhq/richter/internal/engine/service"
	"github.com/richterhq/richter/pkg/http/middleware"
	"github.com/richterhq/richter/pkg/log"
)

// Router binds the v1 API onto a fiber application.
type Router struct {
	services *service.Services
}

// NewRouter creates the router.
func NewRouter(services *service.Services) *Router {
	return &Router{services: services}
}

// Register mounts all routes. Literal segments are registered before
// parameterized ones so /cases/stat is not captured as a case name.
func (r *Router) Register(app *fiber.App) {
	app.Use(middleware.RequestIdMiddleware())
	app.Use(middleware.CorsMiddleware())
	app.Use(middleware.AccessLogMiddleware())
	app.Use(middleware.HttpMetricsMiddleware())

	v1 := app.Group("/api/v1")

	v1.Get("/jobs", r.listJobs)
	v1.Post("/jobs/:jobName", r.createJob)
	v1.Get("/jobs/:jobName", r.getJob)
	v1.Delete("/jobs/:jobName", r.deleteJob)

	v1.Get("/jobs/:jobName/builds", r.listBuilds)
	v1.Post("/jobs/:jobName/builds/:buildName/start", r.startBuild)
	v1.Put("/jobs/:jobName/builds/:buildName/stop", r.stopBuild)
	v1.Get("/jobs/:jobName/builds/:buildName", r.getBuild)

	v1.Get("/jobs/:jobName/cases/stat", r.jobStat)
	v1.Get("/jobs/:jobName/cases", r.listCases)
	v1.Post("/jobs/:jobName/cases/:caseName", r.createCase)
	v1.Get("/jobs/:jobName/cases/:caseName/stat", r.caseStat)
	v1.Get("/jobs/:jobName/cases/:caseName", r.getCase)

	v1.Post("/jobs/:jobName/builds/:buildName/cases/:caseName", r.addResult)
	v1.Get("/jobs/:jobName/builds/:buildName/cases/:caseName", r.getResult)
}

// respond writes the envelope or maps a service error onto the transport.
// Absence replies with an empty 404 body, matching what CI clients poll for.
func respond(c *fiber.Ctx, status int, obj *serialize.Object, err error) error {
	switch {
	case err == nil:
		return c.Status(status).JSON(obj)
	case service.IsNotFound(err):
		return c.SendStatus(fiber.StatusNotFound)
	case service.IsValidation(err):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case service.IsConflict(err):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	}
	log.Errorw("request failed",
		"request_id", middleware.RequestId(c),
		"method", c.Method(),
		"path", c.Path(),
		"error", err,
	)
	return c.SendStatus(fiber.StatusInternalServerError)
}

// autoCreation reports whether the caller opted into parent auto-creation.
// Any non-empty value counts.
func autoCreation(c *fiber.Ctx) bool {
	return c.Query(apiv1.AutoCreationParam) != ""
}

// query adapts the fiber accessor to the parameter parsers.
func query(c *fiber.Ctx) func(string) string {
	return func(name string) string { return c.Query(name) }
}
