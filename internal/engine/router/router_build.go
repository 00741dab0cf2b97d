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
	"github.com/richterhq/richter/internal/engine/repo"
)

type startBuildRequest struct {
	Metadata map[string]string `json:"metadata"`
}

// stopBuildRequest carries the final counters. Pointer fields distinguish a
// zero counter from a missing one.
type stopBuildRequest struct {
	Runtime      *float64 `json:"runtime"`
	WasSuccess   *bool    `json:"was_success"`
	TestsCount   *int     `json:"tests_count"`
	SuccessCount *int     `json:"success_count"`
	FailCount    *int     `json:"fail_count"`
	ErrorCount   *int     `json:"error_count"`
}

func (r *Router) listBuilds(c *fiber.Ctx) error {
	w, verr := apiv1.ParseWindow(query(c))
	if verr != nil {
		return respond(c, 0, nil, verr)
	}
	f, verr := apiv1.ParseBuildFilters(query(c))
	if verr != nil {
		return respond(c, 0, nil, verr)
	}
	obj, err := r.services.Build.ListForJob(c.Context(), c.Params("jobName"), f, w)
	return respond(c, fiber.StatusOK, obj, err)
}

func (r *Router) startBuild(c *fiber.Ctx) error {
	var req startBuildRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return respond(c, 0, nil, apiv1.BadBody(err))
		}
	}
	obj, err := r.services.Build.Start(c.Context(),
		c.Params("jobName"), c.Params("buildName"), req.Metadata, autoCreation(c))
	return respond(c, fiber.StatusCreated, obj, err)
}

func (r *Router) stopBuild(c *fiber.Ctx) error {
	var req stopBuildRequest
	if err := c.BodyParser(&req); err != nil {
		return respond(c, 0, nil, apiv1.BadBody(err))
	}
	if req.Runtime == nil || req.WasSuccess == nil || req.TestsCount == nil ||
		req.SuccessCount == nil || req.FailCount == nil || req.ErrorCount == nil {
		return respond(c, 0, nil, apiv1.MissingField("runtime, was_success, tests_count, success_count, fail_count, error_count"))
	}
	stats := repo.FinishStats{
		Runtime:      *req.Runtime,
		WasSuccess:   *req.WasSuccess,
		TestsCount:   *req.TestsCount,
		SuccessCount: *req.SuccessCount,
		FailCount:    *req.FailCount,
		ErrorCount:   *req.ErrorCount,
	}
	obj, err := r.services.Build.Stop(c.Context(),
		c.Params("jobName"), c.Params("buildName"), stats)
	return respond(c, fiber.StatusOK, obj, err)
}

func (r *Router) getBuild(c *fiber.Ctx) error {
	obj, err := r.services.Build.GetByName(c.Context(),
		c.Params("jobName"), c.Params("buildName"))
	return respond(c, fiber.StatusOK, obj, err)
}
