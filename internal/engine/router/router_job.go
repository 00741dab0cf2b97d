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
)

type createJobRequest struct {
	Description string `json:"description"`
}

func (r *Router) listJobs(c *fiber.Ctx) error {
	w, verr := apiv1.ParseWindow(query(c))
	if verr != nil {
		return respond(c, 0, nil, verr)
	}
	obj, err := r.services.Job.List(c.Context(), w)
	return respond(c, fiber.StatusOK, obj, err)
}

func (r *Router) createJob(c *fiber.Ctx) error {
	var req createJobRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return respond(c, 0, nil, apiv1.BadBody(err))
		}
	}
	obj, err := r.services.Job.Create(c.Context(), c.Params("jobName"), req.Description)
	return respond(c, fiber.StatusCreated, obj, err)
}

func (r *Router) getJob(c *fiber.Ctx) error {
	obj, err := r.services.Job.GetByName(c.Context(), c.Params("jobName"))
	return respond(c, fiber.StatusOK, obj, err)
}

func (r *Router) deleteJob(c *fiber.Ctx) error {
	obj, err := r.services.Job.Delete(c.Context(), c.Params("jobName"))
	return respond(c, fiber.StatusOK, obj, err)
}
