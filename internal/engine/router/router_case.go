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
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/richterhq/richter/internal/engine/apiv1"
	"github.com/richterhq/richter/internal/engine/model"
	"github.com/richterhq/richter/internal/engine/service"
)

type createCaseRequest struct {
	Description string `json:"description"`
}

// addResultRequest reports one case outcome. Status and runtime are
// mandatory; reason and metadata are free-form.
type addResultRequest struct {
	Status   *string           `json:"status"`
	Runtime  *float64          `json:"runtime"`
	Reason   string            `json:"reason"`
	Metadata map[string]string `json:"metadata"`
}

func (r *Router) listCases(c *fiber.Ctx) error {
	w, verr := apiv1.ParseWindow(query(c))
	if verr != nil {
		return respond(c, 0, nil, verr)
	}
	obj, err := r.services.Case.ListForJob(c.Context(), c.Params("jobName"), w)
	return respond(c, fiber.StatusOK, obj, err)
}

func (r *Router) createCase(c *fiber.Ctx) error {
	var req createCaseRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return respond(c, 0, nil, apiv1.BadBody(err))
		}
	}
	obj, err := r.services.Case.AddToJob(c.Context(),
		c.Params("jobName"), c.Params("caseName"), req.Description)
	return respond(c, fiber.StatusCreated, obj, err)
}

func (r *Router) getCase(c *fiber.Ctx) error {
	obj, err := r.services.Case.GetFromJob(c.Context(),
		c.Params("jobName"), c.Params("caseName"))
	return respond(c, fiber.StatusOK, obj, err)
}

func (r *Router) caseStat(c *fiber.Ctx) error {
	w, verr := apiv1.ParseWindow(query(c))
	if verr != nil {
		return respond(c, 0, nil, verr)
	}
	f, verr := apiv1.ParseResultFilters(query(c))
	if verr != nil {
		return respond(c, 0, nil, verr)
	}
	obj, err := r.services.Case.CaseStat(c.Context(),
		c.Params("jobName"), c.Params("caseName"), f, w)
	return respond(c, fiber.StatusOK, obj, err)
}

func (r *Router) jobStat(c *fiber.Ctx) error {
	w, verr := apiv1.ParseWindow(query(c))
	if verr != nil {
		return respond(c, 0, nil, verr)
	}
	f, verr := apiv1.ParseResultFilters(query(c))
	if verr != nil {
		return respond(c, 0, nil, verr)
	}
	obj, err := r.services.Case.JobStat(c.Context(), c.Params("jobName"), f, w)
	return respond(c, fiber.StatusOK, obj, err)
}

func (r *Router) addResult(c *fiber.Ctx) error {
	var req addResultRequest
	if err := c.BodyParser(&req); err != nil {
		return respond(c, 0, nil, apiv1.BadBody(err))
	}
	if req.Status == nil || req.Runtime == nil {
		return respond(c, 0, nil, apiv1.MissingField("status, runtime"))
	}
	if !model.ValidCaseStatus(*req.Status) {
		verr := service.NewValidationError("%q is not in (%s)", *req.Status,
			strings.Join(model.CaseStatuses, ", "))
		return respond(c, 0, nil, verr)
	}
	in := service.ResultInput{
		Status:   *req.Status,
		Runtime:  *req.Runtime,
		Reason:   req.Reason,
		Metadata: req.Metadata,
	}
	obj, err := r.services.Case.AddResult(c.Context(),
		c.Params("jobName"), c.Params("buildName"), c.Params("caseName"),
		in, autoCreation(c))
	return respond(c, fiber.StatusCreated, obj, err)
}

func (r *Router) getResult(c *fiber.Ctx) error {
	obj, err := r.services.Case.GetResult(c.Context(),
		c.Params("jobName"), c.Params("buildName"), c.Params("caseName"))
	return respond(c, fiber.StatusOK, obj, err)
}
