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

package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/richterhq/richter/pkg/env"
)

// CorsMiddleware allows dashboards to read the result API cross-origin.
// Origins come from RICHTER_CORS_ALLOW_ORIGINS; the API carries no
// credentials, so the permissive default is acceptable.
func CorsMiddleware() fiber.Handler {
	allowed := env.GetEnvString("RICHTER_CORS_ALLOW_ORIGINS", "*")
	return cors.New(cors.Config{
		AllowOrigins: allowed,
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
		AllowHeaders: "Origin, X-Requested-With, Content-Type, Accept, X-Request-Id",
	})
}
