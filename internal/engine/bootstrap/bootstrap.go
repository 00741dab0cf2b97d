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

package bootstrap

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/richterhq/richter/internal/engine/config"
	"github.com/richterhq/richter/internal/engine/repo"
	"github.com/richterhq/richter/internal/engine/router"
	"github.com/richterhq/richter/internal/engine/service"
	"github.com/richterhq/richter/pkg/database"
	"github.com/richterhq/richter/pkg/http"
	"github.com/richterhq/richter/pkg/http/middleware"
	"github.com/richterhq/richter/pkg/log"
	"github.com/richterhq/richter/pkg/metrics"
	"github.com/richterhq/richter/pkg/safe"
)

// App holds the wired components of a running server.
type App struct {
	HttpApp       *fiber.App
	MetricsServer *metrics.Server
	DbManager     database.Manager
	AppConf       *config.AppConfig
	Repos         *repo.Repositories
	Services      *service.Services
}

// NewApp wires everything from the configuration file up to a ready
// fiber application. The returned cleanup closes the database and the
// metrics server.
func NewApp(configFile string) (*App, func(), error) {
	appConf := config.NewConf(configFile)
	if err := log.Init(&appConf.Log); err != nil {
		return nil, nil, err
	}

	manager, err := database.NewManager(appConf.Database)
	if err != nil {
		return nil, nil, err
	}

	repos := repo.NewRepositories(database.NewDatabaseAdapter(manager))
	services := service.NewServices(repos)

	httpApp := http.NewApp(appConf.Http)
	router.NewRouter(services).Register(httpApp)

	var metricsServer *metrics.Server
	if appConf.Metrics.Enabled {
		metricsServer = metrics.NewServer(appConf.Metrics)
		if err := middleware.RegisterHttpMetrics(metricsServer.GetRegistry()); err != nil {
			return nil, nil, err
		}
	}

	app := &App{
		HttpApp:       httpApp,
		MetricsServer: metricsServer,
		DbManager:     manager,
		AppConf:       appConf,
		Repos:         repos,
		Services:      services,
	}

	cleanup := func() {
		if metricsServer != nil {
			log.Info("shutting down metrics server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := metricsServer.Stop(shutdownCtx); err != nil {
				log.Errorw("failed to stop metrics server", "error", err)
			}
		}
		if err := manager.Close(); err != nil {
			log.Errorw("failed to close database", "error", err)
		}
		_ = log.Sync()
	}

	return app, cleanup, nil
}

// Run starts the servers and blocks until a termination signal, then
// shuts down gracefully.
func Run(app *App, cleanup func()) {
	appConf := app.AppConf

	if app.MetricsServer != nil {
		if err := app.MetricsServer.Start(); err != nil {
			log.Errorw("metrics server failed", "error", err)
		}
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	safe.Go(func() {
		addr := appConf.Http.Addr()
		log.Infow("HTTP listener started", "address", addr)
		if err := app.HttpApp.Listen(addr); err != nil {
			log.Errorw("HTTP listener failed", "address", addr, "error", err)
		}
	})

	sig := <-quit
	log.Infow("received signal, shutting down", "signal", sig)

	if err := app.HttpApp.ShutdownWithTimeout(30 * time.Second); err != nil {
		log.Errorw("HTTP server shutdown error", "error", err)
	} else {
		log.Info("HTTP server shut down gracefully")
	}

	cleanup()
	log.Info("server shutdown complete")
}
