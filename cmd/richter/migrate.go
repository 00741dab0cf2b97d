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

package main

import (
	"github.com/spf13/cobra"

	"github.com/richterhq/richter/internal/engine/config"
	"github.com/richterhq/richter/internal/engine/model"
	"github.com/richterhq/richter/pkg/database"
	"github.com/richterhq/richter/pkg/log"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		appConf := config.NewConf(configFile)
		if err := log.Init(&appConf.Log); err != nil {
			return err
		}

		manager, err := database.NewManager(appConf.Database)
		if err != nil {
			return err
		}
		defer func() {
			if err := manager.Close(); err != nil {
				log.Errorw("failed to close database", "error", err)
			}
		}()

		if err := model.AutoMigrate(manager.DB()); err != nil {
			return err
		}
		log.Info("database schema is up to date")
		return nil
	},
}
