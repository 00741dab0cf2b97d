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

package database

import (
	"fmt"
	"time"

	"github.com/richterhq/richter/pkg/log"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"gorm.io/plugin/dbresolver"
)

// Manager defines the unified database interface for managing connections.
type Manager interface {
	// DB returns the primary database connection
	DB() *gorm.DB

	// Close closes all database connections
	Close() error
}

type managerImpl struct {
	db *gorm.DB
}

func (m *managerImpl) DB() *gorm.DB {
	return m.db
}

func (m *managerImpl) Close() error {
	if m.db == nil {
		return nil
	}
	sqlDB, err := m.db.DB()
	if err != nil {
		return err
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}

// NewManager creates a database manager for the configured driver.
func NewManager(cfg Database) (Manager, error) {
	cfg.SetDefaults()

	var (
		db  *gorm.DB
		err error
	)
	switch cfg.Driver {
	case DriverMySQL:
		db, err = newMySQLConnection(cfg)
	case DriverSQLite:
		db, err = newSQLiteConnection(cfg)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect %s: %w", cfg.Driver, err)
	}

	log.Infow("database connected", "driver", cfg.Driver)
	return &managerImpl{db: db}, nil
}

func gormConfig(cfg Database) *gorm.Config {
	logLevel := gormlogger.Silent
	if cfg.LogQueries {
		logLevel = gormlogger.Info
	}
	return &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
	}
}

func newMySQLConnection(cfg Database) (*gorm.DB, error) {
	dsn := buildMySQLDSN(cfg.MySQL.User, cfg.MySQL.Password, cfg.MySQL.Host, cfg.MySQL.Port, cfg.MySQL.DBName)

	db, err := gorm.Open(mysql.Open(dsn), gormConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to open MySQL connection: %w", err)
	}

	// The query surface is read-heavy: list/stat endpoints dominate writes.
	// Replicas, when configured, take the read load through dbresolver.
	if len(cfg.MySQL.Replicas) > 0 {
		replicas := make([]gorm.Dialector, 0, len(cfg.MySQL.Replicas))
		for _, replicaDSN := range cfg.MySQL.Replicas {
			replicas = append(replicas, mysql.Open(replicaDSN))
		}
		err = db.Use(dbresolver.Register(dbresolver.Config{Replicas: replicas}).
			SetConnMaxIdleTime(cfg.connMaxIdleTime()).
			SetConnMaxLifetime(cfg.connMaxLifetime()).
			SetMaxIdleConns(cfg.MaxIdleConns).
			SetMaxOpenConns(cfg.MaxOpenConns))
		if err != nil {
			return nil, fmt.Errorf("failed to register dbresolver plugin: %w", err)
		}
		log.Infow("read replicas registered", "count", len(cfg.MySQL.Replicas))
	}

	if err := tunePool(db, cfg); err != nil {
		return nil, err
	}
	return db, nil
}

func newSQLiteConnection(cfg Database) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(cfg.SQLite.Path), gormConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite connection: %w", err)
	}
	// SQLite allows a single writer; keeping one connection avoids
	// SQLITE_BUSY under concurrent requests.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)
	return db, nil
}

func tunePool(db *gorm.DB, cfg Database) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB handle: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.connMaxLifetime())
	sqlDB.SetConnMaxIdleTime(time.Duration(cfg.MaxIdleTime) * time.Second)

	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	return nil
}
