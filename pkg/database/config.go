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
)

const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

// MySQLConfig holds MySQL connection settings. Replicas, when present, are
// registered as read sources through dbresolver.
type MySQLConfig struct {
	Host     string   `mapstructure:"host"`
	Port     int      `mapstructure:"port"`
	User     string   `mapstructure:"user"`
	Password string   `mapstructure:"password"`
	DBName   string   `mapstructure:"dbName"`
	Replicas []string `mapstructure:"replicas"` // extra DSNs for read-only replicas
}

// SQLiteConfig holds SQLite settings, used for local single-node deployments.
type SQLiteConfig struct {
	Path string `mapstructure:"path"`
}

// Database is the storage configuration shared by all drivers.
type Database struct {
	Driver       string       `mapstructure:"driver"` // mysql or sqlite
	MySQL        MySQLConfig  `mapstructure:"mysql"`
	SQLite       SQLiteConfig `mapstructure:"sqlite"`
	MaxOpenConns int          `mapstructure:"maxOpenConns"`
	MaxIdleConns int          `mapstructure:"maxIdleConns"`
	MaxLifetime  int          `mapstructure:"maxLifetime"` // seconds
	MaxIdleTime  int          `mapstructure:"maxIdleTime"` // seconds
	LogQueries   bool         `mapstructure:"logQueries"`
}

// SetDefaults fills missing fields with sane defaults.
func (c *Database) SetDefaults() {
	if c.Driver == "" {
		c.Driver = DriverSQLite
	}
	if c.SQLite.Path == "" {
		c.SQLite.Path = "richter.db"
	}
	if c.MySQL.Host == "" {
		c.MySQL.Host = "127.0.0.1"
	}
	if c.MySQL.Port == 0 {
		c.MySQL.Port = 3306
	}
	if c.MaxOpenConns <= 0 {
		c.MaxOpenConns = 50
	}
	if c.MaxIdleConns <= 0 {
		c.MaxIdleConns = 10
	}
	if c.MaxLifetime <= 0 {
		c.MaxLifetime = 3600
	}
	if c.MaxIdleTime <= 0 {
		c.MaxIdleTime = 600
	}
}

func (c *Database) connMaxLifetime() time.Duration {
	return time.Duration(c.MaxLifetime) * time.Second
}

func (c *Database) connMaxIdleTime() time.Duration {
	return time.Duration(c.MaxIdleTime) * time.Second
}

func buildMySQLDSN(user, password, host string, port int, dbName string) string {
	return fmt.Sprintf(
		"%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		user, password, host, port, dbName,
	)
}
