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

import "gorm.io/gorm"

// IDatabase is the narrow handle repositories depend on.
type IDatabase interface {
	Database() *gorm.DB
}

type adapter struct {
	db *gorm.DB
}

func (a *adapter) Database() *gorm.DB {
	return a.db
}

// NewDatabaseAdapter exposes a Manager as IDatabase.
func NewDatabaseAdapter(m Manager) IDatabase {
	return &adapter{db: m.DB()}
}

// NewFromDB wraps a raw gorm handle, mainly for tests.
func NewFromDB(db *gorm.DB) IDatabase {
	return &adapter{db: db}
}
