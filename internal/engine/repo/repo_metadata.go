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

package repo

import (
	"context"
	"sort"

	"github.com/richterhq/richter/internal/engine/model"
	"github.com/richterhq/richter/pkg/database"
	"gorm.io/gorm"
)

// IMetadataRepository is the generic key/value side table over one owner
// type. Replace swaps the full mapping atomically; Load tolerates duplicate
// keys by letting the highest row id win.
type IMetadataRepository interface {
	Replace(ctx context.Context, ownerId uint, data map[string]string) error
	Load(ctx context.Context, ownerId uint) (map[string]string, error)
}

// metadataRepo is one shared implementation parameterized by the row type.
// The side table knows nothing about its owner beyond the foreign key column.
type metadataRepo[T any] struct {
	database.IDatabase
	fkColumn string
	newRow   func(ownerId uint, key, value string) T
	rowKV    func(row T) (key, value string)
}

// Replace deletes the owner's rows and inserts the new mapping in a single
// transaction, so no reader observes a half-written metadata set.
func (r *metadataRepo[T]) Replace(ctx context.Context, ownerId uint, data map[string]string) error {
	return r.Database().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var zero T
		if err := tx.Where(r.fkColumn+" = ?", ownerId).Delete(&zero).Error; err != nil {
			return err
		}
		if len(data) == 0 {
			return nil
		}

		keys := make([]string, 0, len(data))
		for k := range data {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		rows := make([]T, 0, len(keys))
		for _, k := range keys {
			rows = append(rows, r.newRow(ownerId, k, data[k]))
		}
		return tx.Create(&rows).Error
	})
}

// Load reads the owner's rows into a mapping, ascending by row id so the
// last-inserted value wins on duplicate keys.
func (r *metadataRepo[T]) Load(ctx context.Context, ownerId uint) (map[string]string, error) {
	var rows []T
	err := r.Database().WithContext(ctx).
		Where(r.fkColumn+" = ?", ownerId).
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make(map[string]string, len(rows))
	for _, row := range rows {
		k, v := r.rowKV(row)
		out[k] = v
	}
	return out, nil
}

// NewBuildMetadataRepo creates the metadata store for builds.
func NewBuildMetadataRepo(db database.IDatabase) IMetadataRepository {
	return &metadataRepo[model.BuildMetadata]{
		IDatabase: db,
		fkColumn:  "build_id",
		newRow: func(ownerId uint, key, value string) model.BuildMetadata {
			return model.BuildMetadata{BuildId: ownerId, Key: key, Value: value}
		},
		rowKV: func(row model.BuildMetadata) (string, string) {
			return row.Key, row.Value
		},
	}
}

// NewCaseResultMetadataRepo creates the metadata store for case results.
func NewCaseResultMetadataRepo(db database.IDatabase) IMetadataRepository {
	return &metadataRepo[model.CaseResultMetadata]{
		IDatabase: db,
		fkColumn:  "case_result_id",
		newRow: func(ownerId uint, key, value string) model.CaseResultMetadata {
			return model.CaseResultMetadata{CaseResultId: ownerId, Key: key, Value: value}
		},
		rowKV: func(row model.CaseResultMetadata) (string, string) {
			return row.Key, row.Value
		},
	}
}
