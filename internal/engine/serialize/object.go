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

// Package serialize renders entities into the canonical response envelope.
// Projections are explicit ordered field lists, and Object keeps key order
// insertion-stable so rendered payloads compare byte-for-byte.
package serialize

import (
	"bytes"

	"github.com/bytedance/sonic"
)

// Object is a JSON object with insertion-ordered keys.
type Object struct {
	keys   []string
	values map[string]any
}

// NewObject creates an empty ordered object.
func NewObject() *Object {
	return &Object{values: make(map[string]any)}
}

// Set adds or replaces a key. A replaced key keeps its original position.
func (o *Object) Set(key string, value any) *Object {
	if _, exists := o.values[key]; !exists {
		o.keys = append(o.keys, key)
	}
	o.values[key] = value
	return o
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (any, bool) {
	v, ok := o.values[key]
	return v, ok
}

// Keys returns the keys in insertion order.
func (o *Object) Keys() []string {
	return o.keys
}

// MarshalJSON renders the object with keys in insertion order.
func (o *Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		rawKey, err := sonic.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(rawKey)
		buf.WriteByte(':')
		rawValue, err := sonic.Marshal(o.values[key])
		if err != nil {
			return nil, err
		}
		buf.Write(rawValue)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// NewEnvelope wraps a projected entity or collection as the response body.
// Extras (total_count, job, location, ...) are appended with further Set
// calls and come out as sibling top-level keys.
func NewEnvelope(result any) *Object {
	return NewObject().Set("result", result)
}
