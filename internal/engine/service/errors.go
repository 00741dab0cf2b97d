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

package service

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrNotFound signals that an entity in a name-resolution chain is absent.
// The HTTP boundary maps it to 404 with no body; it carries no detail on
// purpose, since absence anywhere means absence overall.
var ErrNotFound = errors.New("not found")

// ValidationError reports a malformed filter or request value. It aborts
// the whole request and surfaces as a 400 with the message.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}

// NewValidationError builds a ValidationError with a formatted message.
func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// ConflictError reports a uniqueness violation on create; surfaces as 409.
type ConflictError struct {
	msg string
}

func (e *ConflictError) Error() string {
	return e.msg
}

// NewConflictError builds a ConflictError with a formatted message.
func NewConflictError(format string, args ...any) *ConflictError {
	return &ConflictError{msg: fmt.Sprintf(format, args...)}
}

// IsConflict reports whether err is a ConflictError.
func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}

// IsNotFound reports whether err is the absence sentinel.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
