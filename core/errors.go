// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package core

import "errors"

// Domain validation errors
var (
	// ErrInvalidSourceRow indicates a SourceRow failed validation.
	ErrInvalidSourceRow = errors.New("invalid source row")

	// ErrInvalidProjectRecord indicates a ProjectRecord failed validation.
	ErrInvalidProjectRecord = errors.New("invalid project record")

	// ErrInvalidIndexSpec indicates an IndexSpec failed validation.
	ErrInvalidIndexSpec = errors.New("invalid index spec")

	// ErrMissingField indicates a required field is absent or empty.
	ErrMissingField = errors.New("missing required field")

	// ErrEmptyProjectID indicates the project identifier is empty.
	ErrEmptyProjectID = errors.New("project id cannot be empty")

	// ErrEmptyContent indicates the record renders to an empty document.
	ErrEmptyContent = errors.New("content cannot be empty")

	// ErrInvalidMetric indicates an unknown similarity metric.
	ErrInvalidMetric = errors.New("invalid metric")

	// ErrInvalidDimension indicates a non-positive vector dimension.
	ErrInvalidDimension = errors.New("dimension must be positive")
)
