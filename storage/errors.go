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


package storage

import "errors"

var (
	// ErrNotFound is returned by Fetch for an unknown project id.
	ErrNotFound = errors.New("record not found")

	// ErrIndexNotFound is returned when the index has not been created.
	ErrIndexNotFound = errors.New("index not found")

	// ErrIndexMismatch is returned by EnsureIndex when the index exists
	// with another dimension or metric.
	ErrIndexMismatch = errors.New("index exists with different configuration")

	// ErrDimensionMismatch is returned for vectors whose length differs
	// from the index dimension.
	ErrDimensionMismatch = errors.New("vector dimension mismatch")

	ErrStorageClosed = errors.New("storage is closed")

	// ErrInvalidQuery covers non-positive k and batch sizes.
	ErrInvalidQuery = errors.New("invalid query parameters")

	// ErrSerializationFailed wraps mus decoding failures.
	ErrSerializationFailed = errors.New("serialization failed")
)
