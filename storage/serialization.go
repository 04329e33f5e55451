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

import (
	"fmt"

	"github.com/poiesic/projectinbox/core"
)

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, core.IDMUS.Size(id))
	core.IDMUS.Marshal(id, buf)
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	id, _, err := core.IDMUS.Unmarshal(data)
	return id, err
}

// MarshalProjectRecord serializes a ProjectRecord to bytes.
func MarshalProjectRecord(record *core.ProjectRecord) []byte {
	buf := make([]byte, core.ProjectRecordMUS.Size(*record))
	core.ProjectRecordMUS.Marshal(*record, buf)
	return buf
}

// UnmarshalProjectRecord deserializes a ProjectRecord from bytes.
func UnmarshalProjectRecord(data []byte) (*core.ProjectRecord, error) {
	record, _, err := core.ProjectRecordMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return &record, nil
}

// MarshalIndexSpec serializes an IndexSpec to bytes.
func MarshalIndexSpec(spec *core.IndexSpec) []byte {
	buf := make([]byte, core.IndexSpecMUS.Size(*spec))
	core.IndexSpecMUS.Marshal(*spec, buf)
	return buf
}

// UnmarshalIndexSpec deserializes an IndexSpec from bytes.
func UnmarshalIndexSpec(data []byte) (*core.IndexSpec, error) {
	spec, _, err := core.IndexSpecMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return &spec, nil
}
