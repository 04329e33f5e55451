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


// Package storage provides the vector index abstraction for projectinbox.
//
// The VectorIndex interface mirrors the contract of a hosted vector database:
// a named index with a fixed dimension and similarity metric, created if
// absent, holding one value per id. Writes are whole-value upserts; there is
// no partial merge, so callers that mutate a record must read it in full
// first.
//
// # Constructor Return Type Pattern
//
// Public constructors return the interface:
//
//	idx, err := badger.NewProjectIndex(backend, "workelate-index")  // returns storage.VectorIndex
//
// Internal package constructors (newProjectIndex, etc.) may return concrete
// types since they're only used within the implementation package.
//
// # Usage
//
//	backend, err := badger.OpenBackend("/path/to/db", false)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer backend.Close()
//
//	idx, err := badger.NewProjectIndex(backend, "workelate-index")
//
// Use in tests with in-memory storage:
//
//	idx, backend, err := badger.NewMemoryIndex("test-index")
//
// # Thread Safety
//
// All index implementations must be thread-safe and support
// concurrent access from multiple goroutines.
package storage
