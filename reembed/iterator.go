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


package reembed

import (
	"context"

	"github.com/poiesic/projectinbox/core"
	"github.com/poiesic/projectinbox/storage"
)

const (
	// DefaultBatchSize is the default number of records to fetch in each batch
	DefaultBatchSize = 100
)

// RecordIterator walks every project record of an index in batches.
type RecordIterator struct {
	index     storage.VectorIndex
	batchSize int
}

// NewRecordIterator creates a new record iterator.
// batchSize: number of records per batch, DefaultBatchSize if <= 0
func NewRecordIterator(index storage.VectorIndex, batchSize int) *RecordIterator {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	return &RecordIterator{
		index:     index,
		batchSize: batchSize,
	}
}

// ForEach calls fn with successive batches of records in project id order.
// Iteration stops on the first error from fn or on context cancellation.
func (it *RecordIterator) ForEach(ctx context.Context, fn func([]*core.ProjectRecord) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return it.index.Scan(ctx, it.batchSize, fn)
}
