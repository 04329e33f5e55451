package storage

import (
	"context"
	"math"

	"github.com/poiesic/projectinbox/core"
)

// NoMinScore passed to Query disables the score threshold for every
// metric. Euclidean scores are negated distances and dot products are
// unbounded, so no finite value works.
var NoMinScore = float32(math.Inf(-1))

// VectorIndex is a named collection of project records keyed by project id,
// each stored with its embedding vector.
// Implementations must be thread-safe and support concurrent access.
type VectorIndex interface {
	// Name returns the index name.
	Name() string

	// EnsureIndex creates the index if it does not exist.
	// Returns true if the index was created by this call.
	// Returns ErrIndexMismatch if the index exists with a different
	// dimension or metric.
	EnsureIndex(ctx context.Context, spec core.IndexSpec) (bool, error)

	// DescribeIndex returns the stored index spec.
	// Returns ErrIndexNotFound if the index has not been created.
	DescribeIndex(ctx context.Context) (*core.IndexSpec, error)

	// Upsert writes records, replacing any prior value under the same id.
	// All records are written in one transaction.
	// Returns ErrDimensionMismatch if a vector does not match the index.
	Upsert(ctx context.Context, records ...*core.ProjectRecord) error

	// Fetch retrieves a single record by project id.
	// Returns ErrNotFound if the record doesn't exist.
	Fetch(ctx context.Context, projectID string) (*core.ProjectRecord, error)

	// Query returns up to k records most similar to vector with a score
	// of at least minScore, ordered by score (highest first).
	// Use NoMinScore to return the top k unconditionally.
	Query(ctx context.Context, vector []float32, k int, minScore float32) ([]*core.SearchResult, error)

	// Scan calls fn with successive batches of records in key order.
	// Iteration stops at the first error returned by fn.
	Scan(ctx context.Context, batchSize int, fn func(records []*core.ProjectRecord) error) error

	// Count returns the number of stored records.
	Count(ctx context.Context) (int, error)

	// Close releases index resources. It does not close a shared backend.
	Close() error
}
