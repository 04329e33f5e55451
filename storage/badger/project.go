package badger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/projectinbox/core"
	"github.com/poiesic/projectinbox/storage"
)

// ProjectIndex implements storage.VectorIndex for BadgerDB.
type ProjectIndex struct {
	backend *Backend
	name    string
	prefix  []byte
	logger  *slog.Logger
}

var _ storage.VectorIndex = (*ProjectIndex)(nil)

// newProjectIndex is an internal constructor that returns the concrete type.
func newProjectIndex(backend *Backend, name string) (*ProjectIndex, error) {
	if name == "" || strings.Contains(name, ":") {
		return nil, fmt.Errorf("%w: bad index name %q", core.ErrInvalidIndexSpec, name)
	}
	return &ProjectIndex{
		backend: backend,
		name:    name,
		prefix:  makeProjectRecordPrefix(name),
		logger:  slog.Default().With("component", "badger-index", "index", name),
	}, nil
}

// NewProjectIndex binds the named index on a backend.
// The index itself is created by EnsureIndex.
//
// Returns storage.VectorIndex interface to enforce abstraction.
func NewProjectIndex(backend *Backend, name string) (storage.VectorIndex, error) {
	return newProjectIndex(backend, name)
}

// Name returns the index name.
func (x *ProjectIndex) Name() string {
	return x.name
}

// Close is a no-op; the backend is owned by the caller.
func (x *ProjectIndex) Close() error {
	return nil
}

// EnsureIndex creates the index if it does not exist.
func (x *ProjectIndex) EnsureIndex(ctx context.Context, spec core.IndexSpec) (bool, error) {
	if spec.Name == "" {
		spec.Name = x.name
	}
	if spec.Name != x.name {
		return false, fmt.Errorf("%w: spec names %q, index is %q", core.ErrInvalidIndexSpec, spec.Name, x.name)
	}
	if err := core.ValidateIndexSpec(&spec); err != nil {
		return false, err
	}

	created := false
	err := x.backend.WithTx(func(tx *badger.Txn) error {
		existing, err := x.readSpec(tx)
		if err != nil && !errors.Is(err, storage.ErrIndexNotFound) {
			return err
		}
		if existing != nil {
			if existing.Dimension != spec.Dimension || existing.Metric != spec.Metric {
				return fmt.Errorf("%w: have dimension=%d metric=%s, want dimension=%d metric=%s",
					storage.ErrIndexMismatch, existing.Dimension, existing.Metric, spec.Dimension, spec.Metric)
			}
			return nil
		}

		spec.CreatedAt = time.Now().UTC()
		if err := tx.Set(makeIndexSpecKey(x.name), storage.MarshalIndexSpec(&spec)); err != nil {
			return err
		}
		created = true
		return tx.Commit()
	}, true)
	if err != nil {
		return false, err
	}

	if created {
		x.logger.Info("created index", "dimension", spec.Dimension, "metric", spec.Metric.String())
	}
	return created, nil
}

// DescribeIndex returns the stored index spec.
func (x *ProjectIndex) DescribeIndex(ctx context.Context) (*core.IndexSpec, error) {
	var spec *core.IndexSpec
	err := x.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		spec, err = x.readSpec(tx)
		return err
	}, false)
	return spec, err
}

// Upsert writes records in a single transaction, replacing prior values.
func (x *ProjectIndex) Upsert(ctx context.Context, records ...*core.ProjectRecord) error {
	if len(records) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	return x.backend.WithTx(func(tx *badger.Txn) error {
		spec, err := x.readSpec(tx)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		for _, record := range records {
			if err := core.ValidateProjectRecord(record); err != nil {
				return err
			}
			if len(record.Vector) != spec.Dimension {
				return fmt.Errorf("%w: project %s has %d, index %s expects %d",
					storage.ErrDimensionMismatch, record.ProjectID, len(record.Vector), x.name, spec.Dimension)
			}

			if record.InsertedAt.IsZero() {
				record.InsertedAt = now
			}
			if record.UpdatedAt.IsZero() {
				record.UpdatedAt = now
			}

			key := makeProjectRecordKey(x.name, record.ProjectID)
			if err := tx.Set(key, storage.MarshalProjectRecord(record)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// Fetch retrieves a single record by project id.
func (x *ProjectIndex) Fetch(ctx context.Context, projectID string) (*core.ProjectRecord, error) {
	var result *core.ProjectRecord
	err := x.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = readProjectRecord(tx, makeProjectRecordKey(x.name, projectID))
		if err != nil {
			return err
		}
		if result == nil {
			return fmt.Errorf("%w: %s", storage.ErrNotFound, projectID)
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Query scores every stored vector against the query vector with the
// index metric and returns the best k at or above minScore.
func (x *ProjectIndex) Query(ctx context.Context, vector []float32, k int, minScore float32) ([]*core.SearchResult, error) {
	if k <= 0 {
		return nil, fmt.Errorf("%w: k must be positive, got %d", storage.ErrInvalidQuery, k)
	}

	var results []*core.SearchResult
	err := x.backend.WithTx(func(tx *badger.Txn) error {
		spec, err := x.readSpec(tx)
		if err != nil {
			return err
		}
		if len(vector) != spec.Dimension {
			return fmt.Errorf("%w: query has %d, index %s expects %d",
				storage.ErrDimensionMismatch, len(vector), x.name, spec.Dimension)
		}
		score := scorer(spec.Metric)
		unbounded := math.IsInf(float64(minScore), -1)

		opts := badger.DefaultIteratorOptions
		opts.Prefix = x.prefix
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}

			record, err := readItem(iter.Item())
			if err != nil {
				return err
			}

			// Skip records without embeddings
			if len(record.Vector) == 0 {
				continue
			}

			similarity := score(vector, record.Vector)
			if !unbounded && similarity < minScore {
				continue
			}
			results = append(results, &core.SearchResult{
				Record: record,
				Score:  similarity,
			})
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	// Sort by similarity descending, ties by project id for stable output
	slices.SortFunc(results, func(a, b *core.SearchResult) int {
		if a.Score > b.Score {
			return -1
		}
		if a.Score < b.Score {
			return 1
		}
		return strings.Compare(a.Record.ProjectID, b.Record.ProjectID)
	})

	if len(results) > k {
		results = results[:k]
	}

	x.logger.Debug("query complete", "k", k, "hits", len(results))
	return results, nil
}

// Scan calls fn with successive batches of records in key order.
func (x *ProjectIndex) Scan(ctx context.Context, batchSize int, fn func(records []*core.ProjectRecord) error) error {
	if batchSize <= 0 {
		return fmt.Errorf("%w: batch size must be positive, got %d", storage.ErrInvalidQuery, batchSize)
	}

	return x.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = x.prefix
		iter := tx.NewIterator(opts)
		defer iter.Close()

		batch := make([]*core.ProjectRecord, 0, batchSize)
		for iter.Rewind(); iter.Valid(); iter.Next() {
			record, err := readItem(iter.Item())
			if err != nil {
				return err
			}
			batch = append(batch, record)

			if len(batch) == batchSize {
				if err := ctx.Err(); err != nil {
					return err
				}
				if err := fn(batch); err != nil {
					return err
				}
				batch = make([]*core.ProjectRecord, 0, batchSize)
			}
		}

		if len(batch) > 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
			return fn(batch)
		}
		return nil
	}, false)
}

// Count returns the number of stored records.
func (x *ProjectIndex) Count(ctx context.Context) (int, error) {
	count := 0
	err := x.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = x.prefix
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	}, false)
	return count, err
}

// readSpec reads the index spec within a transaction.
func (x *ProjectIndex) readSpec(tx *badger.Txn) (*core.IndexSpec, error) {
	item, err := tx.Get(makeIndexSpecKey(x.name))
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, fmt.Errorf("%w: %s", storage.ErrIndexNotFound, x.name)
		}
		return nil, err
	}

	var spec *core.IndexSpec
	err = item.Value(func(val []byte) error {
		var err error
		spec, err = storage.UnmarshalIndexSpec(val)
		return err
	})
	return spec, err
}

// readProjectRecord reads a record within a transaction.
// Returns nil, nil if the record doesn't exist.
func readProjectRecord(tx *badger.Txn, key []byte) (*core.ProjectRecord, error) {
	item, err := tx.Get(key)
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return readItem(item)
}

func readItem(item *badger.Item) (*core.ProjectRecord, error) {
	var record *core.ProjectRecord
	err := item.Value(func(val []byte) error {
		var err error
		record, err = storage.UnmarshalProjectRecord(val)
		return err
	})
	return record, err
}

// scorer returns the similarity function for a metric. Higher is more similar.
func scorer(metric core.Metric) func(a, b []float32) float32 {
	switch metric {
	case core.MetricDotProduct:
		return dotProduct
	case core.MetricEuclidean:
		return func(a, b []float32) float32 {
			return -euclideanDistance(a, b)
		}
	default:
		return cosineSimilarity
	}
}

// dotProduct calculates the dot product of two vectors.
func dotProduct(a, b []float32) float32 {
	var sum float32
	minLen := min(len(a), len(b))
	for i := 0; i < minLen; i++ {
		sum += a[i] * b[i]
	}
	return sum
}

// cosineSimilarity returns 0 when either vector has zero magnitude.
func cosineSimilarity(a, b []float32) float32 {
	var dot, na, nb float64
	minLen := min(len(a), len(b))
	for i := 0; i < minLen; i++ {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(na) * math.Sqrt(nb)))
}

func euclideanDistance(a, b []float32) float32 {
	var sum float64
	minLen := min(len(a), len(b))
	for i := 0; i < minLen; i++ {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return float32(math.Sqrt(sum))
}
