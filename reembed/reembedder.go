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
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/poiesic/projectinbox/ai"
	"github.com/poiesic/projectinbox/core"
	"github.com/poiesic/projectinbox/storage"
)

// Config holds configuration for the reembedding operation.
type Config struct {
	// BatchSize is the number of records to process in each batch
	BatchSize int

	// ReportInterval is how often to report progress (number of records)
	ReportInterval int

	// MaxRetries is the maximum number of attempts for failed embedding calls
	MaxRetries int

	// RetryDelay is the base delay for exponential backoff
	RetryDelay time.Duration

	// Force re-embeds records whose vectors are already current
	Force bool
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BatchSize:      DefaultBatchSize,
		ReportInterval: 100,
		MaxRetries:     3,
		RetryDelay:     1 * time.Second,
	}
}

// Stats summarizes a reembedding run.
type Stats struct {
	Total      int
	Reembedded int
	Skipped    int
	Elapsed    time.Duration
}

// Reembedder recomputes the vectors of every record in a project index.
type Reembedder struct {
	index    storage.VectorIndex
	embedder ai.Embedder
	config   *Config
	progress io.Writer
	iterator *RecordIterator
	logger   *slog.Logger
}

// NewReembedder creates a new reembedder.
// progress: where to write progress output (typically os.Stderr)
func NewReembedder(index storage.VectorIndex, embedder ai.Embedder, config *Config, progress io.Writer) *Reembedder {
	if config == nil {
		config = DefaultConfig()
	}
	if progress == nil {
		progress = io.Discard
	}

	return &Reembedder{
		index:    index,
		embedder: embedder,
		config:   config,
		progress: progress,
		iterator: NewRecordIterator(index, config.BatchSize),
		logger:   slog.Default().With("component", "reembed", "index", index.Name()),
	}
}

// Run re-embeds every stale record of the index with the configured embedder.
// Progress is reported to the configured writer.
func (r *Reembedder) Run(ctx context.Context) (*Stats, error) {
	spec, err := r.index.DescribeIndex(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to describe index: %w", err)
	}

	total, err := r.index.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count records: %w", err)
	}

	stats := &Stats{Total: total}
	if total == 0 {
		fmt.Fprintf(r.progress, "No records found in index %s (0 records)\n", spec.Name)
		return stats, nil
	}

	fmt.Fprintf(r.progress, "Starting reembedding of %d records with %s (batch size: %d)\n",
		total, r.embedder.ModelName(), r.iterator.batchSize)

	processor := NewBatchProcessor(r.index, r.embedder, *spec, r.config.Force, r.config.MaxRetries, r.config.RetryDelay)
	tracker := NewProgressTracker(r.progress, total, r.config.ReportInterval)
	tracker.Start()

	err = r.iterator.ForEach(ctx, func(records []*core.ProjectRecord) error {
		result, err := processor.Process(ctx, records)
		if err != nil {
			return fmt.Errorf("failed to process batch: %w", err)
		}

		stats.Reembedded += result.Reembedded
		stats.Skipped += result.Skipped
		tracker.Add(len(records), result.Skipped)
		return nil
	})
	if err != nil {
		r.logger.Error("reembedding stopped", "reembedded", stats.Reembedded, "err", err)
		return stats, err
	}

	tracker.Finish()

	stats.Elapsed = tracker.Elapsed()
	fmt.Fprintf(r.progress, "Reembedding complete. Re-embedded %d of %d records (%d already current) in %v\n",
		stats.Reembedded, stats.Total, stats.Skipped, stats.Elapsed.Round(time.Millisecond))
	r.logger.Info("reembedding complete", "total", stats.Total, "reembedded", stats.Reembedded, "skipped", stats.Skipped)

	return stats, nil
}
