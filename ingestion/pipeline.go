package ingestion

import (
	"context"
	"log/slog"
	"runtime"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/projectinbox/ai"
	"github.com/poiesic/projectinbox/core"
	"github.com/poiesic/projectinbox/storage"
)

const (
	// DefaultDimension matches text-embedding-3-small.
	DefaultDimension = 1536

	// DefaultBatchSize is the number of documents per embedding request.
	DefaultBatchSize = 32
)

// Pipeline turns source rows into embedded project records and writes them
// to a vector index.
type Pipeline struct {
	index         storage.VectorIndex
	embeddingPool *ants.Pool
	embeddingProc processor
	spec          core.IndexSpec
	batchSize     int
	logger        *slog.Logger
}

// Report summarizes one Ingest call.
type Report struct {
	Index        string
	Rows         int  // Rows received
	Upserted     int  // Distinct records written
	Duplicates   int  // Rows superseded by a later row with the same project id
	IndexCreated bool // The index did not exist before this call
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent embedding.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		// Release old pool
		if p.embeddingPool != nil {
			p.embeddingPool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.embeddingPool = pool
		return nil
	}
}

// WithBatchSize sets the number of documents per embedding request.
// Default is DefaultBatchSize.
func WithBatchSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}
		p.batchSize = size
		return nil
	}
}

// WithIndexSpec sets the dimension and metric used when the index is created.
// Default is DefaultDimension with cosine similarity.
func WithIndexSpec(dimension int, metric core.Metric) Option {
	return func(p *Pipeline) error {
		p.spec.Dimension = dimension
		p.spec.Metric = metric
		return core.ValidateIndexSpec(&p.spec)
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a new ingestion pipeline.
func NewPipeline(index storage.VectorIndex, embedder ai.Embedder, opts ...Option) (*Pipeline, error) {
	if index == nil {
		return nil, ErrIndexRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	// Default pool size
	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	embeddingPool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		index:         index,
		embeddingPool: embeddingPool,
		spec: core.IndexSpec{
			Name:      index.Name(),
			Dimension: DefaultDimension,
			Metric:    core.MetricCosine,
		},
		batchSize: DefaultBatchSize,
		logger:    slog.Default(),
	}

	// Apply options (may override defaults)
	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	// Create processor after options are applied (so it gets final config)
	embeddingProc, err := newEmbeddingProcessor(embedder, p.embeddingPool, p.batchSize, p.logger)
	if err != nil {
		p.Release()
		return nil, err
	}
	p.embeddingProc = embeddingProc

	return p, nil
}

// Ingest formats every row into a project record, embeds it and upserts the
// whole batch into the index, creating the index first if needed.
//
// Any validation, embedding or index failure aborts the batch; nothing is
// written and nothing is retried.
func (p *Pipeline) Ingest(ctx context.Context, rows []core.SourceRow) (*Report, error) {
	for i := range rows {
		if err := core.ValidateSourceRow(&rows[i]); err != nil {
			return nil, err
		}
	}

	created, err := p.index.EnsureIndex(ctx, p.spec)
	if err != nil {
		return nil, err
	}

	records, duplicates := p.buildRecords(rows)
	report := &Report{
		Index:        p.index.Name(),
		Rows:         len(rows),
		Duplicates:   duplicates,
		IndexCreated: created,
	}
	if len(records) == 0 {
		return report, nil
	}

	if err := p.embeddingProc.process(ctx, records...); err != nil {
		return nil, err
	}

	if err := p.index.Upsert(ctx, records...); err != nil {
		p.logger.Error("error upserting project records", "records", len(records), "err", err)
		return nil, err
	}

	report.Upserted = len(records)
	p.logger.Info("ingested project records",
		"index", report.Index,
		"rows", report.Rows,
		"upserted", report.Upserted,
		"duplicates", report.Duplicates)
	return report, nil
}

// buildRecords creates one record per distinct project id. A later row
// replaces an earlier one with the same id in place.
func (p *Pipeline) buildRecords(rows []core.SourceRow) ([]*core.ProjectRecord, int) {
	records := make([]*core.ProjectRecord, 0, len(rows))
	position := make(map[string]int, len(rows))
	duplicates := 0

	for _, row := range rows {
		record := core.NewRecordFromRow(row)
		if i, ok := position[row.ProjectID]; ok {
			p.logger.Warn("duplicate project id in batch, later row wins", "project_id", row.ProjectID)
			records[i] = record
			duplicates++
			continue
		}
		position[row.ProjectID] = len(records)
		records = append(records, record)
	}
	return records, duplicates
}

// Release releases resources including worker pools.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.embeddingPool != nil {
		p.embeddingPool.Release()
	}
}
