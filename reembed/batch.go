package reembed

import (
	"context"
	"fmt"
	"time"

	"github.com/poiesic/projectinbox/ai"
	"github.com/poiesic/projectinbox/core"
	"github.com/poiesic/projectinbox/storage"
)

// BatchResult counts what one batch did.
type BatchResult struct {
	Reembedded int
	Skipped    int
}

// BatchProcessor re-embeds stale records of a batch and writes them back.
type BatchProcessor struct {
	index          storage.VectorIndex
	embedder       ai.Embedder
	spec           core.IndexSpec
	force          bool
	maxRetries     int
	retryBaseDelay time.Duration
}

// NewBatchProcessor creates a new batch processor for an index described by spec.
// maxRetries: maximum number of attempts for embedding calls
// retryBaseDelay: base delay for exponential backoff
func NewBatchProcessor(index storage.VectorIndex, embedder ai.Embedder, spec core.IndexSpec, force bool, maxRetries int, retryBaseDelay time.Duration) *BatchProcessor {
	return &BatchProcessor{
		index:          index,
		embedder:       embedder,
		spec:           spec,
		force:          force,
		maxRetries:     maxRetries,
		retryBaseDelay: retryBaseDelay,
	}
}

// Process re-embeds the stale records of a batch and upserts them in one write.
// Vectors are normalized for cosine indexes.
func (bp *BatchProcessor) Process(ctx context.Context, records []*core.ProjectRecord) (BatchResult, error) {
	model := bp.embedder.ModelName()

	stale := make([]*core.ProjectRecord, 0, len(records))
	for _, record := range records {
		if bp.force || IsStale(record, model, bp.spec.Dimension) {
			stale = append(stale, record)
		}
	}

	result := BatchResult{Skipped: len(records) - len(stale)}
	if len(stale) == 0 {
		return result, nil
	}

	texts := make([]string, len(stale))
	for i, record := range stale {
		texts[i] = record.Text()
	}

	var embeddings [][]float32
	err := RetryWithBackoff(ctx, func(ctx context.Context) error {
		var err error
		embeddings, err = bp.embedder.EmbedTexts(ctx, texts)
		return err
	}, bp.maxRetries, bp.retryBaseDelay)
	if err != nil {
		return result, fmt.Errorf("failed to generate embeddings after %d attempts: %w", bp.maxRetries, err)
	}

	if len(embeddings) != len(stale) {
		return result, fmt.Errorf("%w: expected %d, got %d", ErrEmbeddingMismatch, len(stale), len(embeddings))
	}

	for i, record := range stale {
		vector := embeddings[i]
		if bp.spec.Metric == core.MetricCosine {
			vector = NormalizeVector(vector)
		}
		record.Vector = vector
		record.EmbeddingKey = core.EmbeddingKeyFor(model, texts[i])
	}

	if err := bp.index.Upsert(ctx, stale...); err != nil {
		return result, fmt.Errorf("failed to update records: %w", err)
	}

	result.Reembedded = len(stale)
	return result, nil
}
