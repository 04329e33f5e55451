package ingestion

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/projectinbox/ai"
	"github.com/poiesic/projectinbox/core"
)

// embeddingProcessor embeds record texts in batches on a worker pool.
type embeddingProcessor struct {
	embedder  ai.Embedder
	pool      *ants.Pool
	batchSize int
	logger    *slog.Logger
}

var _ processor = (*embeddingProcessor)(nil)

// newEmbeddingProcessor creates a new embedding processor.
func newEmbeddingProcessor(embedder ai.Embedder, pool *ants.Pool, batchSize int, logger *slog.Logger) (*embeddingProcessor, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if pool == nil {
		return nil, fmt.Errorf("worker pool required")
	}
	if batchSize < 1 {
		batchSize = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &embeddingProcessor{
		embedder:  embedder,
		pool:      pool,
		batchSize: batchSize,
		logger:    logger.With("processor", "embeddings"),
	}, nil
}

// process sets Vector and EmbeddingKey on every record.
// The first failing batch cancels the rest and its error is returned.
func (ep *embeddingProcessor) process(ctx context.Context, records ...*core.ProjectRecord) error {
	if len(records) == 0 {
		return nil
	}
	ep.logger.Info("processing records for embeddings", "records", len(records))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	fail := func(err error) {
		mu.Lock()
		defer mu.Unlock()
		if firstErr == nil {
			firstErr = err
			cancel()
		}
	}

	model := ep.embedder.ModelName()
	for start := 0; start < len(records); start += ep.batchSize {
		batch := records[start:min(start+ep.batchSize, len(records))]

		wg.Add(1)
		err := ep.pool.Submit(func() {
			defer wg.Done()
			if ctx.Err() != nil {
				return
			}
			if err := ep.embedBatch(ctx, model, batch); err != nil {
				fail(err)
			}
		})
		if err != nil {
			wg.Done()
			fail(err)
			break
		}
	}
	wg.Wait()

	if firstErr != nil {
		ep.logger.Error("error generating embeddings", "err", firstErr)
		return firstErr
	}
	return ctx.Err()
}

func (ep *embeddingProcessor) embedBatch(ctx context.Context, model string, batch []*core.ProjectRecord) error {
	texts := make([]string, len(batch))
	for i, record := range batch {
		texts[i] = record.Text()
	}

	ep.logger.Debug("generating embeddings for project records", "records", len(texts))
	embeddings, err := ep.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return err
	}

	if len(embeddings) != len(batch) {
		return fmt.Errorf("%w: expected %d, received %d", ErrEmbeddingMismatch, len(batch), len(embeddings))
	}

	for i := range embeddings {
		batch[i].Vector = embeddings[i]
		batch[i].EmbeddingKey = core.EmbeddingKeyFor(model, texts[i])
	}
	return nil
}
