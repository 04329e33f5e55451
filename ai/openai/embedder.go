package openai

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/poiesic/projectinbox/ai"
	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/openai"
)

// Embedder implements ai.Embedder against an OpenAI-compatible
// /embeddings endpoint. Every vector it returns has the configured
// dimension, so callers can upsert without re-checking.
type Embedder struct {
	embedder  embeddings.Embedder
	model     string
	dimension int
	logger    *slog.Logger
}

func newEmbedder(config *ai.Config) (*Embedder, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.EmbeddingHost),
		openai.WithToken(config.EmbeddingToken),
		openai.WithEmbeddingModel(config.EmbeddingModel),
	)
	if err != nil {
		return nil, fmt.Errorf("creating embedding client: %w", err)
	}

	// Record text is multi-line; the service sees it as one paragraph.
	embedder, err := embeddings.NewEmbedder(client, embeddings.WithStripNewLines(true))
	if err != nil {
		return nil, fmt.Errorf("creating embedder: %w", err)
	}

	return &Embedder{
		embedder:  embedder,
		model:     config.EmbeddingModel,
		dimension: config.EmbeddingDimension,
		logger:    slog.Default().With("component", "openai-embedder", "model", config.EmbeddingModel),
	}, nil
}

// NewEmbedder creates an embedder from config.
func NewEmbedder(config *ai.Config) (ai.Embedder, error) {
	return newEmbedder(config)
}

// ModelName returns the configured embedding model.
func (e *Embedder) ModelName() string {
	return e.model
}

// EmbedText embeds a single record text or user query.
func (e *Embedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	vectors, err := e.EmbedTexts(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// EmbedTexts embeds texts in one request. The result is index-aligned
// with texts.
func (e *Embedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	e.logger.Debug("embedding texts", "count", len(texts))

	vectors, err := e.embedder.EmbedDocuments(ctx, texts)
	if err != nil {
		e.logger.Error("embedding request failed", "count", len(texts), "err", err)
		return nil, fmt.Errorf("embedding with %s: %w", e.model, err)
	}
	if err := e.checkShape(len(texts), vectors); err != nil {
		return nil, err
	}
	return vectors, nil
}

func (e *Embedder) checkShape(want int, vectors [][]float32) error {
	if len(vectors) != want {
		return fmt.Errorf("%w: %d vectors for %d texts", ai.ErrEmbeddingShape, len(vectors), want)
	}
	if e.dimension <= 0 {
		return nil
	}
	for i, v := range vectors {
		if len(v) != e.dimension {
			return fmt.Errorf("%w: vector %d has %d dimensions, want %d",
				ai.ErrEmbeddingShape, i, len(v), e.dimension)
		}
	}
	return nil
}
