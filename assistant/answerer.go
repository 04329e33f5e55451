package assistant

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/poiesic/projectinbox/ai"
	"github.com/poiesic/projectinbox/core"
	"github.com/poiesic/projectinbox/storage"
)

// DefaultTopK is the number of records retrieved for a query without a project id.
const DefaultTopK = 2

// NoMinScore disables the similarity threshold.
var NoMinScore = storage.NoMinScore

// Answer is the outcome of the query and email path.
type Answer struct {
	Text    string
	Context string
	Sources []string // Project ids the context was built from
}

// Answerer resolves context for an input and generates a reply.
type Answerer struct {
	index     storage.VectorIndex
	embedder  ai.Embedder
	generator ai.Generator
	topK      int
	minScore  float32
	logger    *slog.Logger
}

// NewAnswerer creates an answerer reading from index.
func NewAnswerer(index storage.VectorIndex, embedder ai.Embedder, generator ai.Generator, logger *slog.Logger) *Answerer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Answerer{
		index:     index,
		embedder:  embedder,
		generator: generator,
		topK:      DefaultTopK,
		minScore:  NoMinScore,
		logger:    logger.With("stage", "answer"),
	}
}

// Answer builds context for input and issues one generation request.
// With a project id the context is that record; otherwise it is the
// closest records by similarity.
func (a *Answerer) Answer(ctx context.Context, intent core.Intent, input, projectID string) (*Answer, error) {
	records, err := a.resolveContext(ctx, input, strings.TrimSpace(projectID))
	if err != nil {
		return nil, err
	}

	contextText := joinContext(records)
	reply, err := a.generator.Chat(ctx, buildAnswerMessages(intent, contextText, input))
	if err != nil {
		a.logger.Error("error generating answer", "intent", intent, "err", err)
		return nil, err
	}

	sources := make([]string, len(records))
	for i, r := range records {
		sources[i] = r.ProjectID
	}
	return &Answer{Text: reply, Context: contextText, Sources: sources}, nil
}

func (a *Answerer) resolveContext(ctx context.Context, input, projectID string) ([]*core.ProjectRecord, error) {
	if projectID != "" {
		record, err := a.index.Fetch(ctx, projectID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return nil, fmt.Errorf("%w: %s", ErrProjectNotFound, projectID)
			}
			a.logger.Error("error fetching project record", "project_id", projectID, "err", err)
			return nil, err
		}
		return []*core.ProjectRecord{record}, nil
	}

	vector, err := a.embedder.EmbedText(ctx, input)
	if err != nil {
		a.logger.Error("error generating embedding for query", "err", err)
		return nil, err
	}

	results, err := a.index.Query(ctx, vector, a.topK, a.minScore)
	if err != nil {
		if errors.Is(err, storage.ErrIndexNotFound) {
			return nil, ErrNoRelevantProject
		}
		a.logger.Error("error querying for similar records", "err", err)
		return nil, err
	}
	if len(results) == 0 {
		return nil, ErrNoRelevantProject
	}

	records := make([]*core.ProjectRecord, len(results))
	for i, r := range results {
		records[i] = r.Record
		a.logger.Debug("context match", "project_id", r.Record.ProjectID, "score", r.Score)
	}
	return records, nil
}
