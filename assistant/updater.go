package assistant

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/poiesic/projectinbox/ai"
	"github.com/poiesic/projectinbox/core"
	"github.com/poiesic/projectinbox/storage"
)

// Updater appends status updates to stored project records.
type Updater struct {
	index    storage.VectorIndex
	embedder ai.Embedder
	locks    *keyedMutex
	now      func() time.Time
	logger   *slog.Logger
}

// NewUpdater creates an updater writing to index.
func NewUpdater(index storage.VectorIndex, embedder ai.Embedder, logger *slog.Logger) *Updater {
	if logger == nil {
		logger = slog.Default()
	}
	return &Updater{
		index:    index,
		embedder: embedder,
		locks:    newKeyedMutex(),
		now:      func() time.Time { return time.Now().UTC() },
		logger:   logger.With("stage", "update"),
	}
}

// Apply appends input to the details line of projectID's record, re-embeds
// the record and writes it back. The updated record is returned.
//
// Updates to the same project through one Updater are serialized.
func (u *Updater) Apply(ctx context.Context, projectID, input string) (*core.ProjectRecord, error) {
	projectID = strings.TrimSpace(projectID)
	if projectID == "" {
		return nil, ErrProjectIDRequired
	}

	unlock := u.locks.lock(projectID)
	defer unlock()

	record, err := u.index.Fetch(ctx, projectID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrProjectNotFound, projectID)
		}
		u.logger.Error("error fetching project record", "project_id", projectID, "err", err)
		return nil, err
	}

	record.AppendUpdate(input, u.now())
	text := record.Text()

	vector, err := u.embedder.EmbedText(ctx, text)
	if err != nil {
		u.logger.Error("error embedding updated record", "project_id", projectID, "err", err)
		return nil, err
	}
	record.Vector = vector
	record.EmbeddingKey = core.EmbeddingKeyFor(u.embedder.ModelName(), text)

	if err := u.index.Upsert(ctx, record); err != nil {
		u.logger.Error("error upserting updated record", "project_id", projectID, "err", err)
		return nil, err
	}

	u.logger.Info("project updated", "project_id", projectID, "updates", len(record.Updates))
	return record, nil
}
