package reembed

import (
	"context"
	"fmt"
	"testing"

	"github.com/poiesic/projectinbox/ai/mock"
	"github.com/poiesic/projectinbox/core"
	"github.com/poiesic/projectinbox/storage"
	"github.com/poiesic/projectinbox/storage/badger"
	"github.com/stretchr/testify/require"
)

const testDimension = 4

func setupTestIndex(t *testing.T, metric core.Metric) storage.VectorIndex {
	idx, backend, err := badger.NewMemoryIndex("workelate-index")
	require.NoError(t, err)
	t.Cleanup(func() {
		idx.Close()
		backend.Close()
	})

	_, err = idx.EnsureIndex(context.Background(), core.IndexSpec{Dimension: testDimension, Metric: metric})
	require.NoError(t, err)
	return idx
}

// seedRecords stores n records whose vectors were computed by model.
func seedRecords(t *testing.T, idx storage.VectorIndex, n int, model string) []*core.ProjectRecord {
	records := make([]*core.ProjectRecord, n)
	for i := range records {
		r := core.NewRecordFromRow(core.SourceRow{
			ClientName:      fmt.Sprintf("Client %d", i),
			ProjectID:       fmt.Sprintf("P%03d", i),
			ProjectDetails:  fmt.Sprintf("Details %d", i),
			LastInteraction: "2024-01-01",
			CustomerID:      "C",
			DevID:           "D",
		})
		r.Vector = []float32{2, 0, 0, 0}
		r.EmbeddingKey = core.EmbeddingKeyFor(model, r.Text())
		records[i] = r
	}
	require.NoError(t, idx.Upsert(context.Background(), records...))
	return records
}

func newTestEmbedder() *mock.MockEmbedder {
	return mock.NewMockEmbedderWithDimension(testDimension)
}
