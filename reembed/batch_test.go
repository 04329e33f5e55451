package reembed

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/poiesic/projectinbox/core"
	"github.com/poiesic/projectinbox/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSpec(metric core.Metric) core.IndexSpec {
	return core.IndexSpec{Name: "workelate-index", Dimension: testDimension, Metric: metric}
}

func TestBatchProcessor_ReembedsStaleRecords(t *testing.T) {
	idx := setupTestIndex(t, core.MetricCosine)
	records := seedRecords(t, idx, 3, "old-model")
	embedder := newTestEmbedder()

	bp := NewBatchProcessor(idx, embedder, testSpec(core.MetricCosine), false, 3, time.Millisecond)
	result, err := bp.Process(context.Background(), records)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Reembedded)
	assert.Equal(t, 0, result.Skipped)

	for _, r := range records {
		stored, err := idx.Fetch(context.Background(), r.ProjectID)
		require.NoError(t, err)
		assert.False(t, IsStale(stored, embedder.ModelName(), testDimension))

		var magnitude float64
		for _, v := range stored.Vector {
			magnitude += float64(v) * float64(v)
		}
		assert.InDelta(t, 1.0, magnitude, 0.001, "cosine vectors are normalized")
	}
}

func TestBatchProcessor_SkipsFreshRecords(t *testing.T) {
	idx := setupTestIndex(t, core.MetricCosine)
	embedder := newTestEmbedder()
	records := seedRecords(t, idx, 4, embedder.ModelName())

	bp := NewBatchProcessor(idx, embedder, testSpec(core.MetricCosine), false, 3, time.Millisecond)
	result, err := bp.Process(context.Background(), records)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Reembedded)
	assert.Equal(t, 4, result.Skipped)
	assert.Equal(t, 0, embedder.CallCount())
}

func TestBatchProcessor_ForceReembedsEverything(t *testing.T) {
	idx := setupTestIndex(t, core.MetricCosine)
	embedder := newTestEmbedder()
	records := seedRecords(t, idx, 4, embedder.ModelName())

	bp := NewBatchProcessor(idx, embedder, testSpec(core.MetricCosine), true, 3, time.Millisecond)
	result, err := bp.Process(context.Background(), records)
	require.NoError(t, err)
	assert.Equal(t, 4, result.Reembedded)
	assert.Equal(t, 1, embedder.CallCount())
}

func TestBatchProcessor_KeepsRawVectorsForDotProduct(t *testing.T) {
	idx := setupTestIndex(t, core.MetricDotProduct)
	records := seedRecords(t, idx, 1, "old-model")
	embedder := newTestEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		return [][]float32{{3, 4, 0, 0}}, nil
	}

	bp := NewBatchProcessor(idx, embedder, testSpec(core.MetricDotProduct), false, 1, time.Millisecond)
	_, err := bp.Process(context.Background(), records)
	require.NoError(t, err)

	stored, err := idx.Fetch(context.Background(), records[0].ProjectID)
	require.NoError(t, err)
	assert.Equal(t, []float32{3, 4, 0, 0}, stored.Vector)
}

func TestBatchProcessor_RetriesEmbedding(t *testing.T) {
	idx := setupTestIndex(t, core.MetricCosine)
	records := seedRecords(t, idx, 2, "old-model")
	embedder := newTestEmbedder()

	attempts := 0
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		attempts++
		if attempts < 3 {
			return nil, errors.New("rate limited")
		}
		out := make([][]float32, len(texts))
		for i := range out {
			out[i] = []float32{0, 1, 0, 0}
		}
		return out, nil
	}

	bp := NewBatchProcessor(idx, embedder, testSpec(core.MetricCosine), false, 3, time.Millisecond)
	result, err := bp.Process(context.Background(), records)
	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
	assert.Equal(t, 2, result.Reembedded)
}

func TestBatchProcessor_GivesUpAfterMaxRetries(t *testing.T) {
	idx := setupTestIndex(t, core.MetricCosine)
	records := seedRecords(t, idx, 2, "old-model")
	embedder := newTestEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		return nil, errors.New("rate limited")
	}

	bp := NewBatchProcessor(idx, embedder, testSpec(core.MetricCosine), false, 2, time.Millisecond)
	_, err := bp.Process(context.Background(), records)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "after 2 attempts")
	assert.Equal(t, 2, embedder.CallCount())

	// Stored records are untouched
	stored, err := idx.Fetch(context.Background(), records[0].ProjectID)
	require.NoError(t, err)
	assert.Equal(t, []float32{2, 0, 0, 0}, stored.Vector)
}

func TestBatchProcessor_CountMismatch(t *testing.T) {
	idx := setupTestIndex(t, core.MetricCosine)
	records := seedRecords(t, idx, 3, "old-model")
	embedder := newTestEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		return [][]float32{{1, 0, 0, 0}}, nil
	}

	bp := NewBatchProcessor(idx, embedder, testSpec(core.MetricCosine), false, 1, time.Millisecond)
	_, err := bp.Process(context.Background(), records)
	assert.ErrorIs(t, err, ErrEmbeddingMismatch)
}

func TestBatchProcessor_DimensionMismatch(t *testing.T) {
	idx := setupTestIndex(t, core.MetricCosine)
	records := seedRecords(t, idx, 1, "old-model")
	embedder := newTestEmbedder()
	embedder.Dimension = testDimension + 1

	bp := NewBatchProcessor(idx, embedder, testSpec(core.MetricCosine), false, 1, time.Millisecond)
	_, err := bp.Process(context.Background(), records)
	assert.ErrorIs(t, err, storage.ErrDimensionMismatch)
}

func TestBatchProcessor_EmptyBatch(t *testing.T) {
	idx := setupTestIndex(t, core.MetricCosine)
	embedder := newTestEmbedder()

	bp := NewBatchProcessor(idx, embedder, testSpec(core.MetricCosine), false, 1, time.Millisecond)
	result, err := bp.Process(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, BatchResult{}, result)
	assert.Equal(t, 0, embedder.CallCount())
}
