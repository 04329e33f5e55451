package projectinbox

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/poiesic/projectinbox/ai"
	"github.com/poiesic/projectinbox/ai/mock"
	"github.com/poiesic/projectinbox/assistant"
	"github.com/poiesic/projectinbox/core"
	"github.com/poiesic/projectinbox/reembed"
	"github.com/poiesic/projectinbox/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAIConfig() *ai.Config {
	return ai.NewConfig(
		ai.WithEmbeddingToken("test-openai"),
		ai.WithGenerationToken("test-groq"),
	)
}

func TestNew(t *testing.T) {
	t.Run("create new inbox", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "test_db")
		inbox, err := New(dir, WithAIConfig(testAIConfig()))
		require.NoError(t, err)
		require.NotNil(t, inbox)
		defer inbox.Close()

		assert.NotNil(t, inbox.backend)
		assert.NotNil(t, inbox.logger)
		assert.Equal(t, DefaultIndexName, inbox.Index().Name())
	})

	t.Run("custom index name", func(t *testing.T) {
		inbox, err := New("", WithInMemory(), WithIndexName("acme"), WithAIConfig(testAIConfig()))
		require.NoError(t, err)
		defer inbox.Close()

		assert.Equal(t, "acme", inbox.Index().Name())
	})

	t.Run("error with invalid path", func(t *testing.T) {
		// Try to create a database at a file path instead of directory
		tmpFile := filepath.Join(t.TempDir(), "not_a_dir")
		require.NoError(t, os.WriteFile(tmpFile, []byte("test"), 0644))

		inbox, err := New(tmpFile, WithAIConfig(testAIConfig()))
		assert.Error(t, err)
		assert.Nil(t, inbox)
	})

	t.Run("error without credentials", func(t *testing.T) {
		inbox, err := New(t.TempDir(), WithAIConfig(ai.DefaultConfig()))
		require.Error(t, err)
		assert.Contains(t, err.Error(), ai.EnvEmbeddingToken)
		assert.Nil(t, inbox)
	})

	t.Run("local services need no credentials", func(t *testing.T) {
		config := ai.NewConfig(ai.WithHost("http://localhost:11434"))
		inbox, err := New("", WithInMemory(), WithAIConfig(config))
		require.NoError(t, err)
		assert.NoError(t, inbox.Close())
	})
}

func setupTestInbox(t *testing.T, classification string) (*Inbox, *mock.MockProvider) {
	idx, backend, err := badger.NewMemoryIndex(DefaultIndexName)
	require.NoError(t, err)
	t.Cleanup(func() { backend.Close() })

	provider := mock.NewMockProviderWithServices(
		mock.NewMockEmbedderWithDimension(16),
		mock.NewMockGenerator(classification),
	).(*mock.MockProvider)

	config := testAIConfig()
	config.EmbeddingDimension = 16

	inbox, err := NewWithServices(idx, provider, WithAIConfig(config))
	require.NoError(t, err)
	t.Cleanup(func() { inbox.Close() })

	return inbox, provider
}

func TestInbox_IngestThenUpdateThenQuery(t *testing.T) {
	inbox, provider := setupTestInbox(t, "UPDATE")
	ctx := context.Background()

	report, err := inbox.Ingest(ctx, []core.SourceRow{{
		ClientName:      "Acme",
		ProjectID:       "P1",
		ProjectDetails:  "Build API",
		LastInteraction: "2024-01-01",
		CustomerID:      "C1",
		DevID:           "D1",
	}})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Upserted)
	assert.True(t, report.IndexCreated)

	result, err := inbox.HandleInteraction(ctx, assistant.Request{Input: "SSL cert deployed", ProjectID: "P1"})
	require.NoError(t, err)
	assert.Equal(t, core.IntentUpdate, result.Intent)
	assert.Contains(t, result.UpdatedText, "Details: Build API | Update: SSL cert deployed")

	provider.GetMockGenerator().Reply = "QUERY"
	result, err = inbox.HandleInteraction(ctx, assistant.Request{Input: "Any news on the API?"})
	require.NoError(t, err)
	assert.Equal(t, core.IntentQuery, result.Intent)
	assert.Equal(t, []string{"P1"}, result.Sources)
	assert.Contains(t, result.Context, "| Update: SSL cert deployed")
}

func TestInbox_IngestFile(t *testing.T) {
	inbox, _ := setupTestInbox(t, "QUERY")

	path := filepath.Join(t.TempDir(), "projects.json")
	data := `[{"client_name":"Acme","project_id":"P1","project_details":"Build API","last_interaction":"2024-01-01","customer_id":"C1","dev_id":"D1"},
{"client_name":"Globex","project_id":"P2","project_details":"Billing","last_interaction":"2024-02-01","customer_id":"C2","dev_id":"D2"}]`
	require.NoError(t, os.WriteFile(path, []byte(data), 0600))

	report, err := inbox.IngestFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Upserted)

	count, err := inbox.Index().Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestInbox_NewReembedder(t *testing.T) {
	inbox, _ := setupTestInbox(t, "QUERY")
	ctx := context.Background()

	_, err := inbox.Ingest(ctx, []core.SourceRow{{
		ClientName: "Acme", ProjectID: "P1", ProjectDetails: "Build API",
		LastInteraction: "2024-01-01", CustomerID: "C1", DevID: "D1",
	}})
	require.NoError(t, err)

	var buf bytes.Buffer
	stats, err := inbox.NewReembedder(reembed.DefaultConfig(), &buf).Run(ctx)
	require.NoError(t, err)

	// Ingestion already embedded with the same model
	assert.Equal(t, 1, stats.Skipped)
	assert.Equal(t, 0, stats.Reembedded)
}

func TestInbox_HandleInteractionUserErrors(t *testing.T) {
	inbox, _ := setupTestInbox(t, "UPDATE")

	_, err := inbox.HandleInteraction(context.Background(), assistant.Request{Input: "  "})
	assert.ErrorIs(t, err, assistant.ErrEmptyInput)

	_, err = inbox.HandleInteraction(context.Background(), assistant.Request{Input: "done"})
	assert.ErrorIs(t, err, assistant.ErrProjectIDRequired)
}

func TestInbox_Close(t *testing.T) {
	idx, backend, err := badger.NewMemoryIndex(DefaultIndexName)
	require.NoError(t, err)
	defer backend.Close()

	provider := mock.NewMockProvider().(*mock.MockProvider)
	inbox, err := NewWithServices(idx, provider, WithAIConfig(testAIConfig()))
	require.NoError(t, err)

	require.NoError(t, inbox.Close())
	assert.True(t, provider.Closed())
}

func TestInbox_CloseReportsProviderError(t *testing.T) {
	idx, backend, err := badger.NewMemoryIndex(DefaultIndexName)
	require.NoError(t, err)
	defer backend.Close()

	provider := mock.NewMockProvider().(*mock.MockProvider)
	provider.CloseErr = errors.New("connection reset")
	inbox, err := NewWithServices(idx, provider, WithAIConfig(testAIConfig()))
	require.NoError(t, err)

	err = inbox.Close()
	require.Error(t, err)
	assert.ErrorIs(t, err, provider.CloseErr)
	assert.True(t, provider.Closed())
}

func TestNewWithServices_RequiresDependencies(t *testing.T) {
	idx, backend, err := badger.NewMemoryIndex(DefaultIndexName)
	require.NoError(t, err)
	defer backend.Close()

	inbox, err := NewWithServices(idx, nil, WithAIConfig(testAIConfig()))
	assert.ErrorIs(t, err, assistant.ErrAIProviderRequired)
	assert.Nil(t, inbox)

	inbox, err = NewWithServices(nil, mock.NewMockProvider(), WithAIConfig(testAIConfig()))
	assert.ErrorIs(t, err, assistant.ErrIndexRequired)
	assert.Nil(t, inbox)
}
