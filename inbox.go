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


package projectinbox

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/poiesic/projectinbox/ai"
	"github.com/poiesic/projectinbox/ai/openai"
	"github.com/poiesic/projectinbox/assistant"
	"github.com/poiesic/projectinbox/core"
	"github.com/poiesic/projectinbox/ingestion"
	"github.com/poiesic/projectinbox/reembed"
	"github.com/poiesic/projectinbox/storage"
	"github.com/poiesic/projectinbox/storage/badger"
)

// DefaultIndexName is the vector index used when none is configured.
const DefaultIndexName = "workelate-index"

// Inbox wires the project index, AI services, ingestion pipeline and
// assistant together. It is safe for concurrent use.
type Inbox struct {
	backend   *badger.Backend
	index     storage.VectorIndex
	provider  ai.AIProvider
	pipeline  *ingestion.Pipeline
	assistant *assistant.Assistant
	logger    *slog.Logger
}

// Option configures an Inbox.
type Option func(*options)

type options struct {
	aiConfig  *ai.Config
	indexName string
	metric    core.Metric
	inMemory  bool
	topK      int
	minScore  float32
	logger    *slog.Logger
}

// WithAIConfig sets the embedding and generation service configuration.
// Default is ai.DefaultConfig().
func WithAIConfig(config *ai.Config) Option {
	return func(o *options) {
		o.aiConfig = config
	}
}

// WithIndexName sets the vector index name.
// Default is DefaultIndexName.
func WithIndexName(name string) Option {
	return func(o *options) {
		o.indexName = name
	}
}

// WithMetric sets the similarity metric used when the index is created.
// Default is cosine.
func WithMetric(metric core.Metric) Option {
	return func(o *options) {
		o.metric = metric
	}
}

// WithInMemory keeps all data in memory. The path passed to New is ignored.
func WithInMemory() Option {
	return func(o *options) {
		o.inMemory = true
	}
}

// WithTopK sets how many records a query without project id retrieves.
// Default is assistant.DefaultTopK.
func WithTopK(k int) Option {
	return func(o *options) {
		o.topK = k
	}
}

// WithMinScore sets the lowest similarity accepted as query context.
// Default is assistant.NoMinScore.
func WithMinScore(score float32) Option {
	return func(o *options) {
		o.minScore = score
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func buildOptions(opts []Option) *options {
	o := &options{
		aiConfig:  ai.DefaultConfig(),
		indexName: DefaultIndexName,
		metric:    core.MetricCosine,
		topK:      assistant.DefaultTopK,
		minScore:  assistant.NoMinScore,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	return o
}

// New opens the database at dbPath and connects to the configured AI services.
func New(dbPath string, opts ...Option) (*Inbox, error) {
	o := buildOptions(opts)

	// Fail on bad credentials before touching the database
	provider, err := openai.NewProvider(o.aiConfig)
	if err != nil {
		return nil, err
	}

	backend, err := badger.OpenBackend(dbPath, o.inMemory)
	if err != nil {
		provider.Close()
		return nil, err
	}

	index, err := badger.NewProjectIndex(backend, o.indexName)
	if err != nil {
		provider.Close()
		backend.Close()
		return nil, err
	}

	inbox, err := newInbox(index, provider, o)
	if err != nil {
		index.Close()
		provider.Close()
		backend.Close()
		return nil, err
	}
	inbox.backend = backend
	return inbox, nil
}

// NewWithServices builds an Inbox over an existing index and AI provider.
// Close releases both; a backend shared by the index stays open.
func NewWithServices(index storage.VectorIndex, provider ai.AIProvider, opts ...Option) (*Inbox, error) {
	return newInbox(index, provider, buildOptions(opts))
}

func newInbox(index storage.VectorIndex, provider ai.AIProvider, o *options) (*Inbox, error) {
	if index == nil {
		return nil, assistant.ErrIndexRequired
	}
	if provider == nil {
		return nil, assistant.ErrAIProviderRequired
	}

	pipeline, err := ingestion.NewPipeline(index, provider.Embedder(),
		ingestion.WithIndexSpec(o.aiConfig.EmbeddingDimension, o.metric),
		ingestion.WithLogger(o.logger))
	if err != nil {
		return nil, err
	}

	a, err := assistant.NewAssistant(index, provider,
		assistant.WithLogger(o.logger),
		assistant.WithTopK(o.topK),
		assistant.WithMinScore(o.minScore))
	if err != nil {
		pipeline.Release()
		return nil, err
	}

	return &Inbox{
		index:     index,
		provider:  provider,
		pipeline:  pipeline,
		assistant: a,
		logger:    o.logger,
	}, nil
}

// Ingest embeds rows and upserts them into the index, creating it if needed.
func (ib *Inbox) Ingest(ctx context.Context, rows []core.SourceRow) (*ingestion.Report, error) {
	return ib.pipeline.Ingest(ctx, rows)
}

// IngestFile loads a JSON source file and ingests its rows.
func (ib *Inbox) IngestFile(ctx context.Context, path string) (*ingestion.Report, error) {
	rows, err := ingestion.LoadSourceFile(path)
	if err != nil {
		return nil, err
	}
	return ib.pipeline.Ingest(ctx, rows)
}

// HandleInteraction classifies one request and runs the update or answer path.
func (ib *Inbox) HandleInteraction(ctx context.Context, req assistant.Request) (*assistant.Result, error) {
	return ib.assistant.Handle(ctx, req)
}

// HandleInteractionWithMonitor is HandleInteraction with stage callbacks.
func (ib *Inbox) HandleInteractionWithMonitor(ctx context.Context, req assistant.Request, monitor assistant.Monitor) (*assistant.Result, error) {
	return ib.assistant.HandleWithMonitor(ctx, req, monitor)
}

// NewReembedder creates a reembedder over the index using the configured embedder.
func (ib *Inbox) NewReembedder(config *reembed.Config, progress io.Writer) *reembed.Reembedder {
	return reembed.NewReembedder(ib.index, ib.provider.Embedder(), config, progress)
}

// Index returns the project index.
func (ib *Inbox) Index() storage.VectorIndex {
	return ib.index
}

// Close releases the pipeline, AI provider, index and backend.
func (ib *Inbox) Close() error {
	ib.pipeline.Release()

	var errs []error
	if err := ib.provider.Close(); err != nil {
		ib.logger.Error("error closing AI provider", "err", err)
		errs = append(errs, err)
	}

	if err := ib.index.Close(); err != nil {
		ib.logger.Error("error closing project index", "err", err)
		errs = append(errs, err)
	}

	if ib.backend != nil {
		if err := ib.backend.Close(); err != nil {
			ib.logger.Error("error closing backend storage", "err", err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
