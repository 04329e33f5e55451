package assistant

import (
	"context"
	"log/slog"
	"strings"

	"github.com/poiesic/projectinbox/ai"
	"github.com/poiesic/projectinbox/core"
	"github.com/poiesic/projectinbox/storage"
)

// Request is one user interaction.
type Request struct {
	Input     string
	ProjectID string // Optional except for updates
}

// Result is the outcome of a handled interaction.
type Result struct {
	Intent    core.Intent
	RawIntent string // Unparsed classifier output
	ProjectID string

	// Update path
	Record      *core.ProjectRecord
	UpdatedText string

	// Query and email path
	Answer  string
	Context string
	Sources []string
}

// Assistant classifies user input and routes it to the update or answer path.
type Assistant struct {
	classifier *Classifier
	updater    *Updater
	answerer   *Answerer
	logger     *slog.Logger
}

// Option configures an Assistant.
type Option func(*Assistant) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(a *Assistant) error {
		if logger == nil {
			logger = slog.Default()
		}
		a.logger = logger
		return nil
	}
}

// WithTopK sets how many records similarity search returns.
// Default is DefaultTopK.
func WithTopK(k int) Option {
	return func(a *Assistant) error {
		if k < 1 {
			k = 1
		}
		a.answerer.topK = k
		return nil
	}
}

// WithMinScore sets the lowest similarity score accepted as context.
// Default is NoMinScore.
func WithMinScore(score float32) Option {
	return func(a *Assistant) error {
		a.answerer.minScore = score
		return nil
	}
}

// NewAssistant creates an assistant over index using provider's services.
func NewAssistant(index storage.VectorIndex, provider ai.AIProvider, opts ...Option) (*Assistant, error) {
	if index == nil {
		return nil, ErrIndexRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	a := &Assistant{
		answerer: NewAnswerer(index, provider.Embedder(), provider.Generator(), nil),
		logger:   slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(a); err != nil {
			return nil, err
		}
	}

	a.logger = a.logger.With("component", "assistant")
	a.classifier = NewClassifier(provider.Generator(), a.logger)
	a.updater = NewUpdater(index, provider.Embedder(), a.logger)
	a.answerer.logger = a.logger.With("stage", "answer")

	return a, nil
}

// Handle processes one interaction.
func (a *Assistant) Handle(ctx context.Context, req Request) (*Result, error) {
	return a.HandleWithMonitor(ctx, req, nil)
}

// HandleWithMonitor processes one interaction with monitoring.
// The monitor receives callbacks at each stage of the interaction.
func (a *Assistant) HandleWithMonitor(ctx context.Context, req Request, monitor Monitor) (result *Result, err error) {
	// Use noop monitor if none provided
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	monitor.Start(req)
	defer func() { monitor.Finish(result, err) }()

	input := strings.TrimSpace(req.Input)
	if input == "" {
		return nil, ErrEmptyInput
	}
	projectID := strings.TrimSpace(req.ProjectID)

	intent, raw, err := a.classifier.Classify(ctx, input)
	if err != nil {
		return nil, err
	}
	monitor.AfterClassification(intent, raw)

	result = &Result{Intent: intent, RawIntent: raw, ProjectID: projectID}

	if intent == core.IntentUpdate {
		record, err := a.updater.Apply(ctx, projectID, input)
		if err != nil {
			return nil, err
		}
		result.Record = record
		result.UpdatedText = record.Text()
		return result, nil
	}

	answer, err := a.answerer.Answer(ctx, intent, input, projectID)
	if err != nil {
		return nil, err
	}
	result.Answer = answer.Text
	result.Context = answer.Context
	result.Sources = answer.Sources
	return result, nil
}
