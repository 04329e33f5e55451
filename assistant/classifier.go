package assistant

import (
	"context"
	"log/slog"
	"strings"

	"github.com/poiesic/projectinbox/ai"
	"github.com/poiesic/projectinbox/core"
)

// Classifier decides the intent of a user input with one generation call.
type Classifier struct {
	generator ai.Generator
	logger    *slog.Logger
}

// NewClassifier creates a classifier backed by generator.
func NewClassifier(generator ai.Generator, logger *slog.Logger) *Classifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Classifier{
		generator: generator,
		logger:    logger.With("stage", "classify"),
	}
}

// Classify returns the intent of input along with the raw model output.
func (c *Classifier) Classify(ctx context.Context, input string) (core.Intent, string, error) {
	raw, err := c.generator.Complete(ctx, buildIntentPrompt(input))
	if err != nil {
		c.logger.Error("error classifying input", "err", err)
		return 0, "", err
	}

	intent := ParseIntent(raw)
	c.logger.Debug("classified input", "intent", intent, "raw", raw)
	return intent, raw, nil
}

// ParseIntent maps raw model output to an intent by substring containment
// after upper-casing. UPDATE wins over EMAIL; anything else is a query.
func ParseIntent(raw string) core.Intent {
	normalized := strings.ToUpper(strings.TrimSpace(raw))
	switch {
	case strings.Contains(normalized, "UPDATE"):
		return core.IntentUpdate
	case strings.Contains(normalized, "EMAIL"):
		return core.IntentEmail
	default:
		return core.IntentQuery
	}
}
