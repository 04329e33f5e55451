// Package mock provides test double implementations of AI service interfaces.
//
// This package contains mock implementations of ai.Embedder, ai.Generator,
// and ai.AIProvider for use in unit tests. The mocks allow tests to run without
// external AI service dependencies and enable controlled, deterministic behavior.
//
// # Usage in Tests
//
//	// Basic usage with default behavior
//	mockProvider := mock.NewMockProvider()
//	embeddings, err := mockProvider.Embedder().EmbedText(ctx, "test")
//
//	// Custom behavior injection
//	gen := mock.NewMockGenerator("UPDATE")
//	gen.ChatFunc = func(ctx context.Context, msgs []ai.Message) (string, error) {
//	    return "drafted reply", nil
//	}
//
//	// Check calls
//	count := gen.CallCount()
//	prompts := gen.Prompts()
//
// # Default Behavior
//
// The mock implementations provide sensible defaults:
//
//   - MockEmbedder: Returns deterministic unit vectors based on text hash
//   - MockGenerator: Complete returns a fixed reply, Chat echoes the human message
//   - MockProvider: Aggregates mock embedder and generator
//
// All mocks are safe for concurrent use.
package mock
