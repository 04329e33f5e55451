package mock

import (
	"context"
	"strings"
	"sync"

	"github.com/poiesic/projectinbox/ai"
)

// MockGenerator is a test double for ai.Generator.
// It allows custom behavior injection via function fields.
type MockGenerator struct {
	// CompleteFunc is called by Complete if set.
	// If nil, returns Reply.
	CompleteFunc func(ctx context.Context, prompt string) (string, error)

	// ChatFunc is called by Chat if set.
	// If nil, echoes the last human message.
	ChatFunc func(ctx context.Context, messages []ai.Message) (string, error)

	// Reply is the default Complete response.
	Reply string

	mu      sync.Mutex
	prompts []string
	chats   [][]ai.Message
}

// NewMockGenerator creates a mock generator whose Complete returns reply.
// Note: Returns concrete type to allow test assertions via GetMockGenerator().
func NewMockGenerator(reply string) *MockGenerator {
	return &MockGenerator{Reply: reply}
}

// Complete records the prompt and returns the configured reply.
func (m *MockGenerator) Complete(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	m.prompts = append(m.prompts, prompt)
	m.mu.Unlock()

	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, prompt)
	}
	return m.Reply, nil
}

// Chat records the messages and returns a canned answer.
func (m *MockGenerator) Chat(ctx context.Context, messages []ai.Message) (string, error) {
	m.mu.Lock()
	m.chats = append(m.chats, append([]ai.Message(nil), messages...))
	m.mu.Unlock()

	if m.ChatFunc != nil {
		return m.ChatFunc(ctx, messages)
	}

	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == ai.RoleHuman {
			return "mock answer: " + strings.TrimSpace(messages[i].Content), nil
		}
	}
	return "mock answer", nil
}

// Prompts returns every Complete prompt so far.
func (m *MockGenerator) Prompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.prompts...)
}

// Chats returns every Chat message list so far.
func (m *MockGenerator) Chats() [][]ai.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([][]ai.Message(nil), m.chats...)
}

// CallCount returns the number of Complete and Chat calls.
func (m *MockGenerator) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.prompts) + len(m.chats)
}

// Reset clears recorded calls and injected behavior.
func (m *MockGenerator) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prompts = nil
	m.chats = nil
	m.CompleteFunc = nil
	m.ChatFunc = nil
}
