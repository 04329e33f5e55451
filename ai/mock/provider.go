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


package mock

import (
	"sync/atomic"

	"github.com/poiesic/projectinbox/ai"
)

// MockProvider bundles a MockEmbedder and a MockGenerator behind
// ai.AIProvider.
type MockProvider struct {
	embedder  *MockEmbedder
	generator *MockGenerator
	closed    atomic.Bool

	// CloseErr is returned by Close if set.
	CloseErr error
}

// NewMockProvider returns a provider whose generator classifies every
// input as QUERY.
func NewMockProvider() ai.AIProvider {
	return NewMockProviderWithServices(NewMockEmbedder(), NewMockGenerator("QUERY"))
}

// NewMockProviderWithServices wraps the given doubles.
func NewMockProviderWithServices(embedder *MockEmbedder, generator *MockGenerator) ai.AIProvider {
	return &MockProvider{
		embedder:  embedder,
		generator: generator,
	}
}

func (p *MockProvider) Embedder() ai.Embedder {
	return p.embedder
}

func (p *MockProvider) Generator() ai.Generator {
	return p.generator
}

// Close marks the provider closed and returns CloseErr.
func (p *MockProvider) Close() error {
	p.closed.Store(true)
	return p.CloseErr
}

// Closed reports whether Close was called.
func (p *MockProvider) Closed() bool {
	return p.closed.Load()
}

// GetMockEmbedder returns the embedder double.
func (p *MockProvider) GetMockEmbedder() *MockEmbedder {
	return p.embedder
}

// GetMockGenerator returns the generator double.
func (p *MockProvider) GetMockGenerator() *MockGenerator {
	return p.generator
}
