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


// Package ai provides abstractions for the hosted AI services used by projectinbox.
//
// This package defines interfaces for text embeddings and chat completion.
// The assistant and ingestion code depend on these abstractions rather than
// on a particular vendor client.
//
// # Design Principles
//
// The package is designed around three key interfaces:
//
//   - Embedder: Generates vector embeddings from text
//   - Generator: Produces completions from a prompt or a system+human message pair
//   - AIProvider: Aggregates AI services for convenient initialization
//
// # Implementation Packages
//
// The ai package includes two implementation sub-packages:
//
//   - ai/openai: Production implementation using OpenAI-compatible APIs
//   - ai/mock: Test doubles for unit testing without external dependencies
//
// # Constructor Return Type Pattern
//
// Public constructors (openai.NewProvider, openai.NewEmbedder, etc.) return
// INTERFACE types to enforce abstraction and prevent accidental coupling to
// concrete implementations.
//
//	provider, err := openai.NewProvider(config)  // returns ai.AIProvider
//
// Test utility constructors (mock.NewMockEmbedder, mock.NewMockGenerator)
// return CONCRETE types to enable test assertions and behavior injection.
//
//	gen := mock.NewMockGenerator("EMAIL")  // returns *mock.MockGenerator
//	count := gen.CallCount()               // test assertion
//
// # Usage Example
//
//	config := ai.NewConfig(
//	    ai.WithEmbeddingToken(os.Getenv(ai.EnvEmbeddingToken)),
//	    ai.WithGenerationToken(os.Getenv(ai.EnvGenerationToken)),
//	)
//	provider, err := openai.NewProvider(config)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	vector, err := provider.Embedder().EmbedText(ctx, "Hello world")
//	answer, err := provider.Generator().Chat(ctx, []ai.Message{
//	    ai.SystemMessage("You are a professional project assistant."),
//	    ai.HumanMessage("What is the status of P1?"),
//	})
package ai
