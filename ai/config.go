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


package ai

import (
	"errors"
	"net/url"
	"strings"
)

// Environment variables holding service credentials.
const (
	EnvEmbeddingToken  = "OPENAI_API_KEY"
	EnvGenerationToken = "GROQ_API_KEY"
)

// localToken is sent to loopback services that don't require authentication.
const localToken = "none"

// Config holds configuration for AI service providers.
type Config struct {
	// EmbeddingHost is the base URL for the embedding service API.
	// Example: "https://api.openai.com/v1", "http://localhost:11434/v1"
	EmbeddingHost string

	// EmbeddingToken is the API key for the embedding service.
	// Optional for loopback hosts.
	EmbeddingToken string

	// EmbeddingModel is the model identifier to use for text embeddings.
	// Example: "text-embedding-3-small", "embeddinggemma"
	EmbeddingModel string

	// EmbeddingDimension is the length of vectors produced by EmbeddingModel.
	// The vector index is created with this dimension.
	// Default: 1536
	EmbeddingDimension int

	// GenerationHost is the base URL for the chat-completion service API.
	// Example: "https://api.groq.com/openai/v1"
	GenerationHost string

	// GenerationToken is the API key for the chat-completion service.
	// Optional for loopback hosts.
	GenerationToken string

	// GenerationModel is the model identifier used for classification and answers.
	// Example: "llama-3.3-70b-versatile", "qwen2.5:3b"
	GenerationModel string

	// Temperature is the sampling temperature for every generation call.
	// Default: 0
	Temperature float64
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithEmbeddingHost sets the embedding service host URL.
func WithEmbeddingHost(host string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingHost = host
	}
}

// WithGenerationHost sets the generation service host URL.
func WithGenerationHost(host string) ConfigOption {
	return func(c *Config) {
		c.GenerationHost = host
	}
}

// WithHost sets both embedding and generation hosts to the same URL.
func WithHost(host string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingHost = host
		c.GenerationHost = host
	}
}

// WithEmbeddingToken sets the embedding service API key.
func WithEmbeddingToken(token string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingToken = token
	}
}

// WithGenerationToken sets the generation service API key.
func WithGenerationToken(token string) ConfigOption {
	return func(c *Config) {
		c.GenerationToken = token
	}
}

// WithEmbeddingModel sets the embedding model identifier.
func WithEmbeddingModel(model string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingModel = model
	}
}

// WithEmbeddingDimension sets the embedding vector length.
func WithEmbeddingDimension(dim int) ConfigOption {
	return func(c *Config) {
		c.EmbeddingDimension = dim
	}
}

// WithGenerationModel sets the generation model identifier.
func WithGenerationModel(model string) ConfigOption {
	return func(c *Config) {
		c.GenerationModel = model
	}
}

// WithTemperature sets the sampling temperature.
func WithTemperature(t float64) ConfigOption {
	return func(c *Config) {
		c.Temperature = t
	}
}

// DefaultConfig returns a Config for OpenAI embeddings and Groq chat completion.
// Tokens are left empty and must be supplied.
func DefaultConfig() *Config {
	return &Config{
		EmbeddingHost:      "https://api.openai.com/v1",
		EmbeddingModel:     "text-embedding-3-small",
		EmbeddingDimension: 1536,
		GenerationHost:     "https://api.groq.com/openai/v1",
		GenerationModel:    "llama-3.3-70b-versatile",
		Temperature:        0,
	}
}

// NewConfig creates a Config with the default values and applies the provided options.
// This is the recommended way to create a Config with custom settings.
//
// Example:
//   cfg := NewConfig(
//       WithEmbeddingToken(os.Getenv(EnvEmbeddingToken)),
//       WithGenerationToken(os.Getenv(EnvGenerationToken)),
//   )
//
// Example with a local server for both services:
//   cfg := NewConfig(
//       WithHost("http://localhost:11434"),
//       WithEmbeddingModel("embeddinggemma"),
//       WithEmbeddingDimension(768),
//       WithGenerationModel("qwen2.5:3b"),
//   )
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize ensures the configuration is in a canonical form.
// It adds the /v1 suffix to hosts if missing, which is required by most
// OpenAI-compatible APIs, and fills placeholder tokens for loopback hosts.
func (c *Config) Normalize() {
	c.EmbeddingHost = normalizeHost(c.EmbeddingHost)
	c.GenerationHost = normalizeHost(c.GenerationHost)

	if c.EmbeddingToken == "" && isLoopback(c.EmbeddingHost) {
		c.EmbeddingToken = localToken
	}
	if c.GenerationToken == "" && isLoopback(c.GenerationHost) {
		c.GenerationToken = localToken
	}
}

// Validate checks that the configuration is valid and complete.
// It automatically normalizes the configuration before validation.
func (c *Config) Validate() error {
	c.Normalize()

	if c.EmbeddingHost == "" {
		return errors.New("ai config: EmbeddingHost is required")
	}
	if c.GenerationHost == "" {
		return errors.New("ai config: GenerationHost is required")
	}
	if c.EmbeddingModel == "" {
		return errors.New("ai config: EmbeddingModel is required")
	}
	if c.GenerationModel == "" {
		return errors.New("ai config: GenerationModel is required")
	}
	if c.EmbeddingDimension <= 0 {
		return errors.New("ai config: EmbeddingDimension must be positive")
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return errors.New("ai config: Temperature must be between 0 and 2")
	}
	if c.EmbeddingToken == "" {
		return errors.New("ai config: EmbeddingToken is required (set " + EnvEmbeddingToken + ")")
	}
	if c.GenerationToken == "" {
		return errors.New("ai config: GenerationToken is required (set " + EnvGenerationToken + ")")
	}
	return nil
}

func normalizeHost(host string) string {
	if host == "" || strings.HasSuffix(host, "/v1") {
		return host
	}
	// Remove trailing slash if present before adding /v1
	return strings.TrimSuffix(host, "/") + "/v1"
}

func isLoopback(host string) bool {
	u, err := url.Parse(host)
	if err != nil {
		return false
	}
	switch u.Hostname() {
	case "localhost", "127.0.0.1", "::1":
		return true
	}
	return false
}
