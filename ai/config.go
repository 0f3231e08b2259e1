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
	"strings"
)

// Config holds configuration for AI service providers.
type Config struct {
	// EmbeddingHost is the base URL for the embedding service API.
	// Example: "http://localhost:11434/v1" for a local OpenAI-compatible
	// server.
	EmbeddingHost string

	// EmbeddingModel is the model identifier to use for text embeddings.
	// Example: "embeddinggemma", "text-embedding-3-small"
	EmbeddingModel string

	// GeminiAPIKey authenticates the primary generation provider.
	GeminiAPIKey string

	// GeminiModel is the primary generation model identifier.
	// Example: "gemini-2.5-flash"
	GeminiModel string

	// OpenAIAPIKey authenticates the secondary generation provider.
	// Optional: when empty, no fallback provider is configured and a
	// primary-provider failure fails the request.
	OpenAIAPIKey string

	// OpenAIModel is the secondary generation model identifier.
	// Example: "gpt-4o"
	OpenAIModel string

	// Temperature controls generation randomness. Legal analysis wants
	// deterministic output, so the default is 0.
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

// WithEmbeddingModel sets the embedding model identifier.
func WithEmbeddingModel(model string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingModel = model
	}
}

// WithGemini sets the primary generation provider credentials and model.
func WithGemini(apiKey, model string) ConfigOption {
	return func(c *Config) {
		c.GeminiAPIKey = apiKey
		c.GeminiModel = model
	}
}

// WithOpenAIFallback sets the secondary generation provider credentials
// and model.
func WithOpenAIFallback(apiKey, model string) ConfigOption {
	return func(c *Config) {
		c.OpenAIAPIKey = apiKey
		c.OpenAIModel = model
	}
}

// WithTemperature sets the generation temperature.
func WithTemperature(t float64) ConfigOption {
	return func(c *Config) {
		c.Temperature = t
	}
}

// DefaultConfig returns a Config with sensible defaults. Credentials must
// still be supplied before the config validates.
func DefaultConfig() *Config {
	return &Config{
		EmbeddingHost:  "http://localhost:11434/v1",
		EmbeddingModel: "embeddinggemma",
		GeminiModel:    "gemini-2.5-flash",
		OpenAIModel:    "gpt-4o",
		Temperature:    0,
	}
}

// NewConfig creates a Config with the default values and applies the
// provided options.
//
// Example:
//
//	cfg := ai.NewConfig(
//	    ai.WithGemini(os.Getenv("GEMINI_API_KEY"), "gemini-2.5-flash"),
//	    ai.WithEmbeddingHost("http://localhost:11434"),
//	)
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize ensures the configuration is in a canonical form. It adds the
// /v1 suffix to the embedding host if missing, which is required by most
// OpenAI-compatible APIs (Ollama, LocalAI, vLLM, etc).
func (c *Config) Normalize() {
	if c.EmbeddingHost != "" && !strings.HasSuffix(c.EmbeddingHost, "/v1") {
		c.EmbeddingHost = strings.TrimSuffix(c.EmbeddingHost, "/")
		c.EmbeddingHost = c.EmbeddingHost + "/v1"
	}
}

// HasFallback reports whether a secondary generation provider is
// configured.
func (c *Config) HasFallback() bool {
	return c.OpenAIAPIKey != ""
}

// Validate checks that the configuration is valid and complete. It
// automatically normalizes the configuration before validation.
func (c *Config) Validate() error {
	c.Normalize()

	if c.EmbeddingHost == "" {
		return errors.New("ai config: EmbeddingHost is required")
	}
	if c.EmbeddingModel == "" {
		return errors.New("ai config: EmbeddingModel is required")
	}
	if c.GeminiAPIKey == "" {
		return errors.New("ai config: GeminiAPIKey is required")
	}
	if c.GeminiModel == "" {
		return errors.New("ai config: GeminiModel is required")
	}
	if c.OpenAIAPIKey != "" && c.OpenAIModel == "" {
		return errors.New("ai config: OpenAIModel is required when OpenAIAPIKey is set")
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return errors.New("ai config: Temperature must be between 0 and 2")
	}
	return nil
}
