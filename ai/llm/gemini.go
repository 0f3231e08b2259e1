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


package llm

import (
	"context"
	"log/slog"

	"github.com/poiesic/lexcheck/ai"
	"github.com/tmc/langchaingo/llms/googleai"
)

// ProviderGemini identifies results produced by the Gemini generator.
const ProviderGemini = "gemini"

// newGeminiGenerator is an internal constructor that returns the concrete
// type. Used by NewGenerator to assemble the fallback chain.
func newGeminiGenerator(ctx context.Context, config *ai.Config) (*generator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := googleai.New(ctx,
		googleai.WithAPIKey(config.GeminiAPIKey),
		googleai.WithDefaultModel(config.GeminiModel),
	)
	if err != nil {
		return nil, err
	}

	return &generator{
		client:      client,
		provider:    ProviderGemini,
		temperature: config.Temperature,
		logger:      slog.Default().With("component", "gemini-generator"),
	}, nil
}

// NewGeminiGenerator creates a generator backed by the Gemini API.
//
// Returns ai.Generator interface to enforce abstraction.
func NewGeminiGenerator(ctx context.Context, config *ai.Config) (ai.Generator, error) {
	return newGeminiGenerator(ctx, config)
}
