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
	"context"

	"github.com/poiesic/lexcheck/core"
)

// Embedder generates vector embeddings from text.
type Embedder interface {
	// EmbedText generates an embedding vector for a single text.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates embedding vectors for multiple texts in one
	// call. The returned slice has one vector per input, in input order.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// GenerateRequest describes a single text generation call.
type GenerateRequest struct {
	// System is the system prompt setting the model's role. Optional.
	System string

	// Prompt is the user-facing request text.
	Prompt string

	// JSONMode asks the provider to constrain output to a single JSON
	// object. Not all providers honor it; callers must still tolerate
	// fenced or decorated output.
	JSONMode bool
}

// GenerateResult is the outcome of a generation call.
type GenerateResult struct {
	// Text is the model's response text.
	Text string

	// Usage is the token accounting for this call. Zero when the
	// provider does not report usage.
	Usage core.Usage

	// Provider names the provider that produced the response, e.g.
	// "gemini" or "openai". With fallback generators this identifies
	// which provider actually answered.
	Provider string
}

// Generator produces text completions from a language model.
type Generator interface {
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResult, error)
}
