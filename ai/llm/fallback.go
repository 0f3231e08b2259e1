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
	"fmt"
	"log/slog"

	"github.com/poiesic/lexcheck/ai"
)

// FallbackGenerator tries a primary generator and, when it fails, retries
// the same request against a secondary generator. A failed primary call
// returns no usable usage metadata, so the secondary result's usage is
// reported as-is.
type FallbackGenerator struct {
	primary   ai.Generator
	secondary ai.Generator
	logger    *slog.Logger
}

// NewFallbackGenerator wraps primary with a secondary generator. The
// secondary may be nil, in which case primary failures are returned
// directly.
func NewFallbackGenerator(primary, secondary ai.Generator) *FallbackGenerator {
	return &FallbackGenerator{
		primary:   primary,
		secondary: secondary,
		logger:    slog.Default().With("component", "fallback-generator"),
	}
}

// NewGenerator builds the standard generation chain from config: Gemini
// as primary, OpenAI as secondary when a fallback key is configured.
func NewGenerator(ctx context.Context, config *ai.Config) (ai.Generator, error) {
	primary, err := newGeminiGenerator(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create primary generator: %w", err)
	}

	if !config.HasFallback() {
		return NewFallbackGenerator(primary, nil), nil
	}

	secondary, err := newOpenAIGenerator(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create fallback generator: %w", err)
	}

	return NewFallbackGenerator(primary, secondary), nil
}

// Generate runs the request against the primary generator, falling back
// to the secondary on error. Context cancellation is not retried.
func (f *FallbackGenerator) Generate(ctx context.Context, req ai.GenerateRequest) (*ai.GenerateResult, error) {
	result, primaryErr := f.primary.Generate(ctx, req)
	if primaryErr == nil {
		return result, nil
	}

	if f.secondary == nil {
		return nil, primaryErr
	}
	if ctx.Err() != nil {
		return nil, primaryErr
	}

	f.logger.Warn("primary generator failed, trying fallback", "err", primaryErr)

	result, err := f.secondary.Generate(ctx, req)
	if err != nil {
		f.logger.Error("fallback generator failed", "err", err)
		return nil, fmt.Errorf("all generators failed: primary: %v; fallback: %w", primaryErr, err)
	}

	return result, nil
}
