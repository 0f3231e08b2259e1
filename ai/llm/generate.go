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
	"errors"
	"log/slog"

	"github.com/poiesic/lexcheck/ai"
	"github.com/tmc/langchaingo/llms"
)

// ErrNoChoices is returned when the model responds without any content
// choices.
var ErrNoChoices = errors.New("llm: model returned no choices")

// generator is the shared implementation behind the Gemini and OpenAI
// generators. Both wrap an llms.Model and differ only in construction.
type generator struct {
	client      llms.Model
	provider    string
	temperature float64
	logger      *slog.Logger
}

func (g *generator) Generate(ctx context.Context, req ai.GenerateRequest) (*ai.GenerateResult, error) {
	content := make([]llms.MessageContent, 0, 2)
	if req.System != "" {
		content = append(content, llms.MessageContent{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(req.System),
			},
		})
	}
	content = append(content, llms.MessageContent{
		Role: llms.ChatMessageTypeHuman,
		Parts: []llms.ContentPart{
			llms.TextPart(req.Prompt),
		},
	})

	opts := []llms.CallOption{llms.WithTemperature(g.temperature)}
	if req.JSONMode {
		opts = append(opts, llms.WithJSONMode())
	}

	response, err := g.client.GenerateContent(ctx, content, opts...)
	if err != nil {
		g.logger.Error("failed to generate content", "provider", g.provider, "err", err)
		return nil, err
	}

	if len(response.Choices) < 1 {
		g.logger.Warn("no choices returned from model", "provider", g.provider)
		return nil, ErrNoChoices
	}

	choice := response.Choices[0]

	g.logger.Debug("generated content",
		"provider", g.provider,
		"length", len(choice.Content))

	return &ai.GenerateResult{
		Text:     choice.Content,
		Usage:    usageFromChoice(choice),
		Provider: g.provider,
	}, nil
}
