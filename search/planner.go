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


package search

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/poiesic/lexcheck/ai"
	"github.com/poiesic/lexcheck/core"
)

// fallbackInputRunes bounds how much of the raw input the deterministic
// template queries embed.
const fallbackInputRunes = 120

// fallbackPrefixes are the slot-specific fixed prefixes used when the
// generated plan is unusable.
var fallbackPrefixes = map[core.SlotName]string{
	core.SlotPharma:    "薬機法 誇大広告 効能効果 未承認医薬品",
	core.SlotPremiums:  "景品表示法 優良誤認 有利誤認",
	core.SlotGuideline: "医薬品等適正広告基準 ガイドライン 運用基準",
}

const plannerSystemPrompt = `You are a legal search expert.
Based on the input text, generate THREE distinct search queries to retrieve relevant legal provisions.

1. "pharma_statute": Focus on the Pharmaceutical and Medical Device Act (薬機法). Use specific legal terms and article numbers.
2. "premiums_statute": Focus on the Act against Unjustifiable Premiums and Misleading Representations (景品表示法). Use specific legal terms and article numbers.
3. "guideline": Focus on administrative guidelines, interpretation standards and advertising criteria. Use terms related to practical application.

Instructions:
1. Identify specific claims in the text that might violate the law.
2. CRITICAL: Generate the queries PRIMARILY IN JAPANESE.
3. Return a JSON object with exactly the keys "pharma_statute", "premiums_statute" and "guideline", each mapping to a query string. Return the JSON object ONLY.

Example output:
{"pharma_statute": "薬機法 第66条 誇大広告 未承認医薬品", "premiums_statute": "景品表示法 優良誤認 打消し表示", "guideline": "医薬品等適正広告基準 効能効果の範囲 ダイエット 痩身"}`

// Planner turns raw input text into one refined query per retrieval
// slot via a text-generation call with a strict output contract.
type Planner struct {
	generator ai.Generator
	logger    *slog.Logger
}

// NewPlanner creates a planner.
func NewPlanner(generator ai.Generator) (*Planner, error) {
	if generator == nil {
		return nil, ErrGeneratorRequired
	}
	return &Planner{
		generator: generator,
		logger:    slog.Default().With("component", "planner"),
	}, nil
}

// Plan generates a query per slot. Malformed output and missing slot
// keys degrade to the deterministic template queries; a failed
// generation call is a provider outage the fallback generator already
// retried once, so it fails the request. The returned usage covers the
// generation call.
func (p *Planner) Plan(ctx context.Context, inputText string) (map[core.SlotName]string, core.Usage, error) {
	result, err := p.generator.Generate(ctx, ai.GenerateRequest{
		System:   plannerSystemPrompt,
		Prompt:   fmt.Sprintf("Input Text:\n%q", inputText),
		JSONMode: true,
	})
	if err != nil {
		return nil, core.Usage{}, fmt.Errorf("query generation failed: %w", err)
	}

	plan, parseErr := parsePlan(result.Text)
	if parseErr != nil {
		p.logger.Warn("malformed query plan, using template queries",
			"response", result.Text, "err", parseErr)
		return FallbackPlan(inputText), result.Usage, nil
	}

	// A slot the model left out still needs a query.
	for _, name := range core.SlotOrder {
		if strings.TrimSpace(plan[name]) == "" {
			p.logger.Warn("plan missing slot, using template query", "slot", name)
			plan[name] = fallbackQuery(name, inputText)
		}
	}

	p.logger.Debug("generated query plan",
		"provider", result.Provider,
		"pharma", plan[core.SlotPharma],
		"premiums", plan[core.SlotPremiums],
		"guideline", plan[core.SlotGuideline])

	return plan, result.Usage, nil
}

// parsePlan decodes the model output into slot queries. Markdown code
// fences and trailing commas are tolerated; anything else malformed is
// an error.
func parsePlan(text string) (map[core.SlotName]string, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)
	text = repairJSON(text)

	var raw map[string]string
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, err
	}

	plan := make(map[core.SlotName]string, len(core.SlotOrder))
	for _, name := range core.SlotOrder {
		plan[name] = raw[string(name)]
	}
	return plan, nil
}

// repairJSON fixes trailing commas before closing braces, a common
// model output defect.
func repairJSON(text string) string {
	text = strings.ReplaceAll(text, ",\n}", "\n}")
	text = strings.ReplaceAll(text, ", }", " }")
	text = strings.ReplaceAll(text, ",}", "}")
	return text
}

// FallbackPlan builds the deterministic template queries: slot prefix
// plus the truncated input text.
func FallbackPlan(inputText string) map[core.SlotName]string {
	plan := make(map[core.SlotName]string, len(core.SlotOrder))
	for _, name := range core.SlotOrder {
		plan[name] = fallbackQuery(name, inputText)
	}
	return plan
}

func fallbackQuery(name core.SlotName, inputText string) string {
	return fallbackPrefixes[name] + " " + truncateRunes(strings.TrimSpace(inputText), fallbackInputRunes)
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
