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

package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/poiesic/lexcheck/ai"
	"github.com/poiesic/lexcheck/search"
)

// Pipeline runs a compliance check as a fixed three-stage sequence:
// retrieve legal evidence, analyze the text against it, then generate
// rewrite recommendations and a verdict.
type Pipeline struct {
	planner   *search.Planner
	retriever *search.Retriever
	ranker    *search.Ranker
	generator ai.Generator
	rules     *RuleSet
	logger    *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithRules replaces the default verdict rule set.
func WithRules(rules *RuleSet) Option {
	return func(p *Pipeline) error {
		if rules == nil {
			return fmt.Errorf("rules cannot be nil")
		}
		p.rules = rules
		return nil
	}
}

// WithLogger sets the logger used by the pipeline.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			return fmt.Errorf("logger cannot be nil")
		}
		p.logger = logger.With("component", "workflow")
		return nil
	}
}

// NewPipeline creates a compliance-check pipeline.
func NewPipeline(planner *search.Planner, retriever *search.Retriever, generator ai.Generator, opts ...Option) (*Pipeline, error) {
	if planner == nil {
		return nil, ErrPlannerRequired
	}
	if retriever == nil {
		return nil, ErrRetrieverRequired
	}
	if generator == nil {
		return nil, ErrGeneratorRequired
	}

	p := &Pipeline{
		planner:   planner,
		retriever: retriever,
		ranker:    search.NewRanker(),
		generator: generator,
		rules:     DefaultRuleSet(),
		logger:    slog.Default().With("component", "workflow"),
	}
	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Run checks one piece of ad copy and returns the completed state. The
// returned state carries the evidence, analysis, recommendations and
// verdict; on error the partial state is discarded.
func (p *Pipeline) Run(ctx context.Context, input string) (State, error) {
	if strings.TrimSpace(input) == "" {
		return State{}, ErrEmptyInput
	}

	state := NewState(input)

	state, err := p.retrieve(ctx, state)
	if err != nil {
		return State{}, fmt.Errorf("retrieve stage: %w", err)
	}

	state, err = p.analyze(ctx, state)
	if err != nil {
		return State{}, fmt.Errorf("analyze stage: %w", err)
	}

	state, err = p.recommend(ctx, state)
	if err != nil {
		return State{}, fmt.Errorf("recommend stage: %w", err)
	}

	state.Stage = StageDone
	p.logger.Info("compliance check complete",
		"compliant", state.Verdict.Compliant,
		"evidence", len(state.Evidence),
		"input_tokens", state.Usage.InputTokens,
		"output_tokens", state.Usage.OutputTokens)
	return state, nil
}

func (p *Pipeline) retrieve(ctx context.Context, state State) (State, error) {
	state.Stage = StageRetrieve

	plan, usage, err := p.planner.Plan(ctx, state.Input)
	if err != nil {
		return state, err
	}
	state.Usage.Add(usage)

	slots := search.BuildSlots(plan)
	raw, err := p.retriever.Retrieve(ctx, slots)
	if err != nil {
		return state, err
	}

	state.Evidence = p.ranker.Merge(slots, raw)
	state.Debug.GeneratedQueries = plan
	state.Debug.HitCount = len(state.Evidence)
	state.Debug.HitTitles = make([]string, 0, len(state.Evidence))
	for _, hit := range state.Evidence {
		title := hit.Chunk.Meta.Title
		if hit.Chunk.Meta.Section != "" {
			title = title + " - " + hit.Chunk.Meta.Section
		}
		state.Debug.HitTitles = append(state.Debug.HitTitles, title)
	}

	p.logger.Debug("evidence retrieved", "hits", state.Debug.HitCount)
	return state, nil
}

func (p *Pipeline) analyze(ctx context.Context, state State) (State, error) {
	state.Stage = StageAnalyze

	result, err := p.generator.Generate(ctx, ai.GenerateRequest{
		System: analysisSystemPrompt,
		Prompt: analysisPrompt(state.Input, state.Evidence),
	})
	if err != nil {
		return state, err
	}

	state.Analysis = result.Text
	state.Usage.Add(result.Usage)
	p.logger.Debug("analysis generated", "provider", result.Provider)
	return state, nil
}

func (p *Pipeline) recommend(ctx context.Context, state State) (State, error) {
	state.Stage = StageRecommend

	result, err := p.generator.Generate(ctx, ai.GenerateRequest{
		System: recommendationSystemPrompt,
		Prompt: recommendationPrompt(state.Input, state.Analysis),
	})
	if err != nil {
		return state, err
	}

	state.Recommendations = result.Text
	state.Usage.Add(result.Usage)
	state.Verdict = p.rules.Evaluate(state.Input, state.Analysis+"\n"+state.Recommendations)
	return state, nil
}
