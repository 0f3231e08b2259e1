package mock

import (
	"context"
	"errors"

	"github.com/poiesic/lexcheck/ai"
	"github.com/poiesic/lexcheck/core"
)

// defaultUsage is the token accounting reported for every mock response,
// so pipelines that sum usage have something stable to assert on.
var defaultUsage = core.Usage{InputTokens: 10, OutputTokens: 5}

// ErrScriptExhausted is returned when a scripted generator runs out of
// responses.
var ErrScriptExhausted = errors.New("mock: generator script exhausted")

// MockGenerator is a test double for ai.Generator.
// It allows custom behavior injection via function fields, or a fixed
// script of responses returned in order.
type MockGenerator struct {
	// GenerateFunc is called by Generate if set.
	// If nil, responses come from Script, then Response.
	GenerateFunc func(ctx context.Context, req ai.GenerateRequest) (*ai.GenerateResult, error)

	// Script holds responses returned in order across calls. When the
	// script runs out, Generate returns ErrScriptExhausted.
	Script []string

	// Response is returned for every call when Script is empty.
	Response string

	// Err, when set, is returned for every call.
	Err error

	// Requests records every request passed to Generate.
	Requests []ai.GenerateRequest

	callCount int
	scriptPos int
}

// NewMockGenerator creates a mock generator that returns response for
// every call.
func NewMockGenerator(response string) *MockGenerator {
	return &MockGenerator{Response: response}
}

// NewScriptedGenerator creates a mock generator that replays responses in
// order, one per call.
func NewScriptedGenerator(responses ...string) *MockGenerator {
	return &MockGenerator{Script: responses}
}

// Generate returns the next scripted response, the fixed response, or the
// injected behavior's result.
func (m *MockGenerator) Generate(ctx context.Context, req ai.GenerateRequest) (*ai.GenerateResult, error) {
	m.callCount++
	m.Requests = append(m.Requests, req)

	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, req)
	}
	if m.Err != nil {
		return nil, m.Err
	}

	text := m.Response
	if len(m.Script) > 0 {
		if m.scriptPos >= len(m.Script) {
			return nil, ErrScriptExhausted
		}
		text = m.Script[m.scriptPos]
		m.scriptPos++
	}

	return &ai.GenerateResult{
		Text:     text,
		Usage:    defaultUsage,
		Provider: "mock",
	}, nil
}

// CallCount returns the number of times Generate was called.
func (m *MockGenerator) CallCount() int {
	return m.callCount
}

// Reset clears call history and any injected behavior.
func (m *MockGenerator) Reset() {
	m.callCount = 0
	m.scriptPos = 0
	m.Requests = nil
	m.GenerateFunc = nil
	m.Err = nil
}
