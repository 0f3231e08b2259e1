package workflow

import "github.com/poiesic/lexcheck/core"

// Stage names a step of the compliance pipeline. Stages run linearly,
// each exactly once per request.
type Stage int

const (
	// StageRetrieve plans queries and gathers evidence.
	StageRetrieve Stage = iota
	// StageAnalyze reviews the input against the evidence.
	StageAnalyze
	// StageRecommend proposes compliant alternatives and derives the
	// verdict.
	StageRecommend
	// StageDone is the terminal stage.
	StageDone
)

func (s Stage) String() string {
	switch s {
	case StageRetrieve:
		return "retrieve"
	case StageAnalyze:
		return "analyze"
	case StageRecommend:
		return "recommend"
	case StageDone:
		return "done"
	default:
		return "unknown"
	}
}

// Debug carries retrieval diagnostics for observability. Nothing
// downstream depends on it.
type Debug struct {
	GeneratedQueries map[core.SlotName]string
	HitCount         int
	HitTitles        []string
}

// State is the record threaded through the pipeline. Each stage
// receives it by value and returns the updated copy, so a stage never
// observes another stage's partial writes. The state is owned by a
// single request and discarded after the final output is produced.
type State struct {
	// Input is the text under review.
	Input string

	// Stage is the next stage to run.
	Stage Stage

	// Evidence is the merged evidence set from the retrieve stage.
	Evidence core.EvidenceSet

	// Analysis is the analyze stage's raw IRAC analysis text.
	Analysis string

	// Recommendations is the recommend stage's alternative phrasing
	// text.
	Recommendations string

	// Verdict is the rule-evaluated compliance outcome.
	Verdict Verdict

	// Usage accumulates token counters across every generation call,
	// including failed primary-provider attempts' successors.
	Usage core.Usage

	// Debug carries retrieval diagnostics.
	Debug Debug
}

// NewState creates the initial state for one request.
func NewState(input string) State {
	return State{
		Input: input,
		Stage: StageRetrieve,
	}
}
