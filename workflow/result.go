package workflow

import (
	"strings"

	"github.com/poiesic/lexcheck/core"
)

// Violation describes one flagged legal issue. The analysis text is
// free-form IRAC prose, so a single violation entry carries the whole
// analysis rather than per-section fragments.
type Violation struct {
	Law      string `json:"law"`
	Section  string `json:"violation_section"`
	Details  string `json:"details"`
	Severity string `json:"severity"`
}

// Recommendation is a suggested rewrite of the checked text.
type Recommendation struct {
	OriginalText string `json:"original_text"`
	RevisedText  string `json:"revised_text"`
	Reason       string `json:"reason"`
}

// AnalysisStep records one pipeline stage for the response trace.
type AnalysisStep struct {
	Step   string `json:"step"`
	Output string `json:"output"`
}

// Result is the presentation shape of a completed compliance check.
type Result struct {
	Compliant       bool             `json:"compliant"`
	ConfidenceScore float64          `json:"confidence_score"`
	Violations      []Violation      `json:"violations"`
	Recommendations []Recommendation `json:"recommendations"`
	AnalysisLog     []AnalysisStep   `json:"analysis_log"`
	Usage           core.Usage       `json:"usage"`
}

// BuildResult converts a finished pipeline state into a Result.
func BuildResult(state State) Result {
	severity := "low"
	if !state.Verdict.Compliant {
		severity = "high"
	}

	result := Result{
		Compliant:       state.Verdict.Compliant,
		ConfidenceScore: state.Verdict.Confidence,
		Violations: []Violation{{
			Law:      "景品表示法 / 薬機法（分析結果参照）",
			Section:  "AI分析",
			Details:  state.Analysis,
			Severity: severity,
		}},
		Recommendations: []Recommendation{{
			OriginalText: state.Input,
			RevisedText:  "AIの提案を確認してください",
			Reason:       state.Recommendations,
		}},
		AnalysisLog: []AnalysisStep{
			{Step: "retrieve", Output: strings.Join(state.Debug.HitTitles, "\n")},
			{Step: "analyze", Output: state.Analysis},
			{Step: "recommend", Output: state.Recommendations},
		},
		Usage: state.Usage,
	}
	return result
}
