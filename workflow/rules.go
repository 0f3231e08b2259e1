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

import "strings"

// Marker tokens the generation prompts instruct the model to emit in
// its conclusion.
const (
	CompliantMarker    = "適合"
	NonCompliantMarker = "不適合"
)

// Verdict is a typed compliance outcome together with the signals that
// produced it, so the decision is auditable and testable.
type Verdict struct {
	// Compliant is false whenever any signal indicates a violation or
	// the signals are ambiguous.
	Compliant bool

	// Confidence is a heuristic 0..1 score for how clearly the signals
	// agreed.
	Confidence float64

	// MatchedPhrases lists the risky phrases found in the input text.
	MatchedPhrases []string

	// MarkerFound reports whether the generated text contained an
	// explicit compliance marker at all.
	MarkerFound bool
}

// RuleSet evaluates structured signals into a Verdict. The generated
// analysis text is free-form, so marker matching stays brittle by
// nature; the rule set keeps the conservative default explicit: when no
// clear compliant signal exists, the content is flagged.
type RuleSet struct {
	// RiskyPhrases are expressions that flag the input regardless of
	// what the model concluded.
	RiskyPhrases []string
}

// DefaultRuleSet returns the standard rule set for Japanese ad copy.
func DefaultRuleSet() *RuleSet {
	return &RuleSet{
		RiskyPhrases: []string{
			"癌が治る",
			"がんが治る",
			"必ず治る",
			"完治",
			"医師が推奨",
			"治療効果",
			"絶対に痩せる",
			"必ず痩せる",
			"副作用なし",
			"最高の効果",
			"世界一",
		},
	}
}

// Evaluate derives the verdict from the input text and the generated
// conclusion text. A compliant verdict requires an explicit compliant
// marker, no non-compliant marker and no risky phrase in the input;
// anything else is non-compliant.
func (r *RuleSet) Evaluate(input, generated string) Verdict {
	var matched []string
	for _, phrase := range r.RiskyPhrases {
		if strings.Contains(input, phrase) {
			matched = append(matched, phrase)
		}
	}

	// The non-compliant marker contains the compliant marker as a
	// substring, so strip it before probing for the positive signal.
	negative := strings.Contains(generated, NonCompliantMarker)
	positive := strings.Contains(strings.ReplaceAll(generated, NonCompliantMarker, ""), CompliantMarker)
	markerFound := negative || positive

	verdict := Verdict{
		MatchedPhrases: matched,
		MarkerFound:    markerFound,
	}

	switch {
	case negative:
		verdict.Compliant = false
		verdict.Confidence = 0.9
	case positive && len(matched) == 0:
		verdict.Compliant = true
		verdict.Confidence = 0.8
	case positive:
		// The model said compliant but the input carries risky
		// phrases: trust the phrase table.
		verdict.Compliant = false
		verdict.Confidence = 0.6
	default:
		// No marker at all: conservative default.
		verdict.Compliant = false
		verdict.Confidence = 0.5
	}

	if len(matched) > 0 && !verdict.Compliant {
		// Phrase table and verdict agree.
		verdict.Confidence += 0.05
		if verdict.Confidence > 1 {
			verdict.Confidence = 1
		}
	}

	return verdict
}
