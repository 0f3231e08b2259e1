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
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/poiesic/lexcheck/core"
)

const (
	// PerSlotQuota caps each slot's contribution to the evidence set.
	PerSlotQuota = 4

	// rankDecay is the base-score step per rank position.
	rankDecay = 0.1

	// primarySourceBoost multiplies hits from primary statute text, so
	// acts outrank their implementing regulations.
	primarySourceBoost = 1.5

	// sectionMatchBoost multiplies hits whose section label appears
	// verbatim in the slot query, rewarding explicitly named articles.
	sectionMatchBoost = 1.3
)

// SubordinateKeywords mark titles of subordinate instruments (cabinet
// orders, enforcement rules, ministerial ordinances). A statute chunk
// whose title contains one of these is not primary law text.
var SubordinateKeywords = []string{
	"施行令",
	"施行規則",
	"省令",
	"府令",
}

// Ranker rescores raw per-slot hits and merges them into one evidence
// set.
type Ranker struct{}

// NewRanker creates a ranker.
func NewRanker() *Ranker {
	return &Ranker{}
}

// Merge turns the raw per-slot hit lists into the final evidence set:
//
//  1. Each hit's base score is 1.0 minus rankDecay per position in its
//     slot's raw list.
//  2. Boost multipliers apply commutatively: primary-source and
//     exact-section-match.
//  3. A hit whose exact content was already taken by an earlier slot is
//     dropped; the slot iteration order is the fixed tie-break.
//  4. Each slot keeps its top PerSlotQuota hits by final score.
//  5. Slot results are concatenated in slot order with no global
//     re-sort, so every category stays represented even when one slot's
//     scores dominate.
//
// A slot with no raw hits contributes nothing without affecting the
// rest.
func (r *Ranker) Merge(slots []core.QuerySlot, raw map[core.SlotName][]core.ScoredHit) core.EvidenceSet {
	seen := make(map[string]bool)
	var evidence core.EvidenceSet

	for _, slot := range slots {
		scored := make([]core.ScoredHit, 0, len(raw[slot.Name]))

		for rank, hit := range raw[slot.Name] {
			if seen[hit.Chunk.Content] {
				continue
			}
			seen[hit.Chunk.Content] = true

			score := 1.0 - float64(rank)*rankDecay
			if IsPrimarySource(hit.Chunk.Meta) {
				score *= primarySourceBoost
			}
			if sectionNamedInQuery(hit.Chunk.Meta.Section, slot.Query) {
				score *= sectionMatchBoost
			}

			scored = append(scored, core.ScoredHit{Chunk: hit.Chunk, Score: score})
		}

		slices.SortStableFunc(scored, func(a, b core.ScoredHit) int {
			if a.Score > b.Score {
				return -1
			}
			if a.Score < b.Score {
				return 1
			}
			return 0
		})
		if len(scored) > PerSlotQuota {
			scored = scored[:PerSlotQuota]
		}

		evidence = append(evidence, scored...)
	}

	return evidence
}

// IsPrimarySource reports whether a chunk is primary statute text: the
// statute category without a subordinate-instrument keyword in its
// title.
func IsPrimarySource(meta core.Metadata) bool {
	if meta.Category != core.CategoryStatute {
		return false
	}
	for _, keyword := range SubordinateKeywords {
		if strings.Contains(meta.Title, keyword) {
			return false
		}
	}
	return true
}

// sectionNamedInQuery reports whether the section label (longer than one
// character) appears verbatim in the query text.
func sectionNamedInQuery(section, query string) bool {
	return utf8.RuneCountInString(section) > 1 && strings.Contains(query, section)
}
