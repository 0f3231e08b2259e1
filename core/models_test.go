package core

import (
	"testing"
)

func TestIDFromContent(t *testing.T) {
	id1 := IDFromContent("path/to/law.xml", "第六十六条", "何人も誇大広告をしてはならない")
	id2 := IDFromContent("path/to/law.xml", "第六十六条", "何人も誇大広告をしてはならない")

	if id1 != id2 {
		t.Errorf("IDFromContent() produced different IDs for same parts: %s vs %s", id1, id2)
	}
	if len(id1) != 16 {
		t.Errorf("IDFromContent() expected 16 hex chars, got %d (%s)", len(id1), id1)
	}
}

func TestIDFromContent_Different(t *testing.T) {
	id1 := IDFromContent("a", "b")
	id2 := IDFromContent("a", "c")
	if id1 == id2 {
		t.Errorf("IDFromContent() produced identical IDs for different parts: %s", id1)
	}

	// Part boundaries matter: ("ab","c") must differ from ("a","bc").
	id3 := IDFromContent("ab", "c")
	id4 := IDFromContent("a", "bc")
	if id3 == id4 {
		t.Errorf("IDFromContent() ignored part boundaries: %s", id3)
	}
}

func TestFilterMatches(t *testing.T) {
	statuteMain := Metadata{Category: CategoryStatute, LawGroup: LawGroupPharma, MainProvision: true}
	statuteSuppl := Metadata{Category: CategoryStatute, LawGroup: LawGroupPharma}
	guideline := Metadata{Category: CategoryStandard, LawGroup: LawGroupOther}

	tests := []struct {
		name   string
		filter Filter
		meta   Metadata
		want   bool
	}{
		{"empty filter matches anything", Filter{}, guideline, true},
		{"category match", Filter{Category: CategoryIs(CategoryStatute)}, statuteMain, true},
		{"category mismatch", Filter{Category: CategoryIs(CategoryStatute)}, guideline, false},
		{"negated category excludes", Filter{NotCategory: CategoryIs(CategoryStatute)}, statuteMain, false},
		{"negated category passes others", Filter{NotCategory: CategoryIs(CategoryStatute)}, guideline, true},
		{"law group match", Filter{LawGroup: LawGroupIs(LawGroupPharma)}, statuteMain, true},
		{"law group mismatch", Filter{LawGroup: LawGroupIs(LawGroupPremiums)}, statuteMain, false},
		{"main only excludes supplementary", Filter{MainOnly: true}, statuteSuppl, false},
		{"main only passes main", Filter{MainOnly: true}, statuteMain, true},
		{
			"conjunction",
			Filter{Category: CategoryIs(CategoryStatute), LawGroup: LawGroupIs(LawGroupPharma), MainOnly: true},
			statuteMain,
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.Matches(tt.meta); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUsageAdd(t *testing.T) {
	u := Usage{InputTokens: 10, OutputTokens: 5}
	u.Add(Usage{InputTokens: 3, OutputTokens: 7})
	if u.InputTokens != 13 || u.OutputTokens != 12 {
		t.Errorf("Add() = %+v, want {13 12}", u)
	}
}
