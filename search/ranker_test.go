package search

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/lexcheck/core"
)

func statuteHit(title, section, content string) core.ScoredHit {
	return core.ScoredHit{
		Chunk: core.Chunk{
			ID:      core.IDFromContent(title, section, content),
			Content: content,
			Meta: core.Metadata{
				Title:         title,
				Category:      core.CategoryStatute,
				LawGroup:      core.LawGroupPharma,
				Section:       section,
				MainProvision: true,
			},
		},
	}
}

func guidelineHit(title, content string) core.ScoredHit {
	return core.ScoredHit{
		Chunk: core.Chunk{
			ID:      core.IDFromContent(title, content),
			Content: content,
			Meta: core.Metadata{
				Title:    title,
				Category: core.CategoryStandard,
			},
		},
	}
}

func emptyPlanSlots() []core.QuerySlot {
	return BuildSlots(map[core.SlotName]string{})
}

func TestRankerMergeQuota(t *testing.T) {
	ranker := NewRanker()
	slots := emptyPlanSlots()

	raw := map[core.SlotName][]core.ScoredHit{}
	for _, name := range core.SlotOrder {
		for i := 0; i < SlotTopK; i++ {
			raw[name] = append(raw[name], guidelineHit(
				string(name),
				fmt.Sprintf("%s の内容 %d", name, i),
			))
		}
	}

	evidence := ranker.Merge(slots, raw)

	assert.LessOrEqual(t, len(evidence), PerSlotQuota*len(core.SlotOrder))
	assert.Len(t, evidence, PerSlotQuota*len(core.SlotOrder))
}

func TestRankerMergeDeduplication(t *testing.T) {
	ranker := NewRanker()
	slots := emptyPlanSlots()

	shared := "共通の条文テキスト"
	raw := map[core.SlotName][]core.ScoredHit{
		core.SlotPharma:    {statuteHit("薬機法", "第六十六条", shared)},
		core.SlotPremiums:  {statuteHit("景品表示法", "第五条", shared)},
		core.SlotGuideline: {guidelineHit("基準", shared)},
	}

	evidence := ranker.Merge(slots, raw)

	require.Len(t, evidence, 1)
	// First-seen wins: the pharma slot is processed first.
	assert.Equal(t, "薬機法", evidence[0].Chunk.Meta.Title)

	contents := make(map[string]int)
	for _, hit := range evidence {
		contents[hit.Chunk.Content]++
	}
	for content, n := range contents {
		assert.Equal(t, 1, n, "duplicate content %q", content)
	}
}

func TestRankerBaseScoreDecay(t *testing.T) {
	ranker := NewRanker()
	slots := emptyPlanSlots()

	raw := map[core.SlotName][]core.ScoredHit{
		core.SlotGuideline: {
			guidelineHit("基準", "一位の内容"),
			guidelineHit("基準", "二位の内容"),
			guidelineHit("基準", "三位の内容"),
		},
	}

	evidence := ranker.Merge(slots, raw)
	require.Len(t, evidence, 3)

	assert.InDelta(t, 1.0, evidence[0].Score, 1e-9)
	assert.InDelta(t, 0.9, evidence[1].Score, 1e-9)
	assert.InDelta(t, 0.8, evidence[2].Score, 1e-9)
}

func TestRankerPrimarySourceBoost(t *testing.T) {
	ranker := NewRanker()
	slots := emptyPlanSlots()

	t.Run("statute outranks subordinate instrument at the same rank", func(t *testing.T) {
		primary := ranker.Merge(slots, map[core.SlotName][]core.ScoredHit{
			core.SlotPharma: {statuteHit("医薬品医療機器等法", "第六十六条", "本体法の条文")},
		})
		subordinate := ranker.Merge(slots, map[core.SlotName][]core.ScoredHit{
			core.SlotPharma: {statuteHit("医薬品医療機器等法施行規則", "第二百二十八条", "施行規則の条文")},
		})

		require.Len(t, primary, 1)
		require.Len(t, subordinate, 1)
		assert.Greater(t, primary[0].Score, subordinate[0].Score)
		assert.InDelta(t, 1.5, primary[0].Score, 1e-9)
		assert.InDelta(t, 1.0, subordinate[0].Score, 1e-9)
	})

	t.Run("non-statute categories get no boost", func(t *testing.T) {
		evidence := ranker.Merge(slots, map[core.SlotName][]core.ScoredHit{
			core.SlotGuideline: {guidelineHit("適正広告基準", "基準の内容")},
		})
		require.Len(t, evidence, 1)
		assert.InDelta(t, 1.0, evidence[0].Score, 1e-9)
	})
}

func TestRankerSectionMatchBoost(t *testing.T) {
	ranker := NewRanker()

	slots := BuildSlots(map[core.SlotName]string{
		core.SlotPharma: "薬機法 第六十六条 誇大広告",
	})

	raw := map[core.SlotName][]core.ScoredHit{
		core.SlotPharma: {
			statuteHit("薬機法", "第六十八条", "承認前広告の禁止"),
			statuteHit("薬機法", "第六十六条", "誇大広告の禁止"),
		},
	}

	evidence := ranker.Merge(slots, raw)
	require.Len(t, evidence, 2)

	// Rank 1 with the section boost overtakes rank 0 without it:
	// 0.9 * 1.5 * 1.3 > 1.0 * 1.5.
	assert.Equal(t, "第六十六条", evidence[0].Chunk.Meta.Section)
	assert.InDelta(t, 0.9*1.5*1.3, evidence[0].Score, 1e-9)
	assert.InDelta(t, 1.0*1.5, evidence[1].Score, 1e-9)
}

func TestRankerSlotOrderPreserved(t *testing.T) {
	ranker := NewRanker()
	slots := emptyPlanSlots()

	// The guideline hit outscores the rank-1 pharma hit, but slot
	// concatenation still lists every pharma hit first.
	subordinate := func(content string) core.ScoredHit {
		return core.ScoredHit{Chunk: core.Chunk{Content: content, Meta: core.Metadata{
			Title: "薬機法施行規則", Category: core.CategoryStatute,
		}}}
	}
	raw := map[core.SlotName][]core.ScoredHit{
		core.SlotPharma: {
			subordinate("施行規則の条文一"),
			subordinate("施行規則の条文二"),
		},
		core.SlotGuideline: {guidelineHit("基準", "ガイドラインの内容")},
	}

	evidence := ranker.Merge(slots, raw)
	require.Len(t, evidence, 3)
	assert.Equal(t, "施行規則の条文一", evidence[0].Chunk.Content)
	assert.Equal(t, "施行規則の条文二", evidence[1].Chunk.Content)
	assert.Equal(t, "ガイドラインの内容", evidence[2].Chunk.Content)
	assert.Greater(t, evidence[2].Score, evidence[1].Score)
}

func TestRankerEmptySlot(t *testing.T) {
	ranker := NewRanker()
	slots := emptyPlanSlots()

	raw := map[core.SlotName][]core.ScoredHit{
		core.SlotPremiums: {statuteHit("景品表示法", "第五条", "不当表示の禁止")},
	}

	evidence := ranker.Merge(slots, raw)
	require.Len(t, evidence, 1)
	assert.Equal(t, "第五条", evidence[0].Chunk.Meta.Section)
}

func TestIsPrimarySource(t *testing.T) {
	tests := []struct {
		title    string
		category core.Category
		expected bool
	}{
		{"医薬品医療機器等法", core.CategoryStatute, true},
		{"医薬品医療機器等法施行令", core.CategoryStatute, false},
		{"医薬品医療機器等法施行規則", core.CategoryStatute, false},
		{"厚生労働省令第一号", core.CategoryStatute, false},
		{"内閣府令第十号", core.CategoryStatute, false},
		{"医薬品等適正広告基準", core.CategoryStandard, false},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			meta := core.Metadata{Title: tt.title, Category: tt.category}
			assert.Equal(t, tt.expected, IsPrimarySource(meta))
		})
	}
}
