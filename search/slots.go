package search

import "github.com/poiesic/lexcheck/core"

// SlotTopK is the per-slot raw retrieval depth. It is larger than
// PerSlotQuota so re-ranking has candidates to choose from.
const SlotTopK = 10

// slotFilters fixes the metadata constraint of each retrieval slot. The
// statute slots search primary law text only (main provisions of the
// respective law group); the guideline slot searches everything that is
// not statute text.
var slotFilters = map[core.SlotName]core.Filter{
	core.SlotPharma: {
		Category: core.CategoryIs(core.CategoryStatute),
		LawGroup: core.LawGroupIs(core.LawGroupPharma),
		MainOnly: true,
	},
	core.SlotPremiums: {
		Category: core.CategoryIs(core.CategoryStatute),
		LawGroup: core.LawGroupIs(core.LawGroupPremiums),
		MainOnly: true,
	},
	core.SlotGuideline: {
		NotCategory: core.CategoryIs(core.CategoryStatute),
	},
}

// BuildSlots pairs the planned query texts with each slot's fixed filter
// and retrieval depth, in the fixed slot order.
func BuildSlots(plan map[core.SlotName]string) []core.QuerySlot {
	slots := make([]core.QuerySlot, 0, len(core.SlotOrder))
	for _, name := range core.SlotOrder {
		slots = append(slots, core.QuerySlot{
			Name:   name,
			Query:  plan[name],
			Filter: slotFilters[name],
			TopK:   SlotTopK,
		})
	}
	return slots
}
