package ingest

import (
	"path/filepath"
	"strings"

	"github.com/poiesic/lexcheck/core"
)

// LawGroupKeywords maps each law group to the title keywords that assign
// a document to it. Keyword matching against the declared law title is an
// explicit approximation, not exact legal classification; titles matching
// no keyword fall back to LawGroupOther.
var LawGroupKeywords = map[core.LawGroup][]string{
	core.LawGroupPharma: {
		"薬機法",
		"医薬品医療機器等法",
		"医薬品、医療機器等の品質、有効性及び安全性の確保等に関する法律",
		"旧薬事法",
	},
	core.LawGroupPremiums: {
		"景品表示法",
		"不当景品類及び不当表示防止法",
		"景表法",
	},
}

// CategoryDirNames maps directory names in a document's path to its
// category. Paths matching no entry classify as CategoryUnknown.
var CategoryDirNames = map[string]core.Category{
	"statutes":    core.CategoryStatute,
	"laws":        core.CategoryStatute,
	"ok_examples": core.CategoryOKExample,
	"ng_examples": core.CategoryNGExample,
	"standards":   core.CategoryStandard,
	"guidelines":  core.CategoryStandard,
}

// ClassifyLawGroup assigns a law group by keyword match against a
// document title.
func ClassifyLawGroup(title string) core.LawGroup {
	for _, group := range []core.LawGroup{core.LawGroupPharma, core.LawGroupPremiums} {
		for _, keyword := range LawGroupKeywords[group] {
			if strings.Contains(title, keyword) {
				return group
			}
		}
	}
	return core.LawGroupOther
}

// ClassifyCategory infers a document category from the directory names in
// its path.
func ClassifyCategory(path string) core.Category {
	dir := filepath.ToSlash(filepath.Dir(path))
	for _, name := range strings.Split(dir, "/") {
		if category, ok := CategoryDirNames[name]; ok {
			return category
		}
	}
	return core.CategoryUnknown
}
