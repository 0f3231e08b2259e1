package core

import (
	"encoding/hex"
	"strings"

	"github.com/go-crypt/x/blake2b"
)

// IDFromContent generates a deterministic chunk ID from its identifying
// parts using BLAKE2b hashing. Identical parts always produce the same ID,
// so rebuilding the index never changes chunk identity.
func IDFromContent(parts ...string) string {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(strings.Join(parts, "\x00")))
	return hex.EncodeToString(h.Sum(nil))
}

// Category classifies the kind of legal source a chunk came from.
type Category int

const (
	// CategoryUnknown is the zero value for unclassified sources.
	CategoryUnknown Category = iota
	// CategoryStatute marks statute text (acts and their subordinate
	// instruments).
	CategoryStatute
	// CategoryOKExample marks curated examples of permissible phrasing.
	CategoryOKExample
	// CategoryNGExample marks curated examples of violating phrasing.
	CategoryNGExample
	// CategoryStandard marks administrative standards and guidelines.
	CategoryStandard
)

func (c Category) String() string {
	switch c {
	case CategoryStatute:
		return "statute"
	case CategoryOKExample:
		return "ok_example"
	case CategoryNGExample:
		return "ng_example"
	case CategoryStandard:
		return "standard"
	default:
		return "unknown"
	}
}

// LawGroup identifies which body of law a chunk belongs to, derived from
// keyword matches against the source document title. The match is an
// approximation, not an exact legal classification.
type LawGroup int

const (
	// LawGroupOther is the fallback when no keyword matches.
	LawGroupOther LawGroup = iota
	// LawGroupPharma covers the Pharmaceutical and Medical Device Act
	// family.
	LawGroupPharma
	// LawGroupPremiums covers the Act against Unjustifiable Premiums and
	// Misleading Representations family.
	LawGroupPremiums
)

func (g LawGroup) String() string {
	switch g {
	case LawGroupPharma:
		return "pharma"
	case LawGroupPremiums:
		return "premiums"
	default:
		return "other"
	}
}

// SourceType records the document format a chunk was extracted from.
type SourceType int

const (
	SourceTypeUnknown SourceType = iota
	// SourceTypeStructuredLaw is statute XML in the standard law schema.
	SourceTypeStructuredLaw
	// SourceTypeMarkdown is a freeform markdown document.
	SourceTypeMarkdown
	// SourceTypePageText is page-oriented text extracted from PDF-like
	// sources.
	SourceTypePageText
)

func (s SourceType) String() string {
	switch s {
	case SourceTypeStructuredLaw:
		return "structured_law"
	case SourceTypeMarkdown:
		return "markdown"
	case SourceTypePageText:
		return "page_text"
	default:
		return "unknown"
	}
}

// Metadata carries the filterable attributes of a chunk.
type Metadata struct {
	Title         string
	Category      Category
	LawGroup      LawGroup
	Section       string
	MainProvision bool
	SourceType    SourceType
	Path          string
}

// Chunk is an indexable unit of legal text. Content is normalized text,
// optionally enriched with a title/section prefix to aid embedding
// quality. Vector is populated during index rebuild.
type Chunk struct {
	ID      string
	Content string
	Meta    Metadata
	Vector  []float32
}

// Filter is a conjunction of metadata constraints applied at query time.
// Nil pointer fields are unconstrained. NotCategory is the single negation
// form the retrieval slots need.
type Filter struct {
	Category    *Category
	NotCategory *Category
	LawGroup    *LawGroup
	MainOnly    bool
}

// Matches reports whether the metadata satisfies every set constraint.
func (f Filter) Matches(m Metadata) bool {
	if f.Category != nil && m.Category != *f.Category {
		return false
	}
	if f.NotCategory != nil && m.Category == *f.NotCategory {
		return false
	}
	if f.LawGroup != nil && m.LawGroup != *f.LawGroup {
		return false
	}
	if f.MainOnly && !m.MainProvision {
		return false
	}
	return true
}

// CategoryIs returns a filter constraint for a category value.
func CategoryIs(c Category) *Category { return &c }

// LawGroupIs returns a filter constraint for a law group value.
func LawGroupIs(g LawGroup) *LawGroup { return &g }

// SlotName names one of the fixed retrieval intents.
type SlotName string

const (
	// SlotPharma retrieves pharmaceutical-act statute text.
	SlotPharma SlotName = "pharma_statute"
	// SlotPremiums retrieves premiums-and-representations statute text.
	SlotPremiums SlotName = "premiums_statute"
	// SlotGuideline retrieves administrative guidance and examples.
	SlotGuideline SlotName = "guideline"
)

// SlotOrder is the fixed processing order of the retrieval slots. The
// order doubles as the deduplication tie-break: a chunk surfacing in an
// earlier slot is kept there and dropped from later slots.
var SlotOrder = []SlotName{SlotPharma, SlotPremiums, SlotGuideline}

// QuerySlot is a single retrieval intent: a generated query plus the
// metadata filter constraining its search. Slots are created fresh per
// request and never persisted.
type QuerySlot struct {
	Name   SlotName
	Query  string
	Filter Filter
	TopK   int
}

// ScoredHit is an evidence candidate. Score is a derived ranking score
// (rank decay times boost factors), not a raw similarity distance.
type ScoredHit struct {
	Chunk Chunk
	Score float64
}

// EvidenceSet is the merged, capped, slot-ordered sequence of hits owned
// by a single request.
type EvidenceSet []ScoredHit

// Contents returns the content strings of the evidence in order.
func (e EvidenceSet) Contents() []string {
	out := make([]string, len(e))
	for i, hit := range e {
		out[i] = hit.Chunk.Content
	}
	return out
}

// Usage accumulates token counters from text-generation calls. It is
// observability data only; correctness never depends on it.
type Usage struct {
	InputTokens  int
	OutputTokens int
}

// Add merges another usage record into this one.
func (u *Usage) Add(other Usage) {
	u.InputTokens += other.InputTokens
	u.OutputTokens += other.OutputTokens
}
