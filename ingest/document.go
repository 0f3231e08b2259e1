package ingest

// Format identifies how a source document's bytes should be chunked.
type Format int

const (
	// FormatUnknown is an unrecognized document format.
	FormatUnknown Format = iota
	// FormatStructuredLaw is e-Gov style statute XML.
	FormatStructuredLaw
	// FormatMarkdown is freeform text with markdown headings.
	FormatMarkdown
	// FormatPageText is pre-extracted page-oriented text (one page per
	// form-feed separated block, as produced by PDF text extraction).
	FormatPageText
)

// String returns the human-readable name of the format.
func (f Format) String() string {
	switch f {
	case FormatStructuredLaw:
		return "structured-law"
	case FormatMarkdown:
		return "markdown"
	case FormatPageText:
		return "page-text"
	default:
		return "unknown"
	}
}

// Document is a raw source document awaiting chunking.
type Document struct {
	// Raw is the document's byte content.
	Raw []byte

	// Format declares how Raw should be interpreted.
	Format Format

	// Path is the source location, used for category classification and
	// provenance metadata.
	Path string
}
