package ingest

import "errors"

var (
	// ErrIndexRequired is returned when an evidence index is not provided.
	ErrIndexRequired = errors.New("evidence index required")

	// ErrEmbedderRequired is returned when an embedder is not provided.
	ErrEmbedderRequired = errors.New("embedder required")

	// ErrUnknownFormat is returned for documents with an unrecognized format.
	ErrUnknownFormat = errors.New("unknown document format")

	// ErrNoArticles is returned when a structured law document contains no
	// extractable articles.
	ErrNoArticles = errors.New("no articles found in document")

	// ErrInvalidMaxAttempts is returned when a retry is configured with a
	// non-positive attempt count.
	ErrInvalidMaxAttempts = errors.New("max attempts must be greater than 0")
)
