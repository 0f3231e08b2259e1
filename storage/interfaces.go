package storage

import (
	"context"

	"github.com/poiesic/lexcheck/core"
)

// EvidenceIndex stores embedded evidence chunks and answers similarity
// queries over them. Implementations must be thread-safe and support
// concurrent access.
type EvidenceIndex interface {
	// Rebuild replaces the entire index contents with the given chunks.
	// Every chunk must carry a vector; the previous contents are
	// discarded atomically with respect to concurrent queries.
	Rebuild(ctx context.Context, chunks []core.Chunk) error

	// Query returns the chunks most similar to the given vector, up to
	// topK results, ordered by similarity score (highest first). A
	// non-nil filter restricts candidates by metadata before ranking.
	Query(ctx context.Context, vector []float32, topK int, filter *core.Filter) ([]core.ScoredHit, error)

	// Count returns the number of chunks in the index.
	Count(ctx context.Context) (int, error)

	// Close closes the storage backend and releases resources.
	Close() error
}
