package search

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/poiesic/lexcheck/ai"
	"github.com/poiesic/lexcheck/core"
	"github.com/poiesic/lexcheck/storage"
)

// Retriever executes one filtered similarity search per slot against
// the evidence index. Slots are independent: one slot's results never
// affect another slot's search.
type Retriever struct {
	index    storage.EvidenceIndex
	embedder ai.Embedder
	logger   *slog.Logger
}

// NewRetriever creates a retriever.
func NewRetriever(index storage.EvidenceIndex, embedder ai.Embedder) (*Retriever, error) {
	if index == nil {
		return nil, ErrIndexRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	return &Retriever{
		index:    index,
		embedder: embedder,
		logger:   slog.Default().With("component", "retriever"),
	}, nil
}

// Retrieve runs each slot's search and returns the raw hit lists keyed
// by slot name, each ordered best-first by similarity. Index and
// embedding errors are fatal: unlike planning there is no degraded mode
// for a failed search.
func (r *Retriever) Retrieve(ctx context.Context, slots []core.QuerySlot) (map[core.SlotName][]core.ScoredHit, error) {
	results := make(map[core.SlotName][]core.ScoredHit, len(slots))

	for _, slot := range slots {
		vector, err := r.embedder.EmbedText(ctx, slot.Query)
		if err != nil {
			return nil, fmt.Errorf("failed to embed query for slot %s: %w", slot.Name, err)
		}
		core.NormalizeVector(vector)

		filter := slot.Filter
		hits, err := r.index.Query(ctx, vector, slot.TopK, &filter)
		if err != nil {
			return nil, fmt.Errorf("search failed for slot %s: %w", slot.Name, err)
		}

		r.logger.Debug("retrieved slot hits", "slot", slot.Name, "hits", len(hits))
		results[slot.Name] = hits
	}

	return results, nil
}
