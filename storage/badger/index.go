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


package badger

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/dgraph-io/badger/v4"

	"github.com/poiesic/lexcheck/core"
	"github.com/poiesic/lexcheck/storage"
)

// EvidenceIndex implements storage.EvidenceIndex on top of BadgerDB.
// Queries do a full scan with a dot-product similarity ranking, which
// is fine at legal-corpus scale (thousands of chunks, not millions).
type EvidenceIndex struct {
	backend *Backend
	logger  *slog.Logger

	// mu serializes rebuilds against reads. The rebuild clears and
	// repopulates the collection in separate commits, so a read started
	// in between would see a partially rebuilt index; readers block for
	// the duration of the swap instead.
	mu sync.RWMutex
}

// NewEvidenceIndex creates an evidence index using the given backend.
func NewEvidenceIndex(backend *Backend) (storage.EvidenceIndex, error) {
	if backend == nil {
		return nil, fmt.Errorf("backend is required")
	}
	return &EvidenceIndex{
		backend: backend,
		logger:  slog.Default().With("component", "evidence-index"),
	}, nil
}

// Rebuild replaces the entire index contents with the given chunks.
func (idx *EvidenceIndex) Rebuild(ctx context.Context, chunks []core.Chunk) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	if idx.backend.IsClosed() {
		return storage.ErrStorageClosed
	}

	for i := range chunks {
		if err := core.ValidateChunk(&chunks[i]); err != nil {
			return err
		}
		if len(chunks[i].Vector) == 0 {
			return fmt.Errorf("%w: %s", storage.ErrMissingVector, chunks[i].ID)
		}
	}

	if err := idx.backend.DropAll(); err != nil {
		return fmt.Errorf("failed to clear index: %w", err)
	}

	batch := idx.backend.NewWriteBatch()
	defer batch.Cancel()

	for i := range chunks {
		if err := ctx.Err(); err != nil {
			return err
		}
		chunk := &chunks[i]
		if err := batch.Set(makeChunkKey(chunk.ID), storage.MarshalChunk(chunk)); err != nil {
			return fmt.Errorf("failed to write chunk %s: %w", chunk.ID, err)
		}
	}

	if err := batch.Flush(); err != nil {
		return fmt.Errorf("failed to flush index: %w", err)
	}

	idx.logger.Info("rebuilt evidence index", "chunks", len(chunks))
	return nil
}

// Query returns the topK chunks most similar to the given vector,
// restricted by filter when non-nil.
func (idx *EvidenceIndex) Query(ctx context.Context, vector []float32, topK int, filter *core.Filter) ([]core.ScoredHit, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	if idx.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}
	if len(vector) == 0 {
		return nil, fmt.Errorf("%w: empty query vector", storage.ErrInvalidQuery)
	}
	if topK <= 0 {
		return nil, fmt.Errorf("%w: topK must be positive", storage.ErrInvalidQuery)
	}

	var hits []core.ScoredHit

	err := idx.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(chunkPrefix)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}

			var chunk *core.Chunk
			err := iter.Item().Value(func(val []byte) error {
				var err error
				chunk, err = storage.UnmarshalChunk(val)
				return err
			})
			if err != nil {
				return err
			}

			if filter != nil && !filter.Matches(chunk.Meta) {
				continue
			}
			if len(chunk.Vector) == 0 {
				continue
			}

			// Cosine similarity (dot product for normalized vectors)
			hits = append(hits, core.ScoredHit{
				Chunk: *chunk,
				Score: float64(dotProduct(vector, chunk.Vector)),
			})
		}

		return nil
	}, false)

	if err != nil {
		return nil, err
	}

	// Sort by similarity descending
	slices.SortFunc(hits, func(a, b core.ScoredHit) int {
		if a.Score > b.Score {
			return -1
		}
		if a.Score < b.Score {
			return 1
		}
		return 0
	})

	if len(hits) > topK {
		hits = hits[:topK]
	}

	return hits, nil
}

// Count returns the number of chunks in the index.
func (idx *EvidenceIndex) Count(ctx context.Context) (int, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	if idx.backend.IsClosed() {
		return 0, storage.ErrStorageClosed
	}

	count := 0
	err := idx.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(chunkPrefix)
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			count++
		}
		return nil
	}, false)

	if err != nil {
		return 0, err
	}
	return count, nil
}

// Close closes the underlying backend.
func (idx *EvidenceIndex) Close() error {
	return idx.backend.Close()
}

// dotProduct calculates the dot product of two vectors.
func dotProduct(a, b []float32) float32 {
	var sum float32
	minLen := len(a)
	if len(b) < minLen {
		minLen = len(b)
	}
	for i := 0; i < minLen; i++ {
		sum += a[i] * b[i]
	}
	return sum
}
