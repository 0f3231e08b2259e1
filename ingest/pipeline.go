package ingest

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/poiesic/lexcheck/ai"
	"github.com/poiesic/lexcheck/core"
	"github.com/poiesic/lexcheck/storage"
)

const (
	defaultBatchSize   = 16
	defaultMaxRetries  = 3
	defaultRetryDelay  = 1 * time.Second
	progressBatchCount = 100
)

// Pipeline orchestrates chunking, embedding and index rebuilds.
// Embedding batches run concurrently on a worker pool; the rebuild
// itself replaces the entire index in one operation.
type Pipeline struct {
	index      storage.EvidenceIndex
	embedder   ai.Embedder
	chunker    *Chunker
	pool       *ants.Pool
	batchSize  int
	maxRetries int
	retryDelay time.Duration
	progressW  io.Writer
	logger     *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent embedding.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		if p.pool != nil {
			p.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.pool = pool
		return nil
	}
}

// WithBatchSize sets how many chunks are embedded per provider call.
func WithBatchSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}
		p.batchSize = size
		return nil
	}
}

// WithRetry configures retry behavior for embedding calls.
// baseDelay doubles on each retry.
func WithRetry(maxAttempts int, baseDelay time.Duration) Option {
	return func(p *Pipeline) error {
		if maxAttempts <= 0 {
			return ErrInvalidMaxAttempts
		}
		p.maxRetries = maxAttempts
		p.retryDelay = baseDelay
		return nil
	}
}

// WithProgress reports embedding progress to w during rebuilds.
func WithProgress(w io.Writer) Option {
	return func(p *Pipeline) error {
		p.progressW = w
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates an ingestion pipeline.
func NewPipeline(index storage.EvidenceIndex, embedder ai.Embedder, opts ...Option) (*Pipeline, error) {
	if index == nil {
		return nil, ErrIndexRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		index:      index,
		embedder:   embedder,
		chunker:    NewChunker(),
		pool:       pool,
		batchSize:  defaultBatchSize,
		maxRetries: defaultMaxRetries,
		retryDelay: defaultRetryDelay,
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	return p, nil
}

// Rebuild chunks the documents, embeds every chunk and replaces the
// index contents. When force is false and the index is already
// populated, the rebuild is skipped; the skip avoids re-embedding cost
// at startup but can preserve an outdated index, so force exists to
// override it.
func (p *Pipeline) Rebuild(ctx context.Context, docs []Document, force bool) error {
	if !force {
		count, err := p.index.Count(ctx)
		if err != nil {
			return err
		}
		if count > 0 {
			p.logger.Info("index already populated, skipping rebuild", "chunks", count)
			return nil
		}
	}

	chunks := p.chunkAll(docs)
	if err := p.embedAll(ctx, chunks); err != nil {
		return err
	}

	return p.index.Rebuild(ctx, chunks)
}

// chunkAll chunks every document. A document that fails to chunk is
// logged and skipped so one malformed source cannot abort the batch.
func (p *Pipeline) chunkAll(docs []Document) []core.Chunk {
	var chunks []core.Chunk
	for _, doc := range docs {
		docChunks, err := p.chunker.Chunk(doc)
		if err != nil {
			p.logger.Warn("skipping document", "path", doc.Path, "err", err)
			continue
		}
		chunks = append(chunks, docChunks...)
	}

	p.logger.Info("chunked source documents", "documents", len(docs), "chunks", len(chunks))
	return chunks
}

// embedAll embeds all chunks in concurrent batches and normalizes the
// vectors so the index can rank by dot product.
func (p *Pipeline) embedAll(ctx context.Context, chunks []core.Chunk) error {
	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	setErr := func(err error) {
		mu.Lock()
		defer mu.Unlock()
		if firstErr == nil {
			firstErr = err
		}
	}

	var tracker *ProgressTracker
	if p.progressW != nil {
		tracker = NewProgressTracker(p.progressW, len(chunks), progressBatchCount)
		tracker.Start()
	}

	for start := 0; start < len(chunks); start += p.batchSize {
		end := start + p.batchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		batch := chunks[start:end]

		wg.Add(1)
		err := p.pool.Submit(func() {
			defer wg.Done()

			texts := make([]string, len(batch))
			for i := range batch {
				texts[i] = batch[i].Content
			}

			var vectors [][]float32
			embedErr := RetryWithBackoff(ctx, func() error {
				var err error
				vectors, err = p.embedder.EmbedTexts(ctx, texts)
				return err
			}, p.maxRetries, p.retryDelay)
			if embedErr != nil {
				setErr(embedErr)
				return
			}
			if len(vectors) != len(batch) {
				setErr(fmt.Errorf("embedder returned %d vectors for %d texts", len(vectors), len(batch)))
				return
			}

			for i := range batch {
				batch[i].Vector = core.NormalizeVector(vectors[i])
			}
			if tracker != nil {
				tracker.Increment(len(batch))
			}
		})
		if err != nil {
			wg.Done()
			setErr(err)
			break
		}
	}

	wg.Wait()
	if tracker != nil && firstErr == nil {
		tracker.Finish()
		p.logger.Info("embedded chunks", "chunks", len(chunks), "elapsed", tracker.Elapsed())
	}
	return firstErr
}

// Release releases the worker pool. The pipeline should not be used
// after calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}
