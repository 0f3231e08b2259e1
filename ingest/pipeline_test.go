package ingest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/lexcheck/ai/mock"
	"github.com/poiesic/lexcheck/storage"
	"github.com/poiesic/lexcheck/storage/badger"
)

func newTestPipeline(t *testing.T, embedder *mock.MockEmbedder) (*Pipeline, storage.EvidenceIndex) {
	t.Helper()

	index, err := badger.NewMemoryIndex()
	require.NoError(t, err)
	t.Cleanup(func() { index.Close() })

	pipeline, err := NewPipeline(index, embedder, WithPoolSize(2), WithBatchSize(2), WithRetry(1, time.Millisecond))
	require.NoError(t, err)
	t.Cleanup(pipeline.Release)

	return pipeline, index
}

func markdownDoc(path, heading, body string) Document {
	return Document{
		Raw:    []byte("# " + heading + "\n" + body),
		Format: FormatMarkdown,
		Path:   path,
	}
}

func TestPipelineRebuild(t *testing.T) {
	ctx := context.Background()

	t.Run("populates the index", func(t *testing.T) {
		pipeline, index := newTestPipeline(t, mock.NewMockEmbedder())

		docs := []Document{
			markdownDoc("guidelines/a.md", "効能効果の表現", "承認範囲を超える表現は不可。"),
			markdownDoc("guidelines/b.md", "安全性の保証", "絶対安全といった保証表現は不可。"),
		}

		require.NoError(t, pipeline.Rebuild(ctx, docs, false))

		count, err := index.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, count)
	})

	t.Run("skips rebuild when index is populated", func(t *testing.T) {
		embedder := mock.NewMockEmbedder()
		pipeline, index := newTestPipeline(t, embedder)

		first := []Document{markdownDoc("guidelines/a.md", "見出し", "本文テキスト。")}
		require.NoError(t, pipeline.Rebuild(ctx, first, false))
		embedCalls := embedder.CallCount()

		second := []Document{
			markdownDoc("guidelines/a.md", "見出し", "本文テキスト。"),
			markdownDoc("guidelines/b.md", "別の見出し", "別の本文。"),
		}
		require.NoError(t, pipeline.Rebuild(ctx, second, false))

		// No new embedding work, index unchanged.
		assert.Equal(t, embedCalls, embedder.CallCount())
		count, err := index.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("force overrides the skip", func(t *testing.T) {
		pipeline, index := newTestPipeline(t, mock.NewMockEmbedder())

		first := []Document{markdownDoc("guidelines/a.md", "見出し", "本文テキスト。")}
		require.NoError(t, pipeline.Rebuild(ctx, first, false))

		second := []Document{
			markdownDoc("guidelines/a.md", "見出し", "本文テキスト。"),
			markdownDoc("guidelines/b.md", "別の見出し", "別の本文。"),
		}
		require.NoError(t, pipeline.Rebuild(ctx, second, true))

		count, err := index.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, count)
	})

	t.Run("malformed document is skipped", func(t *testing.T) {
		pipeline, index := newTestPipeline(t, mock.NewMockEmbedder())

		docs := []Document{
			{Raw: []byte("<Law><broken"), Format: FormatStructuredLaw, Path: "statutes/broken.xml"},
			markdownDoc("guidelines/ok.md", "有効な文書", "この文書は取り込まれる。"),
		}

		require.NoError(t, pipeline.Rebuild(ctx, docs, false))

		count, err := index.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("embedding failure aborts the rebuild", func(t *testing.T) {
		embedder := mock.NewMockEmbedder()
		embedFail := errors.New("embedding service down")
		embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
			return nil, embedFail
		}
		pipeline, index := newTestPipeline(t, embedder)

		docs := []Document{markdownDoc("guidelines/a.md", "見出し", "本文。")}
		err := pipeline.Rebuild(ctx, docs, false)
		assert.ErrorIs(t, err, embedFail)

		count, err := index.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, count)
	})

	t.Run("vectors are normalized", func(t *testing.T) {
		embedder := mock.NewMockEmbedder()
		embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
			vectors := make([][]float32, len(texts))
			for i := range texts {
				vectors[i] = []float32{3, 4} // length 5 before normalization
			}
			return vectors, nil
		}
		pipeline, index := newTestPipeline(t, embedder)

		docs := []Document{markdownDoc("guidelines/a.md", "見出し", "本文テキスト。")}
		require.NoError(t, pipeline.Rebuild(ctx, docs, false))

		hits, err := index.Query(ctx, []float32{0.6, 0.8}, 1, nil)
		require.NoError(t, err)
		require.Len(t, hits, 1)
		assert.InDelta(t, 1.0, hits[0].Score, 1e-5)
	})
}

func TestNewPipelineValidation(t *testing.T) {
	index, err := badger.NewMemoryIndex()
	require.NoError(t, err)
	defer index.Close()

	_, err = NewPipeline(nil, mock.NewMockEmbedder())
	assert.ErrorIs(t, err, ErrIndexRequired)

	_, err = NewPipeline(index, nil)
	assert.ErrorIs(t, err, ErrEmbedderRequired)
}
