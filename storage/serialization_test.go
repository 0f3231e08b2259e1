package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/lexcheck/core"
)

func TestMarshalUnmarshalChunk(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		chunk := &core.Chunk{
			ID:      core.IDFromContent("医薬品医療機器等法", "第六十六条"),
			Content: "第六十六条 何人も、医薬品等の名称、製造方法、効能、効果又は性能に関して、虚偽又は誇大な記事を広告してはならない。",
			Meta: core.Metadata{
				Title:         "医薬品医療機器等法",
				Category:      core.CategoryStatute,
				LawGroup:      core.LawGroupPharma,
				Section:       "第六十六条",
				MainProvision: true,
				SourceType:    core.SourceTypeStructuredLaw,
				Path:          "laws/yakkihou.xml",
			},
			Vector: []float32{0.1, -0.5, 0.33, 0},
		}

		data := MarshalChunk(chunk)
		require.NotEmpty(t, data)

		decoded, err := UnmarshalChunk(data)
		require.NoError(t, err)
		assert.Equal(t, chunk, decoded)
	})

	t.Run("zero value", func(t *testing.T) {
		chunk := &core.Chunk{}

		decoded, err := UnmarshalChunk(MarshalChunk(chunk))
		require.NoError(t, err)
		assert.Equal(t, chunk.ID, decoded.ID)
		assert.Empty(t, decoded.Vector)
	})

	t.Run("truncated data", func(t *testing.T) {
		chunk := &core.Chunk{
			ID:      "abc",
			Content: "some guideline text",
			Vector:  []float32{1, 2, 3},
		}
		data := MarshalChunk(chunk)

		_, err := UnmarshalChunk(data[:len(data)/2])
		assert.ErrorIs(t, err, ErrSerializationFailed)
	})

	t.Run("garbage data", func(t *testing.T) {
		_, err := UnmarshalChunk([]byte{0xff, 0xff, 0xff, 0xff, 0xff})
		assert.Error(t, err)
	})
}
