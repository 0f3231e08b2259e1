package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/lexcheck/core"
)

const statuteXML = `<?xml version="1.0" encoding="UTF-8"?>
<Law>
  <LawBody>
    <LawTitle>医薬品、医療機器等の品質、有効性及び安全性の確保等に関する法律</LawTitle>
    <MainProvision>
      <Chapter>
        <Article>
          <ArticleCaption>（誇大広告等）</ArticleCaption>
          <ArticleTitle>第六十六条</ArticleTitle>
          <Paragraph>
            <ParagraphNum></ParagraphNum>
            <ParagraphSentence>
              <Sentence>何人も、医薬品等の名称、製造方法、効能、効果又は性能に関して、明示的であると暗示的であるとを問わず、虚偽又は誇大な記事を広告し、記述し、又は流布してはならない。</Sentence>
            </ParagraphSentence>
          </Paragraph>
          <Paragraph>
            <ParagraphNum>２</ParagraphNum>
            <ParagraphSentence>
              <Sentence>医薬品等の効能、効果又は性能について、医師その他の者がこれを保証したものと誤解されるおそれがある記事を広告し、記述し、又は流布することは、前項に該当するものとする。</Sentence>
            </ParagraphSentence>
          </Paragraph>
        </Article>
        <Article>
          <ArticleTitle>第六十八条</ArticleTitle>
          <Paragraph>
            <ParagraphSentence>
              <Sentence>何人も、承認前の医薬品等について、その名称、製造方法、効能、効果又は性能に関する広告をしてはならない。</Sentence>
            </ParagraphSentence>
            <Item>
              <ItemTitle>一</ItemTitle>
              <ItemSentence>
                <Sentence>試験的な項目</Sentence>
              </ItemSentence>
            </Item>
          </Paragraph>
        </Article>
      </Chapter>
    </MainProvision>
    <SupplProvision>
      <Article>
        <ArticleTitle>第一条</ArticleTitle>
        <Paragraph>
          <ParagraphSentence>
            <Sentence>この法律は、公布の日から起算して一年を超えない範囲内において政令で定める日から施行する。</Sentence>
          </ParagraphSentence>
        </Paragraph>
      </Article>
    </SupplProvision>
  </LawBody>
</Law>`

func TestChunkStructuredLaw(t *testing.T) {
	chunker := NewChunker()

	doc := Document{
		Raw:    []byte(statuteXML),
		Format: FormatStructuredLaw,
		Path:   "statutes/yakkihou.xml",
	}

	chunks, err := chunker.Chunk(doc)
	require.NoError(t, err)
	require.Len(t, chunks, 3)

	t.Run("main provision article", func(t *testing.T) {
		chunk := chunks[0]
		assert.Equal(t, "第六十六条", chunk.Meta.Section)
		assert.True(t, chunk.Meta.MainProvision)
		assert.Equal(t, core.CategoryStatute, chunk.Meta.Category)
		assert.Equal(t, core.LawGroupPharma, chunk.Meta.LawGroup)
		assert.Equal(t, core.SourceTypeStructuredLaw, chunk.Meta.SourceType)
		assert.Contains(t, chunk.Content, "虚偽又は誇大な記事")
		assert.Contains(t, chunk.Content, "第六十六条")
		// Content carries the title prefix for embedding quality.
		assert.True(t, strings.HasPrefix(chunk.Content, "医薬品、医療機器等の品質"))
	})

	t.Run("items are included", func(t *testing.T) {
		chunk := chunks[1]
		assert.Equal(t, "第六十八条", chunk.Meta.Section)
		assert.Contains(t, chunk.Content, "試験的な項目")
	})

	t.Run("supplementary provision article", func(t *testing.T) {
		chunk := chunks[2]
		assert.Equal(t, "第一条", chunk.Meta.Section)
		assert.False(t, chunk.Meta.MainProvision)
	})

	t.Run("deterministic ids", func(t *testing.T) {
		again, err := chunker.Chunk(doc)
		require.NoError(t, err)
		for i := range chunks {
			assert.Equal(t, chunks[i].ID, again[i].ID)
		}
	})
}

func TestChunkStructuredLawErrors(t *testing.T) {
	chunker := NewChunker()

	t.Run("malformed xml", func(t *testing.T) {
		_, err := chunker.Chunk(Document{
			Raw:    []byte("<Law><LawBody><Article>"),
			Format: FormatStructuredLaw,
			Path:   "statutes/broken.xml",
		})
		assert.Error(t, err)
	})

	t.Run("no articles", func(t *testing.T) {
		_, err := chunker.Chunk(Document{
			Raw:    []byte("<Law><LawBody><LawTitle>空の法律</LawTitle></LawBody></Law>"),
			Format: FormatStructuredLaw,
			Path:   "statutes/empty.xml",
		})
		assert.ErrorIs(t, err, ErrNoArticles)
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := chunker.Chunk(Document{Raw: []byte("x"), Format: FormatUnknown})
		assert.ErrorIs(t, err, ErrUnknownFormat)
	})
}

func TestChunkMarkdown(t *testing.T) {
	chunker := NewChunker()

	raw := strings.Join([]string{
		"# 医薬品等適正広告基準の概要",
		"効能効果の表現は承認された範囲を超えてはならない。",
		"",
		"# 禁止される表現",
		"最大級の表現、保証的表現は使用できない。",
		"# ",
		"",
	}, "\n")

	doc := Document{
		Raw:    []byte(raw),
		Format: FormatMarkdown,
		Path:   "guidelines/tekisei_koukoku.md",
	}

	chunks, err := chunker.Chunk(doc)
	require.NoError(t, err)
	require.Len(t, chunks, 2)

	assert.Equal(t, "医薬品等適正広告基準の概要", chunks[0].Meta.Section)
	assert.Contains(t, chunks[0].Content, "承認された範囲")
	assert.Equal(t, core.CategoryStandard, chunks[0].Meta.Category)
	assert.Equal(t, core.SourceTypeMarkdown, chunks[0].Meta.SourceType)
	assert.Equal(t, "tekisei_koukoku", chunks[0].Meta.Title)

	assert.Equal(t, "禁止される表現", chunks[1].Meta.Section)
}

func TestChunkMarkdownPreamble(t *testing.T) {
	chunker := NewChunker()

	raw := "前文のテキスト。\n# 見出し\n本文。"
	chunks, err := chunker.Chunk(Document{
		Raw:    []byte(raw),
		Format: FormatMarkdown,
		Path:   "guidelines/note.md",
	})
	require.NoError(t, err)
	require.Len(t, chunks, 2)
	assert.Equal(t, "前文のテキスト。", chunks[0].Content)
}

func TestChunkPageText(t *testing.T) {
	chunker := NewChunker()

	longPage := strings.Repeat("医薬品の広告に関する留意事項。", 10)
	shortPage := "短いページ"

	doc := Document{
		Raw:    []byte(longPage + "\f" + shortPage + "\f" + longPage),
		Format: FormatPageText,
		Path:   "standards/leaflet.txt",
	}

	chunks, err := chunker.Chunk(doc)
	require.NoError(t, err)
	require.Len(t, chunks, 2)

	assert.Equal(t, "p.1", chunks[0].Meta.Section)
	assert.Equal(t, "p.3", chunks[1].Meta.Section)
	assert.Equal(t, core.SourceTypePageText, chunks[0].Meta.SourceType)
	assert.Equal(t, core.CategoryStandard, chunks[0].Meta.Category)
}

func TestClassifyLawGroup(t *testing.T) {
	tests := []struct {
		title    string
		expected core.LawGroup
	}{
		{"医薬品、医療機器等の品質、有効性及び安全性の確保等に関する法律", core.LawGroupPharma},
		{"薬機法の解説", core.LawGroupPharma},
		{"不当景品類及び不当表示防止法", core.LawGroupPremiums},
		{"景品表示法ガイドブック", core.LawGroupPremiums},
		{"健康増進法", core.LawGroupOther},
		{"", core.LawGroupOther},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClassifyLawGroup(tt.title))
		})
	}
}

func TestClassifyCategory(t *testing.T) {
	tests := []struct {
		path     string
		expected core.Category
	}{
		{"statutes/yakkihou.xml", core.CategoryStatute},
		{"laws/keihin.xml", core.CategoryStatute},
		{"ok_examples/cosmetics.md", core.CategoryOKExample},
		{"ng_examples/cure_claims.md", core.CategoryNGExample},
		{"standards/koukoku.txt", core.CategoryStandard},
		{"guidelines/notes.md", core.CategoryStandard},
		{"misc/readme.md", core.CategoryUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClassifyCategory(tt.path))
		})
	}
}
