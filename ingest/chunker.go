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


package ingest

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/poiesic/lexcheck/core"
)

const (
	// minPageRunes is the minimum extracted text length for a page to be
	// indexed; shorter pages are dropped as noise.
	minPageRunes = 50

	// pageBreak separates pages in FormatPageText documents.
	pageBreak = "\f"
)

// Chunker splits source documents into indexable evidence chunks.
type Chunker struct {
	logger *slog.Logger
}

// NewChunker creates a chunker.
func NewChunker() *Chunker {
	return &Chunker{
		logger: slog.Default().With("component", "chunker"),
	}
}

// Chunk splits a document into chunks according to its declared format.
func (c *Chunker) Chunk(doc Document) ([]core.Chunk, error) {
	switch doc.Format {
	case FormatStructuredLaw:
		return c.chunkStructuredLaw(doc)
	case FormatMarkdown:
		return c.chunkMarkdown(doc)
	case FormatPageText:
		return c.chunkPageText(doc)
	default:
		return nil, fmt.Errorf("%w: %s (%s)", ErrUnknownFormat, doc.Format, doc.Path)
	}
}

// articleXML mirrors the e-Gov statute XML article structure.
type articleXML struct {
	Title      string         `xml:"ArticleTitle"`
	Caption    string         `xml:"ArticleCaption"`
	Paragraphs []paragraphXML `xml:"Paragraph"`
}

type paragraphXML struct {
	Num       string    `xml:"ParagraphNum"`
	Sentences []string  `xml:"ParagraphSentence>Sentence"`
	Items     []itemXML `xml:"Item"`
}

type itemXML struct {
	Title           string   `xml:"ItemTitle"`
	Sentences       []string `xml:"ItemSentence>Sentence"`
	ColumnSentences []string `xml:"ItemSentence>Column>Sentence"`
}

// chunkStructuredLaw extracts one chunk per article from statute XML.
// Articles in the main provisions and in supplementary provisions are
// both extracted, tagged with MainProvision accordingly.
func (c *Chunker) chunkStructuredLaw(doc Document) ([]core.Chunk, error) {
	decoder := xml.NewDecoder(bytes.NewReader(doc.Raw))

	var lawTitle string
	var chunks []core.Chunk
	// Articles outside any provision element default to main, matching
	// statutes that omit the MainProvision wrapper.
	inMain := true

	for {
		token, err := decoder.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("failed to parse statute XML %s: %w", doc.Path, err)
		}

		start, ok := token.(xml.StartElement)
		if !ok {
			continue
		}

		switch start.Name.Local {
		case "LawTitle":
			if lawTitle == "" {
				if err := decoder.DecodeElement(&lawTitle, &start); err != nil {
					return nil, fmt.Errorf("failed to parse law title in %s: %w", doc.Path, err)
				}
			}
		case "MainProvision":
			inMain = true
		case "SupplProvision":
			inMain = false
		case "Article":
			var article articleXML
			if err := decoder.DecodeElement(&article, &start); err != nil {
				return nil, fmt.Errorf("failed to parse article in %s: %w", doc.Path, err)
			}
			chunk, ok := c.articleChunk(doc, lawTitle, article, inMain)
			if ok {
				chunks = append(chunks, chunk)
			}
		}
	}

	if len(chunks) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoArticles, doc.Path)
	}
	return chunks, nil
}

// articleChunk builds a chunk from one parsed article. The law title and
// section label are prefixed to the content to aid embedding quality.
func (c *Chunker) articleChunk(doc Document, lawTitle string, article articleXML, main bool) (core.Chunk, bool) {
	var body strings.Builder
	for _, paragraph := range article.Paragraphs {
		num := strings.TrimSpace(paragraph.Num)
		for _, sentence := range paragraph.Sentences {
			sentence = strings.TrimSpace(sentence)
			if sentence == "" {
				continue
			}
			fmt.Fprintf(&body, "%s %s\n", num, sentence)
		}
		for _, item := range paragraph.Items {
			itemTitle := strings.TrimSpace(item.Title)
			for _, sentence := range append(item.Sentences, item.ColumnSentences...) {
				sentence = strings.TrimSpace(sentence)
				if sentence == "" {
					continue
				}
				fmt.Fprintf(&body, "  %s %s\n", itemTitle, sentence)
			}
		}
	}

	text := strings.TrimSpace(body.String())
	if text == "" {
		c.logger.Debug("skipping empty article",
			"path", doc.Path, "section", article.Title)
		return core.Chunk{}, false
	}

	section := strings.TrimSpace(article.Title)
	header := strings.TrimSpace(strings.Join([]string{lawTitle, section, strings.TrimSpace(article.Caption)}, " "))
	content := header + "\n" + text

	category := ClassifyCategory(doc.Path)
	if category == core.CategoryUnknown {
		category = core.CategoryStatute
	}

	return core.Chunk{
		ID:      core.IDFromContent(doc.Path, section, content),
		Content: content,
		Meta: core.Metadata{
			Title:         lawTitle,
			Category:      category,
			LawGroup:      ClassifyLawGroup(lawTitle),
			Section:       section,
			MainProvision: main,
			SourceType:    core.SourceTypeStructuredLaw,
			Path:          doc.Path,
		},
	}, true
}

// chunkMarkdown splits a document on top-level heading boundaries. Each
// heading plus its following text becomes one chunk; blocks that are
// empty after trimming are dropped.
func (c *Chunker) chunkMarkdown(doc Document) ([]core.Chunk, error) {
	text := string(doc.Raw)
	title := docTitle(doc.Path)

	var chunks []core.Chunk
	for _, block := range splitHeadings(text) {
		block = strings.TrimSpace(block)
		if strings.TrimSpace(strings.TrimLeft(block, "#")) == "" {
			continue
		}

		heading, _, _ := strings.Cut(block, "\n")
		heading = strings.TrimSpace(strings.TrimPrefix(heading, "# "))

		chunks = append(chunks, core.Chunk{
			ID:      core.IDFromContent(doc.Path, heading, block),
			Content: block,
			Meta: core.Metadata{
				Title:      title,
				Category:   ClassifyCategory(doc.Path),
				LawGroup:   ClassifyLawGroup(title + " " + heading),
				Section:    heading,
				SourceType: core.SourceTypeMarkdown,
				Path:       doc.Path,
			},
		})
	}

	return chunks, nil
}

// splitHeadings splits text into blocks starting at top-level "# "
// headings. Text before the first heading forms its own block.
func splitHeadings(text string) []string {
	lines := strings.Split(text, "\n")
	var blocks []string
	var current []string

	flush := func() {
		if len(current) > 0 {
			blocks = append(blocks, strings.Join(current, "\n"))
			current = nil
		}
	}

	for _, line := range lines {
		if strings.HasPrefix(line, "# ") {
			flush()
		}
		current = append(current, line)
	}
	flush()

	return blocks
}

// chunkPageText produces one chunk per page. Pages shorter than
// minPageRunes are dropped as extraction noise.
func (c *Chunker) chunkPageText(doc Document) ([]core.Chunk, error) {
	title := docTitle(doc.Path)
	pages := strings.Split(string(doc.Raw), pageBreak)

	var chunks []core.Chunk
	for i, page := range pages {
		page = strings.TrimSpace(page)
		if utf8.RuneCountInString(page) < minPageRunes {
			c.logger.Debug("skipping short page", "path", doc.Path, "page", i+1)
			continue
		}

		section := fmt.Sprintf("p.%d", i+1)
		chunks = append(chunks, core.Chunk{
			ID:      core.IDFromContent(doc.Path, section, page),
			Content: page,
			Meta: core.Metadata{
				Title:      title,
				Category:   ClassifyCategory(doc.Path),
				LawGroup:   ClassifyLawGroup(title),
				Section:    section,
				SourceType: core.SourceTypePageText,
				Path:       doc.Path,
			},
		})
	}

	return chunks, nil
}

// docTitle derives a display title from a document path.
func docTitle(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
