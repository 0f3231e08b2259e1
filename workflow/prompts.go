package workflow

import (
	"fmt"
	"strings"

	"github.com/poiesic/lexcheck/core"
)

const analysisSystemPrompt = `You are a strict legal compliance expert for Japanese advertising law.
Analyze the advertisement text against the provided legal documents only.
Do not invent statutes or sections that are not in the documents.

Respond in Japanese using the IRAC format:
- 論点 (Issue): the legal question raised by the text
- 規範 (Rule): the applicable provision, citing the document it came from
- あてはめ (Application): how the text does or does not satisfy the rule
- 結論 (Conclusion): end with exactly one of 適合 or 不適合

If the documents are insufficient to judge, conclude 不適合 and say why.`

const recommendationSystemPrompt = `あなたは広告表現に詳しい法律コンサルタントです。
分析結果に基づき、法令に適合する代替表現を提案してください。`

// analysisPrompt renders the input text and retrieved evidence into the
// user message for the analysis stage.
func analysisPrompt(input string, evidence core.EvidenceSet) string {
	var b strings.Builder
	b.WriteString("[Input Text]\n")
	b.WriteString(input)
	b.WriteString("\n\n[Related Legal Documents]\n")
	if len(evidence) == 0 {
		b.WriteString("(no documents retrieved)\n")
		return b.String()
	}
	for i, hit := range evidence {
		fmt.Fprintf(&b, "Document %d (%s %s):\n%s\n\n", i+1, hit.Chunk.Meta.Title, hit.Chunk.Meta.Section, hit.Chunk.Content)
	}
	return b.String()
}

// recommendationPrompt asks for three concrete rewrites of the input.
func recommendationPrompt(input, analysis string) string {
	var b strings.Builder
	b.WriteString("以下の広告文と法的分析を踏まえ、法令に適合する修正案を3つ提案してください。\n")
	b.WriteString("各提案は番号付きで、修正後の文面とその理由を日本語で示してください。\n\n")
	b.WriteString("[広告文]\n")
	b.WriteString(input)
	b.WriteString("\n\n[法的分析]\n")
	b.WriteString(analysis)
	return b.String()
}
