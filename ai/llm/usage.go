package llm

import (
	"github.com/poiesic/lexcheck/core"
	"github.com/tmc/langchaingo/llms"
)

// usageFromChoice extracts token usage from a generation choice. Providers
// disagree on the key names: the OpenAI backend reports "PromptTokens" and
// "CompletionTokens", the Gemini backend reports "input_tokens" and
// "output_tokens". Missing or unrecognized info yields zero usage.
func usageFromChoice(choice *llms.ContentChoice) core.Usage {
	if choice == nil || choice.GenerationInfo == nil {
		return core.Usage{}
	}

	return core.Usage{
		InputTokens:  tokenCount(choice.GenerationInfo, "PromptTokens", "input_tokens"),
		OutputTokens: tokenCount(choice.GenerationInfo, "CompletionTokens", "output_tokens"),
	}
}

func tokenCount(info map[string]any, keys ...string) int {
	for _, key := range keys {
		v, ok := info[key]
		if !ok {
			continue
		}
		switch n := v.(type) {
		case int:
			return n
		case int32:
			return int(n)
		case int64:
			return int(n)
		case float64:
			return int(n)
		}
	}
	return 0
}
