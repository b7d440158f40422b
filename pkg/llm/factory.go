package llm

import (
	"fmt"
	"strings"
)

// New picks a generation client. An explicit provider name wins; otherwise
// the first vendor with a key configured is used.
func New(provider, openAIKey, anthropicKey string) (Generator, error) {
	switch strings.ToLower(strings.TrimSpace(provider)) {
	case "openai":
		if openAIKey == "" {
			return nil, fmt.Errorf("llm provider %q selected but OPENAI_API_KEY is not set", provider)
		}
		return NewOpenAIClient(openAIKey), nil
	case "anthropic", "claude":
		if anthropicKey == "" {
			return nil, fmt.Errorf("llm provider %q selected but ANTHROPIC_API_KEY is not set", provider)
		}
		return NewAnthropicClient(anthropicKey), nil
	case "":
		if openAIKey != "" {
			return NewOpenAIClient(openAIKey), nil
		}
		if anthropicKey != "" {
			return NewAnthropicClient(anthropicKey), nil
		}
		return nil, fmt.Errorf("no text generation provider configured")
	default:
		return nil, fmt.Errorf("unknown llm provider %q", provider)
	}
}
