package llm

import "context"

// Generator is the single capability the chat pipeline needs from a text
// generation vendor: one prompt in, one completion out. Implementations must
// honor context cancellation so callers can enforce deadlines.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Name() string
}

// maxOutputTokens is the ceiling imposed on every generation call.
const maxOutputTokens = 500
