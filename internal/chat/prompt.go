package chat

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Harshaaa-a/finbuddychatbot-sub001/internal/model"
)

const basePersona = `You are FinBuddy, a friendly financial guide for everyday retail investors in India. You explain money, markets and personal finance in plain language, without jargon, and you never assume prior knowledge. Keep answers short, practical and honest about uncertainty. You may discuss stocks, mutual funds, SIPs, fixed deposits, taxes, inflation and general market conditions. You do not give personalized investment advice, you do not recommend specific securities to buy or sell, and you always remind users that markets carry risk when they ask about investing decisions. If a question is outside personal finance, politely steer the conversation back to financial topics.`

const (
	newsHeading     = "Recent market headlines:"
	newsInstruction = "Use these headlines only when they are relevant to the question. For purely conceptual questions, ignore them and answer normally."

	userMarker  = "User question:"
	responseCue = "Answer:"
)

// Token budget for the assembled prompt. Tokens are estimated at 4 characters
// each; the buffer reserves room for the markers and the model's framing.
const (
	tokenCeiling  = 2000
	charsPerToken = 4
	tokenBuffer   = 200

	contextHeadlines = 3
)

// ErrPromptTooLong means the user message alone blows the token budget; the
// system prompt cannot be truncated enough to compensate, so the request is
// rejected rather than silently cutting user intent.
var ErrPromptTooLong = errors.New("user message exceeds the prompt token budget")

// PromptContext is the per-request assembly of persona, optional news block
// and the user's message. Discarded after use.
type PromptContext struct {
	SystemPrompt string
	UserMessage  string
	NewsContext  string
	Truncated    bool
}

// TokenUsage is advisory telemetry about one assembled prompt. Enforcement
// happens inside BuildContext; this only measures.
type TokenUsage struct {
	SystemPromptTokens int
	UserMessageTokens  int
	TotalTokens        int
	WithinLimit        bool
}

// BuildContext assembles the prompt for one message. Headlines are injected
// only when the classifier says current context is needed and records exist;
// records are assumed pre-sorted newest-first.
func BuildContext(userMessage string, records []model.NewsRecord) (PromptContext, error) {
	pc := PromptContext{UserMessage: userMessage}

	if RequiresContext(userMessage) && len(records) > 0 {
		pc.NewsContext = formatNewsBlock(records)
	}

	systemPrompt := basePersona
	if pc.NewsContext != "" {
		systemPrompt = basePersona + "\n\n" + newsHeading + "\n" + pc.NewsContext + "\n\n" + newsInstruction
	}

	userTokens := EstimateTokens(userMessage)
	if userTokens+tokenBuffer > tokenCeiling {
		return PromptContext{}, ErrPromptTooLong
	}

	allowedChars := (tokenCeiling - userTokens - tokenBuffer) * charsPerToken
	if len(systemPrompt) > allowedChars {
		systemPrompt = truncateAtSentence(systemPrompt, allowedChars)
		pc.Truncated = true
	}

	pc.SystemPrompt = systemPrompt
	return pc, nil
}

// Usage exposes the same estimator BuildContext enforces with.
func Usage(pc PromptContext) TokenUsage {
	system := EstimateTokens(pc.SystemPrompt)
	user := EstimateTokens(pc.UserMessage)
	return TokenUsage{
		SystemPromptTokens: system,
		UserMessageTokens:  user,
		TotalTokens:        system + user,
		WithinLimit:        system+user+tokenBuffer <= tokenCeiling,
	}
}

// FormatForModel renders the three-part skeleton the generator is always
// given: persona (with optional news block), question marker, response cue.
func FormatForModel(pc PromptContext) string {
	return pc.SystemPrompt + "\n\n" + userMarker + " " + pc.UserMessage + "\n\n" + responseCue
}

// EstimateTokens approximates the token count of s at 4 characters per token,
// rounding up.
func EstimateTokens(s string) int {
	return (len(s) + charsPerToken - 1) / charsPerToken
}

func formatNewsBlock(records []model.NewsRecord) string {
	if len(records) > contextHeadlines {
		records = records[:contextHeadlines]
	}

	lines := make([]string, 0, len(records))
	for i, r := range records {
		lines = append(lines, fmt.Sprintf("%d. %s (%s)", i+1, r.Headline, r.Source))
	}
	return strings.Join(lines, "\n")
}

// truncateAtSentence cuts s down to at most limit characters, preferring the
// last sentence end inside the final 20% of the allowed window. When no such
// boundary exists the cut is hard, marked with an ellipsis.
func truncateAtSentence(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	if len(s) <= limit {
		return s
	}

	window := s[:runeBoundary(s, limit)]
	boundary := strings.LastIndexAny(window, ".!?")
	if boundary >= limit-limit/5 {
		return strings.TrimSpace(window[:boundary+1])
	}

	if limit <= 3 {
		return "..."[:limit]
	}
	return strings.TrimSpace(s[:runeBoundary(s, limit-3)]) + "..."
}
