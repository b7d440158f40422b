// Package chat implements the request pipeline behind the chat endpoint:
// validation, news-relevance classification, bounded prompt assembly,
// generation and response cleanup.
package chat

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/Harshaaa-a/finbuddychatbot-sub001/internal/model"
	"github.com/Harshaaa-a/finbuddychatbot-sub001/pkg/llm"
)

// generateTimeout bounds the external generation call. A deadline hit
// surfaces through the timeout error category, never as success.
const generateTimeout = 25 * time.Second

// NewsContext supplies the recent-headline window; nil disables context
// injection entirely.
type NewsContext interface {
	Context(ctx context.Context, limit int) []model.NewsRecord
}

// Service drives one chat request end to end. It is the single seam where
// lower-level errors become user-facing ChatResponse errors; no raw error
// text escapes past it.
type Service struct {
	generator llm.Generator
	news      NewsContext
	timeout   time.Duration
}

func NewService(generator llm.Generator, news NewsContext) *Service {
	return &Service{
		generator: generator,
		news:      news,
		timeout:   generateTimeout,
	}
}

// Provider failures are matched case-insensitively against these substrings,
// first hit wins. Fragile by nature, which is why the table is the one place
// the sniffing lives.
type errorCategory struct {
	substrings []string
	reply      string
}

var errorCategories = []errorCategory{
	{
		substrings: []string{"timeout", "timed out", "deadline exceeded", "context canceled"},
		reply:      "The response is taking too long. Please try again in a moment.",
	},
	{
		substrings: []string{"rate limit", "quota", "too many requests"},
		reply:      "The assistant is currently busy. Please try again shortly.",
	},
	{
		substrings: []string{"unavailable", "service", "overloaded"},
		reply:      "The assistant is temporarily unavailable. Please try again later.",
	},
	{
		substrings: []string{"api key", "api-key", "authentication", "unauthorized"},
		reply:      "There is a configuration issue on our side. Please contact support.",
	},
}

const (
	genericErrorReply = "Something unexpected went wrong. Please contact support if the problem persists."
	tooLongReply      = "Your question is too long to answer in one go. Please shorten it and try again."
)

// Respond runs the full pipeline for one message.
func (s *Service) Respond(ctx context.Context, message string) model.ChatResponse {
	if err := Validate(message); err != nil {
		return model.ChatResponse{Success: false, Error: err.Error()}
	}

	var records []model.NewsRecord
	if s.news != nil && RequiresContext(message) {
		records = s.news.Context(ctx, contextHeadlines)
	}

	pc, err := BuildContext(message, records)
	if err != nil {
		if errors.Is(err, ErrPromptTooLong) {
			return model.ChatResponse{Success: false, Error: tooLongReply}
		}
		slog.Error("prompt assembly failed", "error", err)
		return model.ChatResponse{Success: false, Error: genericErrorReply}
	}

	if pc.Truncated {
		usage := Usage(pc)
		slog.Warn("prompt budget exceeded, system prompt truncated",
			"system_tokens", usage.SystemPromptTokens,
			"user_tokens", usage.UserMessageTokens,
		)
	}

	genCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	raw, err := s.generator.Generate(genCtx, FormatForModel(pc))
	if err != nil {
		slog.Error("generation failed", "provider", s.generator.Name(), "error", err)
		return model.ChatResponse{Success: false, Error: mapProviderError(err)}
	}

	return model.ChatResponse{Success: true, Message: Clean(raw)}
}

func mapProviderError(err error) string {
	msg := strings.ToLower(err.Error())
	for _, cat := range errorCategories {
		for _, sub := range cat.substrings {
			if strings.Contains(msg, sub) {
				return cat.reply
			}
		}
	}
	return genericErrorReply
}
