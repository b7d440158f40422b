package chat

import (
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"
)

// maxMessageLength is counted in characters, not bytes, so multibyte scripts
// get the full thousand.
const maxMessageLength = 1000

// Validation failures are returned to the user verbatim, so the messages are
// written as user-facing text rather than Go-style error strings.
var (
	ErrMessageRequired = errors.New("Message is required and must be a string")
	ErrMessageEmpty    = errors.New("Message cannot be empty")
	ErrMessageTooLong  = errors.New("Message is too long (maximum 1000 characters)")
	ErrMessageContent  = errors.New("Message contains invalid content")
)

// roleMarkers are matched as plain case-insensitive substrings, so markers
// embedded in longer words ("ecosystem:") trip the check too. That false
// positive is the accepted cost of never missing a smuggled marker.
var roleMarkers = []string{"system:", "assistant:"}

// injectionPatterns catch instruction-override phrasing.
var injectionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bignore\s+(all\s+)?(previous|prior|above)`),
	regexp.MustCompile(`(?i)\bdisregard\s+(all\s+)?(previous|prior|above)`),
	regexp.MustCompile(`(?i)\bforget\s+(all\s+)?(your\s+)?(previous\s+|prior\s+)?instructions\b`),
	regexp.MustCompile(`(?i)\bnew\s+instructions\s*:`),
}

// Validate checks a chat message before any downstream work. Rules run in
// order and the first failure wins. Pure function of the input text.
func Validate(text string) error {
	trimmed := strings.TrimSpace(text)

	if trimmed == "" {
		return ErrMessageEmpty
	}

	if utf8.RuneCountInString(trimmed) > maxMessageLength {
		return ErrMessageTooLong
	}

	lower := strings.ToLower(trimmed)
	for _, marker := range roleMarkers {
		if strings.Contains(lower, marker) {
			return ErrMessageContent
		}
	}

	for _, p := range injectionPatterns {
		if p.MatchString(trimmed) {
			return ErrMessageContent
		}
	}

	return nil
}
