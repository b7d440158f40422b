package chat

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const apologyMessage = "Sorry, I couldn't put together a response just now. Please try asking again."

const (
	cleanMaxLength   = 1500
	cleanCutAt       = 1400
	cleanMinBoundary = 1000
)

var (
	roleEchoPattern   = regexp.MustCompile(`(?i)^(system|assistant|answer)\s*:\s*`)
	newlineRunPattern = regexp.MustCompile(`\n{3,}`)
	spaceRunPattern   = regexp.MustCompile(` {2,}`)
)

// Clean normalizes raw model output into something safe to show a user.
// It never returns an empty string.
func Clean(raw string) string {
	text := strings.TrimSpace(raw)

	// Models occasionally echo the role marker or response cue back.
	text = roleEchoPattern.ReplaceAllString(text, "")
	text = strings.TrimSpace(text)

	text = newlineRunPattern.ReplaceAllString(text, "\n\n")
	text = spaceRunPattern.ReplaceAllString(text, " ")

	if len(text) > cleanMaxLength {
		text = truncateResponse(text)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return apologyMessage
	}

	if !endsWithTerminal(text) {
		text += "."
	}

	return text
}

func truncateResponse(text string) string {
	window := text[:runeBoundary(text, cleanCutAt)]
	boundary := strings.LastIndexAny(window, ".!?")
	if boundary > cleanMinBoundary {
		return window[:boundary+1]
	}
	return strings.TrimSpace(window) + "..."
}

// runeBoundary backs n off to the nearest rune start so byte slices of s
// never split a multibyte character.
func runeBoundary(s string, n int) int {
	if n >= len(s) {
		return len(s)
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return n
}

func endsWithTerminal(text string) bool {
	if strings.HasSuffix(text, "...") {
		return true
	}
	switch text[len(text)-1] {
	case '.', '!', '?':
		return true
	}
	return false
}
