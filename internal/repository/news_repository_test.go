package repository

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/go-playground/assert/v2"
)

func TestSanitizeHeadline(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"trims", "  Sensex climbs  ", "Sensex climbs"},
		{"collapses whitespace", "Sensex\t climbs \n 400   points", "Sensex climbs 400 points"},
		{"empty", "   \n  ", ""},
		{"unchanged", "RBI holds repo rate", "RBI holds repo rate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeHeadline(tt.input))
		})
	}
}

func TestSanitizeHeadline_CapsLength(t *testing.T) {
	long := strings.Repeat("a", 600)
	got := SanitizeHeadline(long)

	assert.Equal(t, maxHeadlineLength, len(got))
}

func TestSanitizeHeadline_CapCountsCharacters(t *testing.T) {
	// 600 Devanagari characters are 1800 bytes; the cap must count runes and
	// never cut mid-character, or Postgres rejects the insert.
	long := strings.Repeat("ह", 600)
	got := SanitizeHeadline(long)

	assert.Equal(t, maxHeadlineLength, utf8.RuneCountInString(got))
	assert.Equal(t, true, utf8.ValidString(got))
}

func TestGetLatest_NonPositiveLimit(t *testing.T) {
	// The guard runs before any query, so no database is needed.
	repo := NewNewsRepository(nil)

	for _, limit := range []int{0, -1, -10} {
		records, err := repo.GetLatest(context.Background(), limit)

		assert.Equal(t, nil, err)
		assert.Equal(t, 0, len(records))
	}
}

func TestWithRetry_SucceedsAfterFailures(t *testing.T) {
	calls := 0
	err := withRetry(3, time.Millisecond, func() error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})

	assert.Equal(t, nil, err)
	assert.Equal(t, 3, calls)
}

func TestWithRetry_StopsOnFirstSuccess(t *testing.T) {
	calls := 0
	err := withRetry(3, time.Millisecond, func() error {
		calls++
		return nil
	})

	assert.Equal(t, nil, err)
	assert.Equal(t, 1, calls)
}

func TestWithRetry_ExhaustsAttempts(t *testing.T) {
	boom := errors.New("persistent failure")
	calls := 0
	err := withRetry(3, time.Millisecond, func() error {
		calls++
		return boom
	})

	assert.Equal(t, boom, err)
	assert.Equal(t, 3, calls)
}
