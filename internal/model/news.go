package model

import "time"

// NewsRecord is a persisted headline. Records are immutable once stored and
// are dropped oldest-first when the retention window is trimmed.
type NewsRecord struct {
	ID          int64
	Headline    string
	URL         string
	Source      string
	PublishedAt time.Time
	CreatedAt   time.Time
}

// NewsDraft is a headline as returned by a provider, before the store has
// sanitized and deduplicated it.
type NewsDraft struct {
	Headline    string
	URL         string
	Source      string
	PublishedAt time.Time
}
