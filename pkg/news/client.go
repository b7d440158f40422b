package news

import (
	"context"
	"time"
)

// Article is a headline as a provider reports it, before the store sanitizes
// and deduplicates it.
type Article struct {
	Headline    string
	URL         string
	Source      string
	PublishedAt time.Time
}

// Provider fetches current headlines from one upstream source. A provider
// returns at most fetchCap articles.
type Provider interface {
	Fetch(ctx context.Context) ([]Article, error)
	Name() string
}

const fetchCap = 10
