package news

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/time/rate"
)

// ErrNoSources is returned when no provider is configured or every provider
// in the chain failed or came back empty.
var ErrNoSources = errors.New("all news API sources are unavailable")

const defaultRequestsPerHour = 200

// Chain tries providers in priority order until one returns articles. A
// single limiter spaces outbound calls across the whole chain, so concurrent
// refreshes serialize on it.
type Chain struct {
	providers []Provider
	limiter   *rate.Limiter
}

// NewChain builds a fallback chain. requestsPerHour bounds outbound calls
// across all providers together; values <= 0 fall back to the default budget.
func NewChain(requestsPerHour int, providers ...Provider) *Chain {
	if requestsPerHour <= 0 {
		requestsPerHour = defaultRequestsPerHour
	}

	interval := time.Hour / time.Duration(requestsPerHour)
	return &Chain{
		providers: providers,
		limiter:   rate.NewLimiter(rate.Every(interval), 1),
	}
}

// IsConfigured reports whether at least one provider has credentials. Callers
// check this before a refresh cycle to distinguish "nothing to fetch" from
// "fetch failed".
func (c *Chain) IsConfigured() bool {
	return len(c.providers) > 0
}

// FetchLatest waits for rate-limit clearance, then walks the chain. The first
// provider returning at least one article wins.
func (c *Chain) FetchLatest(ctx context.Context) ([]Article, error) {
	if !c.IsConfigured() {
		return nil, ErrNoSources
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	for _, p := range c.providers {
		articles, err := p.Fetch(ctx)
		if err != nil {
			slog.Warn("news source failed, trying next", "source", p.Name(), "error", err)
			continue
		}
		if len(articles) == 0 {
			slog.Info("news source returned no articles", "source", p.Name())
			continue
		}
		return articles, nil
	}

	return nil, ErrNoSources
}
