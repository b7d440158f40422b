package news

import (
	"context"
	"fmt"
	"time"

	finnhub "github.com/Finnhub-Stock-API/finnhub-go/v2"
)

// FinnhubClient is the secondary provider: a generic market-news feed.
// Finnhub reports publish times as epoch seconds, normalized here.
type FinnhubClient struct {
	client *finnhub.DefaultApiService
}

func NewFinnhubClient(apiKey string) *FinnhubClient {
	cfg := finnhub.NewConfiguration()
	cfg.AddDefaultHeader("X-Finnhub-Token", apiKey)
	client := finnhub.NewAPIClient(cfg).DefaultApi
	return &FinnhubClient{client: client}
}

func (c *FinnhubClient) Name() string {
	return "Finnhub"
}

func (c *FinnhubClient) Fetch(ctx context.Context) ([]Article, error) {
	res, _, err := c.client.MarketNews(ctx).Category("general").Execute()
	if err != nil {
		return nil, fmt.Errorf("finnhub fetch: %w", err)
	}

	articles := make([]Article, 0, fetchCap)
	for _, item := range res {
		if item.Headline == nil || *item.Headline == "" {
			continue
		}
		if len(articles) == fetchCap {
			break
		}

		a := Article{
			Headline: *item.Headline,
			Source:   c.Name(),
		}

		if item.Url != nil {
			a.URL = *item.Url
		}

		if item.Datetime != nil {
			a.PublishedAt = time.Unix(*item.Datetime, 0).UTC()
		}

		articles = append(articles, a)
	}

	return articles, nil
}
