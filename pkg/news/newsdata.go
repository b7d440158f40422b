package news

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// NewsDataClient is the primary provider. NewsData filters by country and
// category server-side, so drafts arrive already scoped to Indian business
// news.
type NewsDataClient struct {
	apiKey     string
	httpClient *http.Client
}

func NewNewsDataClient(apiKey string) *NewsDataClient {
	return &NewsDataClient{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *NewsDataClient) Name() string {
	return "NewsData"
}

func (c *NewsDataClient) Fetch(ctx context.Context) ([]Article, error) {
	url := fmt.Sprintf(
		"https://newsdata.io/api/1/latest?apikey=%s&country=in&category=business&language=en&size=%d",
		c.apiKey, fetchCap,
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("newsdata request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("newsdata fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("newsdata status %d", resp.StatusCode)
	}

	var raw ndResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("newsdata decode: %w", err)
	}

	articles := make([]Article, 0, len(raw.Results))
	for _, item := range raw.Results {
		if item.Title == "" {
			continue
		}
		if len(articles) == fetchCap {
			break
		}

		publishedAt, err := time.Parse("2006-01-02 15:04:05", item.PubDate)
		if err != nil {
			publishedAt = time.Time{}
		}

		articles = append(articles, Article{
			Headline:    item.Title,
			URL:         item.Link,
			Source:      c.Name(),
			PublishedAt: publishedAt,
		})
	}

	return articles, nil
}

type ndResponse struct {
	Status  string     `json:"status"`
	Results []ndResult `json:"results"`
}

type ndResult struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	PubDate string `json:"pubDate"`
}
