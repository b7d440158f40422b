package news

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"
)

func newsDataPayload(n int) map[string]interface{} {
	results := make([]map[string]interface{}, 0, n)
	for i := 0; i < n; i++ {
		results = append(results, map[string]interface{}{
			"title":   fmt.Sprintf("Headline %d", i+1),
			"link":    fmt.Sprintf("https://example.com/article/%d", i+1),
			"pubDate": "2026-02-26 07:53:24",
		})
	}
	return map[string]interface{}{
		"status":  "success",
		"results": results,
	}
}

func newTestNewsDataClient(srv *httptest.Server) *NewsDataClient {
	client := &NewsDataClient{
		apiKey:     "test-key",
		httpClient: srv.Client(),
	}
	client.httpClient.Transport = &rewriteTransport{base: srv.URL, inner: http.DefaultTransport}
	return client
}

func TestNewsDataFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(newsDataPayload(2))
	}))
	defer srv.Close()

	client := newTestNewsDataClient(srv)
	articles, err := client.Fetch(context.Background())

	assert.Equal(t, nil, err)
	assert.Equal(t, 2, len(articles))

	a := articles[0]
	assert.Equal(t, "Headline 1", a.Headline)
	assert.Equal(t, "https://example.com/article/1", a.URL)
	assert.Equal(t, "NewsData", a.Source)
	assert.Equal(t, 2026, a.PublishedAt.Year())
	assert.Equal(t, time.February, a.PublishedAt.Month())
	assert.Equal(t, 26, a.PublishedAt.Day())
}

func TestNewsDataFetch_CapsArticles(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(newsDataPayload(15))
	}))
	defer srv.Close()

	client := newTestNewsDataClient(srv)
	articles, err := client.Fetch(context.Background())

	assert.Equal(t, nil, err)
	assert.Equal(t, fetchCap, len(articles))
}

func TestNewsDataFetch_SkipsEmptyTitles(t *testing.T) {
	payload := map[string]interface{}{
		"status": "success",
		"results": []map[string]interface{}{
			{"title": "", "link": "https://example.com/empty"},
			{"title": "Real headline", "link": "https://example.com/real", "pubDate": "2026-02-26 08:00:00"},
		},
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(payload)
	}))
	defer srv.Close()

	client := newTestNewsDataClient(srv)
	articles, err := client.Fetch(context.Background())

	assert.Equal(t, nil, err)
	assert.Equal(t, 1, len(articles))
	assert.Equal(t, "Real headline", articles[0].Headline)
}

func TestNewsDataFetch_BadDateYieldsZeroTime(t *testing.T) {
	payload := map[string]interface{}{
		"status": "success",
		"results": []map[string]interface{}{
			{"title": "Undated headline", "link": "https://example.com/x", "pubDate": "not a date"},
		},
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(payload)
	}))
	defer srv.Close()

	client := newTestNewsDataClient(srv)
	articles, err := client.Fetch(context.Background())

	assert.Equal(t, nil, err)
	assert.Equal(t, 1, len(articles))
	assert.Equal(t, time.Time{}, articles[0].PublishedAt)
}

func TestNewsDataFetch_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := newTestNewsDataClient(srv)
	_, err := client.Fetch(context.Background())

	assert.NotEqual(t, nil, err)
}

// rewriteTransport redirects all requests to a fixed base URL (test server).
type rewriteTransport struct {
	base  string
	inner http.RoundTripper
}

func (rt *rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req2 := req.Clone(req.Context())
	parsed, _ := http.NewRequest("GET", rt.base, nil)
	req2.URL.Host = parsed.URL.Host
	req2.URL.Scheme = parsed.URL.Scheme
	return rt.inner.RoundTrip(req2)
}
