package chat

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/go-playground/assert/v2"

	"github.com/Harshaaa-a/finbuddychatbot-sub001/internal/model"
)

type fakeGenerator struct {
	reply  string
	err    error
	calls  int
	prompt string
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	f.calls++
	f.prompt = prompt
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func (f *fakeGenerator) Name() string {
	return "fake"
}

type fakeNews struct {
	records []model.NewsRecord
	calls   int
	limit   int
}

func (f *fakeNews) Context(ctx context.Context, limit int) []model.NewsRecord {
	f.calls++
	f.limit = limit
	return f.records
}

func TestRespond_Success(t *testing.T) {
	gen := &fakeGenerator{reply: "An index fund tracks a market index."}
	svc := NewService(gen, &fakeNews{})

	resp := svc.Respond(context.Background(), "What is an index fund?")

	assert.Equal(t, true, resp.Success)
	assert.Equal(t, "An index fund tracks a market index.", resp.Message)
	assert.Equal(t, "", resp.Error)
	assert.Equal(t, 1, gen.calls)
}

func TestRespond_ValidationShortCircuits(t *testing.T) {
	gen := &fakeGenerator{reply: "should never be used"}
	news := &fakeNews{}
	svc := NewService(gen, news)

	resp := svc.Respond(context.Background(), "")

	assert.Equal(t, false, resp.Success)
	assert.Equal(t, "", resp.Message)
	assert.Equal(t, ErrMessageEmpty.Error(), resp.Error)
	assert.Equal(t, 0, gen.calls)
	assert.Equal(t, 0, news.calls)
}

func TestRespond_FetchesContextOnlyWhenRelevant(t *testing.T) {
	news := &fakeNews{records: []model.NewsRecord{
		{ID: 1, Headline: "Sensex climbs on earnings", Source: "NewsData"},
	}}
	gen := &fakeGenerator{reply: "Markets are mixed today."}
	svc := NewService(gen, news)

	svc.Respond(context.Background(), "What is compound interest?")
	assert.Equal(t, 0, news.calls)

	svc.Respond(context.Background(), "What's happening in the market today?")
	assert.Equal(t, 1, news.calls)
	assert.Equal(t, contextHeadlines, news.limit)
	assert.Equal(t, true, strings.Contains(gen.prompt, "Sensex climbs on earnings"))
}

func TestRespond_ErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"deadline", context.DeadlineExceeded, "The response is taking too long. Please try again in a moment."},
		{"timeout word", errors.New("request timeout after 25s"), "The response is taking too long. Please try again in a moment."},
		{"rate limit", errors.New("429: rate limit reached for model"), "The assistant is currently busy. Please try again shortly."},
		{"quota", errors.New("you have exceeded your quota"), "The assistant is currently busy. Please try again shortly."},
		{"unavailable", errors.New("503 Service Unavailable"), "The assistant is temporarily unavailable. Please try again later."},
		{"auth", errors.New("incorrect API key provided"), "There is a configuration issue on our side. Please contact support."},
		{"unknown", errors.New("something odd happened"), "Something unexpected went wrong. Please contact support if the problem persists."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &fakeGenerator{err: tt.err}
			svc := NewService(gen, &fakeNews{})

			resp := svc.Respond(context.Background(), "What is an ETF?")

			assert.Equal(t, false, resp.Success)
			assert.Equal(t, "", resp.Message)
			assert.Equal(t, tt.want, resp.Error)
		})
	}
}

func TestRespond_CategoryPriority(t *testing.T) {
	// A message mentioning both timeout and rate limiting maps to the
	// timeout category, which is evaluated first.
	gen := &fakeGenerator{err: errors.New("timeout while waiting for rate limit")}
	svc := NewService(gen, &fakeNews{})

	resp := svc.Respond(context.Background(), "What is an ETF?")

	assert.Equal(t, "The response is taking too long. Please try again in a moment.", resp.Error)
}

func TestRespond_CleansOutput(t *testing.T) {
	gen := &fakeGenerator{reply: "Assistant:  An ETF trades like a stock"}
	svc := NewService(gen, &fakeNews{})

	resp := svc.Respond(context.Background(), "What is an ETF?")

	assert.Equal(t, true, resp.Success)
	assert.Equal(t, "An ETF trades like a stock.", resp.Message)
}

func TestRespond_NilNewsContext(t *testing.T) {
	gen := &fakeGenerator{reply: "Markets are open."}
	svc := NewService(gen, nil)

	resp := svc.Respond(context.Background(), "What's happening in the market today?")

	assert.Equal(t, true, resp.Success)
}
