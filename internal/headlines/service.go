// Package headlines maintains the bounded window of recent headlines the chat
// pipeline injects as context: periodic refresh from the provider chain into
// the store, and cached retrieval for per-request use.
package headlines

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"

	"github.com/Harshaaa-a/finbuddychatbot-sub001/internal/model"
	"github.com/Harshaaa-a/finbuddychatbot-sub001/pkg/news"
)

// Store is the persistence contract the service consumes.
type Store interface {
	Ingest(ctx context.Context, drafts []model.NewsDraft, keepCount int) (inserted, deleted int, err error)
	GetLatest(ctx context.Context, limit int) ([]model.NewsRecord, error)
	Count(ctx context.Context) (int, error)
	HealthCheck(ctx context.Context) bool
}

// Source is the provider side: the fallback chain, or a fake in tests.
type Source interface {
	FetchLatest(ctx context.Context) ([]news.Article, error)
	IsConfigured() bool
}

const (
	contextTTL    = 2 * time.Minute
	redisKeyspace = "finbuddy:news:context:"
)

// Service wires the provider chain to the store and serves cached context
// reads. The window is read on every classified-relevant chat request but
// written only by periodic refresh, so reads go through a two-tier cache:
// in-process first, then Redis when configured (shared across API replicas).
type Service struct {
	store     Store
	source    Source
	keepCount int
	memory    *gocache.Cache
	redis     *redis.Client
}

// NewService builds the headline service. rdb may be nil; the in-process tier
// then stands alone.
func NewService(store Store, source Source, keepCount int, rdb *redis.Client) *Service {
	return &Service{
		store:     store,
		source:    source,
		keepCount: keepCount,
		memory:    gocache.New(contextTTL, 2*contextTTL),
		redis:     rdb,
	}
}

// IsConfigured reports whether any news provider has credentials.
func (s *Service) IsConfigured() bool {
	return s.source.IsConfigured()
}

// Refresh runs one fetch-and-ingest cycle and invalidates the context cache.
func (s *Service) Refresh(ctx context.Context) (inserted, deleted int, err error) {
	articles, err := s.source.FetchLatest(ctx)
	if err != nil {
		return 0, 0, err
	}

	drafts := make([]model.NewsDraft, 0, len(articles))
	for _, a := range articles {
		drafts = append(drafts, model.NewsDraft{
			Headline:    a.Headline,
			URL:         a.URL,
			Source:      a.Source,
			PublishedAt: a.PublishedAt,
		})
	}

	inserted, deleted, err = s.store.Ingest(ctx, drafts, s.keepCount)
	if err != nil {
		return inserted, deleted, err
	}

	s.invalidate(ctx)
	return inserted, deleted, nil
}

// Context returns up to limit of the most recent records, newest first. Store
// failure is not fatal to the enclosing chat request: the caller gets an
// empty slice and answers without news context.
func (s *Service) Context(ctx context.Context, limit int) []model.NewsRecord {
	if limit <= 0 {
		return nil
	}

	key := fmt.Sprintf("%d", limit)
	if v, ok := s.memory.Get(key); ok {
		return v.([]model.NewsRecord)
	}

	if records, ok := s.fromRedis(ctx, key); ok {
		s.memory.SetDefault(key, records)
		return records
	}

	records, err := s.store.GetLatest(ctx, limit)
	if err != nil {
		slog.Error("news context unavailable", "error", err)
		return nil
	}

	s.memory.SetDefault(key, records)
	s.toRedis(ctx, key, records)
	return records
}

// TotalStored reports the current window size.
func (s *Service) TotalStored(ctx context.Context) (int, error) {
	return s.store.Count(ctx)
}

// Healthy probes the backing store.
func (s *Service) Healthy(ctx context.Context) bool {
	return s.store.HealthCheck(ctx)
}

func (s *Service) invalidate(ctx context.Context) {
	s.memory.Flush()

	if s.redis == nil {
		return
	}
	iter := s.redis.Scan(ctx, 0, redisKeyspace+"*", 0).Iterator()
	for iter.Next(ctx) {
		s.redis.Del(ctx, iter.Val())
	}
	if err := iter.Err(); err != nil {
		slog.Warn("redis cache invalidation failed", "error", err)
	}
}

func (s *Service) fromRedis(ctx context.Context, key string) ([]model.NewsRecord, bool) {
	if s.redis == nil {
		return nil, false
	}

	data, err := s.redis.Get(ctx, redisKeyspace+key).Bytes()
	if err != nil {
		if err != redis.Nil {
			slog.Warn("redis cache read failed", "error", err)
		}
		return nil, false
	}

	var records []model.NewsRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, false
	}
	return records, true
}

func (s *Service) toRedis(ctx context.Context, key string, records []model.NewsRecord) {
	if s.redis == nil {
		return
	}

	data, err := json.Marshal(records)
	if err != nil {
		return
	}
	if err := s.redis.Set(ctx, redisKeyspace+key, data, contextTTL).Err(); err != nil {
		slog.Warn("redis cache write failed", "error", err)
	}
}
