package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/Harshaaa-a/finbuddychatbot-sub001/db"
	"github.com/Harshaaa-a/finbuddychatbot-sub001/internal/config"
	"github.com/Harshaaa-a/finbuddychatbot-sub001/internal/headlines"
	"github.com/Harshaaa-a/finbuddychatbot-sub001/internal/repository"
	"github.com/Harshaaa-a/finbuddychatbot-sub001/pkg/news"
)

func main() {

	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg := config.Load()

	err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("error connecting to DB: %v", err)
	}
	defer db.Close()

	if cfg.RedisURL != "" {
		if err := db.ConnectRedis(cfg.RedisURL); err != nil {
			slog.Warn("redis unavailable, context cache is in-process only", "error", err)
		} else {
			defer db.CloseRedis()
		}
	}

	var providers []news.Provider
	if cfg.NewsDataAPIKey != "" {
		providers = append(providers, news.NewNewsDataClient(cfg.NewsDataAPIKey))
	}
	if cfg.FinnhubAPIKey != "" {
		providers = append(providers, news.NewFinnhubClient(cfg.FinnhubAPIKey))
	}

	chain := news.NewChain(cfg.NewsRequestsPerHour, providers...)
	if !chain.IsConfigured() {
		slog.Error("no news source API keys configured")
		return
	}

	repo := repository.NewNewsRepository(db.DB)
	service := headlines.NewService(repo, chain, cfg.NewsKeepCount, db.Redis)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	refresh(ctx, service)

	ticker := time.NewTicker(cfg.NewsRefreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("fetcher shutting down")
			return
		case <-ticker.C:
			refresh(ctx, service)
		}
	}
}

func refresh(ctx context.Context, service *headlines.Service) {
	inserted, deleted, err := service.Refresh(ctx)
	if err != nil {
		slog.Error("error refreshing headlines", "error", err)
		return
	}

	slog.Info("refresh complete", "inserted", inserted, "deleted", deleted)
}
