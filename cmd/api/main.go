package main

import (
	"log"
	"log/slog"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/Harshaaa-a/finbuddychatbot-sub001/db"
	"github.com/Harshaaa-a/finbuddychatbot-sub001/internal/chat"
	"github.com/Harshaaa-a/finbuddychatbot-sub001/internal/config"
	"github.com/Harshaaa-a/finbuddychatbot-sub001/internal/handler"
	"github.com/Harshaaa-a/finbuddychatbot-sub001/internal/headlines"
	"github.com/Harshaaa-a/finbuddychatbot-sub001/internal/repository"
	"github.com/Harshaaa-a/finbuddychatbot-sub001/pkg/llm"
	"github.com/Harshaaa-a/finbuddychatbot-sub001/pkg/news"
)

func main() {

	godotenv.Load()

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

	generator, err := llm.New(cfg.LLMProvider, cfg.OpenAIAPIKey, cfg.AnthropicAPIKey)
	if err != nil {
		log.Fatalf("error configuring text generation: %v", err)
	}

	var providers []news.Provider
	if cfg.NewsDataAPIKey != "" {
		providers = append(providers, news.NewNewsDataClient(cfg.NewsDataAPIKey))
	}
	if cfg.FinnhubAPIKey != "" {
		providers = append(providers, news.NewFinnhubClient(cfg.FinnhubAPIKey))
	}
	chain := news.NewChain(cfg.NewsRequestsPerHour, providers...)

	repo := repository.NewNewsRepository(db.DB)
	headlineService := headlines.NewService(repo, chain, cfg.NewsKeepCount, db.Redis)
	chatService := chat.NewService(generator, headlineService)

	chatHandler := handler.NewChatHandler(chatService)
	newsHandler := handler.NewNewsHandler(headlineService)

	r := gin.Default()

	allowedOrigins := []string{"http://localhost:3000"}
	if cfg.FrontendURL != "" {
		allowedOrigins = append(allowedOrigins, cfg.FrontendURL)
	}

	slog.Info("AllowOrigins URL:", "urls", allowedOrigins)

	r.Use(cors.New(cors.Config{
		AllowOrigins: allowedOrigins,
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type"},
	}))

	r.POST("/chat", chatHandler.PostChat)
	r.POST("/news/refresh", newsHandler.PostRefresh)
	r.GET("/news/latest", newsHandler.GetLatest)
	r.GET("/health", newsHandler.GetHealth)

	err = r.Run(":" + cfg.Port)
	if err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}
