package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config carries everything the binaries read from the environment. Secrets
// stay in env vars (a .env file is loaded by the mains in development).
type Config struct {
	Port        string
	FrontendURL string

	DatabaseURL string
	RedisURL    string

	NewsDataAPIKey string
	FinnhubAPIKey  string

	LLMProvider     string
	OpenAIAPIKey    string
	AnthropicAPIKey string

	NewsKeepCount       int
	NewsRequestsPerHour int
	NewsRefreshInterval time.Duration
}

func Load() *Config {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("NEWS_KEEP_COUNT", 50)
	v.SetDefault("NEWS_REQUESTS_PER_HOUR", 200)
	v.SetDefault("NEWS_REFRESH_INTERVAL", "30m")

	interval, err := time.ParseDuration(v.GetString("NEWS_REFRESH_INTERVAL"))
	if err != nil {
		interval = 30 * time.Minute
	}

	return &Config{
		Port:        v.GetString("PORT"),
		FrontendURL: v.GetString("FRONTEND_URL"),

		DatabaseURL: v.GetString("DATABASE_URL"),
		RedisURL:    v.GetString("REDIS_URL"),

		NewsDataAPIKey: v.GetString("NEWSDATA_API_KEY"),
		FinnhubAPIKey:  v.GetString("FINNHUB_API_KEY"),

		LLMProvider:     v.GetString("LLM_PROVIDER"),
		OpenAIAPIKey:    v.GetString("OPENAI_API_KEY"),
		AnthropicAPIKey: v.GetString("ANTHROPIC_API_KEY"),

		NewsKeepCount:       v.GetInt("NEWS_KEEP_COUNT"),
		NewsRequestsPerHour: v.GetInt("NEWS_REQUESTS_PER_HOUR"),
		NewsRefreshInterval: interval,
	}
}
