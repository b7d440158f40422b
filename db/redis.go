package db

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// Redis backs the shared headline-context cache. It is optional: when no
// REDIS_URL is configured the service runs on its in-process cache alone.
var Redis *redis.Client

func ConnectRedis(redisURL string) error {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		opt = &redis.Options{Addr: redisURL}
	}

	client := redis.NewClient(opt)
	if _, err := client.Ping(context.Background()).Result(); err != nil {
		client.Close()
		return err
	}

	Redis = client
	return nil
}

func CloseRedis() {
	if Redis != nil {
		Redis.Close()
	}
}
