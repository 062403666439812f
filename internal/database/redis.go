package database

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"gaming-community-api/internal/config"
)

// NewRedis creates a redis client from configuration and verifies the connection
func NewRedis(cfg config.RedisConfig) (*redis.Client, error) {
	var client *redis.Client

	// redis:// URL takes precedence over host/port fields
	if cfg.URL != "" {
		opts, err := redis.ParseURL(cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("invalid redis url: %w", err)
		}
		client = redis.NewClient(opts)
	} else {
		client = redis.NewClient(&redis.Options{
			Addr:     cfg.Addr(),
			Password: cfg.Password,
			DB:       cfg.DB,
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return client, nil
}
