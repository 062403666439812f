package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Store is a JSON read-through cache. Backend failures are absorbed and
// reported as misses so the catalog stays available without redis.
type Store interface {
	// Get unmarshals the cached value into out, reporting whether it was found
	Get(ctx context.Context, key string, out interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// redisStore is the redis implementation of Store
type redisStore struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisStore creates a redis-backed cache store
func NewRedisStore(client *redis.Client, logger *zap.Logger) Store {
	return &redisStore{client: client, logger: logger}
}

// Get reads and unmarshals a cached value
func (s *redisStore) Get(ctx context.Context, key string, out interface{}) (bool, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		s.logger.Warn("cache read failed", zap.String("key", key), zap.Error(err))
		return false, nil
	}

	if err := json.Unmarshal(data, out); err != nil {
		s.logger.Warn("cache entry corrupt, dropping", zap.String("key", key), zap.Error(err))
		_ = s.client.Del(ctx, key).Err()
		return false, nil
	}
	return true, nil
}

// Set marshals and stores a value with a TTL
func (s *redisStore) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}
	if err := s.client.Set(ctx, key, data, ttl).Err(); err != nil {
		s.logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
	return nil
}

// Delete removes a cached value
func (s *redisStore) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}

// Catalog cache key builders

func SearchKey(query string, limit int) string {
	return fmt.Sprintf("search:%s:%d", query, limit)
}

func GameKey(gameID int) string {
	return fmt.Sprintf("game:%d", gameID)
}

func CategoryKey(category string, limit, offset int) string {
	return fmt.Sprintf("category:%s:%d:%d", category, limit, offset)
}

func TrendingKey(limit int) string {
	return fmt.Sprintf("trending:%d", limit)
}

func PopularKey(limit int) string {
	return fmt.Sprintf("popular:%d", limit)
}
