// Package cache implements short-lived caches backed by Redis.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pocketledger/backend/internal/application/adapter"
)

const adviceKeyPrefix = "pocket-ledger:advice:"

// RedisAdviceCache stores advisor output in Redis with a fixed TTL.
type RedisAdviceCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisAdviceCache creates a cache over an existing Redis client.
func NewRedisAdviceCache(client *redis.Client, ttl time.Duration) *RedisAdviceCache {
	return &RedisAdviceCache{client: client, ttl: ttl}
}

// Get returns the cached advice for key. The boolean is false on a miss.
func (c *RedisAdviceCache) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := c.client.Get(ctx, adviceKeyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read advice cache: %w", err)
	}
	return value, true, nil
}

// Set stores advice under key.
func (c *RedisAdviceCache) Set(ctx context.Context, key string, advice string) error {
	if err := c.client.Set(ctx, adviceKeyPrefix+key, advice, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write advice cache: %w", err)
	}
	return nil
}

// NoopAdviceCache never stores anything. It is used when Redis is not configured.
type NoopAdviceCache struct{}

// Get always misses.
func (NoopAdviceCache) Get(ctx context.Context, key string) (string, bool, error) {
	return "", false, nil
}

// Set discards the value.
func (NoopAdviceCache) Set(ctx context.Context, key string, advice string) error {
	return nil
}

// NewRedisClient parses a redis:// URL and pings the server.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return client, nil
}

var (
	_ adapter.AdviceCache = (*RedisAdviceCache)(nil)
	_ adapter.AdviceCache = NoopAdviceCache{}
)
