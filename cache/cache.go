package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache is a read-through key-value cache.
type Cache interface {
	// GetOrSet returns the cached value for key, computing and storing it
	// via producer on a miss.
	GetOrSet(ctx context.Context, key string, ttl time.Duration, producer func(ctx context.Context) (string, error)) (string, error)
	// Invalidate drops the cached value for key. Dropping an absent key is
	// not an error.
	Invalidate(ctx context.Context, key string) error
}

// RedisCache implements Cache on a Redis client.
type RedisCache struct {
	rdb *redis.Client
}

func NewRedisCache(rdb *redis.Client) *RedisCache {
	return &RedisCache{rdb: rdb}
}

func (c *RedisCache) GetOrSet(ctx context.Context, key string, ttl time.Duration, producer func(ctx context.Context) (string, error)) (string, error) {
	val, err := c.rdb.Get(ctx, key).Result()
	if err == nil {
		return val, nil
	}
	if !errors.Is(err, redis.Nil) {
		return "", fmt.Errorf("cache get %s: %w", key, err)
	}

	val, err = producer(ctx)
	if err != nil {
		return "", err
	}

	if err := c.rdb.Set(ctx, key, val, ttl).Err(); err != nil {
		return "", fmt.Errorf("cache set %s: %w", key, err)
	}
	return val, nil
}

func (c *RedisCache) Invalidate(ctx context.Context, key string) error {
	if err := c.rdb.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("cache del %s: %w", key, err)
	}
	return nil
}
