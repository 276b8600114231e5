// Package cache keeps raw upstream payloads in Redis so repeated syncs do not hit the item API.
package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"itemdeck/internal/catalog"
	"itemdeck/internal/config"
)

const defaultPrefix = "itemdeck:payload:"

type RedisPayloadCache struct {
	client redis.Cmdable
	prefix string
	ttl    time.Duration
}

func NewRedisPayloadCache(client redis.Cmdable, prefix string, ttl time.Duration) *RedisPayloadCache {
	if prefix == "" {
		prefix = defaultPrefix
	}
	return &RedisPayloadCache{client: client, prefix: prefix, ttl: ttl}
}

var _ catalog.PayloadCache = (*RedisPayloadCache)(nil)

// FromConfig returns a nil cache when REDIS_ADDR is empty. The returned close func is never nil.
func FromConfig(cfg config.Config) (catalog.PayloadCache, func() error, error) {
	if cfg.RedisAddr == "" {
		return nil, func() error { return nil }, nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	ttl := time.Duration(cfg.RedisPayloadTTLSec) * time.Second
	return NewRedisPayloadCache(client, defaultPrefix, ttl), client.Close, nil
}

func (c *RedisPayloadCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	body, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return body, true, nil
}

// Set stores the payload with the configured TTL; a non-positive TTL keeps it until evicted.
func (c *RedisPayloadCache) Set(ctx context.Context, key string, payload []byte) error {
	ttl := c.ttl
	if ttl < 0 {
		ttl = 0
	}
	return c.client.Set(ctx, c.prefix+key, payload, ttl).Err()
}
