// Package cache is a thin Redis wrapper for catalog response caching.
// A nil *Cache is valid and disables caching, so callers never need to
// branch on whether Redis is configured.
package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// Product list responses, keyed by the query string.
	KeyProductList = "catalog:products:"

	TTLProductList = 5 * time.Minute
)

type Cache struct {
	rdb *redis.Client
}

// New returns a Cache backed by the Redis at addr, or nil when addr is
// empty.
func New(addr string) *Cache {
	if addr == "" {
		return nil
	}
	return &Cache{rdb: redis.NewClient(&redis.Options{Addr: addr})}
}

func (c *Cache) Get(ctx context.Context, key string) (string, bool) {
	if c == nil {
		return "", false
	}
	val, err := c.rdb.Get(ctx, key).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

func (c *Cache) Set(ctx context.Context, key, val string, ttl time.Duration) {
	if c == nil {
		return
	}
	// Cache writes are best-effort.
	_ = c.rdb.Set(ctx, key, val, ttl).Err()
}

// InvalidatePrefix drops every key under the given prefix. Called on
// catalog writes.
func (c *Cache) InvalidatePrefix(ctx context.Context, prefix string) {
	if c == nil {
		return
	}
	iter := c.rdb.Scan(ctx, 0, prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		_ = c.rdb.Del(ctx, iter.Val()).Err()
	}
}
