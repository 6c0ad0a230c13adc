package services

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	cacheKeyActiveAmenities = "amenities:active"
	cacheKeyActiveRates     = "rates:active"
)

// CatalogCache holds read-mostly catalog lookups (active amenities, active
// rates). Implementations must be safe for concurrent use.
type CatalogCache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	Invalidate(ctx context.Context, keys ...string) error
}

// NoopCatalogCache never hits. Used when no Redis is configured.
type NoopCatalogCache struct{}

func (NoopCatalogCache) Get(context.Context, string, any) (bool, error) { return false, nil }
func (NoopCatalogCache) Set(context.Context, string, any) error         { return nil }
func (NoopCatalogCache) Invalidate(context.Context, ...string) error    { return nil }

// RedisCatalogCache stores JSON payloads under Prefix:key with a TTL.
type RedisCatalogCache struct {
	Client redis.Cmdable
	Prefix string
	TTL    time.Duration
}

func NewRedisCatalogCache(client redis.Cmdable, prefix string, ttl time.Duration) *RedisCatalogCache {
	if prefix == "" {
		prefix = "catalog"
	}
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &RedisCatalogCache{Client: client, Prefix: prefix, TTL: ttl}
}

func (c *RedisCatalogCache) key(k string) string {
	return c.Prefix + ":" + k
}

func (c *RedisCatalogCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	raw, err := c.Client.Get(ctx, c.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (c *RedisCatalogCache) Set(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.Client.Set(ctx, c.key(key), raw, c.TTL).Err()
}

func (c *RedisCatalogCache) Invalidate(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, 0, len(keys))
	for _, k := range keys {
		full = append(full, c.key(k))
	}
	return c.Client.Del(ctx, full...).Err()
}

// cachedLoad serves key from cache, falling back to load. Cache errors are
// logged and never surface to the caller.
func cachedLoad[T any](ctx context.Context, cache CatalogCache, key string, load func() (T, error)) (T, error) {
	var out T
	if cache == nil {
		return load()
	}
	hit, err := cache.Get(ctx, key, &out)
	if err != nil {
		log.Printf("catalog cache get %s: %v", key, err)
	}
	if hit {
		return out, nil
	}

	out, err = load()
	if err != nil {
		return out, err
	}
	if err := cache.Set(ctx, key, out); err != nil {
		log.Printf("catalog cache set %s: %v", key, err)
	}
	return out, nil
}

func invalidate(ctx context.Context, cache CatalogCache, keys ...string) {
	if cache == nil {
		return
	}
	if err := cache.Invalidate(ctx, keys...); err != nil {
		log.Printf("catalog cache invalidate %v: %v", keys, err)
	}
}
