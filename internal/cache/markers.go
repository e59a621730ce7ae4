// Package cache holds the optional Redis layer in front of the marker
// feed. The feed is slow and markers change rarely, so a short TTL cache
// absorbs most map loads.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"estatecore/internal/config"
	"estatecore/internal/model"
)

// MarkerCache caches normalized marker sets keyed by the filter
// combination. A nil *MarkerCache is valid and disables caching, so
// callers never branch on configuration.
type MarkerCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewMarkerCache connects to Redis, or returns nil when no address is
// configured. A failed ping also disables the cache rather than blocking
// startup.
func NewMarkerCache(cfg *config.RedisConfig) *MarkerCache {
	if cfg.Addr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("Warning: Redis unavailable at %s, marker cache disabled: %v", cfg.Addr, err)
		return nil
	}

	return &MarkerCache{
		client: client,
		ttl:    time.Duration(cfg.TTLSeconds) * time.Second,
	}
}

// Key builds the cache key for a filter combination. Nil fields collapse
// to "-" so distinct combinations never collide.
func Key(bedrooms *int, minPrice, maxPrice *float64) string {
	part := func(v interface{}) string {
		switch p := v.(type) {
		case *int:
			if p != nil {
				return fmt.Sprintf("%d", *p)
			}
		case *float64:
			if p != nil {
				return fmt.Sprintf("%.0f", *p)
			}
		}
		return "-"
	}
	return fmt.Sprintf("markers:%s:%s:%s", part(bedrooms), part(minPrice), part(maxPrice))
}

// Get returns the cached marker set, or nil on miss, disabled cache or
// any Redis error.
func (c *MarkerCache) Get(ctx context.Context, key string) []model.MapMarker {
	if c == nil {
		return nil
	}

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("Warning: marker cache read failed: %v", err)
		}
		return nil
	}

	var markers []model.MapMarker
	if err := json.Unmarshal(data, &markers); err != nil {
		log.Printf("Warning: marker cache entry corrupt, dropping: %v", err)
		c.client.Del(ctx, key)
		return nil
	}
	return markers
}

// Set stores a marker set under the key with the configured TTL. Errors
// are logged and swallowed; the cache is best effort.
func (c *MarkerCache) Set(ctx context.Context, key string, markers []model.MapMarker) {
	if c == nil {
		return
	}

	data, err := json.Marshal(markers)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		log.Printf("Warning: marker cache write failed: %v", err)
	}
}

// Close releases the Redis connection.
func (c *MarkerCache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}
