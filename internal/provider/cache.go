package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	goredis "github.com/go-redis/redis/v8"

	"tradedesk/internal/model"
)

// DefaultCacheTTL is how long a fetched series stays valid. Short on
// purpose: repeated dashboard clicks within a minute reuse the same bars,
// anything older refetches.
const DefaultCacheTTL = 60 * time.Second

// Cache is a read-through Redis decorator around another Provider. Cache
// failures are logged and fall through to the inner provider, never
// surfaced to the caller.
type Cache struct {
	inner Provider
	rdb   *goredis.Client
	ttl   time.Duration
	log   *slog.Logger
}

// NewCache connects to Redis and wraps the inner provider. Fails when the
// initial ping fails, so a misconfigured cache is caught at startup.
func NewCache(inner Provider, addr, password string, ttl time.Duration, log *slog.Logger) (*Cache, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: password,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Cache{inner: inner, rdb: client, ttl: ttl, log: log}, nil
}

// Fetch implements Provider.
func (c *Cache) Fetch(ctx context.Context, symbol string, interval model.Interval, lookback time.Duration) (model.PriceSeries, error) {
	key := cacheKey(symbol, interval, lookback)

	if data, err := c.rdb.Get(ctx, key).Bytes(); err == nil {
		var series model.PriceSeries
		if err := json.Unmarshal(data, &series); err == nil && len(series.Bars) > 0 {
			return series, nil
		}
		c.log.Warn("cache entry corrupt, refetching", "key", key)
	} else if err != goredis.Nil {
		c.log.Warn("cache read failed", "key", key, "err", err)
	}

	series, err := c.inner.Fetch(ctx, symbol, interval, lookback)
	if err != nil {
		return series, err
	}

	if data, err := json.Marshal(series); err == nil {
		if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
			c.log.Warn("cache write failed", "key", key, "err", err)
		}
	}
	return series, nil
}

// Close releases the Redis connection.
func (c *Cache) Close() error {
	return c.rdb.Close()
}

// cacheKey carries the lookback too: the same symbol and interval fetched
// over a different window is a different series, and must not alias.
func cacheKey(symbol string, interval model.Interval, lookback time.Duration) string {
	return "series:" + symbol + ":" + string(interval) + ":" + lookback.String()
}
