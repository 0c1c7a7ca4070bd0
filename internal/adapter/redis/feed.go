// Package redis caches the published feed in Redis.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/go-redis/redis/v8"

	"github.com/quietpage/quietpage/internal/config"
	"github.com/quietpage/quietpage/internal/domain"
)

const feedPrefix = "quietpage:feed:"

// NewClient connects to Redis and pings it.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*goredis.Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}
	return rdb, nil
}

// FeedCache stores feed pages as JSON under short-lived keys.
type FeedCache struct {
	rdb     *goredis.Client
	ttl     time.Duration
	observe func(result string)
}

// NewFeedCache creates a cache whose entries expire after ttl.
func NewFeedCache(rdb *goredis.Client, ttl time.Duration) *FeedCache {
	return &FeedCache{rdb: rdb, ttl: ttl, observe: func(string) {}}
}

// Ping checks the connection for the readiness probe.
func (c *FeedCache) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// OnLookup registers fn to receive "hit", "miss" or "error" for every Get.
func (c *FeedCache) OnLookup(fn func(result string)) {
	c.observe = fn
}

// FeedKey names the cache entry for one tab of the feed.
func FeedKey(typ domain.WorkType, limit int) string {
	t := string(typ)
	if t == "" {
		t = "all"
	}
	return fmt.Sprintf("%s%s:%d", feedPrefix, t, limit)
}

// Get returns the cached page and whether it was present.
func (c *FeedCache) Get(ctx context.Context, typ domain.WorkType, limit int) ([]domain.Work, bool, error) {
	key := FeedKey(typ, limit)
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, goredis.Nil) {
		c.observe("miss")
		return nil, false, nil
	}
	if err != nil {
		c.observe("error")
		return nil, false, fmt.Errorf("redis get %s: %w", key, err)
	}

	var works []domain.Work
	if err := json.Unmarshal(raw, &works); err != nil {
		// A corrupt entry is a miss; the next Set overwrites it.
		c.observe("miss")
		return nil, false, nil
	}
	c.observe("hit")
	return works, true, nil
}

// Set stores a page with the cache TTL.
func (c *FeedCache) Set(ctx context.Context, typ domain.WorkType, limit int, works []domain.Work) error {
	key := FeedKey(typ, limit)
	raw, err := json.Marshal(works)
	if err != nil {
		return fmt.Errorf("encode feed: %w", err)
	}
	if err := c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Invalidate drops every cached feed page.
func (c *FeedCache) Invalidate(ctx context.Context) error {
	var cursor uint64
	for {
		keys, next, err := c.rdb.Scan(ctx, cursor, feedPrefix+"*", 500).Result()
		if err != nil {
			return fmt.Errorf("redis scan: %w", err)
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("redis del: %w", err)
			}
		}
		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}
