package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Client caches operator statistics in redis with a short TTL. Every method is
// safe on a nil receiver, so the service degrades to direct DB reads when
// redis is not reachable at startup.
type Client struct {
	rdb *redis.Client
	ttl time.Duration
	log *zerolog.Logger
}

type Config struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

func New(cfg Config, log *zerolog.Logger) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	if cfg.TTL <= 0 {
		cfg.TTL = 10 * time.Second
	}
	return &Client{rdb: rdb, ttl: cfg.TTL, log: log}, nil
}

func (c *Client) Close() {
	if c == nil || c.rdb == nil {
		return
	}
	_ = c.rdb.Close()
}

// StatsKey namespaces the dashboard aggregate per event.
func StatsKey(eventID int64) string {
	return fmt.Sprintf("stats:event:%d", eventID)
}

// GetJSON reports whether the key was present and decoded into v.
func (c *Client) GetJSON(ctx context.Context, key string, v any) bool {
	if c == nil || c.rdb == nil {
		return false
	}
	payload, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false
	}
	if err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("cache read failed")
		return false
	}
	if err := json.Unmarshal(payload, v); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("cache entry undecodable, dropping")
		_ = c.rdb.Del(ctx, key).Err()
		return false
	}
	return true
}

func (c *Client) SetJSON(ctx context.Context, key string, v any) {
	if c == nil || c.rdb == nil {
		return
	}
	payload, err := json.Marshal(v)
	if err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("cache encode failed")
		return
	}
	if err := c.rdb.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("cache write failed")
	}
}

// Invalidate drops keys after state changes (confirm, scan, expiry) so the
// dashboard never serves a stale aggregate past the TTL window.
func (c *Client) Invalidate(ctx context.Context, keys ...string) {
	if c == nil || c.rdb == nil || len(keys) == 0 {
		return
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		c.log.Warn().Err(err).Strs("keys", keys).Msg("cache invalidation failed")
	}
}
