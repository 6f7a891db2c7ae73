// Package cache is a thin JSON read-through layer over Redis. When no
// Redis address is configured every call is a miss and writes are no-ops.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hpfoods/hpfoods-api/config"
	"github.com/hpfoods/hpfoods-api/pkg/logger"
	"github.com/hpfoods/hpfoods-api/pkg/metrics"
)

// Store is what repositories depend on. Get reports a hit.
type Store interface {
	Get(ctx context.Context, key string, dest any) bool
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

var RDB *redis.Client

// Connect initialises RDB and pings it. An empty REDIS_ADDR leaves the
// cache disabled and is not an error.
func Connect(ctx context.Context) error {
	addr := config.RedisAddr()
	if addr == "" {
		RDB = nil
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: config.RedisPassword(),
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		RDB = nil
		return fmt.Errorf("cache: redis ping: %w", err)
	}
	RDB = client
	return nil
}

// Close releases RDB if it was opened.
func Close() error {
	if RDB == nil {
		return nil
	}
	err := RDB.Close()
	RDB = nil
	return err
}

// Redis implements Store on a go-redis client. A nil client is valid and
// behaves as an always-empty cache.
type Redis struct {
	client *redis.Client
	name   string
}

// New returns a Store named name (used as the metrics label).
func New(client *redis.Client, name string) *Redis {
	return &Redis{client: client, name: name}
}

// Default wraps the connected RDB.
func Default(name string) *Redis { return New(RDB, name) }

func (c *Redis) Get(ctx context.Context, key string, dest any) bool {
	if c.client == nil {
		return false
	}

	val, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.WithCtx(ctx).Warn("cache get failed", "key", key, "error", err)
		}
		metrics.CacheMisses.WithLabelValues(c.name).Inc()
		return false
	}

	if err := json.Unmarshal(val, dest); err != nil {
		metrics.CacheMisses.WithLabelValues(c.name).Inc()
		return false
	}
	metrics.CacheHits.WithLabelValues(c.name).Inc()
	return true
}

func (c *Redis) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	if c.client == nil {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache: marshal %s: %w", key, err)
	}
	return c.client.Set(ctx, key, data, ttl).Err()
}

func (c *Redis) Del(ctx context.Context, keys ...string) error {
	if c.client == nil || len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}
