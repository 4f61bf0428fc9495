package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"

	"resume-builder/internal/shared/telemetry"
)

// Redis is a Cache backed by go-redis. A nil client bypasses the cache.
type Redis struct {
	client *redis.Client
	prefix string

	warnedUnavailable atomic.Bool
}

// NewRedis connects using a redis:// URL. It returns an error when the server is unreachable.
func NewRedis(ctx context.Context, url, prefix string) (*Redis, error) {
	opts, err := redis.ParseURL(strings.TrimSpace(url))
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &Redis{client: client, prefix: prefix}, nil
}

func (r *Redis) key(k string) string {
	if r.prefix == "" {
		return k
	}
	return r.prefix + ":" + k
}

func (r *Redis) warnOnce(err error) {
	if r.warnedUnavailable.CompareAndSwap(false, true) {
		telemetry.Warn("cache.redis_unavailable", map[string]any{"error": err})
	}
}

func (r *Redis) GetJSON(ctx context.Context, key string, out any) (bool, error) {
	if r == nil || r.client == nil {
		return false, nil
	}
	b, err := r.client.Get(ctx, r.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		r.warnOnce(err)
		return false, err
	}
	if len(b) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(b, out); err != nil {
		return false, err
	}
	return true, nil
}

func (r *Redis) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	if r == nil || r.client == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, r.key(key), b, ttl).Err(); err != nil {
		r.warnOnce(err)
		return err
	}
	return nil
}

func (r *Redis) Delete(ctx context.Context, key string) error {
	if r == nil || r.client == nil {
		return nil
	}
	if err := r.client.Del(ctx, r.key(key)).Err(); err != nil {
		r.warnOnce(err)
		return err
	}
	return nil
}

// Close releases the underlying connection pool.
func (r *Redis) Close() error {
	if r == nil || r.client == nil {
		return nil
	}
	return r.client.Close()
}

// Open returns a Redis cache when url is set and reachable, otherwise an in-memory cache.
func Open(ctx context.Context, url, prefix string) Cache {
	if strings.TrimSpace(url) == "" {
		return NewMemory()
	}
	r, err := NewRedis(ctx, url, prefix)
	if err != nil {
		telemetry.Warn("cache.redis_fallback", map[string]any{"error": err})
		return NewMemory()
	}
	return r
}

var _ Cache = (*Redis)(nil)
