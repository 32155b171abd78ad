package eligibility

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// VerdictCache caches verdicts per (client, staff) pair. Implementations
// must treat a miss as a normal condition, never as an error.
type VerdictCache interface {
	Get(ctx context.Context, clientID, staffID string) (Verdict, bool, error)
	Set(ctx context.Context, clientID, staffID string, v Verdict) error
	Invalidate(ctx context.Context, clientID, staffID string) error
}

// RedisCache stores verdicts in Redis with a short TTL. Writes to a pair's
// preferences or restrictions invalidate its entry, so the TTL only bounds
// staleness against out-of-band data changes.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func cacheKey(clientID, staffID string) string {
	return fmt.Sprintf("eligibility:%s:%s", clientID, staffID)
}

func (c *RedisCache) Get(ctx context.Context, clientID, staffID string) (Verdict, bool, error) {
	raw, err := c.client.Get(ctx, cacheKey(clientID, staffID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return Verdict{}, false, nil
		}
		return Verdict{}, false, fmt.Errorf("verdict cache get: %w", err)
	}
	var v Verdict
	if err := json.Unmarshal(raw, &v); err != nil {
		return Verdict{}, false, fmt.Errorf("verdict cache decode: %w", err)
	}
	return v, true, nil
}

func (c *RedisCache) Set(ctx context.Context, clientID, staffID string, v Verdict) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("verdict cache encode: %w", err)
	}
	if err := c.client.Set(ctx, cacheKey(clientID, staffID), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("verdict cache set: %w", err)
	}
	return nil
}

func (c *RedisCache) Invalidate(ctx context.Context, clientID, staffID string) error {
	if err := c.client.Del(ctx, cacheKey(clientID, staffID)).Err(); err != nil {
		return fmt.Errorf("verdict cache invalidate: %w", err)
	}
	return nil
}
