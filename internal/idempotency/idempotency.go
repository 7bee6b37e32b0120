// Package idempotency guards against replayed mutation requests.
package idempotency

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "idempotency:"

// Guard claims request keys.
type Guard interface {
	// Claim records key and returns false if it was already claimed within the TTL.
	Claim(ctx context.Context, scope, key string) (bool, error)

	// Release forgets key so a failed request can be retried with it.
	Release(ctx context.Context, scope, key string) error
}

// RedisGuard claims keys with SETNX in Redis.
type RedisGuard struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisGuard creates a guard whose claims expire after ttl.
func NewRedisGuard(client *redis.Client, ttl time.Duration) *RedisGuard {
	return &RedisGuard{client: client, ttl: ttl}
}

// Claim sets the key only if it is absent.
func (g *RedisGuard) Claim(ctx context.Context, scope, key string) (bool, error) {
	return g.client.SetNX(ctx, redisKey(scope, key), 1, g.ttl).Result()
}

// Release deletes the key.
func (g *RedisGuard) Release(ctx context.Context, scope, key string) error {
	return g.client.Del(ctx, redisKey(scope, key)).Err()
}

func redisKey(scope, key string) string {
	return keyPrefix + scope + ":" + key
}

// Noop accepts every key. It is used when Redis is not configured.
type Noop struct{}

// Claim always succeeds.
func (Noop) Claim(context.Context, string, string) (bool, error) { return true, nil }

// Release does nothing.
func (Noop) Release(context.Context, string, string) error { return nil }
