package idempotency

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoop(t *testing.T) {
	ctx := context.Background()
	for range 2 {
		ok, err := Noop{}.Claim(ctx, "u1", "k")
		require.NoError(t, err)
		assert.True(t, ok)
	}
	assert.NoError(t, Noop{}.Release(ctx, "u1", "k"))
}

func TestRedisKey(t *testing.T) {
	assert.Equal(t, "idempotency:u1:abc", redisKey("u1", "abc"))
}

// TestRedisGuard needs a running Redis at REDIS_ADDR (default localhost:6379).
func TestRedisGuard(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { client.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("redis not available at %s: %v", addr, err)
	}

	g := NewRedisGuard(client, time.Minute)
	scope, key := "user-"+uuid.NewString(), uuid.NewString()
	t.Cleanup(func() { client.Del(context.Background(), redisKey(scope, key)) })

	ok, err := g.Claim(ctx, scope, key)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = g.Claim(ctx, scope, key)
	require.NoError(t, err)
	assert.False(t, ok, "second claim must fail")

	ok, err = g.Claim(ctx, "other-"+scope, key)
	require.NoError(t, err)
	assert.True(t, ok, "keys are scoped per caller")
	client.Del(ctx, redisKey("other-"+scope, key))

	require.NoError(t, g.Release(ctx, scope, key))
	ok, err = g.Claim(ctx, scope, key)
	require.NoError(t, err)
	assert.True(t, ok)
}
