package hooks

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *RedisCache) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, NewRedisCache(client, "joystick:hooks:")
}

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryCache()
	now := time.Now()
	cache.now = func() time.Time { return now }

	var actions []string
	assert.ErrorIs(t, cache.Get(ctx, "device:d1:actions", &actions), ErrMiss)

	require.NoError(t, cache.Set(ctx, "device:d1:actions", []string{"set-mode", "ping"}, time.Minute))
	require.NoError(t, cache.Set(ctx, "device:d1:action:ping", map[string]string{"command": "ping"}, 0))
	require.NoError(t, cache.Set(ctx, "device:d2:actions", []string{"ping"}, time.Minute))

	require.NoError(t, cache.Get(ctx, "device:d1:actions", &actions))
	assert.Equal(t, []string{"set-mode", "ping"}, actions)

	now = now.Add(time.Minute)
	assert.ErrorIs(t, cache.Get(ctx, "device:d1:actions", &actions), ErrMiss, "entries expire at their ttl")

	var schema map[string]string
	require.NoError(t, cache.Get(ctx, "device:d1:action:ping", &schema), "a zero ttl never expires")

	require.NoError(t, cache.InvalidatePrefix(ctx, "device:d1:"))
	assert.ErrorIs(t, cache.Get(ctx, "device:d1:action:ping", &schema), ErrMiss)

	now = now.Add(-30 * time.Second)
	require.NoError(t, cache.Get(ctx, "device:d2:actions", &actions))
	assert.Equal(t, []string{"ping"}, actions)
}

func TestRedisCache(t *testing.T) {
	ctx := context.Background()
	mr, cache := setupTestRedis(t)

	var permitted bool
	assert.ErrorIs(t, cache.Get(ctx, "permission:set-mode", &permitted), ErrMiss)

	require.NoError(t, cache.Set(ctx, "permission:set-mode", true, time.Minute))
	require.NoError(t, cache.Get(ctx, "permission:set-mode", &permitted))
	assert.True(t, permitted)
	assert.True(t, mr.Exists("joystick:hooks:permission:set-mode"))

	mr.FastForward(2 * time.Minute)
	assert.ErrorIs(t, cache.Get(ctx, "permission:set-mode", &permitted), ErrMiss)

	for i := 0; i < 450; i++ {
		require.NoError(t, cache.Set(ctx, "device:d1:action:"+strconv.Itoa(i), i, 0))
	}
	require.NoError(t, cache.Set(ctx, "device:d2:actions", []string{"ping"}, 0))
	require.NoError(t, mr.Set("other:device:d1:actions", "untouched"))

	require.NoError(t, cache.InvalidatePrefix(ctx, "device:d1:"))

	keys := mr.Keys()
	assert.ElementsMatch(t, []string{"joystick:hooks:device:d2:actions", "other:device:d1:actions"}, keys)
}

func TestRedisCacheUnavailable(t *testing.T) {
	ctx := context.Background()
	mr, cache := setupTestRedis(t)
	mr.Close()

	var permitted bool
	err := cache.Get(ctx, "permission:set-mode", &permitted)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrMiss)
}
