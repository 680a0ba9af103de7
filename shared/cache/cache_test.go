package cache_test

import (
	"context"
	"errors"
	"hotel/infras/otel/mocks"
	"hotel/shared/cache"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedRoom struct {
	RoomNumber string  `json:"roomNumber"`
	Price      float64 `json:"price"`
}

func newCache(t *testing.T) (cache.RedisCache, *miniredis.Miniredis) {
	t.Helper()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})

	t.Cleanup(func() {
		_ = client.Close()
	})

	return cache.NewRedisCache(client, mocks.NewOtel()), server
}

func TestRedisCache_SaveAndGet(t *testing.T) {
	redisCache, server := newCache(t)
	ctx := context.Background()

	require.NoError(t, redisCache.Save(ctx, "room:get:1", cachedRoom{RoomNumber: "101", Price: 99}, 60))

	var room cachedRoom
	require.NoError(t, redisCache.Get(ctx, "room:get:1", &room))
	assert.Equal(t, cachedRoom{RoomNumber: "101", Price: 99}, room)

	require.NoError(t, redisCache.Save(ctx, "plain", "value", 60))

	var plain string
	require.NoError(t, redisCache.Get(ctx, "plain", &plain))
	assert.Equal(t, "value", plain)

	server.FastForward(61 * time.Second)

	err := redisCache.Get(ctx, "room:get:1", &room)
	assert.True(t, errors.Is(err, cache.Nil))
}

func TestRedisCache_GetMiss(t *testing.T) {
	redisCache, _ := newCache(t)

	var room cachedRoom
	err := redisCache.Get(context.Background(), "missing", &room)

	assert.Error(t, err)
	assert.True(t, errors.Is(err, cache.Nil))
}

func TestRedisCache_ExistsAndDelete(t *testing.T) {
	redisCache, _ := newCache(t)
	ctx := context.Background()

	exists, err := redisCache.Exists(ctx, "revoked:token-1")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, redisCache.Save(ctx, "revoked:token-1", "1", 60))

	exists, err = redisCache.Exists(ctx, "revoked:token-1")
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, redisCache.Delete(ctx, "revoked:token-1"))

	exists, err = redisCache.Exists(ctx, "revoked:token-1")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRedisCache_Increment(t *testing.T) {
	redisCache, server := newCache(t)
	ctx := context.Background()

	for want := int64(1); want <= 3; want++ {
		count, err := redisCache.Increment(ctx, "limiter:127.0.0.1", 600)
		require.NoError(t, err)
		assert.Equal(t, want, count)
	}

	assert.Equal(t, 600*time.Second, server.TTL("limiter:127.0.0.1"))

	server.FastForward(601 * time.Second)

	count, err := redisCache.Increment(ctx, "limiter:127.0.0.1", 600)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestRedisCache_Clear(t *testing.T) {
	redisCache, server := newCache(t)
	ctx := context.Background()

	require.NoError(t, redisCache.Save(ctx, "room:gets:a", "1", 60))
	require.NoError(t, redisCache.Save(ctx, "room:gets:b", "2", 60))
	require.NoError(t, redisCache.Save(ctx, "room:get:1", "3", 60))

	require.NoError(t, redisCache.Clear(ctx, "room:gets:*"))

	assert.False(t, server.Exists("room:gets:a"))
	assert.False(t, server.Exists("room:gets:b"))
	assert.True(t, server.Exists("room:get:1"))
}
