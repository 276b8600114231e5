package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"itemdeck/internal/config"
)

func newTestCache(t *testing.T, ttl time.Duration) (*RedisPayloadCache, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err, "failed to create miniredis")
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisPayloadCache(client, "", ttl), mr
}

func TestRedisPayloadCacheRoundTrip(t *testing.T) {
	c, mr := newTestCache(t, time.Minute)
	ctx := context.Background()

	_, ok, err := c.Get(ctx, "items:english")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "items:english", []byte(`[{"id":1}]`)))
	assert.True(t, mr.Exists("itemdeck:payload:items:english"))
	assert.Equal(t, time.Minute, mr.TTL("itemdeck:payload:items:english"))

	body, ok, err := c.Get(ctx, "items:english")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":1}]`, string(body))

	mr.FastForward(2 * time.Minute)
	_, ok, err = c.Get(ctx, "items:english")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisPayloadCacheSetOverwrites(t *testing.T) {
	c, mr := newTestCache(t, 0)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "items", []byte(`[]`)))
	require.NoError(t, c.Set(ctx, "items", []byte(`[{"id":2}]`)))
	assert.Equal(t, time.Duration(0), mr.TTL("itemdeck:payload:items"))

	body, ok, err := c.Get(ctx, "items")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":2}]`, string(body))
}

func TestFromConfigWithoutAddr(t *testing.T) {
	c, closeFn, err := FromConfig(config.Config{})
	require.NoError(t, err)
	assert.Nil(t, c)
	assert.NoError(t, closeFn())
}

func TestFromConfig(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	c, closeFn, err := FromConfig(config.Config{RedisAddr: mr.Addr(), RedisPayloadTTLSec: 30})
	require.NoError(t, err)
	defer closeFn()

	require.NoError(t, c.Set(context.Background(), "items", []byte(`[]`)))
	assert.Equal(t, 30*time.Second, mr.TTL("itemdeck:payload:items"))
}
