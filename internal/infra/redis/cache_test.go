package redis

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"storefront-catalog-service/internal/config"
)

func newTestCache(t *testing.T, prefix string) (*Cache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewCache(client, zap.NewNop(), prefix), mr
}

func TestCache_SetGet(t *testing.T) {
	ctx := context.Background()
	cache, mr := newTestCache(t, "storefront")

	require.NoError(t, cache.Set(ctx, "revoked:abc", []byte("user-1"), time.Minute))

	assert.True(t, mr.Exists("storefront:revoked:abc"))

	got, err := cache.Get(ctx, "revoked:abc")
	require.NoError(t, err)
	assert.Equal(t, []byte("user-1"), got)
}

func TestCache_GetMissing(t *testing.T) {
	cache, _ := newTestCache(t, "storefront")

	got, err := cache.Get(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCache_Expiry(t *testing.T) {
	ctx := context.Background()
	cache, mr := newTestCache(t, "storefront")

	require.NoError(t, cache.Set(ctx, "k", []byte("v"), time.Second))
	mr.FastForward(2 * time.Second)

	got, err := cache.Get(ctx, "k")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCache_Delete(t *testing.T) {
	ctx := context.Background()
	cache, _ := newTestCache(t, "storefront")

	require.NoError(t, cache.Set(ctx, "k", []byte("v"), time.Minute))
	require.NoError(t, cache.Delete(ctx, "k"))
	require.NoError(t, cache.Delete(ctx, "k"))

	got, err := cache.Get(ctx, "k")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCache_ClearOnlyTouchesPrefix(t *testing.T) {
	ctx := context.Background()
	cache, mr := newTestCache(t, "storefront")

	require.NoError(t, cache.Set(ctx, "a", []byte("1"), time.Minute))
	require.NoError(t, cache.Set(ctx, "b", []byte("2"), time.Minute))
	require.NoError(t, mr.Set("other:c", "3"))

	require.NoError(t, cache.Clear(ctx))

	assert.False(t, mr.Exists("storefront:a"))
	assert.False(t, mr.Exists("storefront:b"))
	assert.True(t, mr.Exists("other:c"))
}

func TestNewClient(t *testing.T) {
	mr := miniredis.RunT(t)

	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)

	cfg := config.RedisConfig{Host: mr.Host(), Port: port}
	client, err := NewClient(context.Background(), cfg)
	require.NoError(t, err)
	_ = client.Close()

	mr.Close()
	_, err = NewClient(context.Background(), cfg)
	assert.Error(t, err)
}
