package locker

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testLockKey = "sync:feeds:lock"

func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return client, mr
}

func TestRedisLocker_Acquire_Success(t *testing.T) {
	client, mr := setupTestRedis(t)
	locker := NewRedisLocker(client, zap.NewNop(), "storefront")

	acquired, err := locker.Acquire(context.Background(), testLockKey, 5*time.Second)
	require.NoError(t, err)
	assert.True(t, acquired)
	assert.True(t, mr.Exists("storefront:"+testLockKey))
}

func TestRedisLocker_Acquire_AlreadyHeld(t *testing.T) {
	client, _ := setupTestRedis(t)
	ctx := context.Background()

	locker1 := NewRedisLocker(client, zap.NewNop(), "storefront")
	locker2 := NewRedisLocker(client, zap.NewNop(), "storefront")

	acquired1, err := locker1.Acquire(ctx, testLockKey, 5*time.Second)
	require.NoError(t, err)
	assert.True(t, acquired1)

	acquired2, _ := locker2.Acquire(ctx, testLockKey, 5*time.Second)
	assert.False(t, acquired2)
}

func TestRedisLocker_PrefixesAreIndependent(t *testing.T) {
	client, _ := setupTestRedis(t)
	ctx := context.Background()

	a := NewRedisLocker(client, zap.NewNop(), "tenant-a")
	b := NewRedisLocker(client, zap.NewNop(), "tenant-b")

	ok, err := a.Acquire(ctx, testLockKey, 5*time.Second)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = b.Acquire(ctx, testLockKey, 5*time.Second)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRedisLocker_Release_Success(t *testing.T) {
	client, _ := setupTestRedis(t)
	ctx := context.Background()
	locker := NewRedisLocker(client, zap.NewNop(), "")

	acquired, err := locker.Acquire(ctx, testLockKey, 5*time.Second)
	require.NoError(t, err)
	require.True(t, acquired)

	require.NoError(t, locker.Release(ctx, testLockKey))

	acquired, err = locker.Acquire(ctx, testLockKey, 5*time.Second)
	require.NoError(t, err)
	assert.True(t, acquired)
}

func TestRedisLocker_Release_NotOwned(t *testing.T) {
	client, _ := setupTestRedis(t)
	ctx := context.Background()

	locker1 := NewRedisLocker(client, zap.NewNop(), "")
	locker2 := NewRedisLocker(client, zap.NewNop(), "")

	acquired, err := locker1.Acquire(ctx, testLockKey, 5*time.Second)
	require.NoError(t, err)
	require.True(t, acquired)

	require.NoError(t, locker2.Release(ctx, testLockKey))

	acquired, _ = locker2.Acquire(ctx, testLockKey, 5*time.Second)
	assert.False(t, acquired, "lock must survive a release by a non-owner")

	require.NoError(t, locker1.Release(ctx, testLockKey))
}

func TestRedisLocker_ExpiresAfterTTL(t *testing.T) {
	client, mr := setupTestRedis(t)
	ctx := context.Background()

	locker1 := NewRedisLocker(client, zap.NewNop(), "")
	locker2 := NewRedisLocker(client, zap.NewNop(), "")

	acquired, err := locker1.Acquire(ctx, testLockKey, 2*time.Second)
	require.NoError(t, err)
	require.True(t, acquired)

	mr.FastForward(3 * time.Second)

	acquired, err = locker2.Acquire(ctx, testLockKey, 2*time.Second)
	require.NoError(t, err)
	assert.True(t, acquired)
}

func TestRedisLocker_ConcurrentAcquisition(t *testing.T) {
	client, _ := setupTestRedis(t)
	ctx := context.Background()

	const instances = 5
	results := make(chan bool, instances)

	for range instances {
		go func() {
			locker := NewRedisLocker(client, zap.NewNop(), "")
			acquired, _ := locker.Acquire(ctx, testLockKey, 2*time.Second)
			results <- acquired
		}()
	}

	successes := 0
	for range instances {
		if <-results {
			successes++
		}
	}
	assert.Equal(t, 1, successes)
}

func TestRedisLocker_ContextCancellation(t *testing.T) {
	client, _ := setupTestRedis(t)
	locker := NewRedisLocker(client, zap.NewNop(), "")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	acquired, err := locker.Acquire(ctx, testLockKey, 5*time.Second)
	assert.Error(t, err)
	assert.False(t, acquired)
}
