package utils

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedView struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func TestCache_SetGetExpire(t *testing.T) {
	ctx := context.Background()
	mr, rdb := newRedis(t)
	key := StatementKey("user-1", "statement-1")

	var got cachedView
	found, err := GetCache(ctx, rdb, key, &got)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, SetCache(ctx, rdb, key, cachedView{Name: "a", Count: 2}, time.Minute))
	found, err = GetCache(ctx, rdb, key, &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, cachedView{Name: "a", Count: 2}, got)

	mr.FastForward(2 * time.Minute)
	found, err = GetCache(ctx, rdb, key, &got)
	require.NoError(t, err)
	assert.False(t, found)
	assert.False(t, mr.Exists(key))
}

func TestBalanceGeneration(t *testing.T) {
	ctx := context.Background()
	_, rdb := newRedis(t)

	gen, err := BalanceGeneration(ctx, rdb, "user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), gen)

	require.NoError(t, BumpBalanceGeneration(ctx, rdb, "user-1"))
	require.NoError(t, BumpBalanceGeneration(ctx, rdb, "user-1"))
	gen, err = BalanceGeneration(ctx, rdb, "user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), gen)

	other, err := BalanceGeneration(ctx, rdb, "user-2")
	require.NoError(t, err)
	assert.Equal(t, int64(0), other)
}

func TestBalanceGeneration_LateWriteIsNotServed(t *testing.T) {
	ctx := context.Background()
	_, rdb := newRedis(t)

	// Reader picks its generation, then an append lands before it writes back
	readerGen, err := BalanceGeneration(ctx, rdb, "user-1")
	require.NoError(t, err)
	require.NoError(t, BumpBalanceGeneration(ctx, rdb, "user-1"))
	require.NoError(t, SetCache(ctx, rdb, BalanceKey("user-1", readerGen), cachedView{Name: "before append"}, time.Minute))

	current, err := BalanceGeneration(ctx, rdb, "user-1")
	require.NoError(t, err)
	var got cachedView
	found, err := GetCache(ctx, rdb, BalanceKey("user-1", current), &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestCache_CorruptEntry(t *testing.T) {
	mr, rdb := newRedis(t)
	require.NoError(t, mr.Set(ProfileKey("user-1"), "{not json"))

	var got cachedView
	found, err := GetCache(context.Background(), rdb, ProfileKey("user-1"), &got)
	assert.Error(t, err)
	assert.False(t, found)
}

func TestCache_NilClientIsDisabled(t *testing.T) {
	ctx := context.Background()
	var got cachedView

	found, err := GetCache(ctx, nil, "key", &got)
	require.NoError(t, err)
	assert.False(t, found)
	assert.NoError(t, SetCache(ctx, nil, "key", got, time.Minute))
	assert.NoError(t, BumpBalanceGeneration(ctx, nil, "user-1"))
	gen, err := BalanceGeneration(ctx, nil, "user-1")
	assert.NoError(t, err)
	assert.Zero(t, gen)
}

func TestCacheKeys(t *testing.T) {
	assert.Equal(t, "balance:user:u1:3", BalanceKey("u1", 3))
	assert.Equal(t, "balance:generation:user:u1", BalanceGenerationKey("u1"))
	assert.Equal(t, "statement:user:u1:s1", StatementKey("u1", "s1"))
	assert.Equal(t, "profile:user:u1", ProfileKey("u1"))
}
