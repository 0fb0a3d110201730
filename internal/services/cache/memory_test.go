package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(maxEntries int) (*MemoryCache, *time.Time) {
	mc := NewMemoryCache(maxEntries, 0)
	clock := time.Unix(0, 0)
	mc.now = func() time.Time { return clock }
	return mc, &clock
}

func TestMemoryCache_SetGet(t *testing.T) {
	ctx := context.Background()
	mc, _ := newTestCache(0)

	require.NoError(t, mc.Set(ctx, "clips", []byte(`["a.wav"]`), time.Minute))
	value, ok := mc.Get(ctx, "clips")
	assert.True(t, ok)
	assert.Equal(t, `["a.wav"]`, string(value))

	_, ok = mc.Get(ctx, "missing")
	assert.False(t, ok)

	stats := mc.Stats()
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.Equal(t, int64(1), stats.Sets)
	assert.Equal(t, 1, stats.Entries)
}

func TestMemoryCache_Expiry(t *testing.T) {
	ctx := context.Background()
	mc, clock := newTestCache(0)

	require.NoError(t, mc.Set(ctx, "k", []byte("v"), time.Second))
	*clock = clock.Add(999 * time.Millisecond)
	_, ok := mc.Get(ctx, "k")
	assert.True(t, ok)

	*clock = clock.Add(time.Millisecond)
	_, ok = mc.Get(ctx, "k")
	assert.False(t, ok)
	assert.Equal(t, 0, mc.Stats().Entries)
}

func TestMemoryCache_DefaultTTL(t *testing.T) {
	ctx := context.Background()
	mc, clock := newTestCache(0)

	require.NoError(t, mc.Set(ctx, "k", []byte("v"), 0))
	*clock = clock.Add(DefaultTTL - time.Second)
	_, ok := mc.Get(ctx, "k")
	assert.True(t, ok)
}

func TestMemoryCache_EvictsWhenFull(t *testing.T) {
	ctx := context.Background()
	mc, _ := newTestCache(2)

	require.NoError(t, mc.Set(ctx, "short", []byte("1"), time.Second))
	require.NoError(t, mc.Set(ctx, "long", []byte("2"), time.Hour))
	require.NoError(t, mc.Set(ctx, "new", []byte("3"), time.Hour))

	_, ok := mc.Get(ctx, "short")
	assert.False(t, ok)
	_, ok = mc.Get(ctx, "long")
	assert.True(t, ok)
	_, ok = mc.Get(ctx, "new")
	assert.True(t, ok)

	// Replacing an existing key never evicts
	require.NoError(t, mc.Set(ctx, "new", []byte("4"), time.Hour))
	assert.Equal(t, 2, mc.Stats().Entries)
}

func TestMemoryCache_DeleteClear(t *testing.T) {
	ctx := context.Background()
	mc, _ := newTestCache(0)

	_ = mc.Set(ctx, "a", []byte("1"), time.Minute)
	_ = mc.Set(ctx, "b", []byte("2"), time.Minute)
	require.NoError(t, mc.Delete(ctx, "a"))
	_, ok := mc.Get(ctx, "a")
	assert.False(t, ok)

	require.NoError(t, mc.Clear(ctx))
	assert.Equal(t, 0, mc.Stats().Entries)
}

func TestMemoryCache_RemoveExpired(t *testing.T) {
	ctx := context.Background()
	mc, clock := newTestCache(0)

	_ = mc.Set(ctx, "a", []byte("1"), time.Second)
	_ = mc.Set(ctx, "b", []byte("2"), time.Hour)
	*clock = clock.Add(time.Minute)
	mc.removeExpired()

	assert.Equal(t, 1, mc.Stats().Entries)
	assert.Equal(t, int64(1), mc.Stats().Evictions)
}

func TestMemoryCache_StopIsIdempotent(t *testing.T) {
	mc := NewMemoryCache(0, time.Millisecond)
	mc.Stop()
	mc.Stop()
}
