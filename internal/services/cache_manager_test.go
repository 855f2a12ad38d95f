package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/happyplace/internal/domain"
)

func TestMemoryCacheBackend_TTLAndPatterns(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	m := NewMemoryCacheBackend("hph:")
	m.now = func() time.Time { return now }

	require.NoError(t, m.Set(ctx, "query:a", []byte("A"), time.Minute))
	require.NoError(t, m.Set(ctx, "query:b", []byte("B"), time.Minute))
	require.NoError(t, m.Set(ctx, "listing:a", []byte("L"), 0))

	got, err := m.Get(ctx, "query:a")
	require.NoError(t, err)
	assert.Equal(t, []byte("A"), got)
	assert.True(t, m.Exists(ctx, "listing:a"))

	require.NoError(t, m.DeletePattern(ctx, "query:*"))
	_, err = m.Get(ctx, "query:b")
	assert.True(t, domain.IsNotFound(err))
	assert.True(t, m.Exists(ctx, "listing:a"))

	require.NoError(t, m.Set(ctx, "query:c", []byte("C"), time.Minute))
	now = now.Add(2 * time.Minute)
	_, err = m.Get(ctx, "query:c")
	assert.True(t, domain.IsNotFound(err))
	assert.True(t, m.Exists(ctx, "listing:a"), "zero ttl never expires")

	stats, err := m.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Keys)
	assert.Equal(t, "memory", stats.Metadata["backend"])

	require.NoError(t, m.Flush(ctx))
	assert.False(t, m.Exists(ctx, "listing:a"))
}

func TestMemoryCacheBackend_SweepsExpiredOnWrite(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	m := NewMemoryCacheBackend("hph:").WithMaxEntries(0)
	m.now = func() time.Time { return now }

	for i := 0; i < 1000; i++ {
		require.NoError(t, m.Set(ctx, fmt.Sprintf("query:%d", i), []byte("x"), time.Millisecond))
	}
	now = now.Add(5 * time.Millisecond)
	for i := 0; i < 24; i++ {
		require.NoError(t, m.Set(ctx, fmt.Sprintf("fragment:%d", i), []byte("y"), time.Hour))
	}

	assert.Equal(t, 24, m.Len())
}

func TestMemoryCacheBackend_BoundsEntries(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	m := NewMemoryCacheBackend("hph:").WithMaxEntries(100)
	m.now = func() time.Time { return now }

	require.NoError(t, m.Set(ctx, "listing:pinned", []byte("L"), 0))
	for i := 0; i < 10_000; i++ {
		require.NoError(t, m.Set(ctx, fmt.Sprintf("query:%d", i), []byte("x"), time.Hour))
	}

	assert.Equal(t, 100, m.Len())
	assert.True(t, m.Exists(ctx, "listing:pinned"))
	assert.True(t, m.Exists(ctx, "query:9999"))

	// overwriting a key never evicts
	require.NoError(t, m.Set(ctx, "query:9999", []byte("z"), time.Hour))
	assert.Equal(t, 100, m.Len())
}

func TestMemoryCacheBackend_DefaultBound(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryCacheBackend("hph:")
	for i := 0; i < DefaultMemoryCacheEntries+500; i++ {
		require.NoError(t, m.Set(ctx, fmt.Sprintf("query:%d", i), []byte("x"), time.Minute))
	}
	assert.Equal(t, DefaultMemoryCacheEntries, m.Len())
}

type failingBackend struct{ *MemoryCacheBackend }

func (failingBackend) Set(context.Context, string, []byte, time.Duration) error {
	return errors.New("connection refused")
}

func (failingBackend) DeletePattern(context.Context, string) error {
	return errors.New("connection refused")
}

func TestCache_JSONAndStats(t *testing.T) {
	ctx := context.Background()
	c := NewCache(NewMemoryCacheBackend(""), time.Minute, nil)

	var out map[string]int
	assert.False(t, c.GetJSON(ctx, "k", &out))
	c.SetJSON(ctx, "k", map[string]int{"a": 1})
	assert.True(t, c.GetJSON(ctx, "k", &out))
	assert.Equal(t, map[string]int{"a": 1}, out)

	stats, err := c.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.InDelta(t, 0.5, stats.HitRatio, 0.001)
	require.NotNil(t, stats.Backend)
	assert.Equal(t, int64(1), stats.Backend.Keys)

	// undecodable entries are dropped
	require.NoError(t, c.backend.Set(ctx, "bad", []byte("{"), time.Minute))
	assert.False(t, c.GetJSON(ctx, "bad", &out))
	assert.False(t, c.backend.Exists(ctx, "bad"))
}

func TestCache_BackendFailuresDegrade(t *testing.T) {
	ctx := context.Background()
	c := NewCache(failingBackend{NewMemoryCacheBackend("")}, time.Minute, nil)

	assert.NotPanics(t, func() {
		c.SetJSON(ctx, "k", 1)
		c.Invalidate(ctx, QueryPattern)
	})
	var v int
	assert.False(t, c.GetJSON(ctx, "k", &v))

	var disabled *Cache
	assert.False(t, disabled.Enabled())
	assert.False(t, disabled.GetJSON(ctx, "k", &v))
	assert.NotPanics(t, func() { disabled.SetJSON(ctx, "k", 1) })
	assert.False(t, NewCache(NewMemoryCacheBackend(""), 0, nil).Enabled())
}

func TestHashParams_Stable(t *testing.T) {
	a := hashParams(map[string]string{"city": "Austin", "sort": "newest"})
	b := hashParams(map[string]string{"sort": "newest", "city": "Austin"})
	c := hashParams(map[string]string{"city": "Dallas", "sort": "newest"})
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestUsedMemory(t *testing.T) {
	info := "# Memory\r\nused_memory:1048576\r\nused_memory_human:1.00M\r\n"
	assert.Equal(t, int64(1048576), usedMemory(info))
	assert.Equal(t, int64(0), usedMemory(""))
}
