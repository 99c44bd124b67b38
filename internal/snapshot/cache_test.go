package snapshot

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snap(name string, fp Fingerprint) Snapshot {
	return Snapshot{Theme: name, Fingerprint: fp}
}

func TestCacheComputesOncePerFingerprint(t *testing.T) {
	t.Parallel()

	cache := NewCache(4)
	calls := 0
	compute := func() Snapshot {
		calls++
		return snap("Dark", 1)
	}

	first := cache.GetOrCompute(1, compute)
	second := cache.GetOrCompute(1, compute)

	assert.Equal(t, 1, calls)
	assert.Equal(t, first, second)

	stats := cache.Stats()
	assert.Equal(t, uint64(1), stats.Hits)
	assert.Equal(t, uint64(1), stats.Misses)
	assert.Equal(t, 1, stats.Len)
	assert.Equal(t, 4, stats.Capacity)
}

func TestCacheCapacityOneEvictsOlder(t *testing.T) {
	t.Parallel()

	cache := NewCache(1)
	cache.GetOrCompute(1, func() Snapshot { return snap("A", 1) })
	cache.GetOrCompute(2, func() Snapshot { return snap("B", 2) })

	_, ok := cache.Get(1)
	assert.False(t, ok)
	got, ok := cache.Get(2)
	require.True(t, ok)
	assert.Equal(t, "B", got.Theme)
	assert.Equal(t, 1, cache.Len())
	assert.Equal(t, uint64(1), cache.Stats().Evictions)
}

func TestCacheEvictsLeastRecentlyUsed(t *testing.T) {
	t.Parallel()

	cache := NewCache(2)
	cache.GetOrCompute(1, func() Snapshot { return snap("A", 1) })
	cache.GetOrCompute(2, func() Snapshot { return snap("B", 2) })
	_, _ = cache.Get(1) // 2 is now the oldest
	cache.GetOrCompute(3, func() Snapshot { return snap("C", 3) })

	_, ok := cache.Get(2)
	assert.False(t, ok)
	_, ok = cache.Get(1)
	assert.True(t, ok)
	_, ok = cache.Get(3)
	assert.True(t, ok)
}

func TestCacheEvictionKeepsHeldSnapshots(t *testing.T) {
	t.Parallel()

	cache := NewCache(1)
	held := cache.GetOrCompute(1, func() Snapshot { return snap("A", 1) })
	cache.GetOrCompute(2, func() Snapshot { return snap("B", 2) })

	assert.Equal(t, "A", held.Theme)
}

func TestCacheMinimumCapacity(t *testing.T) {
	t.Parallel()

	cache := NewCache(0)
	assert.Equal(t, 1, cache.Stats().Capacity)
}

func TestCachePurge(t *testing.T) {
	t.Parallel()

	cache := NewCache(2)
	cache.GetOrCompute(1, func() Snapshot { return snap("A", 1) })
	cache.GetOrCompute(2, func() Snapshot { return snap("B", 2) })
	cache.Purge()

	assert.Equal(t, 0, cache.Len())
	assert.Equal(t, uint64(0), cache.Stats().Evictions)

	cache.GetOrCompute(3, func() Snapshot { return snap("C", 3) })
	assert.Equal(t, 1, cache.Len())
}

func TestCacheTracksLastAccess(t *testing.T) {
	t.Parallel()

	cache := NewCache(2)
	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return clock }

	cache.GetOrCompute(1, func() Snapshot { return snap("A", 1) })
	clock = clock.Add(time.Minute)
	_, _ = cache.Get(1)

	at, ok := cache.LastAccess(1)
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 1, 0, 0, time.UTC), at)

	_, ok = cache.LastAccess(9)
	assert.False(t, ok)
}

func TestCacheConcurrentGetOrCompute(t *testing.T) {
	t.Parallel()

	cache := NewCache(8)
	var calls int32

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cache.GetOrCompute(7, func() Snapshot {
				atomic.AddInt32(&calls, 1)
				return snap("A", 7)
			})
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}
