package snapshot

import (
	"sync"
	"time"

	"github.com/golang/groupcache/lru"
)

// DefaultCapacity is the cache size used when none is configured.
const DefaultCapacity = 32

// Stats reports cache activity counters.
type Stats struct {
	Hits      uint64
	Misses    uint64
	Evictions uint64
	Len       int
	Capacity  int
}

type cacheEntry struct {
	snapshot   Snapshot
	lastAccess time.Time
}

// Cache is a bounded least-recently-used store of snapshots keyed by
// fingerprint. Lookups reorder the LRU list, so every operation takes the
// single mutex.
type Cache struct {
	mu       sync.Mutex
	entries  *lru.Cache
	capacity int
	now      func() time.Time
	stats    Stats
}

// NewCache creates a cache holding at most capacity snapshots. Values below
// one are raised to one.
func NewCache(capacity int) *Cache {
	if capacity < 1 {
		capacity = 1
	}
	c := &Cache{
		entries:  lru.New(capacity),
		capacity: capacity,
		now:      time.Now,
	}
	c.entries.OnEvicted = func(lru.Key, interface{}) {
		c.stats.Evictions++
	}
	return c
}

// GetOrCompute returns the snapshot cached under fp, or calls compute, stores
// the result and returns it. compute runs under the cache lock, so it is
// called at most once per resident fingerprint and must not use the cache.
func (c *Cache) GetOrCompute(fp Fingerprint, compute func() Snapshot) Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	if snap, ok := c.lookup(fp); ok {
		c.stats.Hits++
		return snap
	}

	c.stats.Misses++
	snap := compute()
	c.entries.Add(fp, &cacheEntry{snapshot: snap, lastAccess: c.now()})
	return snap
}

// Get returns a cached snapshot without computing on a miss.
func (c *Cache) Get(fp Fingerprint) (Snapshot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.lookup(fp)
}

// LastAccess reports when fp was last read or stored.
func (c *Cache) LastAccess(fp Fingerprint) (time.Time, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	value, ok := c.entries.Get(fp)
	if !ok {
		return time.Time{}, false
	}
	return value.(*cacheEntry).lastAccess, true
}

func (c *Cache) lookup(fp Fingerprint) (Snapshot, bool) {
	value, ok := c.entries.Get(fp)
	if !ok {
		return Snapshot{}, false
	}
	entry := value.(*cacheEntry)
	entry.lastAccess = c.now()
	return entry.snapshot, true
}

// Len returns the number of cached snapshots.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.entries.Len()
}

// Purge drops every entry. Snapshots already handed out stay valid.
func (c *Cache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Clear reports every entry to OnEvicted; a purge is not an eviction.
	evictions := c.stats.Evictions
	c.entries.Clear()
	c.stats.Evictions = evictions
}

// Stats returns a copy of the counters.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	stats := c.stats
	stats.Len = c.entries.Len()
	stats.Capacity = c.capacity
	return stats
}
