package lru

import (
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/haukened/rr-codec/internal/dns/domain"
	"github.com/haukened/rr-codec/internal/dns/repos/recordstore"
)

// lookupCache is an LRU-backed implementation of recordstore.LookupCache.
// It tracks basic metrics: hits, misses, and evictions.
type lookupCache struct {
	lru       *lru.Cache[string, []domain.ResourceRecord]
	capacity  int
	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

// disabledCache is a no-op LookupCache used when size <= 0.
type disabledCache struct {
	misses atomic.Uint64
}

// New creates a LookupCache with the given capacity. If size <= 0, a
// disabled cache is returned that always misses.
func New(size int) (recordstore.LookupCache, error) {
	if size <= 0 {
		return &disabledCache{}, nil
	}

	c := &lookupCache{capacity: size}
	// NewWithEvict observes evictions, including Purge-induced ones.
	cache, err := lru.NewWithEvict(size, func(_ string, _ []domain.ResourceRecord) {
		c.evictions.Add(1)
	})
	if err != nil {
		return nil, err
	}
	c.lru = cache
	return c, nil
}

// Get returns a copy of the cached records. A cached empty result reports ok.
func (c *lookupCache) Get(key string) ([]domain.ResourceRecord, bool) {
	if val, ok := c.lru.Get(key); ok {
		c.hits.Add(1)
		return append([]domain.ResourceRecord{}, val...), true
	}
	c.misses.Add(1)
	return nil, false
}

// Put stores a copy of records under key.
func (c *lookupCache) Put(key string, records []domain.ResourceRecord) {
	c.lru.Add(key, append([]domain.ResourceRecord{}, records...))
}

func (c *lookupCache) Len() int { return c.lru.Len() }

// Purge clears all entries. Evictions are counted via the eviction callback.
func (c *lookupCache) Purge() { c.lru.Purge() }

func (c *lookupCache) Stats() recordstore.CacheStats {
	return recordstore.CacheStats{
		Capacity:  c.capacity,
		Size:      c.lru.Len(),
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
	}
}

// disabledCache implementation

func (d *disabledCache) Get(string) ([]domain.ResourceRecord, bool) {
	d.misses.Add(1)
	return nil, false
}

func (d *disabledCache) Put(string, []domain.ResourceRecord) {}

func (d *disabledCache) Len() int { return 0 }

func (d *disabledCache) Purge() {}

func (d *disabledCache) Stats() recordstore.CacheStats {
	return recordstore.CacheStats{Misses: d.misses.Load()}
}

var _ recordstore.LookupCache = (*lookupCache)(nil)
var _ recordstore.LookupCache = (*disabledCache)(nil)
