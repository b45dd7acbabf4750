package recordstore

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/haukened/rr-codec/internal/dns/common/clock"
	"github.com/haukened/rr-codec/internal/dns/common/log"
	"github.com/haukened/rr-codec/internal/dns/common/utils"
	"github.com/haukened/rr-codec/internal/dns/domain"
)

// repository implements Repository by composing a Store, a Bloom filter
// (via factory) and a LookupCache. Reads go cache → bloom → store; Import
// writes the store first and then swaps in a fresh filter and an empty cache.
type repository struct {
	mu      sync.RWMutex
	store   Store
	cache   LookupCache
	bloom   BloomFilter
	factory BloomFactory
	fpRate  float64
	clock   clock.Clock
	logger  log.Logger

	bloomSkips atomic.Uint64
	storeReads atomic.Uint64
	lastImport atomic.Int64
}

// NewRepository constructs a Repository over an already populated store.
// The Bloom filter is built from the owners currently in the store.
func NewRepository(store Store, cache LookupCache, factory BloomFactory, fpRate float64, clk clock.Clock, logger log.Logger) (Repository, error) {
	if clk == nil {
		clk = clock.RealClock{}
	}
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	r := &repository{store: store, cache: cache, factory: factory, fpRate: fpRate, clock: clk, logger: logger}
	bf, n, err := r.buildBloom()
	if err != nil {
		return nil, fmt.Errorf("building owner filter: %w", err)
	}
	r.bloom = bf
	logger.Debug(map[string]any{"owners": n, "fp_rate": fpRate}, "owner filter built")
	return r, nil
}

// Lookup returns the records for name and rrtype. A name the filter has
// never seen is answered without touching the store.
func (r *repository) Lookup(name string, rrtype domain.RRType) ([]domain.ResourceRecord, error) {
	cn := utils.CanonicalDNSName(name)
	key := domain.GenerateCacheKey(cn, rrtype, domain.RRClassIN)

	// 1) checkCache
	if recs, ok := r.checkCache(key); ok {
		return recs, nil
	}
	// 2) checkBloom
	if !r.checkBloom(cn) {
		r.bloomSkips.Add(1)
		r.updateCache(key, nil)
		return nil, nil
	}
	// 3) checkStore
	r.storeReads.Add(1)
	recs, err := r.store.Lookup(cn, rrtype)
	if err != nil {
		r.logger.Error(map[string]any{"name": cn, "type": rrtype.String(), "error": err.Error()}, "store lookup failed")
		return nil, err
	}
	// 4) updateCache
	r.updateCache(key, recs)
	r.logger.Debug(map[string]any{"name": cn, "type": rrtype.String(), "records": len(recs)}, "store lookup")
	return recs, nil
}

// Import replaces the stored dataset with zones, then swaps the filter and
// purges the cache. On store failure nothing in memory changes.
func (r *repository) Import(zones map[string][]domain.ResourceRecord) error {
	if err := r.store.ReplaceAll(zones); err != nil {
		return fmt.Errorf("replacing records: %w", err)
	}

	bf, n, err := r.buildBloom()
	if err != nil {
		return fmt.Errorf("building owner filter: %w", err)
	}

	r.mu.Lock()
	r.bloom = bf
	r.cache.Purge()
	r.mu.Unlock()

	r.lastImport.Store(r.clock.Now().Unix())
	r.logger.Info(map[string]any{"zones": len(zones), "owners": n}, "zones imported")
	return nil
}

// buildBloom sizes a filter for the stored owners and adds each of them.
func (r *repository) buildBloom() (BloomFilter, uint64, error) {
	var owners []string
	if err := r.store.VisitOwners(func(name string) bool {
		owners = append(owners, name)
		return true
	}); err != nil {
		return nil, 0, err
	}
	bf := r.factory.New(uint64(len(owners)), r.fpRate)
	for _, o := range owners {
		bf.Add([]byte(o))
	}
	return bf, uint64(len(owners)), nil
}

// checkBloom returns true if the store may hold name. With no filter loaded
// every name is a candidate.
func (r *repository) checkBloom(cn string) bool {
	r.mu.RLock()
	bf := r.bloom
	r.mu.RUnlock()
	if bf == nil {
		return true
	}
	return bf.MightContain([]byte(cn))
}

func (r *repository) checkCache(key string) ([]domain.ResourceRecord, bool) {
	r.mu.RLock()
	recs, ok := r.cache.Get(key)
	r.mu.RUnlock()
	return recs, ok
}

func (r *repository) updateCache(key string, recs []domain.ResourceRecord) {
	r.mu.Lock()
	r.cache.Put(key, recs)
	r.mu.Unlock()
}

// RepoStats returns a snapshot of repository, cache and store counters.
func (r *repository) RepoStats() RepoStats {
	r.mu.RLock()
	cs := r.cache.Stats()
	r.mu.RUnlock()
	return RepoStats{
		Cache:      cs,
		Store:      r.store.Stats(),
		BloomSkips: r.bloomSkips.Load(),
		StoreReads: r.storeReads.Load(),
		LastImport: r.lastImport.Load(),
	}
}
