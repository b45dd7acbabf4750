package recordstore

import "github.com/haukened/rr-codec/internal/dns/domain"

// BloomFilter is the minimal interface the repository needs from Bloom filters.
type BloomFilter interface {
	Add(key []byte)
	MightContain(key []byte) bool
}

// BloomFactory builds filters sized for a dataset capacity and target FP rate.
type BloomFactory interface {
	New(capacity uint64, fpRate float64) BloomFilter
}

// LookupCache caches lookup results by cache key. An empty result is a
// valid entry and records a negative answer.
type LookupCache interface {
	Get(key string) ([]domain.ResourceRecord, bool)
	Put(key string, records []domain.ResourceRecord)
	Len() int
	Purge()
	Stats() CacheStats
}

// Store is the persistent record index.
//   - ReplaceAll swaps the whole dataset in one transaction.
//   - PutZone and DeleteZone touch a single zone.
//   - Lookup returns the records of an owner, all types for RRTypeANY.
//   - VisitOwners walks every distinct owner name in key order.
type Store interface {
	ReplaceAll(zones map[string][]domain.ResourceRecord) error
	PutZone(root string, records []domain.ResourceRecord) error
	DeleteZone(root string) error
	Lookup(name string, rrtype domain.RRType) ([]domain.ResourceRecord, error)
	Zones() ([]string, error)
	VisitOwners(visit func(name string) bool) error
	Stats() StoreStats
	Close() error
}

// Repository is the composition layer that wires cache → bloom → store.
// Import rebuilds the store, refreshes the Bloom filter and clears the cache.
type Repository interface {
	Lookup(name string, rrtype domain.RRType) ([]domain.ResourceRecord, error)
	Import(zones map[string][]domain.ResourceRecord) error
	RepoStats() RepoStats
}
