package recordstore

// CacheStats reports lightweight cache metrics.
// All fields are best-effort snapshots and may be updated concurrently.
type CacheStats struct {
	Capacity  int    // configured capacity (0 for disabled cache)
	Size      int    // current number of entries
	Hits      uint64 // total cache hits since construction
	Misses    uint64 // total cache misses since construction
	Evictions uint64 // total evictions since construction
}

// StoreStats reports lightweight store metrics and metadata.
// Values are read from the store in a cheap, read-only transaction.
type StoreStats struct {
	Version     uint64 // incremented on every write
	UpdatedUnix int64  // last write as unix time (0 if never written)
	Records     uint64 // number of stored records
	Zones       uint64 // number of stored zones
}

// RepoStats exposes repository-level counters and underlying stats.
type RepoStats struct {
	Cache      CacheStats
	Store      StoreStats
	BloomSkips uint64 // lookups answered negatively by the Bloom filter alone
	StoreReads uint64 // lookups that reached the store
	LastImport int64  // unix time of the last successful Import (0 if none)
}
