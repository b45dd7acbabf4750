package recordstore

import (
	"errors"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haukened/rr-codec/internal/dns/common/clock"
	"github.com/haukened/rr-codec/internal/dns/common/rrdata"
	"github.com/haukened/rr-codec/internal/dns/domain"
)

// --- fakes ---

type fakeStore struct {
	owners      []string
	lookupRecs  []domain.ResourceRecord
	lookupErr   error
	lookupCalls int
	replaced    map[string][]domain.ResourceRecord
	replaceErr  error
	visitErr    error
}

func (s *fakeStore) ReplaceAll(zones map[string][]domain.ResourceRecord) error {
	if s.replaceErr != nil {
		return s.replaceErr
	}
	s.replaced = zones
	s.owners = nil
	for _, recs := range zones {
		for _, rr := range recs {
			s.owners = append(s.owners, rr.Name)
		}
	}
	return nil
}

func (s *fakeStore) PutZone(string, []domain.ResourceRecord) error { return nil }
func (s *fakeStore) DeleteZone(string) error                       { return nil }
func (s *fakeStore) Zones() ([]string, error)                      { return nil, nil }
func (s *fakeStore) Stats() StoreStats                             { return StoreStats{Records: uint64(len(s.owners))} }
func (s *fakeStore) Close() error                                  { return nil }

func (s *fakeStore) Lookup(string, domain.RRType) ([]domain.ResourceRecord, error) {
	s.lookupCalls++
	return s.lookupRecs, s.lookupErr
}

func (s *fakeStore) VisitOwners(visit func(string) bool) error {
	if s.visitErr != nil {
		return s.visitErr
	}
	for _, o := range s.owners {
		if !visit(o) {
			break
		}
	}
	return nil
}

// fakeBloom is exact: it never reports false positives.
type fakeBloom struct{ keys map[string]bool }

func (b *fakeBloom) Add(key []byte)               { b.keys[string(key)] = true }
func (b *fakeBloom) MightContain(key []byte) bool { return b.keys[string(key)] }

type fakeFactory struct {
	capacities []uint64
}

func (f *fakeFactory) New(capacity uint64, _ float64) BloomFilter {
	f.capacities = append(f.capacities, capacity)
	return &fakeBloom{keys: map[string]bool{}}
}

type fakeCache struct {
	m      map[string][]domain.ResourceRecord
	purged int
	stats  CacheStats
}

func newFakeCache() *fakeCache { return &fakeCache{m: map[string][]domain.ResourceRecord{}} }

func (c *fakeCache) Get(key string) ([]domain.ResourceRecord, bool) {
	v, ok := c.m[key]
	if ok {
		c.stats.Hits++
	} else {
		c.stats.Misses++
	}
	return v, ok
}
func (c *fakeCache) Put(key string, recs []domain.ResourceRecord) { c.m[key] = recs }
func (c *fakeCache) Len() int                                     { return len(c.m) }
func (c *fakeCache) Purge() {
	c.m = map[string][]domain.ResourceRecord{}
	c.purged++
}
func (c *fakeCache) Stats() CacheStats { return c.stats }

// --- helpers ---

func aRecord(t *testing.T, name string) domain.ResourceRecord {
	t.Helper()
	a, err := rrdata.NewA(net.ParseIP("192.0.2.1"))
	require.NoError(t, err)
	rr, err := domain.NewResourceRecord(name, domain.RRClassIN, 60, a)
	require.NoError(t, err)
	return rr
}

func newTestRepo(t *testing.T, st *fakeStore, c *fakeCache) (*repository, *fakeFactory) {
	t.Helper()
	f := &fakeFactory{}
	r, err := NewRepository(st, c, f, 0.01, &clock.MockClock{CurrentTime: time.Unix(1700000000, 0)}, nil)
	require.NoError(t, err)
	return r.(*repository), f
}

// --- tests ---

func TestNewRepository_BuildsBloomFromStore(t *testing.T) {
	st := &fakeStore{owners: []string{"a.example.", "b.example."}}
	r, f := newTestRepo(t, st, newFakeCache())

	assert.Equal(t, []uint64{2}, f.capacities)
	assert.True(t, r.checkBloom("a.example."))
	assert.False(t, r.checkBloom("c.example."))
}

func TestNewRepository_VisitError(t *testing.T) {
	st := &fakeStore{visitErr: errors.New("boom")}
	_, err := NewRepository(st, newFakeCache(), &fakeFactory{}, 0.01, nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestLookup_BloomNegativeSkipsStore(t *testing.T) {
	st := &fakeStore{owners: []string{"www.example.com."}}
	r, _ := newTestRepo(t, st, newFakeCache())

	recs, err := r.Lookup("nope.example.com", domain.RRTypeA)
	require.NoError(t, err)
	assert.Empty(t, recs)
	assert.Equal(t, 0, st.lookupCalls)
	assert.Equal(t, uint64(1), r.RepoStats().BloomSkips)

	// the negative answer is now cached
	_, _ = r.Lookup("nope.example.com", domain.RRTypeA)
	assert.Equal(t, uint64(1), r.RepoStats().BloomSkips)
	assert.Equal(t, uint64(1), r.RepoStats().Cache.Hits)
}

func TestLookup_StoreThenCache(t *testing.T) {
	rec := aRecord(t, "www.example.com.")
	st := &fakeStore{owners: []string{"www.example.com."}, lookupRecs: []domain.ResourceRecord{rec}}
	c := newFakeCache()
	r, _ := newTestRepo(t, st, c)

	recs, err := r.Lookup("WWW.Example.com", domain.RRTypeA)
	require.NoError(t, err)
	assert.Equal(t, []domain.ResourceRecord{rec}, recs)
	assert.Equal(t, 1, st.lookupCalls)

	recs, err = r.Lookup("www.example.com.", domain.RRTypeA)
	require.NoError(t, err)
	assert.Equal(t, []domain.ResourceRecord{rec}, recs)
	assert.Equal(t, 1, st.lookupCalls, "second lookup should be served from cache")
	_, ok := c.m["www.example.com.|A|IN"]
	assert.True(t, ok)
}

func TestLookup_StoreError(t *testing.T) {
	st := &fakeStore{owners: []string{"www.example.com."}, lookupErr: errors.New("disk")}
	c := newFakeCache()
	r, _ := newTestRepo(t, st, c)

	_, err := r.Lookup("www.example.com.", domain.RRTypeA)
	require.Error(t, err)
	assert.Equal(t, 0, c.Len(), "errors must not be cached")
}

func TestImport_SwapsBloomAndPurgesCache(t *testing.T) {
	st := &fakeStore{}
	c := newFakeCache()
	r, f := newTestRepo(t, st, c)
	c.Put("stale", nil)

	err := r.Import(map[string][]domain.ResourceRecord{
		"example.com.": {aRecord(t, "www.example.com."), aRecord(t, "mail.example.com.")},
	})
	require.NoError(t, err)

	assert.Equal(t, []uint64{0, 2}, f.capacities)
	assert.Equal(t, 1, c.purged)
	assert.Equal(t, 0, c.Len())
	assert.True(t, r.checkBloom("www.example.com."))
	assert.Equal(t, int64(1700000000), r.RepoStats().LastImport)
	assert.Equal(t, uint64(2), r.RepoStats().Store.Records)
}

func TestImport_StoreFailureKeepsState(t *testing.T) {
	st := &fakeStore{owners: []string{"www.example.com."}}
	c := newFakeCache()
	r, f := newTestRepo(t, st, c)
	c.Put("kept", nil)
	st.replaceErr = errors.New("read-only")

	err := r.Import(map[string][]domain.ResourceRecord{})
	require.Error(t, err)
	assert.Equal(t, 1, c.Len())
	assert.Len(t, f.capacities, 1)
	assert.True(t, r.checkBloom("www.example.com."))
	assert.Zero(t, r.RepoStats().LastImport)
}

func TestCheckBloom_NoFilterLoaded(t *testing.T) {
	r := &repository{}
	assert.True(t, r.checkBloom("anything."))
}
