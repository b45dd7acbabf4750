package recordstore_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haukened/rr-codec/internal/dns/common/clock"
	"github.com/haukened/rr-codec/internal/dns/common/log"
	"github.com/haukened/rr-codec/internal/dns/common/rrdata"
	"github.com/haukened/rr-codec/internal/dns/domain"
	"github.com/haukened/rr-codec/internal/dns/repos/recordstore"
	"github.com/haukened/rr-codec/internal/dns/repos/recordstore/bloom"
	"github.com/haukened/rr-codec/internal/dns/repos/recordstore/bolt"
	"github.com/haukened/rr-codec/internal/dns/repos/recordstore/lru"
)

func TestRepository_EndToEnd(t *testing.T) {
	clk := &clock.MockClock{CurrentTime: time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)}
	path := filepath.Join(t.TempDir(), "records.db")

	st, err := bolt.New(path, clk)
	require.NoError(t, err)
	defer st.Close()
	cache, err := lru.New(8)
	require.NoError(t, err)

	repo, err := recordstore.NewRepository(st, cache, bloom.NewFactory(), 0.01, clk, log.NewNoopLogger())
	require.NoError(t, err)

	csync, err := domain.NewResourceRecord("example.com.", domain.RRClassIN, 3600,
		rrdata.NewCSYNC(2021070101, 3, []string{"A", "NS", "AAAA"}))
	require.NoError(t, err)
	require.NoError(t, repo.Import(map[string][]domain.ResourceRecord{"example.com.": {csync}}))

	got, err := repo.Lookup("EXAMPLE.com", domain.RRTypeCSYNC)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "2021070101 3 A NS AAAA", got[0].Data.String())

	got, err = repo.Lookup("example.com.", domain.RRTypeCSYNC)
	require.NoError(t, err)
	require.Len(t, got, 1)

	got, err = repo.Lookup("absent.example.com.", domain.RRTypeA)
	require.NoError(t, err)
	assert.Empty(t, got)

	stats := repo.RepoStats()
	assert.Equal(t, uint64(1), stats.Cache.Hits)
	assert.Equal(t, uint64(1), stats.Store.Records)
	assert.Equal(t, uint64(1), stats.Store.Zones)
	assert.Equal(t, clk.Now().Unix(), stats.LastImport)

	// a second process opening the same store sees the imported owners
	require.NoError(t, st.Close())
	st2, err := bolt.New(path, clk)
	require.NoError(t, err)
	defer st2.Close()
	repo2, err := recordstore.NewRepository(st2, cache, bloom.NewFactory(), 0.01, clk, nil)
	require.NoError(t, err)
	got, err = repo2.Lookup("example.com.", domain.RRTypeCSYNC)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
