package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/haukened/rr-codec/internal/dns/domain"
	"github.com/haukened/rr-codec/internal/dns/repos/recordstore"
	"github.com/haukened/rr-codec/internal/dns/repos/recordstore/bloom"
	"github.com/haukened/rr-codec/internal/dns/repos/recordstore/bolt"
	"github.com/haukened/rr-codec/internal/dns/repos/recordstore/lru"
	"github.com/haukened/rr-codec/internal/dns/repos/zone"
)

// openRepository opens the record store and layers cache and owner filter on
// top of it. The returned func closes the store.
func (a *app) openRepository() (recordstore.Repository, func() error, error) {
	if err := os.MkdirAll(filepath.Dir(a.cfg.DBPath), 0o750); err != nil {
		return nil, nil, fmt.Errorf("failed to create store directory: %w", err)
	}
	store, err := bolt.New(a.cfg.DBPath, a.clock)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open record store %s: %w", a.cfg.DBPath, err)
	}
	cache, err := lru.New(a.cfg.CacheSize)
	if err != nil {
		_ = store.Close()
		return nil, nil, fmt.Errorf("failed to create lookup cache: %w", err)
	}
	repo, err := recordstore.NewRepository(store, cache, bloom.NewFactory(), a.cfg.BloomFPRate, a.clock, a.logger)
	if err != nil {
		_ = store.Close()
		return nil, nil, err
	}
	a.logger.Debug(map[string]any{
		"db_path":    a.cfg.DBPath,
		"cache_size": a.cfg.CacheSize,
		"fp_rate":    a.cfg.BloomFPRate,
	}, "Record store opened")
	return repo, store.Close, nil
}

// newCmdImport loads the zone directory and replaces the stored records.
func newCmdImport(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import",
		Short: "Load every zone file into the record store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			zones, err := zone.LoadZoneDirectory(a.cfg.ZoneDir, time.Duration(a.cfg.TTL)*time.Second)
			if err != nil {
				return fmt.Errorf("failed to load zone directory: %w", err)
			}
			repo, closeStore, err := a.openRepository()
			if err != nil {
				return err
			}
			defer closeStore()

			if err := repo.Import(zones); err != nil {
				return err
			}
			st := repo.RepoStats().Store
			a.logger.Info(map[string]any{
				"zone_dir": a.cfg.ZoneDir,
				"zones":    st.Zones,
				"records":  st.Records,
			}, "Zone directory imported")
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d records in %d zones\n", st.Records, st.Zones)
			return nil
		},
	}
}

// newCmdLookup prints stored records for a name and type.
func newCmdLookup(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "lookup NAME TYPE",
		Short:   "Print stored records in zone file form",
		Example: "  rr-codec lookup example.com CSYNC",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := domain.ParseRRType(args[1])
			if err != nil {
				return err
			}
			repo, closeStore, err := a.openRepository()
			if err != nil {
				return err
			}
			defer closeStore()

			recs, err := repo.Lookup(args[0], t)
			if err != nil {
				return err
			}
			if len(recs) == 0 {
				return fmt.Errorf("no %s records for %s", t, args[0])
			}
			for _, rr := range recs {
				fmt.Fprintln(cmd.OutOrStdout(), rr.String())
			}
			return nil
		},
	}
}
