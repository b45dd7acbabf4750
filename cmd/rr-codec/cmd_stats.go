package main

import (
	"fmt"
	"time"

	"github.com/ryanuber/columnize"
	"github.com/spf13/cobra"
)

// newCmdStats prints store and cache counters as a table.
func newCmdStats(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show record store statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, closeStore, err := a.openRepository()
			if err != nil {
				return err
			}
			defer closeStore()

			st := repo.RepoStats()
			updated := "never"
			if st.Store.UpdatedUnix > 0 {
				updated = time.Unix(st.Store.UpdatedUnix, 0).UTC().Format(time.RFC3339)
			}
			out := []string{
				"Component|Metric|Value",
				fmt.Sprintf("store|path|%s", a.cfg.DBPath),
				fmt.Sprintf("store|zones|%d", st.Store.Zones),
				fmt.Sprintf("store|records|%d", st.Store.Records),
				fmt.Sprintf("store|version|%d", st.Store.Version),
				fmt.Sprintf("store|updated|%s", updated),
				fmt.Sprintf("cache|capacity|%d", st.Cache.Capacity),
				fmt.Sprintf("filter|fp_rate|%g", a.cfg.BloomFPRate),
			}
			fmt.Fprintln(cmd.OutOrStdout(), columnize.SimpleFormat(out))
			return nil
		},
	}
}
