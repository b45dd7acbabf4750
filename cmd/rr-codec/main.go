package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/haukened/rr-codec/internal/dns/common/clock"
	"github.com/haukened/rr-codec/internal/dns/common/log"
	"github.com/haukened/rr-codec/internal/dns/config"
)

const (
	version = "0.1.0-dev"
	appName = "rr-codec"
)

// app carries what every subcommand needs once the root command has run its
// pre-run hook.
type app struct {
	cfg    *config.AppConfig
	logger log.Logger
	clock  clock.Clock
}

func newRootCmd() *cobra.Command {
	a := &app{clock: clock.RealClock{}}
	cmd := &cobra.Command{
		Use:     appName,
		Short:   "Encode, decode and serve DNS resource records",
		Long:    "rr-codec converts resource records (CSYNC, NSEC, SOA, ...) between presentation and wire form, imports zone files into a local record store and answers queries from it.",
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	addGlobalFlags(cmd.PersistentFlags())
	cmd.PersistentPreRunE = func(c *cobra.Command, _ []string) error {
		return a.setup(c.Flags())
	}

	cmd.AddCommand(newCmdEncode())
	cmd.AddCommand(newCmdDecode())
	cmd.AddCommand(newCmdImport(a))
	cmd.AddCommand(newCmdLookup(a))
	cmd.AddCommand(newCmdMessage(a))
	cmd.AddCommand(newCmdParse(a))
	cmd.AddCommand(newCmdQuery(a))
	cmd.AddCommand(newCmdStats(a))
	cmd.AddCommand(newCmdServe(a))
	return cmd
}

func addGlobalFlags(fs *pflag.FlagSet) {
	fs.String("zone-dir", "", "Zone file directory (env RRCODEC_ZONE_DIR)")
	fs.String("db", "", "Record store path (env RRCODEC_DB_PATH)")
	fs.String("log-level", "", "Log level: debug|info|warn|error (env RRCODEC_LOG_LEVEL)")
}

// setup loads configuration, applies flag overrides and configures logging.
// Flags win over the environment.
func (a *app) setup(fs *pflag.FlagSet) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}
	overrides := map[string]*string{
		"zone-dir":  &cfg.ZoneDir,
		"db":        &cfg.DBPath,
		"log-level": &cfg.LogLevel,
	}
	for name, dst := range overrides {
		if fs.Changed(name) {
			v, err := fs.GetString(name)
			if err != nil {
				return err
			}
			*dst = v
		}
	}
	if err := log.Configure(cfg.Env, cfg.LogLevel); err != nil {
		return fmt.Errorf("logging configuration error: %w", err)
	}
	a.cfg = cfg
	a.logger = log.GetLogger()
	return nil
}

func main() {
	root := newRootCmd()
	root.SetContext(context.Background())
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
		os.Exit(1)
	}
}
