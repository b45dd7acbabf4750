package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/haukened/rr-codec/internal/dns/gateways/transport"
	"github.com/haukened/rr-codec/internal/dns/gateways/wire"
	"github.com/haukened/rr-codec/internal/dns/services/resolver"
)

// newCmdServe answers UDP queries from the record store until interrupted.
func newCmdServe(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve stored records over UDP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx)
		},
	}
}

// serve blocks until ctx is done.
func (a *app) serve(ctx context.Context) error {
	repo, closeStore, err := a.openRepository()
	if err != nil {
		return err
	}
	defer closeStore()

	r := resolver.NewResolver(resolver.ResolverOptions{Logger: a.logger, Records: repo})
	addr := fmt.Sprintf(":%d", a.cfg.Port)
	t, err := transport.NewTransport(transport.TransportUDP, addr, wire.NewMessageCodec(a.logger), a.logger)
	if err != nil {
		return err
	}
	if err := t.Start(ctx, r); err != nil {
		return fmt.Errorf("failed to start UDP transport: %w", err)
	}

	a.logger.Info(map[string]any{
		"version": version,
		"address": t.Address(),
		"db_path": a.cfg.DBPath,
	}, "Record server started")

	<-ctx.Done()
	a.logger.Info(nil, "Shutdown initiated")
	if err := t.Stop(); err != nil {
		a.logger.Warn(map[string]any{"error": err.Error()}, "Error during transport shutdown")
	}
	a.logger.Info(map[string]any{"stats": repo.RepoStats()}, "Record server stopped")
	return nil
}
