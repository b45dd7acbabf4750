package main

import (
	"math/rand/v2"
	"time"

	"github.com/spf13/cobra"

	"github.com/haukened/rr-codec/internal/dns/domain"
	"github.com/haukened/rr-codec/internal/dns/gateways/upstream"
	"github.com/haukened/rr-codec/internal/dns/gateways/wire"
)

// newCmdQuery asks remote servers for a record set and prints the response.
func newCmdQuery(a *app) *cobra.Command {
	var (
		servers  []string
		timeout  time.Duration
		parallel bool
	)
	cmd := &cobra.Command{
		Use:     "query NAME TYPE",
		Short:   "Query remote DNS servers over UDP and print the response",
		Example: "  rr-codec query example.com CSYNC --server 192.0.2.53:53",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := domain.ParseRRType(args[1])
			if err != nil {
				return err
			}
			q, err := domain.NewQuestion(args[0], t, domain.RRClassIN)
			if err != nil {
				return err
			}
			client, err := upstream.NewClient(upstream.Options{
				Servers:  servers,
				Timeout:  timeout,
				Parallel: parallel,
				Codec:    wire.NewMessageCodec(a.logger),
			})
			if err != nil {
				return err
			}
			resp, err := client.Query(cmd.Context(), uint16(rand.N(1<<16)), q)
			if err != nil {
				return err
			}
			printMessage(cmd.OutOrStdout(), resp)
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&servers, "server", nil, "Server address host:port (repeatable)")
	cmd.Flags().DurationVar(&timeout, "timeout", 5*time.Second, "Per-query timeout")
	cmd.Flags().BoolVar(&parallel, "parallel", false, "Query all servers at once and take the first answer")
	return cmd
}
