package main

import (
	"encoding/hex"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/haukened/rr-codec/internal/dns/domain"
	"github.com/haukened/rr-codec/internal/dns/gateways/wire"
	"github.com/haukened/rr-codec/internal/dns/services/resolver"
)

// newCmdMessage answers a question from the store and prints the encoded response.
func newCmdMessage(a *app) *cobra.Command {
	var id uint16
	cmd := &cobra.Command{
		Use:     "message NAME TYPE",
		Short:   "Build a DNS response for stored records and print it as hex",
		Example: "  rr-codec message example.com CSYNC --id 4660",
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
			repo, closeStore, err := a.openRepository()
			if err != nil {
				return err
			}
			defer closeStore()

			r := resolver.NewResolver(resolver.ResolverOptions{Logger: a.logger, Records: repo})
			req := wire.Message{Header: wire.Header{ID: id}, Questions: []domain.Question{q}}
			resp := r.HandleRequest(cmd.Context(), req, nil)

			out, err := wire.NewMessageCodec(a.logger).Encode(resp)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(out))
			return nil
		},
	}
	cmd.Flags().Uint16Var(&id, "id", 0, "Message ID")
	return cmd
}

// newCmdParse decodes a hex encoded DNS message.
func newCmdParse(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "parse HEX",
		Short: "Decode a hex DNS message and print its sections",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := decodeHex(args)
			if err != nil {
				return err
			}
			msg, err := wire.NewMessageCodec(a.logger).Decode(data)
			if err != nil {
				return err
			}
			printMessage(cmd.OutOrStdout(), msg)
			return nil
		},
	}
}

func printMessage(w io.Writer, msg wire.Message) {
	h := msg.Header
	fmt.Fprintf(w, ";; id: %d, opcode: %d, rcode: %s, flags:%s\n", h.ID, h.Opcode, h.RCode, headerFlags(h))
	if len(msg.Questions) > 0 {
		fmt.Fprintln(w, ";; QUESTION")
		for _, q := range msg.Questions {
			fmt.Fprintf(w, "%s\t%s\t%s\n", q.Name, q.Class, q.Type)
		}
	}
	sections := []struct {
		name    string
		records []domain.ResourceRecord
	}{
		{"ANSWER", msg.Answers},
		{"AUTHORITY", msg.Authority},
		{"ADDITIONAL", msg.Additional},
	}
	for _, s := range sections {
		if len(s.records) == 0 {
			continue
		}
		fmt.Fprintf(w, ";; %s\n", s.name)
		for _, rr := range s.records {
			fmt.Fprintln(w, rr.String())
		}
	}
}

func headerFlags(h wire.Header) string {
	var s string
	for _, f := range []struct {
		set  bool
		name string
	}{
		{h.Response, "qr"},
		{h.Authoritative, "aa"},
		{h.Truncated, "tc"},
		{h.RecursionDesired, "rd"},
		{h.RecursionAvailable, "ra"},
	} {
		if f.set {
			s += " " + f.name
		}
	}
	return s
}
