package main

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/haukened/rr-codec/internal/dns/common/rrdata"
	"github.com/haukened/rr-codec/internal/dns/domain"
)

// newCmdEncode renders presentation tokens as hex rdata.
func newCmdEncode() *cobra.Command {
	return &cobra.Command{
		Use:     "encode TYPE TOKEN...",
		Short:   "Encode presentation rdata to hex wire form",
		Example: "  rr-codec encode CSYNC 66 3 A NS AAAA",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := domain.ParseRRType(args[0])
			if err != nil {
				return err
			}
			out, err := rrdata.Encode(t, strings.Join(args[1:], " "))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(out))
			return nil
		},
	}
}

// newCmdDecode renders hex rdata as presentation text.
func newCmdDecode() *cobra.Command {
	return &cobra.Command{
		Use:     "decode TYPE HEX",
		Short:   "Decode hex wire rdata to presentation form",
		Example: "  rr-codec decode CSYNC 000000420003000460000008",
		Args:    cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := domain.ParseRRType(args[0])
			if err != nil {
				return err
			}
			data, err := decodeHex(args[1:])
			if err != nil {
				return err
			}
			text, err := rrdata.Decode(t, data)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}
}

// decodeHex joins the arguments so octets may be given space separated.
func decodeHex(args []string) ([]byte, error) {
	s := strings.Join(args, "")
	s = strings.ReplaceAll(s, ":", "")
	data, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid hex input: %w", err)
	}
	return data, nil
}
