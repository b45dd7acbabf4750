package rrdata

import (
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"

	"github.com/haukened/rr-codec/internal/dns/common/bitmap"
	"github.com/haukened/rr-codec/internal/dns/domain"
)

// CSYNC flag bits (RFC 7477 section 2.1.1.2).
const (
	CSYNCFlagImmediate  uint16 = 1 << 0
	CSYNCFlagSOAMinimum uint16 = 1 << 1
)

// csyncHeaderLen is the serial (4) plus flags (2) prefix of every CSYNC rdata.
const csyncHeaderLen = 6

// CSYNC is the child-to-parent synchronization record (RFC 7477).
//
//	+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+
//	|                  SOA Serial                   |
//	|                                               |
//	+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+
//	|                    Flags                      |
//	+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+
//	/                 Type Bit Map                  /
//	+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+
//
// A CSYNC value is immutable: the type list is copied in and out, so a
// populated record always carries its serial and flags.
type CSYNC struct {
	serial uint32
	flags  uint16
	types  []string
}

// NewCSYNC builds a CSYNC record. Type mnemonics are kept as given; they are
// upper-cased on text output and resolved to type codes on wire output.
func NewCSYNC(serial uint32, flags uint16, types []string) CSYNC {
	return CSYNC{
		serial: serial,
		flags:  flags,
		types:  append([]string(nil), types...),
	}
}

// ParseCSYNC builds a CSYNC record from presentation tokens:
// serial, flags, then zero or more type mnemonics taken verbatim.
func ParseCSYNC(tokens []string) (CSYNC, error) {
	if len(tokens) < 2 {
		return CSYNC{}, fmt.Errorf("%w: CSYNC needs serial and flags, got %d field(s)", ErrTooFewTokens, len(tokens))
	}
	serial, err := parseUint(tokens[0], 32, "CSYNC serial")
	if err != nil {
		return CSYNC{}, err
	}
	flags, err := parseUint(tokens[1], 16, "CSYNC flags")
	if err != nil {
		return CSYNC{}, err
	}
	return NewCSYNC(uint32(serial), uint16(flags), tokens[2:]), nil
}

// UnpackCSYNC reads a CSYNC rdata of rdlength octets starting at msg[off].
// It reports the number of octets consumed, which is always rdlength on
// success; advancing past the record is left to the caller.
func UnpackCSYNC(msg []byte, off, rdlength int) (CSYNC, int, error) {
	if rdlength < csyncHeaderLen {
		return CSYNC{}, 0, fmt.Errorf("%w: CSYNC needs at least %d octets, got %d", ErrShortRData, csyncHeaderLen, rdlength)
	}
	region, err := rdataRegion(msg, off, rdlength)
	if err != nil {
		return CSYNC{}, 0, err
	}
	types, err := bitmap.BitmapToTypeList(region[csyncHeaderLen:])
	if err != nil {
		return CSYNC{}, 0, fmt.Errorf("invalid CSYNC type bit map: %w", err)
	}
	return CSYNC{
		serial: binary.BigEndian.Uint32(region[0:4]),
		flags:  binary.BigEndian.Uint16(region[4:6]),
		types:  types,
	}, rdlength, nil
}

func (CSYNC) Type() domain.RRType { return domain.RRTypeCSYNC }

// Serial returns the SOA serial the record advertises.
func (c CSYNC) Serial() uint32 { return c.serial }

// Flags returns the raw flags field.
func (c CSYNC) Flags() uint16 { return c.flags }

// Immediate reports whether the immediate flag is set.
func (c CSYNC) Immediate() bool { return c.flags&CSYNCFlagImmediate != 0 }

// SOAMinimum reports whether the soaminimum flag is set.
func (c CSYNC) SOAMinimum() bool { return c.flags&CSYNCFlagSOAMinimum != 0 }

// Types returns a copy of the type mnemonics in stored order.
func (c CSYNC) Types() []string { return append([]string(nil), c.types...) }

// String renders "<serial> <flags> <TYPE>..." with upper-cased mnemonics.
func (c CSYNC) String() string {
	var sb strings.Builder
	sb.WriteString(strconv.FormatUint(uint64(c.serial), 10))
	sb.WriteByte(' ')
	sb.WriteString(strconv.FormatUint(uint64(c.flags), 10))
	for _, t := range c.types {
		sb.WriteByte(' ')
		sb.WriteString(strings.ToUpper(t))
	}
	return sb.String()
}

// Pack appends serial, flags and the type bit map to b and reports the
// number of octets appended. An unknown mnemonic fails the whole record and
// leaves b untouched.
func (c CSYNC) Pack(b []byte) ([]byte, int, error) {
	bm, err := bitmap.TypeListToBitmap(c.types)
	if err != nil {
		return b, 0, fmt.Errorf("invalid CSYNC type bit map: %w", err)
	}
	b = binary.BigEndian.AppendUint32(b, c.serial)
	b = binary.BigEndian.AppendUint16(b, c.flags)
	b = append(b, bm...)
	return b, csyncHeaderLen + len(bm), nil
}
