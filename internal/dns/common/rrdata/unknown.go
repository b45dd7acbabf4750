package rrdata

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/haukened/rr-codec/internal/dns/domain"
)

// genericMarker introduces RFC 3597 generic rdata: \# <length> <hex>...
const genericMarker = `\#`

// Unknown carries opaque rdata for a type without a dedicated codec.
type Unknown struct {
	rrtype domain.RRType
	data   []byte
}

// NewUnknown wraps raw rdata bytes for the given type.
func NewUnknown(t domain.RRType, data []byte) Unknown {
	return Unknown{rrtype: t, data: append([]byte(nil), data...)}
}

// ParseUnknown parses the RFC 3597 generic form `\# <length> <hex>...`.
// The hex may be split across any number of tokens.
func ParseUnknown(t domain.RRType, tokens []string) (Unknown, error) {
	if len(tokens) < 2 {
		return Unknown{}, fmt.Errorf("%w: generic rdata needs \\# and a length", ErrTooFewTokens)
	}
	if tokens[0] != genericMarker {
		return Unknown{}, fmt.Errorf("%w: generic rdata must start with \\#, got %q", ErrInvalidField, tokens[0])
	}
	n, err := parseUint(tokens[1], 16, "generic rdata length")
	if err != nil {
		return Unknown{}, err
	}
	data, err := hex.DecodeString(strings.Join(tokens[2:], ""))
	if err != nil {
		return Unknown{}, fmt.Errorf("%w: generic rdata hex: %v", ErrInvalidField, err)
	}
	if uint64(len(data)) != n {
		return Unknown{}, fmt.Errorf("%w: generic rdata length %d but %d octets given", ErrInvalidField, n, len(data))
	}
	return Unknown{rrtype: t, data: data}, nil
}

// UnpackUnknown copies rdlength octets of opaque rdata.
func UnpackUnknown(t domain.RRType, msg []byte, off, rdlength int) (Unknown, int, error) {
	region, err := rdataRegion(msg, off, rdlength)
	if err != nil {
		return Unknown{}, 0, err
	}
	return NewUnknown(t, region), rdlength, nil
}

func (u Unknown) Type() domain.RRType { return u.rrtype }

// Data returns a copy of the raw rdata.
func (u Unknown) Data() []byte { return append([]byte(nil), u.data...) }

func (u Unknown) String() string {
	s := genericMarker + " " + strconv.Itoa(len(u.data))
	if len(u.data) > 0 {
		s += " " + hex.EncodeToString(u.data)
	}
	return s
}

func (u Unknown) Pack(b []byte) ([]byte, int, error) {
	return append(b, u.data...), len(u.data), nil
}
