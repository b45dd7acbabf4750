package rrdata

import (
	"encoding/binary"
	"fmt"
	"strconv"

	"github.com/haukened/rr-codec/internal/dns/domain"
)

// MX is a mail exchange record: preference then exchange host.
type MX struct {
	preference uint16
	exchange   string
}

// ParseMX parses "<preference> <exchange>".
func ParseMX(tokens []string) (MX, error) {
	if err := exactTokens(tokens, 2); err != nil {
		return MX{}, fmt.Errorf("MX: %w", err)
	}
	pref, err := parseUint(tokens[0], 16, "MX preference")
	if err != nil {
		return MX{}, err
	}
	host, err := parseTarget(tokens[1:])
	if err != nil {
		return MX{}, fmt.Errorf("MX exchange: %w", err)
	}
	return MX{preference: uint16(pref), exchange: host}, nil
}

// UnpackMX reads a MX rdata. The exchange may be compressed.
func UnpackMX(msg []byte, off, rdlength int) (MX, int, error) {
	if rdlength < 3 {
		return MX{}, 0, fmt.Errorf("%w: MX needs at least 3 octets, got %d", ErrShortRData, rdlength)
	}
	region, err := rdataRegion(msg, off, rdlength)
	if err != nil {
		return MX{}, 0, err
	}
	host, _, err := unpackTarget(msg, off+2, rdlength-2)
	if err != nil {
		return MX{}, 0, fmt.Errorf("MX exchange: %w", err)
	}
	return MX{preference: binary.BigEndian.Uint16(region), exchange: host}, rdlength, nil
}

func (MX) Type() domain.RRType { return domain.RRTypeMX }

func (r MX) Preference() uint16 { return r.preference }
func (r MX) Exchange() string   { return r.exchange }

func (r MX) String() string {
	return strconv.FormatUint(uint64(r.preference), 10) + " " + r.exchange
}

func (r MX) Pack(b []byte) ([]byte, int, error) {
	start := len(b)
	out := binary.BigEndian.AppendUint16(b, r.preference)
	out, _, err := packTarget(out, r.exchange)
	if err != nil {
		return b[:start], 0, err
	}
	return out, len(out) - start, nil
}
