package rrdata

import (
	"encoding/binary"
	"fmt"

	"github.com/haukened/rr-codec/internal/dns/domain"
)

// SRV locates a service (RFC 2782).
type SRV struct {
	priority uint16
	weight   uint16
	port     uint16
	target   string
}

// ParseSRV parses "<priority> <weight> <port> <target>".
func ParseSRV(tokens []string) (SRV, error) {
	if err := exactTokens(tokens, 4); err != nil {
		return SRV{}, fmt.Errorf("SRV: %w", err)
	}
	var fields [3]uint16
	for i, name := range []string{"SRV priority", "SRV weight", "SRV port"} {
		v, err := parseUint(tokens[i], 16, name)
		if err != nil {
			return SRV{}, err
		}
		fields[i] = uint16(v)
	}
	target, err := parseTarget(tokens[3:])
	if err != nil {
		return SRV{}, fmt.Errorf("SRV target: %w", err)
	}
	return SRV{priority: fields[0], weight: fields[1], port: fields[2], target: target}, nil
}

// UnpackSRV reads a SRV rdata.
func UnpackSRV(msg []byte, off, rdlength int) (SRV, int, error) {
	if rdlength < 7 {
		return SRV{}, 0, fmt.Errorf("%w: SRV needs at least 7 octets, got %d", ErrShortRData, rdlength)
	}
	region, err := rdataRegion(msg, off, rdlength)
	if err != nil {
		return SRV{}, 0, err
	}
	target, _, err := unpackTarget(msg, off+6, rdlength-6)
	if err != nil {
		return SRV{}, 0, fmt.Errorf("SRV target: %w", err)
	}
	return SRV{
		priority: binary.BigEndian.Uint16(region[0:2]),
		weight:   binary.BigEndian.Uint16(region[2:4]),
		port:     binary.BigEndian.Uint16(region[4:6]),
		target:   target,
	}, rdlength, nil
}

func (SRV) Type() domain.RRType { return domain.RRTypeSRV }

func (r SRV) Priority() uint16 { return r.priority }
func (r SRV) Weight() uint16   { return r.weight }
func (r SRV) Port() uint16     { return r.port }
func (r SRV) Target() string   { return r.target }

func (r SRV) String() string {
	return fmt.Sprintf("%d %d %d %s", r.priority, r.weight, r.port, r.target)
}

func (r SRV) Pack(b []byte) ([]byte, int, error) {
	start := len(b)
	out := binary.BigEndian.AppendUint16(b, r.priority)
	out = binary.BigEndian.AppendUint16(out, r.weight)
	out = binary.BigEndian.AppendUint16(out, r.port)
	out, _, err := packTarget(out, r.target)
	if err != nil {
		return b[:start], 0, err
	}
	return out, len(out) - start, nil
}
