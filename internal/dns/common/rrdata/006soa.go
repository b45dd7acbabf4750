package rrdata

import (
	"encoding/binary"
	"fmt"
	"strconv"

	"github.com/haukened/rr-codec/internal/dns/common/utils"
	"github.com/haukened/rr-codec/internal/dns/domain"
)

// soaCounters is the fixed trailer of an SOA rdata: five 32-bit integers.
const soaCounters = 20

// SOA is the start-of-authority record. Its Serial is what a CSYNC record
// advertises as the minimum zone version to synchronise from.
type SOA struct {
	MName   string
	RName   string
	Serial  uint32
	Refresh uint32
	Retry   uint32
	Expire  uint32
	Minimum uint32
}

// ParseSOA parses "mname rname serial refresh retry expire minimum".
func ParseSOA(tokens []string) (SOA, error) {
	if err := exactTokens(tokens, 7); err != nil {
		return SOA{}, err
	}
	mname, err := parseTarget(tokens[0:1])
	if err != nil {
		return SOA{}, fmt.Errorf("invalid SOA mname: %w", err)
	}
	rname, err := parseTarget(tokens[1:2])
	if err != nil {
		return SOA{}, fmt.Errorf("invalid SOA rname: %w", err)
	}
	var u32 [5]uint32
	fields := [5]string{"serial", "refresh", "retry", "expire", "minimum"}
	for i := range u32 {
		v, err := parseUint(tokens[i+2], 32, "SOA "+fields[i])
		if err != nil {
			return SOA{}, err
		}
		u32[i] = uint32(v)
	}
	return SOA{
		MName:   mname,
		RName:   rname,
		Serial:  u32[0],
		Refresh: u32[1],
		Retry:   u32[2],
		Expire:  u32[3],
		Minimum: u32[4],
	}, nil
}

// UnpackSOA reads an SOA rdata. Both names may be compressed.
func UnpackSOA(msg []byte, off, rdlength int) (SOA, int, error) {
	if _, err := rdataRegion(msg, off, rdlength); err != nil {
		return SOA{}, 0, err
	}
	end := off + rdlength
	mname, next, err := unpackName(msg, off, end)
	if err != nil {
		return SOA{}, 0, fmt.Errorf("invalid SOA mname: %w", err)
	}
	rname, next, err := unpackName(msg, next, end)
	if err != nil {
		return SOA{}, 0, fmt.Errorf("invalid SOA rname: %w", err)
	}
	if end-next < soaCounters {
		return SOA{}, 0, fmt.Errorf("%w: SOA record missing integer fields", ErrShortRData)
	}
	if end-next > soaCounters {
		return SOA{}, 0, fmt.Errorf("%w: %d octets after SOA minimum", ErrTrailingData, end-next-soaCounters)
	}
	var u32 [5]uint32
	for i := range u32 {
		u32[i] = binary.BigEndian.Uint32(msg[next+i*4:])
	}
	return SOA{
		MName:   mname,
		RName:   rname,
		Serial:  u32[0],
		Refresh: u32[1],
		Retry:   u32[2],
		Expire:  u32[3],
		Minimum: u32[4],
	}, rdlength, nil
}

func (SOA) Type() domain.RRType { return domain.RRTypeSOA }

func (s SOA) String() string {
	return s.MName + " " + s.RName + " " +
		strconv.FormatUint(uint64(s.Serial), 10) + " " +
		strconv.FormatUint(uint64(s.Refresh), 10) + " " +
		strconv.FormatUint(uint64(s.Retry), 10) + " " +
		strconv.FormatUint(uint64(s.Expire), 10) + " " +
		strconv.FormatUint(uint64(s.Minimum), 10)
}

func (s SOA) Pack(b []byte) ([]byte, int, error) {
	start := len(b)
	out, err := utils.AppendName(b, s.MName)
	if err != nil {
		return b, 0, fmt.Errorf("invalid SOA mname: %w", err)
	}
	out, err = utils.AppendName(out, s.RName)
	if err != nil {
		return b[:start], 0, fmt.Errorf("invalid SOA rname: %w", err)
	}
	out = binary.BigEndian.AppendUint32(out, s.Serial)
	out = binary.BigEndian.AppendUint32(out, s.Refresh)
	out = binary.BigEndian.AppendUint32(out, s.Retry)
	out = binary.BigEndian.AppendUint32(out, s.Expire)
	out = binary.BigEndian.AppendUint32(out, s.Minimum)
	return out, len(out) - start, nil
}
