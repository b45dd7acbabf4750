package rrdata

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/haukened/rr-codec/internal/dns/domain"
)

// CAA restricts which certificate authorities may issue for a name (RFC 8659).
// The value is opaque and never canonicalised: it may be a CA domain or a URI.
type CAA struct {
	flags uint8
	tag   string
	value string
}

// ParseCAA parses `<flags> <tag> "<value>"`; the value may span tokens.
func ParseCAA(tokens []string) (CAA, error) {
	if len(tokens) < 3 {
		return CAA{}, fmt.Errorf("%w: CAA needs flags, tag and value, got %d field(s)", ErrTooFewTokens, len(tokens))
	}
	flags, err := parseUint(tokens[0], 8, "CAA flags")
	if err != nil {
		return CAA{}, err
	}
	tag := tokens[1]
	if len(tag) > maxCharString {
		return CAA{}, fmt.Errorf("%w: CAA tag of %d octets", ErrInvalidField, len(tag))
	}
	value := strings.Trim(strings.Join(tokens[2:], " "), `"`)
	return CAA{flags: uint8(flags), tag: tag, value: value}, nil
}

// UnpackCAA reads a CAA rdata.
func UnpackCAA(msg []byte, off, rdlength int) (CAA, int, error) {
	if rdlength < 2 {
		return CAA{}, 0, fmt.Errorf("%w: CAA needs at least 2 octets, got %d", ErrShortRData, rdlength)
	}
	region, err := rdataRegion(msg, off, rdlength)
	if err != nil {
		return CAA{}, 0, err
	}
	tagLen := int(region[1])
	if 2+tagLen > len(region) {
		return CAA{}, 0, fmt.Errorf("%w: CAA tag of %d octets", ErrTruncated, tagLen)
	}
	return CAA{
		flags: region[0],
		tag:   string(region[2 : 2+tagLen]),
		value: string(region[2+tagLen:]),
	}, rdlength, nil
}

func (CAA) Type() domain.RRType { return domain.RRTypeCAA }

func (r CAA) Flags() uint8   { return r.flags }
func (r CAA) Tag() string    { return r.tag }
func (r CAA) Value() string  { return r.value }
func (r CAA) Critical() bool { return r.flags&0x80 != 0 }

func (r CAA) String() string {
	return strconv.FormatUint(uint64(r.flags), 10) + " " + r.tag + ` "` + r.value + `"`
}

func (r CAA) Pack(b []byte) ([]byte, int, error) {
	if len(r.tag) > maxCharString {
		return b, 0, fmt.Errorf("%w: CAA tag of %d octets", ErrInvalidField, len(r.tag))
	}
	start := len(b)
	b = append(b, r.flags, byte(len(r.tag)))
	b = append(b, r.tag...)
	b = append(b, r.value...)
	return b, len(b) - start, nil
}
