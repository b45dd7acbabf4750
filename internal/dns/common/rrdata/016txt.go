package rrdata

import (
	"fmt"
	"strings"

	"github.com/haukened/rr-codec/internal/dns/domain"
)

const maxCharString = 255

// TXT holds one or more character strings (RFC 1035 section 3.3.14).
// In presentation form segments are separated by semicolons.
type TXT struct {
	segments []string
}

// ParseTXT joins the tokens back with single spaces and splits the result
// on ';'. Empty segments are dropped.
func ParseTXT(tokens []string) (TXT, error) {
	var segs []string
	for _, seg := range strings.Split(strings.Join(tokens, " "), ";") {
		seg = strings.Trim(strings.TrimSpace(seg), `"`)
		if seg == "" {
			continue
		}
		if len(seg) > maxCharString {
			return TXT{}, fmt.Errorf("%w: TXT segment of %d octets", ErrInvalidField, len(seg))
		}
		segs = append(segs, seg)
	}
	if len(segs) == 0 {
		return TXT{}, fmt.Errorf("%w: TXT needs at least one segment", ErrTooFewTokens)
	}
	return TXT{segments: segs}, nil
}

// UnpackTXT reads length-prefixed character strings until rdlength is used up.
func UnpackTXT(msg []byte, off, rdlength int) (TXT, int, error) {
	if rdlength == 0 {
		return TXT{}, 0, fmt.Errorf("%w: empty TXT rdata", ErrShortRData)
	}
	region, err := rdataRegion(msg, off, rdlength)
	if err != nil {
		return TXT{}, 0, err
	}
	var segs []string
	for i := 0; i < len(region); {
		n := int(region[i])
		i++
		if i+n > len(region) {
			return TXT{}, 0, fmt.Errorf("%w: TXT segment of %d octets, %d left", ErrTruncated, n, len(region)-i)
		}
		segs = append(segs, string(region[i:i+n]))
		i += n
	}
	return TXT{segments: segs}, rdlength, nil
}

func (TXT) Type() domain.RRType { return domain.RRTypeTXT }

// Segments returns a copy of the character strings.
func (r TXT) Segments() []string { return append([]string(nil), r.segments...) }

func (r TXT) String() string { return strings.Join(r.segments, "; ") }

func (r TXT) Pack(b []byte) ([]byte, int, error) {
	start := len(b)
	for _, seg := range r.segments {
		if len(seg) > maxCharString {
			return b[:start], 0, fmt.Errorf("%w: TXT segment of %d octets", ErrInvalidField, len(seg))
		}
		b = append(b, byte(len(seg)))
		b = append(b, seg...)
	}
	return b, len(b) - start, nil
}
