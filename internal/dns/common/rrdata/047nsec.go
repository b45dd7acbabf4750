package rrdata

import (
	"fmt"
	"strings"

	"github.com/haukened/rr-codec/internal/dns/common/bitmap"
	"github.com/haukened/rr-codec/internal/dns/common/utils"
	"github.com/haukened/rr-codec/internal/dns/domain"
)

// NSEC is the authenticated denial record (RFC 4034 section 4): the next
// owner name in canonical order plus the types present at this owner.
type NSEC struct {
	next  string
	types []string
}

// NewNSEC builds an NSEC record. The next name is canonicalised and the
// type list copied as given.
func NewNSEC(next string, types []string) NSEC {
	return NSEC{next: utils.CanonicalDNSName(next), types: append([]string(nil), types...)}
}

// ParseNSEC parses "next-domain TYPE...".
func ParseNSEC(tokens []string) (NSEC, error) {
	if len(tokens) < 1 {
		return NSEC{}, fmt.Errorf("%w: NSEC needs a next domain name", ErrTooFewTokens)
	}
	next, err := parseTarget(tokens[:1])
	if err != nil {
		return NSEC{}, fmt.Errorf("invalid NSEC next domain: %w", err)
	}
	return NSEC{next: next, types: append([]string(nil), tokens[1:]...)}, nil
}

// UnpackNSEC reads an NSEC rdata. The next domain name is never compressed
// on output but pointers are tolerated on input.
func UnpackNSEC(msg []byte, off, rdlength int) (NSEC, int, error) {
	region, err := rdataRegion(msg, off, rdlength)
	if err != nil {
		return NSEC{}, 0, err
	}
	if rdlength == 0 {
		return NSEC{}, 0, fmt.Errorf("%w: empty NSEC rdata", ErrShortRData)
	}
	next, after, err := unpackName(msg, off, off+rdlength)
	if err != nil {
		return NSEC{}, 0, fmt.Errorf("invalid NSEC next domain: %w", err)
	}
	types, err := bitmap.BitmapToTypeList(region[after-off:])
	if err != nil {
		return NSEC{}, 0, fmt.Errorf("invalid NSEC type bit map: %w", err)
	}
	return NSEC{next: next, types: types}, rdlength, nil
}

func (NSEC) Type() domain.RRType { return domain.RRTypeNSEC }

// Next returns the next owner name.
func (n NSEC) Next() string { return n.next }

// Types returns a copy of the type mnemonics in stored order.
func (n NSEC) Types() []string { return append([]string(nil), n.types...) }

func (n NSEC) String() string {
	var sb strings.Builder
	sb.WriteString(n.next)
	for _, t := range n.types {
		sb.WriteByte(' ')
		sb.WriteString(strings.ToUpper(t))
	}
	return sb.String()
}

func (n NSEC) Pack(b []byte) ([]byte, int, error) {
	bm, err := bitmap.TypeListToBitmap(n.types)
	if err != nil {
		return b, 0, fmt.Errorf("invalid NSEC type bit map: %w", err)
	}
	start := len(b)
	out, err := utils.AppendName(b, n.next)
	if err != nil {
		return b, 0, fmt.Errorf("invalid NSEC next domain: %w", err)
	}
	out = append(out, bm...)
	return out, len(out) - start, nil
}
