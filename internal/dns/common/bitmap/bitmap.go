// Package bitmap implements the windowed type bit map of RFC 4034 section 4.1,
// shared by the NSEC family and CSYNC records.
//
// Each window is encoded as a window number octet, a bitmap length octet
// (1..32) and that many bitmap octets. Bit i of octet j in window w marks
// type w*256 + j*8 + i as present, counting bits from the most significant.
package bitmap

import (
	"errors"
	"fmt"
	"sort"

	"github.com/haukened/rr-codec/internal/dns/domain"
)

const maxWindowOctets = 32

var (
	ErrTruncated     = errors.New("type bit map truncated")
	ErrWindowLength  = errors.New("type bit map window length out of range")
	ErrWindowOrder   = errors.New("type bit map windows out of order")
	ErrUnknownType   = errors.New("unknown type mnemonic in type bit map")
	ErrEmptyMnemonic = errors.New("empty type mnemonic")
)

// Encode returns the minimal bit map encoding of types. Windows are emitted in
// ascending order, trailing zero octets are dropped and duplicates collapse.
// An empty set encodes to an empty (nil) slice.
func Encode(types []domain.RRType) []byte {
	if len(types) == 0 {
		return nil
	}
	windows := make(map[uint8]*[maxWindowOctets]byte)
	used := make(map[uint8]int)
	for _, t := range types {
		w := uint8(t >> 8)
		lo := uint8(t)
		octets, ok := windows[w]
		if !ok {
			octets = new([maxWindowOctets]byte)
			windows[w] = octets
		}
		idx := int(lo / 8)
		octets[idx] |= 0x80 >> (lo % 8)
		if idx+1 > used[w] {
			used[w] = idx + 1
		}
	}

	order := make([]int, 0, len(windows))
	for w := range windows {
		order = append(order, int(w))
	}
	sort.Ints(order)

	var out []byte
	for _, w := range order {
		n := used[uint8(w)]
		out = append(out, byte(w), byte(n))
		out = append(out, windows[uint8(w)][:n]...)
	}
	return out
}

// Decode parses a complete type bit map and returns the types it marks,
// in ascending order. Every octet of data must belong to a window.
func Decode(data []byte) ([]domain.RRType, error) {
	var types []domain.RRType
	last := -1
	for off := 0; off < len(data); {
		if off+2 > len(data) {
			return nil, fmt.Errorf("%w: window header at offset %d", ErrTruncated, off)
		}
		w := int(data[off])
		n := int(data[off+1])
		if n == 0 || n > maxWindowOctets {
			return nil, fmt.Errorf("%w: window %d has length %d", ErrWindowLength, w, n)
		}
		if w <= last {
			return nil, fmt.Errorf("%w: window %d follows %d", ErrWindowOrder, w, last)
		}
		off += 2
		if off+n > len(data) {
			return nil, fmt.Errorf("%w: window %d needs %d octets, %d left", ErrTruncated, w, n, len(data)-off)
		}
		for j, octet := range data[off : off+n] {
			for i := 0; i < 8; i++ {
				if octet&(0x80>>i) != 0 {
					types = append(types, domain.RRType(w*256 + j*8 + i))
				}
			}
		}
		off += n
		last = w
	}
	return types, nil
}

// TypeListToBitmap encodes a list of type mnemonics (case-insensitive, RFC 3597
// "TYPE<n>" accepted) as a type bit map.
func TypeListToBitmap(names []string) ([]byte, error) {
	types := make([]domain.RRType, 0, len(names))
	for _, name := range names {
		if name == "" {
			return nil, ErrEmptyMnemonic
		}
		t, err := domain.ParseRRType(name)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrUnknownType, name)
		}
		types = append(types, t)
	}
	return Encode(types), nil
}

// BitmapToTypeList decodes a type bit map into mnemonics in ascending type order.
func BitmapToTypeList(data []byte) ([]string, error) {
	types, err := Decode(data)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = t.String()
	}
	return names, nil
}
