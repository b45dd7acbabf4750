package rrdata

import (
	"fmt"
	"net"

	"github.com/haukened/rr-codec/internal/dns/domain"
)

// AAAA holds an IPv6 host address.
type AAAA struct {
	addr net.IP
}

// NewAAAA builds an AAAA record from an IPv6 address.
func NewAAAA(ip net.IP) (AAAA, error) {
	if !isIPv6(ip) {
		return AAAA{}, fmt.Errorf("%w: not an IPv6 address: %v", ErrInvalidField, ip)
	}
	return AAAA{addr: ip.To16()}, nil
}

// ParseAAAA parses the single address field of an AAAA record.
func ParseAAAA(tokens []string) (AAAA, error) {
	if err := exactTokens(tokens, 1); err != nil {
		return AAAA{}, err
	}
	ip := net.ParseIP(tokens[0])
	if ip == nil || !isIPv6(ip) {
		return AAAA{}, fmt.Errorf("%w: invalid AAAA record IP: %s", ErrInvalidField, tokens[0])
	}
	return AAAA{addr: ip.To16()}, nil
}

// UnpackAAAA reads a 16-octet AAAA rdata.
func UnpackAAAA(msg []byte, off, rdlength int) (AAAA, int, error) {
	region, err := rdataRegion(msg, off, rdlength)
	if err != nil {
		return AAAA{}, 0, err
	}
	if err := fixedLength(region, net.IPv6len); err != nil {
		return AAAA{}, 0, err
	}
	ip := make(net.IP, net.IPv6len)
	copy(ip, region)
	return AAAA{addr: ip}, rdlength, nil
}

func (AAAA) Type() domain.RRType { return domain.RRTypeAAAA }

// Addr returns a copy of the address.
func (a AAAA) Addr() net.IP { return append(net.IP(nil), a.addr...) }

func (a AAAA) String() string { return a.addr.String() }

func (a AAAA) Pack(b []byte) ([]byte, int, error) {
	if len(a.addr) != net.IPv6len {
		return b, 0, fmt.Errorf("%w: AAAA record has no address", ErrInvalidField)
	}
	return append(b, a.addr...), net.IPv6len, nil
}
