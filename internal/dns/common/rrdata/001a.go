package rrdata

import (
	"fmt"
	"net"

	"github.com/haukened/rr-codec/internal/dns/domain"
)

// A holds an IPv4 host address.
type A struct {
	addr net.IP
}

// NewA builds an A record from an IPv4 address.
func NewA(ip net.IP) (A, error) {
	if !isIPv4(ip) {
		return A{}, fmt.Errorf("%w: not an IPv4 address: %v", ErrInvalidField, ip)
	}
	return A{addr: ip.To4()}, nil
}

// ParseA parses the single address field of an A record.
func ParseA(tokens []string) (A, error) {
	if err := exactTokens(tokens, 1); err != nil {
		return A{}, err
	}
	ip := net.ParseIP(tokens[0])
	if ip == nil || !isIPv4(ip) {
		return A{}, fmt.Errorf("%w: invalid A record IP: %s", ErrInvalidField, tokens[0])
	}
	return A{addr: ip.To4()}, nil
}

// UnpackA reads a 4-octet A rdata.
func UnpackA(msg []byte, off, rdlength int) (A, int, error) {
	region, err := rdataRegion(msg, off, rdlength)
	if err != nil {
		return A{}, 0, err
	}
	if err := fixedLength(region, net.IPv4len); err != nil {
		return A{}, 0, err
	}
	ip := make(net.IP, net.IPv4len)
	copy(ip, region)
	return A{addr: ip}, rdlength, nil
}

func (A) Type() domain.RRType { return domain.RRTypeA }

// Addr returns a copy of the address.
func (a A) Addr() net.IP { return append(net.IP(nil), a.addr...) }

func (a A) String() string { return a.addr.String() }

func (a A) Pack(b []byte) ([]byte, int, error) {
	if len(a.addr) != net.IPv4len {
		return b, 0, fmt.Errorf("%w: A record has no address", ErrInvalidField)
	}
	return append(b, a.addr...), net.IPv4len, nil
}
