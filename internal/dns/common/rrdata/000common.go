package rrdata

import (
	"errors"
	"fmt"
	"net"
	"strconv"

	"github.com/haukened/rr-codec/internal/dns/common/utils"
)

var (
	// ErrTooFewTokens is returned when a presentation line lacks required fields.
	ErrTooFewTokens = errors.New("too few rdata fields")
	// ErrTooManyTokens is returned when a presentation line has extra fields.
	ErrTooManyTokens = errors.New("too many rdata fields")
	// ErrInvalidField is returned when a presentation field cannot be converted.
	ErrInvalidField = errors.New("invalid rdata field")
	// ErrShortRData is returned when rdlength is below the minimum for the type.
	ErrShortRData = errors.New("rdata too short")
	// ErrTrailingData is returned when a codec does not consume the whole rdata.
	ErrTrailingData = errors.New("trailing bytes in rdata")
	// ErrTruncated is returned when the declared rdata extends past the message.
	ErrTruncated = errors.New("rdata extends past end of message")
	// ErrUnsupportedType is returned for presentation input of types without a codec.
	ErrUnsupportedType = errors.New("record type has no presentation codec")
)

// rdataRegion returns the rdlength octets of msg starting at off.
func rdataRegion(msg []byte, off, rdlength int) ([]byte, error) {
	if off < 0 || rdlength < 0 || off > len(msg) || rdlength > len(msg)-off {
		return nil, fmt.Errorf("%w: offset %d length %d message %d", ErrTruncated, off, rdlength, len(msg))
	}
	return msg[off : off+rdlength], nil
}

// unpackName reads a (possibly compressed) name that must end inside the rdata region.
func unpackName(msg []byte, off, end int) (string, int, error) {
	return utils.DecodeName(msg[:end], off)
}

func parseUint(token string, bits int, field string) (uint64, error) {
	v, err := strconv.ParseUint(token, 10, bits)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q", ErrInvalidField, field, token)
	}
	return v, nil
}

func exactTokens(tokens []string, n int) error {
	if len(tokens) < n {
		return fmt.Errorf("%w: want %d, got %d", ErrTooFewTokens, n, len(tokens))
	}
	if len(tokens) > n {
		return fmt.Errorf("%w: want %d, got %d", ErrTooManyTokens, n, len(tokens))
	}
	return nil
}

// isIPv4 checks whether the provided net.IP address is an IPv4 address.
func isIPv4(ip net.IP) bool {
	return ip != nil && ip.To4() != nil
}

// isIPv6 checks whether the provided net.IP is an IPv6 address
// without a valid 4-byte IPv4 representation.
func isIPv6(ip net.IP) bool {
	return ip != nil && ip.To16() != nil && ip.To4() == nil
}

func fixedLength(region []byte, n int) error {
	if len(region) < n {
		return fmt.Errorf("%w: want %d octets, got %d", ErrShortRData, n, len(region))
	}
	if len(region) > n {
		return fmt.Errorf("%w: want %d octets, got %d", ErrTrailingData, n, len(region))
	}
	return nil
}

// parseTarget handles the single domain-name field shared by NS, CNAME and PTR.
func parseTarget(tokens []string) (string, error) {
	if err := exactTokens(tokens, 1); err != nil {
		return "", err
	}
	name := utils.CanonicalDNSName(tokens[0])
	if name == "" {
		return "", fmt.Errorf("%w: empty domain name", ErrInvalidField)
	}
	if _, err := utils.EncodeName(name); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidField, err)
	}
	return name, nil
}

// unpackTarget reads an rdata consisting of exactly one domain name.
func unpackTarget(msg []byte, off, rdlength int) (string, int, error) {
	if _, err := rdataRegion(msg, off, rdlength); err != nil {
		return "", 0, err
	}
	if rdlength == 0 {
		return "", 0, fmt.Errorf("%w: empty name rdata", ErrShortRData)
	}
	name, next, err := unpackName(msg, off, off+rdlength)
	if err != nil {
		return "", 0, err
	}
	if next != off+rdlength {
		return "", 0, fmt.Errorf("%w: %d octets after name", ErrTrailingData, off+rdlength-next)
	}
	return name, rdlength, nil
}

// packTarget appends an uncompressed domain name.
func packTarget(b []byte, name string) ([]byte, int, error) {
	start := len(b)
	out, err := utils.AppendName(b, name)
	if err != nil {
		return b, 0, err
	}
	return out, len(out) - start, nil
}
