package rrdata

import "github.com/haukened/rr-codec/internal/dns/domain"

// NS holds the name server of a NS record.
type NS struct {
	host string
}

// NewNS builds a NS record; the name is canonicalised.
func NewNS(name string) (NS, error) {
	n, err := parseTarget([]string{name})
	if err != nil {
		return NS{}, err
	}
	return NS{host: n}, nil
}

// ParseNS parses the single domain-name field of a NS record.
func ParseNS(tokens []string) (NS, error) {
	n, err := parseTarget(tokens)
	if err != nil {
		return NS{}, err
	}
	return NS{host: n}, nil
}

// UnpackNS reads a NS rdata, following compression pointers into msg.
func UnpackNS(msg []byte, off, rdlength int) (NS, int, error) {
	n, consumed, err := unpackTarget(msg, off, rdlength)
	if err != nil {
		return NS{}, 0, err
	}
	return NS{host: n}, consumed, nil
}

func (NS) Type() domain.RRType { return domain.RRTypeNS }

// Host returns the name server host name.
func (r NS) Host() string { return r.host }

func (r NS) String() string { return r.host }

func (r NS) Pack(b []byte) ([]byte, int, error) { return packTarget(b, r.host) }
