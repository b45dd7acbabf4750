package rrdata

import "github.com/haukened/rr-codec/internal/dns/domain"

// CNAME holds the canonical name of a CNAME record.
type CNAME struct {
	target string
}

// NewCNAME builds a CNAME record; the name is canonicalised.
func NewCNAME(name string) (CNAME, error) {
	n, err := parseTarget([]string{name})
	if err != nil {
		return CNAME{}, err
	}
	return CNAME{target: n}, nil
}

// ParseCNAME parses the single domain-name field of a CNAME record.
func ParseCNAME(tokens []string) (CNAME, error) {
	n, err := parseTarget(tokens)
	if err != nil {
		return CNAME{}, err
	}
	return CNAME{target: n}, nil
}

// UnpackCNAME reads a CNAME rdata, following compression pointers into msg.
func UnpackCNAME(msg []byte, off, rdlength int) (CNAME, int, error) {
	n, consumed, err := unpackTarget(msg, off, rdlength)
	if err != nil {
		return CNAME{}, 0, err
	}
	return CNAME{target: n}, consumed, nil
}

func (CNAME) Type() domain.RRType { return domain.RRTypeCNAME }

// Target returns the canonical name.
func (r CNAME) Target() string { return r.target }

func (r CNAME) String() string { return r.target }

func (r CNAME) Pack(b []byte) ([]byte, int, error) { return packTarget(b, r.target) }
