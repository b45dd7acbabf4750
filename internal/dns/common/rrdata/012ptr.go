package rrdata

import "github.com/haukened/rr-codec/internal/dns/domain"

// PTR holds the pointer target of a PTR record.
type PTR struct {
	target string
}

// NewPTR builds a PTR record; the name is canonicalised.
func NewPTR(name string) (PTR, error) {
	n, err := parseTarget([]string{name})
	if err != nil {
		return PTR{}, err
	}
	return PTR{target: n}, nil
}

// ParsePTR parses the single domain-name field of a PTR record.
func ParsePTR(tokens []string) (PTR, error) {
	n, err := parseTarget(tokens)
	if err != nil {
		return PTR{}, err
	}
	return PTR{target: n}, nil
}

// UnpackPTR reads a PTR rdata, following compression pointers into msg.
func UnpackPTR(msg []byte, off, rdlength int) (PTR, int, error) {
	n, consumed, err := unpackTarget(msg, off, rdlength)
	if err != nil {
		return PTR{}, 0, err
	}
	return PTR{target: n}, consumed, nil
}

func (PTR) Type() domain.RRType { return domain.RRTypePTR }

// Target returns the pointer target.
func (r PTR) Target() string { return r.target }

func (r PTR) String() string { return r.target }

func (r PTR) Pack(b []byte) ([]byte, int, error) { return packTarget(b, r.target) }
