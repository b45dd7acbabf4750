package domain

import (
	"strconv"
	"strings"
)

// RRClass represents a DNS class (usually IN for Internet).
type RRClass uint16

// DNS Resource Record Class constants
const (
	RRClassIN   RRClass = 1   // IN - Internet
	RRClassCH   RRClass = 3   // CH - Chaos
	RRClassHS   RRClass = 4   // HS - Hesiod
	RRClassNONE RRClass = 254 // NONE - No class
	RRClassANY  RRClass = 255 // ANY - Any class (query only)
)

// IsValid returns true if the RRClass is one of the supported classes.
func (c RRClass) IsValid() bool {
	switch c {
	case RRClassIN, RRClassCH, RRClassHS, RRClassNONE, RRClassANY:
		return true
	default:
		return false
	}
}

// String returns the textual representation of the RRClass.
// Unassigned classes use the RFC 3597 form "CLASS<n>".
func (c RRClass) String() string {
	switch c {
	case RRClassIN:
		return "IN"
	case RRClassCH:
		return "CH"
	case RRClassHS:
		return "HS"
	case RRClassNONE:
		return "NONE"
	case RRClassANY:
		return "ANY"
	default:
		return "CLASS" + strconv.FormatUint(uint64(c), 10)
	}
}

// ParseRRClass converts a string name to an RRClass value (case-insensitive).
// It returns 0 for names it does not recognise.
func ParseRRClass(s string) RRClass {
	s = strings.ToUpper(strings.TrimSpace(s))
	switch s {
	case "IN":
		return RRClassIN
	case "CH":
		return RRClassCH
	case "HS":
		return RRClassHS
	case "NONE":
		return RRClassNONE
	case "ANY":
		return RRClassANY
	}
	if num, ok := strings.CutPrefix(s, "CLASS"); ok {
		if v, err := strconv.ParseUint(num, 10, 16); err == nil {
			return RRClass(v)
		}
	}
	return 0
}
