package rrdata

import (
	"fmt"
	"strings"

	"github.com/haukened/rr-codec/internal/dns/domain"
)

// ParseText builds the rdata of the given type from presentation tokens that
// the caller has already split. Any type accepts the RFC 3597 generic form.
func ParseText(rrType domain.RRType, tokens []string) (domain.RData, error) {
	if len(tokens) > 0 && tokens[0] == genericMarker {
		return parsed(ParseUnknown(rrType, tokens))
	}
	switch rrType {
	case domain.RRTypeA: // 1
		return parsed(ParseA(tokens))
	case domain.RRTypeNS: // 2
		return parsed(ParseNS(tokens))
	case domain.RRTypeCNAME: // 5
		return parsed(ParseCNAME(tokens))
	case domain.RRTypeSOA: // 6
		return parsed(ParseSOA(tokens))
	case domain.RRTypePTR: // 12
		return parsed(ParsePTR(tokens))
	case domain.RRTypeMX: // 15
		return parsed(ParseMX(tokens))
	case domain.RRTypeTXT: // 16
		return parsed(ParseTXT(tokens))
	case domain.RRTypeAAAA: // 28
		return parsed(ParseAAAA(tokens))
	case domain.RRTypeSRV: // 33
		return parsed(ParseSRV(tokens))
	case domain.RRTypeNSEC: // 47
		return parsed(ParseNSEC(tokens))
	case domain.RRTypeCSYNC: // 62
		return parsed(ParseCSYNC(tokens))
	case domain.RRTypeCAA: // 257
		return parsed(ParseCAA(tokens))
	default:
		return nil, fmt.Errorf("%w: %s (use the \\# generic form)", ErrUnsupportedType, rrType)
	}
}

// Encode converts a presentation string of the given type to its wire form.
func Encode(rrType domain.RRType, data string) ([]byte, error) {
	rd, err := ParseText(rrType, strings.Fields(data))
	if err != nil {
		return nil, err
	}
	out, _, err := rd.Pack(nil)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// parsed adapts a concrete parser result to the RData interface, keeping a
// nil interface on error.
func parsed[T domain.RData](rd T, err error) (domain.RData, error) {
	if err != nil {
		return nil, err
	}
	return rd, nil
}
