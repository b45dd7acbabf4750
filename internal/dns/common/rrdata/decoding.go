package rrdata

import (
	"github.com/haukened/rr-codec/internal/dns/domain"
)

// Unpack decodes the rdlength octets of rdata at msg[off] for the given type.
// msg is the whole message so that compressed names can be followed. The
// returned count is the number of octets consumed; callers own the cursor.
// Types without a dedicated codec are kept as opaque Unknown rdata.
func Unpack(rrType domain.RRType, msg []byte, off, rdlength int) (domain.RData, int, error) {
	switch rrType {
	case domain.RRTypeA: // 1
		return wrap(UnpackA(msg, off, rdlength))
	case domain.RRTypeNS: // 2
		return wrap(UnpackNS(msg, off, rdlength))
	case domain.RRTypeCNAME: // 5
		return wrap(UnpackCNAME(msg, off, rdlength))
	case domain.RRTypeSOA: // 6
		return wrap(UnpackSOA(msg, off, rdlength))
	case domain.RRTypePTR: // 12
		return wrap(UnpackPTR(msg, off, rdlength))
	case domain.RRTypeMX: // 15
		return wrap(UnpackMX(msg, off, rdlength))
	case domain.RRTypeTXT: // 16
		return wrap(UnpackTXT(msg, off, rdlength))
	case domain.RRTypeAAAA: // 28
		return wrap(UnpackAAAA(msg, off, rdlength))
	case domain.RRTypeSRV: // 33
		return wrap(UnpackSRV(msg, off, rdlength))
	case domain.RRTypeNSEC: // 47
		return wrap(UnpackNSEC(msg, off, rdlength))
	case domain.RRTypeCSYNC: // 62
		return wrap(UnpackCSYNC(msg, off, rdlength))
	case domain.RRTypeCAA: // 257
		return wrap(UnpackCAA(msg, off, rdlength))
	default:
		return wrap(UnpackUnknown(rrType, msg, off, rdlength))
	}
}

// Decode decodes standalone rdata (no surrounding message) to presentation form.
func Decode(rrType domain.RRType, data []byte) (string, error) {
	rd, _, err := Unpack(rrType, data, 0, len(data))
	if err != nil {
		return "", err
	}
	return rd.String(), nil
}

// wrap adapts a concrete unpacker result to the RData interface, keeping a
// nil interface on error.
func wrap[T domain.RData](rd T, n int, err error) (domain.RData, int, error) {
	if err != nil {
		return nil, 0, err
	}
	return rd, n, nil
}
