// Package wire encodes and decodes DNS messages in the RFC 1035 wire format.
// Record data is delegated to the rrdata codecs; this package owns the
// message cursor and the RDLENGTH framing around each record.
package wire

import (
	"errors"

	"github.com/haukened/rr-codec/internal/dns/domain"
)

const headerLen = 12

// qnamePointer is a compression pointer to the first question name, which
// always starts right after the header.
var qnamePointer = [2]byte{0xC0, headerLen}

var (
	ErrShortMessage      = errors.New("message shorter than header")
	ErrTruncatedQuestion = errors.New("truncated question")
	ErrTruncatedRecord   = errors.New("truncated record")
	ErrRDataLength       = errors.New("rdata length mismatch")
	ErrRDataTooLong      = errors.New("rdata longer than 65535 octets")
	ErrTooManyRecords    = errors.New("section holds more than 65535 entries")
	ErrMissingRData      = errors.New("record has no rdata")
	ErrTypeMismatch      = errors.New("record type does not match rdata")
	ErrTrailingBytes     = errors.New("trailing bytes after record")
)

// Codec converts between Message values and their wire encoding.
type Codec interface {
	Encode(msg Message) ([]byte, error)
	Decode(data []byte) (Message, error)
}

// Header is the fixed twelve-octet message header minus the section counts,
// which are derived from the Message itself.
type Header struct {
	ID                 uint16
	Response           bool
	Opcode             uint8
	Authoritative      bool
	Truncated          bool
	RecursionDesired   bool
	RecursionAvailable bool
	RCode              domain.RCode
}

// Message is a decoded DNS message.
type Message struct {
	Header     Header
	Questions  []domain.Question
	Answers    []domain.ResourceRecord
	Authority  []domain.ResourceRecord
	Additional []domain.ResourceRecord
}

// NewResponse builds an authoritative response to q carrying answers.
func NewResponse(id uint16, q domain.Question, rcode domain.RCode, answers []domain.ResourceRecord) Message {
	return Message{
		Header: Header{
			ID:            id,
			Response:      true,
			Authoritative: true,
			RCode:         rcode,
		},
		Questions: []domain.Question{q},
		Answers:   answers,
	}
}

func (h Header) flags() uint16 {
	var f uint16
	if h.Response {
		f |= 1 << 15
	}
	f |= uint16(h.Opcode&0x0F) << 11
	if h.Authoritative {
		f |= 1 << 10
	}
	if h.Truncated {
		f |= 1 << 9
	}
	if h.RecursionDesired {
		f |= 1 << 8
	}
	if h.RecursionAvailable {
		f |= 1 << 7
	}
	f |= uint16(h.RCode) & 0x0F
	return f
}

func headerFromFlags(id, f uint16) Header {
	return Header{
		ID:                 id,
		Response:           f&(1<<15) != 0,
		Opcode:             uint8(f>>11) & 0x0F,
		Authoritative:      f&(1<<10) != 0,
		Truncated:          f&(1<<9) != 0,
		RecursionDesired:   f&(1<<8) != 0,
		RecursionAvailable: f&(1<<7) != 0,
		RCode:              domain.RCode(f & 0x0F),
	}
}
