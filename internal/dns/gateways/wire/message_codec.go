package wire

import (
	"encoding/binary"
	"fmt"

	"github.com/haukened/rr-codec/internal/dns/common/log"
	"github.com/haukened/rr-codec/internal/dns/common/rrdata"
	"github.com/haukened/rr-codec/internal/dns/common/utils"
	"github.com/haukened/rr-codec/internal/dns/domain"
)

// MessageCodec implements Codec for complete DNS messages.
type MessageCodec struct {
	logger log.Logger
}

// NewMessageCodec creates a MessageCodec that traces each step at debug level.
func NewMessageCodec(logger log.Logger) *MessageCodec {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &MessageCodec{logger: logger}
}

// Encode serializes msg. Owner names equal to the first question name are
// written as a pointer to it; all other names are written in full.
func (c *MessageCodec) Encode(msg Message) ([]byte, error) {
	counts := [4]int{len(msg.Questions), len(msg.Answers), len(msg.Authority), len(msg.Additional)}
	for _, n := range counts {
		if n > 0xFFFF {
			return nil, fmt.Errorf("%w: %d", ErrTooManyRecords, n)
		}
	}

	b := make([]byte, headerLen, 512)
	binary.BigEndian.PutUint16(b[0:2], msg.Header.ID)
	binary.BigEndian.PutUint16(b[2:4], msg.Header.flags())
	for i, n := range counts {
		binary.BigEndian.PutUint16(b[4+2*i:], uint16(n))
	}

	c.logger.Debug(map[string]any{
		"step": "header_written",
		"id":   msg.Header.ID,
		"qd":   counts[0],
		"an":   counts[1],
		"ns":   counts[2],
		"ar":   counts[3],
	}, "Wrote DNS message header")

	var err error
	for _, q := range msg.Questions {
		b, err = utils.AppendName(b, q.Name)
		if err != nil {
			return nil, fmt.Errorf("question %s: %w", q.Name, err)
		}
		b = binary.BigEndian.AppendUint16(b, uint16(q.Type))
		b = binary.BigEndian.AppendUint16(b, uint16(q.Class))
	}

	qname := ""
	if len(msg.Questions) > 0 {
		qname = utils.CanonicalDNSName(msg.Questions[0].Name)
	}

	sections := []struct {
		name    string
		records []domain.ResourceRecord
	}{
		{"answer", msg.Answers},
		{"authority", msg.Authority},
		{"additional", msg.Additional},
	}
	for _, s := range sections {
		for i, rr := range s.records {
			b, err = c.appendRecord(b, rr, qname)
			if err != nil {
				return nil, fmt.Errorf("%s record %d: %w", s.name, i, err)
			}
		}
	}

	c.logger.Debug(map[string]any{
		"step": "final_packet",
		"size": len(b),
		"raw":  fmt.Sprintf("%x", b),
	}, "Final encoded DNS message")

	return b, nil
}

// appendRecord writes one resource record. RDLENGTH is reserved first and
// back-filled with the count the rdata codec reports.
func (c *MessageCodec) appendRecord(b []byte, rr domain.ResourceRecord, qname string) ([]byte, error) {
	start := len(b)
	owner := utils.CanonicalDNSName(rr.Name)
	if qname != "" && owner == qname {
		b = append(b, qnamePointer[:]...)
	} else {
		var err error
		if b, err = utils.AppendName(b, rr.Name); err != nil {
			return b, err
		}
	}

	b, n, err := appendRecordBody(b, rr)
	if err != nil {
		return b[:start], err
	}

	c.logger.Debug(map[string]any{
		"step":  "record_written",
		"name":  owner,
		"type":  rr.Type.String(),
		"class": rr.Class.String(),
		"ttl":   rr.TTL,
		"dlen":  n,
	}, "Wrote resource record")
	return b, nil
}

// appendRecordBody writes TYPE, CLASS, TTL, RDLENGTH and RDATA after an
// owner name and reports the rdata length.
func appendRecordBody(b []byte, rr domain.ResourceRecord) ([]byte, int, error) {
	if rr.Data == nil {
		return b, 0, ErrMissingRData
	}
	if rr.Data.Type() != rr.Type {
		return b, 0, fmt.Errorf("%w: %s vs %s", ErrTypeMismatch, rr.Type, rr.Data.Type())
	}
	start := len(b)
	b = binary.BigEndian.AppendUint16(b, uint16(rr.Type))
	b = binary.BigEndian.AppendUint16(b, uint16(rr.Class))
	b = binary.BigEndian.AppendUint32(b, rr.TTL)
	rdlenPos := len(b)
	b = append(b, 0, 0)

	b, n, err := rr.Data.Pack(b)
	if err != nil {
		return b[:start], 0, fmt.Errorf("%s rdata: %w", rr.Type, err)
	}
	if n > 0xFFFF {
		return b[:start], 0, fmt.Errorf("%w: %d", ErrRDataTooLong, n)
	}
	binary.BigEndian.PutUint16(b[rdlenPos:], uint16(n))
	return b, n, nil
}

// Decode parses a complete message. Bytes after the last counted record are ignored.
func (c *MessageCodec) Decode(data []byte) (Message, error) {
	if len(data) < headerLen {
		return Message{}, fmt.Errorf("%w: %d octets", ErrShortMessage, len(data))
	}
	msg := Message{
		Header: headerFromFlags(binary.BigEndian.Uint16(data[0:2]), binary.BigEndian.Uint16(data[2:4])),
	}
	qdCount := int(binary.BigEndian.Uint16(data[4:6]))
	anCount := int(binary.BigEndian.Uint16(data[6:8]))
	nsCount := int(binary.BigEndian.Uint16(data[8:10]))
	arCount := int(binary.BigEndian.Uint16(data[10:12]))

	off := headerLen
	for i := 0; i < qdCount; i++ {
		q, next, err := decodeQuestion(data, off)
		if err != nil {
			return Message{}, fmt.Errorf("question %d: %w", i, err)
		}
		msg.Questions = append(msg.Questions, q)
		off = next
	}

	var err error
	if msg.Answers, off, err = decodeSection(data, off, anCount, "answer"); err != nil {
		return Message{}, err
	}
	if msg.Authority, off, err = decodeSection(data, off, nsCount, "authority"); err != nil {
		return Message{}, err
	}
	if msg.Additional, off, err = decodeSection(data, off, arCount, "additional"); err != nil {
		return Message{}, err
	}

	c.logger.Debug(map[string]any{
		"step":     "message_decoded",
		"id":       msg.Header.ID,
		"rcode":    msg.Header.RCode.String(),
		"qd":       qdCount,
		"an":       anCount,
		"ns":       nsCount,
		"ar":       arCount,
		"trailing": len(data) - off,
	}, "Decoded DNS message")

	return msg, nil
}

func decodeQuestion(data []byte, off int) (domain.Question, int, error) {
	name, next, err := utils.DecodeName(data, off)
	if err != nil {
		return domain.Question{}, 0, err
	}
	if next+4 > len(data) {
		return domain.Question{}, 0, ErrTruncatedQuestion
	}
	return domain.Question{
		Name:  name,
		Type:  domain.RRType(binary.BigEndian.Uint16(data[next : next+2])),
		Class: domain.RRClass(binary.BigEndian.Uint16(data[next+2 : next+4])),
	}, next + 4, nil
}

func decodeSection(data []byte, off, count int, section string) ([]domain.ResourceRecord, int, error) {
	if count == 0 {
		return nil, off, nil
	}
	records := make([]domain.ResourceRecord, 0, count)
	for i := 0; i < count; i++ {
		rr, next, err := decodeRecord(data, off)
		if err != nil {
			return nil, 0, fmt.Errorf("%s record %d: %w", section, i, err)
		}
		records = append(records, rr)
		off = next
	}
	return records, off, nil
}

// decodeRecord reads the record starting at off and returns the offset of
// the next one. The rdata codec must consume exactly RDLENGTH octets.
func decodeRecord(data []byte, off int) (domain.ResourceRecord, int, error) {
	name, off, err := utils.DecodeName(data, off)
	if err != nil {
		return domain.ResourceRecord{}, 0, fmt.Errorf("owner name: %w", err)
	}
	if off+10 > len(data) {
		return domain.ResourceRecord{}, 0, ErrTruncatedRecord
	}
	rrtype := domain.RRType(binary.BigEndian.Uint16(data[off : off+2]))
	class := domain.RRClass(binary.BigEndian.Uint16(data[off+2 : off+4]))
	ttl := binary.BigEndian.Uint32(data[off+4 : off+8])
	rdlength := int(binary.BigEndian.Uint16(data[off+8 : off+10]))
	off += 10
	if off+rdlength > len(data) {
		return domain.ResourceRecord{}, 0, fmt.Errorf("%w: rdata of %d octets at offset %d", ErrTruncatedRecord, rdlength, off)
	}

	rd, n, err := rrdata.Unpack(rrtype, data, off, rdlength)
	if err != nil {
		return domain.ResourceRecord{}, 0, fmt.Errorf("%s rdata: %w", rrtype, err)
	}
	if n != rdlength {
		return domain.ResourceRecord{}, 0, fmt.Errorf("%w: %s consumed %d of %d octets", ErrRDataLength, rrtype, n, rdlength)
	}

	return domain.ResourceRecord{
		Name:  name,
		Type:  rrtype,
		Class: class,
		TTL:   ttl,
		Data:  rd,
	}, off + rdlength, nil
}

// EncodeRecord renders a single record with an uncompressed owner name.
func EncodeRecord(rr domain.ResourceRecord) ([]byte, error) {
	b, err := utils.AppendName(nil, rr.Name)
	if err != nil {
		return nil, err
	}
	b, _, err = appendRecordBody(b, rr)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// DecodeRecord parses a buffer produced by EncodeRecord. The buffer must hold
// exactly one record.
func DecodeRecord(data []byte) (domain.ResourceRecord, error) {
	rr, next, err := decodeRecord(data, 0)
	if err != nil {
		return domain.ResourceRecord{}, err
	}
	if next != len(data) {
		return domain.ResourceRecord{}, fmt.Errorf("%w: %d octets", ErrTrailingBytes, len(data)-next)
	}
	return rr, nil
}

var _ Codec = &MessageCodec{}
