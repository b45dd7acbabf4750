package wire

import (
	"errors"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haukened/rr-codec/internal/dns/common/log"
	"github.com/haukened/rr-codec/internal/dns/common/rrdata"
	"github.com/haukened/rr-codec/internal/dns/common/utils"
	"github.com/haukened/rr-codec/internal/dns/domain"
)

func mustRecord(t *testing.T, name string, ttl uint32, data domain.RData) domain.ResourceRecord {
	t.Helper()
	rr, err := domain.NewResourceRecord(name, domain.RRClassIN, ttl, data)
	require.NoError(t, err)
	return rr
}

func newTestCodec() *MessageCodec {
	return NewMessageCodec(log.NewNoopLogger())
}

func TestEncode_CSYNCAnswerBytes(t *testing.T) {
	q, err := domain.NewQuestion("example.com.", domain.RRTypeCSYNC, domain.RRClassIN)
	require.NoError(t, err)
	answer := mustRecord(t, "Example.COM", 300, rrdata.NewCSYNC(66, 3, []string{"A", "NS", "AAAA"}))

	got, err := newTestCodec().Encode(NewResponse(0x1234, q, domain.RCodeNoError, []domain.ResourceRecord{answer}))
	require.NoError(t, err)

	want := []byte{
		0x12, 0x34, 0x84, 0x00, 0x00, 0x01, 0x00, 0x01, 0x00, 0x00, 0x00, 0x00,
		7, 'e', 'x', 'a', 'm', 'p', 'l', 'e', 3, 'c', 'o', 'm', 0, 0x00, 0x3E, 0x00, 0x01,
		0xC0, 0x0C, 0x00, 0x3E, 0x00, 0x01, 0x00, 0x00, 0x01, 0x2C, 0x00, 0x0C,
		0x00, 0x00, 0x00, 0x42, 0x00, 0x03, 0x00, 0x04, 0x60, 0x00, 0x00, 0x08,
	}
	assert.Equal(t, want, got)
}

func TestMessage_RoundTrip(t *testing.T) {
	a, err := rrdata.NewA(net.ParseIP("192.0.2.10"))
	require.NoError(t, err)
	ns, err := rrdata.NewNS("ns1.example.com.")
	require.NoError(t, err)

	q, err := domain.NewQuestion("example.com.", domain.RRTypeCSYNC, domain.RRClassIN)
	require.NoError(t, err)
	in := Message{
		Header: Header{ID: 42, Response: true, Authoritative: true, RecursionDesired: true, RCode: domain.RCodeNoError},
		Questions: []domain.Question{q},
		Answers: []domain.ResourceRecord{
			mustRecord(t, "example.com.", 3600, rrdata.NewCSYNC(2021070101, 3, []string{"ns", "aaaa"})),
		},
		Authority: []domain.ResourceRecord{
			mustRecord(t, "example.com.", 3600, ns),
			mustRecord(t, "a.example.com.", 600, rrdata.NewNSEC("b.example.com.", []string{"A", "RRSIG", "NSEC", "CSYNC"})),
		},
		Additional: []domain.ResourceRecord{
			mustRecord(t, "ns1.example.com.", 60, a),
		},
	}

	codec := newTestCodec()
	wire, err := codec.Encode(in)
	require.NoError(t, err)

	out, err := codec.Decode(wire)
	require.NoError(t, err)

	assert.Equal(t, in.Header, out.Header)
	assert.Equal(t, in.Questions, out.Questions)

	render := func(rrs []domain.ResourceRecord) []string {
		var lines []string
		for _, rr := range rrs {
			lines = append(lines, rr.String())
		}
		return lines
	}
	assert.Equal(t, []string{"example.com.\t3600\tIN\tCSYNC\t2021070101 3 NS AAAA"}, render(out.Answers))
	assert.Equal(t, []string{
		"example.com.\t3600\tIN\tNS\tns1.example.com.",
		"a.example.com.\t600\tIN\tNSEC\tb.example.com. A RRSIG NSEC CSYNC",
	}, render(out.Authority))
	assert.Equal(t, render(in.Additional), render(out.Additional))

	csync, ok := out.Answers[0].Data.(rrdata.CSYNC)
	require.True(t, ok)
	assert.Equal(t, uint32(2021070101), csync.Serial())
	assert.True(t, csync.Immediate())
	assert.True(t, csync.SOAMinimum())
}

func TestHeader_Flags(t *testing.T) {
	tests := []struct {
		name string
		h    Header
		want uint16
	}{
		{"query with RD", Header{RecursionDesired: true}, 0x0100},
		{"recursive response", Header{Response: true, RecursionDesired: true, RecursionAvailable: true}, 0x8180},
		{"authoritative NXDOMAIN", Header{Response: true, Authoritative: true, RCode: domain.RCodeNXDomain}, 0x8403},
		{"truncated notify", Header{Opcode: 4, Truncated: true}, 0x2200},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.h.flags())
			assert.Equal(t, tt.h, headerFromFlags(0, tt.want))
		})
	}
}

func TestEncode_Errors(t *testing.T) {
	q := domain.Question{Name: "example.com.", Type: domain.RRTypeCSYNC, Class: domain.RRClassIN}
	codec := newTestCodec()

	t.Run("unknown bitmap mnemonic", func(t *testing.T) {
		rr := domain.ResourceRecord{Name: "example.com.", Type: domain.RRTypeCSYNC, Class: domain.RRClassIN, TTL: 1,
			Data: rrdata.NewCSYNC(1, 0, []string{"NOPE"})}
		_, err := codec.Encode(Message{Questions: []domain.Question{q}, Answers: []domain.ResourceRecord{rr}})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "answer record 0")
	})

	t.Run("missing rdata", func(t *testing.T) {
		rr := domain.ResourceRecord{Name: "example.com.", Type: domain.RRTypeA, Class: domain.RRClassIN}
		_, err := codec.Encode(Message{Authority: []domain.ResourceRecord{rr}})
		assert.True(t, errors.Is(err, ErrMissingRData))
	})

	t.Run("type does not match rdata", func(t *testing.T) {
		rr := domain.ResourceRecord{Name: "example.com.", Type: domain.RRTypeNSEC, Class: domain.RRClassIN,
			Data: rrdata.NewCSYNC(1, 0, nil)}
		_, err := codec.Encode(Message{Additional: []domain.ResourceRecord{rr}})
		assert.True(t, errors.Is(err, ErrTypeMismatch))
	})

	t.Run("bad question name", func(t *testing.T) {
		bad := domain.Question{Name: "a..b.", Type: domain.RRTypeA, Class: domain.RRClassIN}
		_, err := codec.Encode(Message{Questions: []domain.Question{bad}})
		assert.True(t, errors.Is(err, utils.ErrEmptyLabel))
	})
}

func TestDecode_Errors(t *testing.T) {
	header := func(an uint16) []byte {
		return []byte{0, 1, 0x84, 0, 0, 0, byte(an >> 8), byte(an), 0, 0, 0, 0}
	}
	csyncOwner := []byte{7, 'e', 'x', 'a', 'm', 'p', 'l', 'e', 0, 0x00, 0x3E, 0x00, 0x01, 0, 0, 0, 60}

	tests := []struct {
		name    string
		data    []byte
		wantErr error
	}{
		{"short header", []byte{0, 1, 2}, ErrShortMessage},
		{"question cut short", append([]byte{0, 1, 0, 0, 0, 1, 0, 0, 0, 0, 0, 0}, 0, 0, 1), ErrTruncatedQuestion},
		{"record fixed fields cut short", append(header(1), 0, 0, 1), ErrTruncatedRecord},
		{"rdata past end", append(append(header(1), csyncOwner...), 0, 8, 0, 0, 0, 1), ErrTruncatedRecord},
		{"csync rdlength below header", append(append(header(1), csyncOwner...), 0, 2, 0, 0), rrdata.ErrShortRData},
		{"missing answer", header(1), utils.ErrNameTruncated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newTestCodec().Decode(tt.data)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestDecode_FollowsCompressionInRData(t *testing.T) {
	data := []byte{
		0, 7, 0x84, 0, 0, 1, 0, 1, 0, 0, 0, 0,
		7, 'e', 'x', 'a', 'm', 'p', 'l', 'e', 0, 0x00, 0x02, 0x00, 0x01,
		// NS rdata: "ns" + pointer to the question name
		0xC0, 0x0C, 0x00, 0x02, 0x00, 0x01, 0, 0, 0, 10, 0x00, 0x05,
		2, 'n', 's', 0xC0, 0x0C,
	}
	msg, err := newTestCodec().Decode(data)
	require.NoError(t, err)
	require.Len(t, msg.Answers, 1)
	assert.Equal(t, "example.", msg.Answers[0].Name)
	assert.Equal(t, "ns.example.", msg.Answers[0].Data.String())
}

func TestEncodeDecodeRecord(t *testing.T) {
	rr := mustRecord(t, "example.com.", 300, rrdata.NewCSYNC(66, 3, []string{"A", "NS", "AAAA"}))

	b, err := EncodeRecord(rr)
	require.NoError(t, err)
	// owner(13) + fixed(10) + rdata(12), owner never compressed
	assert.Len(t, b, 35)

	back, err := DecodeRecord(b)
	require.NoError(t, err)
	assert.Equal(t, rr.String(), back.String())

	_, err = DecodeRecord(append(b, 0xFF))
	assert.True(t, errors.Is(err, ErrTrailingBytes))

	_, err = EncodeRecord(domain.ResourceRecord{Name: "example.com.", Type: domain.RRTypeA})
	assert.True(t, errors.Is(err, ErrMissingRData))
}

func TestDecode_UnknownTypeKeptOpaque(t *testing.T) {
	rr := mustRecord(t, "example.com.", 5, rrdata.NewUnknown(domain.RRTypeHINFO, []byte{3, 'a', 'b', 'c'}))
	b, err := EncodeRecord(rr)
	require.NoError(t, err)

	back, err := DecodeRecord(b)
	require.NoError(t, err)
	assert.Equal(t, domain.RRTypeHINFO, back.Type)
	assert.Equal(t, `\# 4 03616263`, back.Data.String())
}
