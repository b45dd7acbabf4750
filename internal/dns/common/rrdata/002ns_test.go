package rrdata

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haukened/rr-codec/internal/dns/common/utils"
	"github.com/haukened/rr-codec/internal/dns/domain"
)

var nsWire = []byte{2, 'n', 's', 7, 'e', 'x', 'a', 'm', 'p', 'l', 'e', 3, 'c', 'o', 'm', 0}

func TestParseNS(t *testing.T) {
	rec, err := ParseNS([]string{"NS.Example.com"})
	require.NoError(t, err)
	assert.Equal(t, "ns.example.com.", rec.Host())
	assert.Equal(t, "ns.example.com.", rec.String())

	wire, n, err := rec.Pack(nil)
	require.NoError(t, err)
	assert.Equal(t, nsWire, wire)
	assert.Equal(t, len(nsWire), n)
}

func TestParseNS_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		tokens  []string
		wantErr error
	}{
		{"no tokens", nil, ErrTooFewTokens},
		{"two tokens", []string{"a.", "b."}, ErrTooManyTokens},
		{"label too long", []string{strings.Repeat("a", 64) + ".com"}, ErrInvalidField},
		{"empty label", []string{"a..com"}, ErrInvalidField},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseNS(tt.tokens)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestUnpackNS_Compressed(t *testing.T) {
	// example.com. at 0, NS rdata "ns" + pointer to 0 at 13
	msg := []byte{7, 'e', 'x', 'a', 'm', 'p', 'l', 'e', 3, 'c', 'o', 'm', 0, 2, 'n', 's', 0xC0, 0x00}
	rec, n, err := UnpackNS(msg, 13, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, "ns.example.com.", rec.Host())
}

func TestUnpackNS_Errors(t *testing.T) {
	_, _, err := UnpackNS(nsWire, 0, 0)
	assert.True(t, errors.Is(err, ErrShortRData))

	_, _, err = UnpackNS(append(append([]byte{}, nsWire...), 0xFF), 0, len(nsWire)+1)
	assert.True(t, errors.Is(err, ErrTrailingData))

	// name runs past the declared rdlength
	_, _, err = UnpackNS(nsWire, 0, 8)
	assert.True(t, errors.Is(err, utils.ErrNameTruncated))
}

func TestNameTargets(t *testing.T) {
	cname, err := NewCNAME("alias.example.com")
	require.NoError(t, err)
	assert.Equal(t, domain.RRTypeCNAME, cname.Type())
	assert.Equal(t, "alias.example.com.", cname.Target())

	ptr, err := ParsePTR([]string{"host.example.com."})
	require.NoError(t, err)
	assert.Equal(t, domain.RRTypePTR, ptr.Type())

	wire, _, err := ptr.Pack(nil)
	require.NoError(t, err)
	back, _, err := UnpackPTR(wire, 0, len(wire))
	require.NoError(t, err)
	assert.Equal(t, ptr, back)

	cwire, _, err := cname.Pack(nil)
	require.NoError(t, err)
	cback, _, err := UnpackCNAME(cwire, 0, len(cwire))
	require.NoError(t, err)
	assert.Equal(t, cname, cback)

	_, err = NewNS("")
	assert.Error(t, err)
}
