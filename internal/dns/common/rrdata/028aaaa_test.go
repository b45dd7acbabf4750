package rrdata

import (
	"errors"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAAAA(t *testing.T) {
	rec, err := ParseAAAA([]string{"2001:db8::ff00:42:8329"})
	require.NoError(t, err)
	wire, n, err := rec.Pack(nil)
	require.NoError(t, err)
	assert.Equal(t, 16, n)
	assert.Equal(t, net.ParseIP("2001:db8::ff00:42:8329").To16(), net.IP(wire))
	assert.Equal(t, "2001:db8::ff00:42:8329", rec.String())
}

func TestParseAAAA_Invalid(t *testing.T) {
	for _, tokens := range [][]string{{"192.0.2.1"}, {"::ffff:192.0.2.1"}, {"nope"}, {}, {"::1", "::2"}} {
		_, err := ParseAAAA(tokens)
		assert.Error(t, err, "tokens %v", tokens)
	}
}

func TestUnpackAAAA(t *testing.T) {
	wire := net.ParseIP("2001:db8::1").To16()
	rec, n, err := UnpackAAAA(wire, 0, 16)
	require.NoError(t, err)
	assert.Equal(t, 16, n)
	assert.Equal(t, "2001:db8::1", rec.String())

	_, _, err = UnpackAAAA(wire, 0, 4)
	assert.True(t, errors.Is(err, ErrShortRData))
}

func TestNewAAAA(t *testing.T) {
	_, err := NewAAAA(net.ParseIP("192.0.2.1"))
	assert.Error(t, err)

	rec, err := NewAAAA(net.ParseIP("::1"))
	require.NoError(t, err)
	assert.Equal(t, "::1", rec.String())
	assert.Len(t, rec.Addr(), 16)
}
