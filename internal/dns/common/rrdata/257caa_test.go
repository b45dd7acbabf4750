package rrdata

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCAA(t *testing.T) {
	rec, err := ParseCAA([]string{"128", "iodef", `"mailto:security@example.com"`})
	require.NoError(t, err)
	assert.True(t, rec.Critical())
	assert.Equal(t, "iodef", rec.Tag())
	assert.Equal(t, "mailto:security@example.com", rec.Value())
	assert.Equal(t, `128 iodef "mailto:security@example.com"`, rec.String())

	_, err = ParseCAA([]string{"0", "issue"})
	assert.True(t, errors.Is(err, ErrTooFewTokens))
	_, err = ParseCAA([]string{"256", "issue", "ca.example"})
	assert.True(t, errors.Is(err, ErrInvalidField))
}

func TestCAA_PackUnpack(t *testing.T) {
	rec, err := ParseCAA([]string{"0", "issue", `"letsencrypt.org"`})
	require.NoError(t, err)
	out, n, err := rec.Pack(nil)
	require.NoError(t, err)
	assert.Equal(t, append([]byte{0, 5, 'i', 's', 's', 'u', 'e'}, "letsencrypt.org"...), out)

	back, consumed, err := UnpackCAA(out, 0, n)
	require.NoError(t, err)
	assert.Equal(t, n, consumed)
	assert.Equal(t, rec, back)
	assert.False(t, back.Critical())
}

func TestUnpackCAA_Errors(t *testing.T) {
	_, _, err := UnpackCAA([]byte{0}, 0, 1)
	assert.True(t, errors.Is(err, ErrShortRData))

	_, _, err = UnpackCAA([]byte{0, 9, 'a'}, 0, 3)
	assert.True(t, errors.Is(err, ErrTruncated))
}
