package re2

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stringer struct{}

func (stringer) String() string { return "from String" }

type marshaler struct{}

func (marshaler) MarshalText() ([]byte, error) { return []byte("from MarshalText"), nil }

func TestCoerce(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{"text", "text"},
		{[]byte("bytes"), "bytes"},
		{stringer{}, "from String"},
		{marshaler{}, "from MarshalText"},
		{AnchorBoth, "anchor_both"},
	}
	for _, tt := range tests {
		got, err := Coerce(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, string(got))
	}
}

func TestCoerce_TypeError(t *testing.T) {
	_, err := Coerce(42)
	var terr *TypeError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, "no implicit conversion of int into String", terr.Error())

	_, err = Coerce(nil)
	assert.ErrorAs(t, err, &terr)
}
