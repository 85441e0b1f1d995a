package bread

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStringFieldDecodeAndRoundTrip(t *testing.T) {
	spec := Spec{
		WithOptions(Options{"endianness": BigEndian}),
		Named("greeting", String(5)),
	}

	s, err := New(spec, "greeting", []byte("howdy"))
	require.NoError(t, err)

	v, err := s.Get("greeting")
	require.NoError(t, err)
	str, ok := v.(Value).String_()
	require.True(t, ok)
	require.Equal(t, "howdy", str)

	require.NoError(t, s.Set("greeting", "adieu"))
	out, err := Write(s, "")
	require.NoError(t, err)
	require.Equal(t, []byte("adieu"), out)
}

func TestStringFieldRejectsLengthMismatch(t *testing.T) {
	spec := Spec{
		WithOptions(Options{"endianness": BigEndian}),
		Named("greeting", String(5)),
	}

	s, err := New(spec, "greeting", []byte("howdy"))
	require.NoError(t, err)

	err = s.Set("greeting", "hi")
	require.Error(t, err)
}

func TestPaddingCannotBeSet(t *testing.T) {
	spec := Spec{
		WithOptions(Options{"endianness": BigEndian}),
		Unnamed(Padding(8)),
		Named("value", UInt8),
	}

	s, err := New(spec, "padded", []byte{0xFF, 0x01})
	require.NoError(t, err)

	value, err := s.Get("value")
	require.NoError(t, err)
	u, _ := value.(Value).Uint()
	require.Equal(t, uint64(1), u)

	err = s.Set("_unnamed_0", 0)
	require.Error(t, err)

	out, err := Write(s, "")
	require.NoError(t, err)
	require.Equal(t, []byte{0xFF, 0x01}, out)
}
