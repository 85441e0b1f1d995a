package bread

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIntXOffsetAdjustsDecodeAndEncode(t *testing.T) {
	// An offset-10 uint8: raw byte 5 decodes to 15, and setting 20 encodes raw 10.
	spec := Spec{
		WithOptions(Options{"endianness": BigEndian}),
		Named("value", IntX(8, false), Options{"endianness": BigEndian, "offset": int64(10)}),
	}

	s, err := New(spec, "withOffset", []byte{5})
	require.NoError(t, err)

	v, err := s.Get("value")
	require.NoError(t, err)
	u, ok := v.(Value).Uint()
	require.True(t, ok)
	require.Equal(t, uint64(15), u)

	require.NoError(t, s.Set("value", 20))
	out, err := Write(s, "")
	require.NoError(t, err)
	require.Equal(t, []byte{10}, out)
}

func TestIntXSignedTwosComplementRoundTrip(t *testing.T) {
	spec := Spec{
		WithOptions(Options{"endianness": BigEndian}),
		Named("value", Int8),
	}

	s, err := New(spec, "signed", []byte{0xC7})
	require.NoError(t, err)

	v, err := s.Get("value")
	require.NoError(t, err)
	i, ok := v.(Value).Int()
	require.True(t, ok)
	require.Equal(t, int64(-57), i)

	require.NoError(t, s.Set("value", int64(-1)))
	out, err := Write(s, "")
	require.NoError(t, err)
	require.Equal(t, []byte{0xFF}, out)
}

func TestIntXNonByteAlignedIgnoresEndianness(t *testing.T) {
	spec := Spec{
		WithOptions(Options{"endianness": LittleEndian}),
		Named("a", IntX(10, false)),
		Named("b", IntX(6, false)),
	}

	s, err := New(spec, "narrow", []byte{0xD5, 0xEA, 0x35})
	require.NoError(t, err)

	a, err := s.Get("a")
	require.NoError(t, err)
	au, _ := a.(Value).Uint()
	require.Equal(t, uint64(0b1101010111), au)

	b, err := s.Get("b")
	require.NoError(t, err)
	bu, _ := b.(Value).Uint()
	require.Equal(t, uint64(0b101010), bu)
}

func TestIntXOverflowRejected(t *testing.T) {
	spec := Spec{
		WithOptions(Options{"endianness": BigEndian}),
		Named("value", UInt8),
	}
	s, err := New(spec, "overflow", []byte{0})
	require.NoError(t, err)

	err = s.Set("value", 256)
	require.Error(t, err)
}
