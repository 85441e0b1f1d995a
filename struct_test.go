package bread

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func headerAndBodySpec() Spec {
	return Spec{
		WithOptions(Options{"endianness": BigEndian}),
		NamedStruct("header", Spec{
			Named("magic", UInt16),
			Named("version", UInt8),
		}),
		Named("payload", UInt8),
	}
}

func TestNestedStructAccessAndOffsets(t *testing.T) {
	s, err := New(headerAndBodySpec(), "framed", []byte{0xCA, 0xFE, 0x01, 0x42})
	require.NoError(t, err)

	header, err := s.Get("header")
	require.NoError(t, err)
	h, ok := header.(*Struct)
	require.True(t, ok)

	magic, err := h.Get("magic")
	require.NoError(t, err)
	mu, _ := magic.(Value).Uint()
	require.Equal(t, uint64(0xCAFE), mu)

	version, err := h.Get("version")
	require.NoError(t, err)
	vu, _ := version.(Value).Uint()
	require.Equal(t, uint64(1), vu)

	offsets := h.Offsets()
	require.Equal(t, uint64(0), offsets["magic"])
	require.Equal(t, uint64(16), offsets["version"])

	payload, err := s.Get("payload")
	require.NoError(t, err)
	pu, _ := payload.(Value).Uint()
	require.Equal(t, uint64(0x42), pu)
}

func TestStructAsNativeAndAsJSON(t *testing.T) {
	s, err := New(headerAndBodySpec(), "framed", []byte{0xCA, 0xFE, 0x01, 0x42})
	require.NoError(t, err)

	native, err := s.AsNative()
	require.NoError(t, err)
	m, ok := native.Map()
	require.True(t, ok)

	headerVal, ok := m["header"]
	require.True(t, ok)
	headerMap, ok := headerVal.Map()
	require.True(t, ok)
	magic, _ := headerMap["magic"].Uint()
	require.Equal(t, uint64(0xCAFE), magic)

	j, err := s.AsJSON()
	require.NoError(t, err)
	require.Contains(t, string(j), "\"payload\":66")
}

func TestUnknownFieldNameErrors(t *testing.T) {
	s, err := New(headerAndBodySpec(), "framed", []byte{0xCA, 0xFE, 0x01, 0x42})
	require.NoError(t, err)

	_, err = s.Get("nonexistent")
	require.Error(t, err)
	_, isUnknown := err.(*UnknownFieldError)
	require.True(t, isUnknown)
}

func TestSetOnNestedStructIsRejected(t *testing.T) {
	s, err := New(headerAndBodySpec(), "framed", []byte{0xCA, 0xFE, 0x01, 0x42})
	require.NoError(t, err)

	err = s.Set("header", 1)
	require.Error(t, err)
}

func TestStructStringRendersLabeledFields(t *testing.T) {
	s, err := New(headerAndBodySpec(), "framed", []byte{0xCA, 0xFE, 0x01, 0x42})
	require.NoError(t, err)

	out := s.String()
	require.Contains(t, out, "payload: 66")
	require.Contains(t, out, "header:")
}

func TestStructEqualComparesContent(t *testing.T) {
	a, err := New(headerAndBodySpec(), "framed", []byte{0xCA, 0xFE, 0x01, 0x42})
	require.NoError(t, err)
	b, err := New(headerAndBodySpec(), "framed", []byte{0xCA, 0xFE, 0x01, 0x42})
	require.NoError(t, err)
	require.True(t, a.Equal(b))

	require.NoError(t, b.Set("payload", 0))
	require.False(t, a.Equal(b))
}
