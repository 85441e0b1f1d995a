package bread

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func byteArraySpec() Spec {
	return Spec{
		WithOptions(Options{"endianness": BigEndian}),
		Named("values", ArrayOf(4, UInt8)),
	}
}

func TestArraySetAllAndSlice(t *testing.T) {
	s, err := New(byteArraySpec(), "bytes4", []byte{1, 2, 3, 4})
	require.NoError(t, err)

	values, err := s.Get("values")
	require.NoError(t, err)
	arr := values.(*Array)
	require.Equal(t, 4, arr.Len())

	require.NoError(t, s.Set("values", []any{10, 20, 30, 40}))

	out, err := Write(s, "")
	require.NoError(t, err)
	require.Equal(t, []byte{10, 20, 30, 40}, out)

	slice, err := arr.Slice(1, 3, 1)
	require.NoError(t, err)
	require.Len(t, slice, 2)
	v0, _ := slice[0].(Value).Uint()
	v1, _ := slice[1].(Value).Uint()
	require.Equal(t, uint64(20), v0)
	require.Equal(t, uint64(30), v1)
}

func TestArraySetAllWrongLengthRejected(t *testing.T) {
	s, err := New(byteArraySpec(), "bytes4", []byte{1, 2, 3, 4})
	require.NoError(t, err)

	err = s.Set("values", []any{1, 2, 3})
	require.Error(t, err)
}

func TestArrayOfStructsItemAccess(t *testing.T) {
	spec := Spec{
		WithOptions(Options{"endianness": BigEndian}),
		Named("pairs", ArrayOf(2, Spec{
			Named("a", UInt8),
			Named("b", UInt8),
		})),
	}

	s, err := New(spec, "pairs", []byte{1, 2, 3, 4})
	require.NoError(t, err)

	pairs, err := s.Get("pairs")
	require.NoError(t, err)
	arr := pairs.(*Array)

	first, err := arr.Get(0)
	require.NoError(t, err)
	firstStruct := first.(*Struct)
	a, err := firstStruct.Get("a")
	require.NoError(t, err)
	au, _ := a.(Value).Uint()
	require.Equal(t, uint64(1), au)

	second, err := arr.Get(1)
	require.NoError(t, err)
	secondStruct := second.(*Struct)
	b, err := secondStruct.Get("b")
	require.NoError(t, err)
	bu, _ := b.(Value).Uint()
	require.Equal(t, uint64(4), bu)
}

func TestArrayEqual(t *testing.T) {
	a, err := New(byteArraySpec(), "bytes4", []byte{1, 2, 3, 4})
	require.NoError(t, err)
	b, err := New(byteArraySpec(), "bytes4", []byte{1, 2, 3, 4})
	require.NoError(t, err)

	av, _ := a.Get("values")
	bv, _ := b.Get("values")
	require.True(t, av.(*Array).Equal(bv.(*Array)))

	require.NoError(t, b.Set("values", []any{9, 2, 3, 4}))
	bv2, _ := b.Get("values")
	require.False(t, av.(*Array).Equal(bv2.(*Array)))
}
