package bread

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBitBufferSliceOverwriteRoundTrip(t *testing.T) {
	buf := NewBitBuffer([]byte{0xAF, 0xB0})

	slice, err := buf.Slice(4, 12)
	require.NoError(t, err)
	require.Equal(t, uint64(8), slice.Len())
	require.Equal(t, uint64(0xFB), DecodeUint(slice, BigEndian))

	replacement, err := EncodeUint(0x5A, 8, BigEndian)
	require.NoError(t, err)
	require.NoError(t, buf.Overwrite(replacement, 4))

	require.Equal(t, []byte{0xA5, 0xA0}, buf.Bytes())
}

func TestBitBufferSliceOutOfRange(t *testing.T) {
	buf := NewBitBuffer([]byte{0x00})
	_, err := buf.Slice(0, 9)
	require.Error(t, err)
}

func TestBitBufferBytesRoundsUpAndZeroPads(t *testing.T) {
	buf := NewZeroBitBuffer(10)
	full, err := EncodeUint(0b1101010111, 10, BigEndian)
	require.NoError(t, err)
	require.NoError(t, buf.Overwrite(full, 0))

	// 10 bits -> 2 bytes, with the last 6 bits of the second byte zeroed.
	require.Equal(t, []byte{0xD5, 0xC0}, buf.Bytes())
}

func TestEncodeDecodeUintEndianness(t *testing.T) {
	big, err := EncodeUint(0x0123, 16, BigEndian)
	require.NoError(t, err)
	require.Equal(t, []byte{0x01, 0x23}, big.Bytes())
	require.Equal(t, uint64(0x0123), DecodeUint(big, BigEndian))

	little, err := EncodeUint(0x0123, 16, LittleEndian)
	require.NoError(t, err)
	require.Equal(t, []byte{0x23, 0x01}, little.Bytes())
	require.Equal(t, uint64(0x0123), DecodeUint(little, LittleEndian))
}

func TestEncodeUintOverflow(t *testing.T) {
	_, err := EncodeUint(256, 8, BigEndian)
	require.Error(t, err)
}

func TestEncodeDecodeSignedTwosComplement(t *testing.T) {
	enc, err := EncodeInt(-57, 8, BigEndian)
	require.NoError(t, err)
	require.Equal(t, []byte{0xC7}, enc.Bytes())
	require.Equal(t, int64(-57), DecodeInt(enc, BigEndian))
}

func TestSignedRangeCheck(t *testing.T) {
	_, err := EncodeInt(128, 8, BigEndian)
	require.Error(t, err)

	_, err = EncodeInt(-129, 8, BigEndian)
	require.Error(t, err)
}

func TestNonByteAlignedWidthIgnoresEndianness(t *testing.T) {
	// intX(10) over D5 EA: MSB-first regardless of endianness option.
	buf := NewBitBuffer([]byte{0xD5, 0xEA})
	slice, err := buf.Slice(0, 10)
	require.NoError(t, err)

	require.Equal(t, uint64(0b1101010111), DecodeUint(slice, LittleEndian))
	require.Equal(t, uint64(0b1101010111), DecodeUint(slice, BigEndian))
}
