/*
Copyright 2021 Hewlett Packard Enterprise Development LP

Permission is hereby granted, free of charge, to any person obtaining a
copy of this software and associated documentation files (the "Software"),
to deal in the Software without restriction, including without limitation
the rights to use, copy, modify, merge, publish, distribute, sublicense,
and/or sell copies of the Software, and to permit persons to whom the
Software is furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT.

IN NO EVENT SHALL THE AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM,
DAMAGES OR OTHER LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR
OTHERWISE, ARISING FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE
USE OR OTHER DEALINGS IN THE SOFTWARE.
*/

package bread

import (
	"fmt"
	"math/bits"
)

// Endianness selects the byte order used to encode and decode integer
// fields whose width is a multiple of 8 bits and at least 8 bits wide.
// Narrower fields are always packed most-significant-bit first,
// regardless of the declared Endianness.
type Endianness int

const (
	LittleEndian Endianness = iota
	BigEndian
)

/*
BitBuffer is the bit-addressable storage area underlying every Struct.

Bit 0 is the most significant bit of byte 0. BitBuffer owns its backing
byte slice; slicing produces an independent copy, while overwriting mutates
in place -- Fields need random-access overwrite, not just append, since
they rewrite their own bit range after the buffer already holds decoded
neighbors.
*/
type BitBuffer struct {
	data  []byte
	nbits uint64
}

// NewBitBuffer wraps a copy of data as a BitBuffer of exactly len(data)*8 bits.
func NewBitBuffer(data []byte) *BitBuffer {
	cp := make([]byte, len(data))
	copy(cp, data)
	return &BitBuffer{data: cp, nbits: uint64(len(data)) * 8}
}

// NewZeroBitBuffer returns a zero-filled BitBuffer of exactly nbits bits.
func NewZeroBitBuffer(nbits uint64) *BitBuffer {
	return &BitBuffer{data: make([]byte, (nbits+7)/8), nbits: nbits}
}

// Len returns the buffer's length in bits.
func (b *BitBuffer) Len() uint64 {
	return b.nbits
}

func (b *BitBuffer) getBit(i uint64) uint8 {
	byteIdx := i / 8
	bitIdx := 7 - (i % 8)
	return (b.data[byteIdx] >> bitIdx) & 1
}

func (b *BitBuffer) setBit(i uint64, v uint8) {
	byteIdx := i / 8
	bitIdx := 7 - (i % 8)
	if v != 0 {
		b.data[byteIdx] |= 1 << bitIdx
	} else {
		b.data[byteIdx] &^= 1 << bitIdx
	}
}

// Slice returns a new, independent BitBuffer holding bits [start, end).
func (b *BitBuffer) Slice(start, end uint64) (*BitBuffer, error) {
	if end < start {
		return nil, fmt.Errorf("bread: slice end %d precedes start %d", end, start)
	}
	if end > b.nbits {
		return nil, fmt.Errorf("bread: slice [%d:%d) exceeds buffer length %d", start, end, b.nbits)
	}

	out := NewZeroBitBuffer(end - start)
	for i := uint64(0); i < out.nbits; i++ {
		out.setBit(i, b.getBit(start+i))
	}
	return out, nil
}

// Overwrite writes src's bits into the buffer starting at atBitOffset, in place.
func (b *BitBuffer) Overwrite(src *BitBuffer, atBitOffset uint64) error {
	if atBitOffset+src.nbits > b.nbits {
		return fmt.Errorf("bread: overwrite of %d bits at offset %d exceeds buffer length %d",
			src.nbits, atBitOffset, b.nbits)
	}

	for i := uint64(0); i < src.nbits; i++ {
		b.setBit(atBitOffset+i, src.getBit(i))
	}
	return nil
}

// Bytes returns the buffer's bytes truncated to nbits, rounded up to a
// whole byte with the trailing bits of the final byte zeroed.
func (b *BitBuffer) Bytes() []byte {
	nbytes := (b.nbits + 7) / 8
	out := make([]byte, nbytes)
	copy(out, b.data[:nbytes])

	if b.nbits%8 != 0 {
		lastByte := nbytes - 1
		keepBits := b.nbits % 8
		mask := byte(0xFF << (8 - keepBits))
		out[lastByte] &= mask
	}

	return out
}

// Equal reports whether two buffers have the same bit length and hold the same bits.
func (b *BitBuffer) Equal(other *BitBuffer) bool {
	if b.nbits != other.nbits {
		return false
	}
	for i := uint64(0); i < b.nbits; i++ {
		if b.getBit(i) != other.getBit(i) {
			return false
		}
	}
	return true
}

// byteAligned reports whether nbits is eligible for endianness-aware,
// byte-wise packing (a multiple of 8 bits, at least a full byte).
func byteAligned(nbits uint64) bool {
	return nbits >= 8 && nbits%8 == 0
}

// EncodeUint packs value into a BitBuffer of nbits bits, honoring endian
// for widths that are whole multiples of 8 bits and MSB-first otherwise.
func EncodeUint(value uint64, nbits uint64, endian Endianness) (*BitBuffer, error) {
	if nbits < 64 && value>>nbits != 0 {
		return nil, fmt.Errorf("bread: value %d overflows %d-bit unsigned field", value, nbits)
	}

	out := NewZeroBitBuffer(nbits)

	if byteAligned(nbits) {
		v := value
		if endian == LittleEndian {
			v = reverseBytes(value, nbits)
		}
		for i := uint64(0); i < nbits; i++ {
			bitFromTop := nbits - 1 - i
			out.setBit(i, uint8((v>>bitFromTop)&1))
		}
		return out, nil
	}

	for i := uint64(0); i < nbits; i++ {
		bitFromTop := nbits - 1 - i
		out.setBit(i, uint8((value>>bitFromTop)&1))
	}
	return out, nil
}

// DecodeUint reads an unsigned integer out of a bit slice of the given width.
func DecodeUint(bits_ *BitBuffer, endian Endianness) uint64 {
	nbits := bits_.nbits

	var value uint64
	for i := uint64(0); i < nbits; i++ {
		value = (value << 1) | uint64(bits_.getBit(i))
	}

	if byteAligned(nbits) && endian == LittleEndian {
		value = reverseBytes(value, nbits)
	}

	return value
}

// EncodeInt packs a signed value into a BitBuffer of nbits bits using two's complement.
func EncodeInt(value int64, nbits uint64, endian Endianness) (*BitBuffer, error) {
	lo, hi := signedRange(nbits)
	if value < lo || value > hi {
		return nil, fmt.Errorf("bread: value %d out of range [%d,%d] for %d-bit signed field", value, lo, hi, nbits)
	}

	mask := uint64(1)<<nbits - 1
	return EncodeUint(uint64(value)&mask, nbits, endian)
}

// DecodeInt reads a two's-complement signed integer out of a bit slice.
func DecodeInt(bits_ *BitBuffer, endian Endianness) int64 {
	nbits := bits_.nbits
	raw := DecodeUint(bits_, endian)

	signBit := uint64(1) << (nbits - 1)
	if raw&signBit != 0 {
		return int64(raw) - int64(uint64(1)<<nbits)
	}
	return int64(raw)
}

// EncodeBool packs a single boolean bit: true=1, false=0.
func EncodeBool(value bool) *BitBuffer {
	out := NewZeroBitBuffer(1)
	if value {
		out.setBit(0, 1)
	}
	return out
}

// DecodeBool reads a single boolean bit.
func DecodeBool(b *BitBuffer) bool {
	return b.getBit(0) == 1
}

// EncodeBytes wraps raw bytes verbatim as a bit buffer (used by string fields).
func EncodeBytes(value []byte) *BitBuffer {
	return NewBitBuffer(value)
}

func signedRange(nbits uint64) (int64, int64) {
	if nbits >= 64 {
		return -(1 << 63), (1 << 63) - 1
	}
	hi := int64(1)<<(nbits-1) - 1
	lo := -(int64(1) << (nbits - 1))
	return lo, hi
}

// reverseBytes byte-swaps value as an nbits-wide integer (nbits a multiple of 8).
func reverseBytes(value uint64, nbits uint64) uint64 {
	switch nbits {
	case 8:
		return value
	case 16:
		return uint64(bits.ReverseBytes16(uint16(value)))
	case 32:
		return uint64(bits.ReverseBytes32(uint32(value)))
	case 64:
		return bits.ReverseBytes64(value)
	default:
		nbytes := nbits / 8
		var out uint64
		for i := uint64(0); i < nbytes; i++ {
			shift := i * 8
			b := (value >> shift) & 0xFF
			out |= b << ((nbytes - 1 - i) * 8)
		}
		return out
	}
}
