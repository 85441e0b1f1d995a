package bread

import "fmt"

// IntX returns a FieldFactory for an integer field of the given bit length.
// Widths that are a multiple of 8 bits and at least 8 bits wide honor the
// active endianness option; narrower widths are always packed MSB-first.
// An active "offset" option is added on decode and subtracted on encode,
// applied uniformly to every intX field regardless of width or sign.
func IntX(length uint64, signed bool) FieldFactory {
	return func(parent *Struct, opts Options) (Node, error) {
		endian := opts.endianness()
		off := opts.offset()

		encode := func(v Value) (*BitBuffer, error) {
			if signed {
				raw, ok := v.Int()
				if !ok {
					u, ok2 := v.Uint()
					if !ok2 {
						return nil, fmt.Errorf("expected an integer value, got %s", v.Kind())
					}
					raw = int64(u)
				}
				return EncodeInt(raw-off, length, endian)
			}

			raw, ok := v.Uint()
			if !ok {
				i, ok2 := v.Int()
				if !ok2 {
					return nil, fmt.Errorf("expected an integer value, got %s", v.Kind())
				}
				raw = uint64(i)
			}
			adjusted := int64(raw) - off
			if adjusted < 0 {
				return nil, fmt.Errorf("value %d underflows unsigned field after subtracting offset %d", raw, off)
			}
			return EncodeUint(uint64(adjusted), length, endian)
		}

		decode := func(bits *BitBuffer) (Value, error) {
			if signed {
				return IntValue(DecodeInt(bits, endian) + off), nil
			}
			return UintValue(uint64(int64(DecodeUint(bits, endian)) + off)), nil
		}

		return newField(length, encode, decode, opts.strFormat()), nil
	}
}

var (
	UInt8  = IntX(8, false)
	Byte   = UInt8
	UInt16 = IntX(16, false)
	UInt32 = IntX(32, false)
	UInt64 = IntX(64, false)

	Int8  = IntX(8, true)
	Int16 = IntX(16, true)
	Int32 = IntX(32, true)
	Int64 = IntX(64, true)

	Bit        = IntX(1, false)
	SemiNibble = IntX(2, false)
	Nibble     = IntX(4, false)
)
