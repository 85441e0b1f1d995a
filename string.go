package bread

import (
	"fmt"
	"unicode/utf8"
)

// String returns a FieldFactory for a fixed-width, UTF-8 encoded string
// field of exactly length bytes. Setting a string whose encoded length
// differs from length is a SchemaError -- this package never truncates or
// zero-pads a mismatched string on encode.
func String(length uint64) FieldFactory {
	return func(parent *Struct, opts Options) (Node, error) {
		lengthInBits := length * 8

		encode := func(v Value) (*BitBuffer, error) {
			var raw []byte

			switch v.Kind() {
			case KindString:
				s, _ := v.String_()
				if !utf8.ValidString(s) {
					return nil, fmt.Errorf("value is not valid utf-8")
				}
				raw = []byte(s)
			case KindBytes:
				b, _ := v.Bytes()
				raw = b
			default:
				return nil, fmt.Errorf("expected a string value, got %s", v.Kind())
			}

			if uint64(len(raw)) != length {
				return nil, fmt.Errorf("encoded length %d does not match string field length %d", len(raw), length)
			}

			return EncodeBytes(raw), nil
		}

		decode := func(bits *BitBuffer) (Value, error) {
			raw := bits.Bytes()
			if !utf8.Valid(raw) {
				return Value{}, fmt.Errorf("field contents are not valid utf-8")
			}
			return StringValue(string(raw)), nil
		}

		return newField(lengthInBits, encode, decode, opts.strFormat()), nil
	}
}
