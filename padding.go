package bread

import "fmt"

// Padding returns a FieldFactory for length bits that are never surfaced to
// the caller. Because a padding field is always attached unnamed, the
// public API has no way to reach its Set method; whatever bits already
// occupy its range round-trip untouched, and New zero-fills them like any
// other unwritten region of a fresh buffer.
func Padding(length uint64) FieldFactory {
	return func(parent *Struct, opts Options) (Node, error) {
		encode := func(v Value) (*BitBuffer, error) {
			return nil, fmt.Errorf("padding fields cannot be set")
		}

		decode := func(bits *BitBuffer) (Value, error) {
			return Value{}, nil
		}

		return newField(length, encode, decode, nil), nil
	}
}
