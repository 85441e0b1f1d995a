package bread

import "fmt"

// Boolean is a FieldFactory for a single-bit boolean field: true=1, false=0.
func Boolean(parent *Struct, opts Options) (Node, error) {
	encode := func(v Value) (*BitBuffer, error) {
		b, ok := v.Bool()
		if !ok {
			return nil, fmt.Errorf("expected a bool value, got %s", v.Kind())
		}
		return EncodeBool(b), nil
	}

	decode := func(bits *BitBuffer) (Value, error) {
		return BoolValue(DecodeBool(bits)), nil
	}

	return newField(1, encode, decode, opts.strFormat()), nil
}
