package bread

// Options is a merged options mapping, carried from a spec's global
// WithOptions declaration down to each field factory, with per-field
// overrides layered on top. Recognized keys are "endianness" (Endianness),
// "offset" (int64) and "str_format" (func(Value) string); unrecognized
// keys are ignored, so callers may stash their own metadata.
type Options map[string]any

func (o Options) merge(local Options) Options {
	merged := make(Options, len(o)+len(local))
	for k, v := range o {
		merged[k] = v
	}
	for k, v := range local {
		merged[k] = v
	}
	return merged
}

func (o Options) endianness() Endianness {
	if v, ok := o["endianness"]; ok {
		if e, ok := v.(Endianness); ok {
			return e
		}
	}
	return LittleEndian
}

func (o Options) offset() int64 {
	if v, ok := o["offset"]; ok {
		switch x := v.(type) {
		case int64:
			return x
		case int:
			return int64(x)
		}
	}
	return 0
}

func (o Options) strFormat() func(Value) string {
	if v, ok := o["str_format"]; ok {
		if f, ok := v.(func(Value) string); ok {
			return f
		}
	}
	return nil
}

// FieldFactory is a deferred field constructor: given the enclosing struct
// and a merged Options map, it returns the Node to attach under a spec
// line's name (or anonymously, for unnamed lines).
type FieldFactory func(parent *Struct, opts Options) (Node, error)

// Node is implemented by every kind of child a Struct can hold: Field,
// Array, Struct (nested), and Conditional.
type Node interface {
	// Length reports the node's current length in bits.
	Length() uint64

	// MinLength reports the smallest length the node could ever report
	// (used by New/Parse to reject too-short input before binding offsets).
	MinLength() uint64

	// Offset reports the node's currently assigned absolute bit offset.
	Offset() uint64

	setOffset(offset uint64)
	bindBuffer(buf *BitBuffer)
}

// Gettable is implemented by leaf nodes that project directly to a Value:
// Field (including enum-composed fields). Struct and Conditional children
// are not Gettable -- reading them by name returns the child object itself,
// so callers can chain further Gets on a nested struct or active variant.
type Gettable interface {
	Get() (Value, error)
	Set(v Value) error
}
