package bread

import (
	"fmt"
	"sort"
)

// EnumEntry maps one or more integer codes to a single label. When more
// than one code is given, the first is canonical: it is the code used to
// encode the label, the same way bread's enum aliasing treats the first
// element of a tuple key as canonical.
type EnumEntry struct {
	Codes []int64
	Label string
}

// EnumValues is a bidirectional mapping between integer codes and labels,
// built from a list of EnumEntry values.
type EnumValues struct {
	labelByCode map[int64]string
	codeByLabel map[string]int64
	order       []int64 // canonical codes, in declaration order (for labels())
}

// NewEnumValues builds an EnumValues table from the given entries.
func NewEnumValues(entries ...EnumEntry) *EnumValues {
	ev := &EnumValues{
		labelByCode: make(map[int64]string),
		codeByLabel: make(map[string]int64),
	}

	for _, e := range entries {
		if len(e.Codes) == 0 {
			continue
		}
		for _, code := range e.Codes {
			ev.labelByCode[code] = e.Label
		}
		ev.codeByLabel[e.Label] = e.Codes[0]
		ev.order = append(ev.order, e.Codes[0])
	}

	return ev
}

// Enum builds an EnumValues from a plain code->label map, with no aliasing.
// This is the common case matching bread.enum.py's dict-literal values.
func Enum(codesToLabels map[int64]string) *EnumValues {
	codes := make([]int64, 0, len(codesToLabels))
	for code := range codesToLabels {
		codes = append(codes, code)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })

	entries := make([]EnumEntry, 0, len(codes))
	for _, code := range codes {
		entries = append(entries, EnumEntry{Codes: []int64{code}, Label: codesToLabels[code]})
	}
	return NewEnumValues(entries...)
}

func (ev *EnumValues) labels() []string {
	out := make([]string, 0, len(ev.order))
	for _, code := range ev.order {
		out = append(out, ev.labelByCode[code])
	}
	return out
}

// EnumOption configures an enum field factory.
type EnumOption func(*enumConfig)

type enumConfig struct {
	defaultLabel    string
	hasDefaultLabel bool
}

// WithDefault sets the label returned when an unrecognized code is decoded.
// Without it, decoding an unknown code is a hard error.
func WithDefault(label string) EnumOption {
	return func(c *enumConfig) {
		c.defaultLabel = label
		c.hasDefaultLabel = true
	}
}

// EnumField returns a FieldFactory for an unsigned integer field of the
// given bit length whose decoded value is looked up in values. It wraps
// EncodeUint/DecodeUint rather than reimplementing integer packing.
func EnumField(length uint64, values *EnumValues, opts ...EnumOption) FieldFactory {
	cfg := &enumConfig{}
	for _, o := range opts {
		o(cfg)
	}

	return func(parent *Struct, fieldOpts Options) (Node, error) {
		endian := fieldOpts.endianness()

		encode := func(v Value) (*BitBuffer, error) {
			label, ok := v.String_()
			if !ok {
				return nil, fmt.Errorf("expected a string enum label, got %s", v.Kind())
			}

			code, ok := values.codeByLabel[label]
			if !ok {
				return nil, fmt.Errorf("'%s' is not a valid enum value; valid values: %v", label, values.labels())
			}

			return EncodeUint(uint64(code), length, endian)
		}

		decode := func(bits *BitBuffer) (Value, error) {
			code := int64(DecodeUint(bits, endian))

			label, ok := values.labelByCode[code]
			if !ok {
				if cfg.hasDefaultLabel {
					return StringValue(cfg.defaultLabel), nil
				}
				return Value{}, fmt.Errorf("%d is not a valid enum value; valid values: %v", code, values.labels())
			}

			return StringValue(label), nil
		}

		return newField(length, encode, decode, fieldOpts.strFormat()), nil
	}
}
