package bread

import "fmt"

// Conditional is a polymorphic slot whose active variant is selected, at
// access time, by reading a named predicate field on the parent Struct.
type Conditional struct {
	predicateName string
	parent        *Struct
	cases         map[any]*Struct
	order         []any
}

func (c *Conditional) activeVariant() (*Struct, error) {
	raw, err := c.parent.Get(c.predicateName)
	if err != nil {
		return nil, err
	}

	key := predicateKey(raw)

	variant, ok := c.cases[key]
	if !ok {
		return nil, &BadConditionalCaseError{Predicate: c.predicateName, Value: key}
	}
	return variant, nil
}

// predicateKey normalizes a decoded Value (or the raw value a Field.Get
// already returned as `any`) into the comparable form used as a map key in
// Branch's cases map.
func predicateKey(raw any) any {
	if v, ok := raw.(Value); ok {
		switch v.Kind() {
		case KindBool:
			b, _ := v.Bool()
			return b
		case KindInt:
			i, _ := v.Int()
			return i
		case KindUint:
			u, _ := v.Uint()
			return int64(u)
		case KindString:
			s, _ := v.String_()
			return s
		}
	}
	return raw
}

func (c *Conditional) Length() uint64 {
	variant, err := c.activeVariant()
	if err != nil {
		return 0
	}
	return variant.Length()
}

// MinLength is the minimum across every variant's minimum length.
func (c *Conditional) MinLength() uint64 {
	var min uint64
	first := true
	for _, v := range c.cases {
		l := v.MinLength()
		if first || l < min {
			min = l
			first = false
		}
	}
	return min
}

// Offset returns an arbitrary variant's offset: every variant shares the
// same base offset, so any one of them answers correctly.
func (c *Conditional) Offset() uint64 {
	for _, key := range c.order {
		return c.cases[key].Offset()
	}
	return 0
}

func (c *Conditional) setOffset(offset uint64) {
	for _, variant := range c.cases {
		variant.setOffset(offset)
	}
}

func (c *Conditional) bindBuffer(buf *BitBuffer) {
	for _, variant := range c.cases {
		variant.bindBuffer(buf)
	}
}

// Get resolves the active variant and forwards the name lookup to it.
func (c *Conditional) Get(name string) (any, error) {
	variant, err := c.activeVariant()
	if err != nil {
		return nil, err
	}
	return variant.Get(name)
}

// Set resolves the active variant and forwards the assignment to it. A
// name the active variant lacks yields an *UnknownFieldError; that
// includes the predicate field, which lives on the parent Struct.
// Assigning the predicate through the parent's Set changes the variant
// every subsequent access resolves to.
func (c *Conditional) Set(name string, v any) error {
	variant, err := c.activeVariant()
	if err != nil {
		return err
	}
	return variant.Set(name, v)
}

// AsNative projects the active variant's fields as a Value of kind Map.
func (c *Conditional) AsNative() (Value, error) {
	variant, err := c.activeVariant()
	if err != nil {
		return Value{}, err
	}
	return variant.AsNative()
}

func (c *Conditional) String() string {
	variant, err := c.activeVariant()
	if err != nil {
		return fmt.Sprintf("<%s>", err)
	}

	lines := variant.fieldStrings()
	out := ""
	for i, line := range lines {
		if i > 0 {
			out += "\n"
		}
		out += line
	}
	return out
}
