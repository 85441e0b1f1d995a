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
	"encoding/json"
	"fmt"
	"strings"
)

type namedChild struct {
	name string
	node Node
}

// Struct is an ordered collection of named and unnamed children. Its
// length is always the sum of its children's current lengths, and a name
// lookup that misses the struct's own fields falls through to scan its
// conditional children's active variants before failing.
type Struct struct {
	typeName     string
	buf          *BitBuffer
	base         uint64
	children     []namedChild
	fields       map[string]Node
	conditionals []*Conditional
}

func newStruct(typeName string) *Struct {
	return &Struct{
		typeName: typeName,
		fields:   make(map[string]Node),
	}
}

func (s *Struct) addChild(name string, node Node, isConditional bool) {
	if f, ok := node.(*Field); ok {
		f.name = name
	}

	s.children = append(s.children, namedChild{name: name, node: node})

	if !isUnnamed(name) {
		s.fields[name] = node
	}

	if cond, ok := node.(*Conditional); ok {
		s.conditionals = append(s.conditionals, cond)
	}
	_ = isConditional
}

func isUnnamed(name string) bool {
	return strings.HasPrefix(name, "_")
}

// Length implements Node: the sum of every child's current length.
func (s *Struct) Length() uint64 {
	var total uint64
	for _, c := range s.children {
		total += c.node.Length()
	}
	return total
}

// MinLength implements Node: the sum of every child's minimum length.
func (s *Struct) MinLength() uint64 {
	var total uint64
	for _, c := range s.children {
		total += c.node.MinLength()
	}
	return total
}

// Len returns the struct's current length in bits (the exported form of
// Length, for callers outside the package).
func (s *Struct) Len() uint64 { return s.Length() }

// Offset implements Node: a struct's offset is where its first child begins.
func (s *Struct) Offset() uint64 {
	if len(s.children) == 0 {
		return s.base
	}
	return s.children[0].node.Offset()
}

func (s *Struct) setOffset(base uint64) {
	s.base = base
	offset := base
	for _, c := range s.children {
		c.node.setOffset(offset)
		offset += c.node.Length()
	}
}

func (s *Struct) bindBuffer(buf *BitBuffer) {
	s.buf = buf
	for _, c := range s.children {
		c.node.bindBuffer(buf)
	}
}

// Offsets returns the absolute bit offset of every named, non-conditional
// child -- conditionals contribute their active variant's named offsets
// via the same fallthrough Get/Set use.
func (s *Struct) Offsets() map[string]uint64 {
	out := make(map[string]uint64)
	for name, node := range s.fields {
		out[name] = node.Offset()
	}
	for _, cond := range s.conditionals {
		active, err := cond.activeVariant()
		if err != nil {
			continue
		}
		for k, v := range active.Offsets() {
			out[k] = v
		}
	}
	return out
}

// Get resolves name against this struct's direct children, then against
// its conditional children's active variants. A Field (or enum field)
// resolves to its decoded Value; a nested Struct or Conditional resolves
// to itself, so callers can chain further Gets.
func (s *Struct) Get(name string) (any, error) {
	if node, ok := s.fields[name]; ok {
		return getNode(node)
	}

	for _, cond := range s.conditionals {
		v, err := cond.Get(name)
		if err == nil {
			return v, nil
		}
		if _, unknown := err.(*UnknownFieldError); !unknown {
			// Only "field not on this variant" is swallowed while
			// scanning conditional children; anything else (notably
			// a BadConditionalCaseError) is a hard error.
			return nil, err
		}
	}

	return nil, &UnknownFieldError{Name: name}
}

func getNode(node Node) (any, error) {
	switch n := node.(type) {
	case Gettable:
		return n.Get()
	default:
		return node, nil
	}
}

// Set resolves name the same way Get does, and assigns v to the leaf it
// finds. Assigning to a name that resolves to a nested Struct fails, since
// a non-leaf cannot be set directly.
func (s *Struct) Set(name string, v any) error {
	if node, ok := s.fields[name]; ok {
		return setNode(name, node, v)
	}

	for _, cond := range s.conditionals {
		err := cond.Set(name, v)
		if err == nil {
			return nil
		}
		if _, unknown := err.(*UnknownFieldError); !unknown {
			return err
		}
	}

	return &UnknownFieldError{Name: name}
}

func setNode(name string, node Node, raw any) error {
	switch n := node.(type) {
	case Gettable:
		value, err := ValueOf(raw)
		if err != nil {
			return &SchemaError{Field: name, Err: err}
		}
		return n.Set(value)
	case *Struct:
		return &SchemaError{Field: name, Err: fmt.Errorf("cannot assign to a non-leaf struct")}
	case *Array:
		list, ok := raw.([]any)
		if !ok {
			return &SchemaError{Field: name, Err: fmt.Errorf("cannot set an array using a %T value", raw)}
		}
		return n.SetAll(list)
	default:
		return &SchemaError{Field: name, Err: fmt.Errorf("cannot assign to field of type %T", node)}
	}
}

// AsNative builds a Value of kind Map from every named child; conditionals
// contribute their active variant's fields merged in, and unnamed fields
// are omitted.
func (s *Struct) AsNative() (Value, error) {
	out := make(map[string]Value)

	for _, c := range s.children {
		if isUnnamed(c.name) {
			if cond, ok := c.node.(*Conditional); ok {
				native, err := cond.AsNative()
				if err != nil {
					return Value{}, err
				}
				m, _ := native.Map()
				for k, v := range m {
					out[k] = v
				}
			}
			continue
		}

		v, err := nodeAsNative(c.node)
		if err != nil {
			return Value{}, fmt.Errorf("bread: field '%s': %w", c.name, err)
		}
		out[c.name] = v
	}

	return MapValue(out), nil
}

func nodeAsNative(node Node) (Value, error) {
	switch n := node.(type) {
	case Gettable:
		return n.Get()
	case *Struct:
		return n.AsNative()
	case *Array:
		return n.AsNative()
	case *Conditional:
		return n.AsNative()
	default:
		return Value{}, fmt.Errorf("unsupported node type %T", node)
	}
}

// AsJSON serializes AsNative()'s projection as JSON.
func (s *Struct) AsJSON() ([]byte, error) {
	native, err := s.AsNative()
	if err != nil {
		return nil, err
	}
	return json.Marshal(native.Native())
}

// Equal reports whether two structs' underlying buffers hold the same
// bits over the struct's current length -- content equality, not identity.
func (s *Struct) Equal(other *Struct) bool {
	if s.buf == nil || other.buf == nil {
		return s.buf == other.buf
	}

	a, err1 := s.buf.Slice(s.Offset(), s.Offset()+s.Length())
	b, err2 := other.buf.Slice(other.Offset(), other.Offset()+other.Length())
	if err1 != nil || err2 != nil {
		return false
	}
	return a.Equal(b)
}

func (s *Struct) fieldStrings() []string {
	var lines []string

	for _, c := range s.children {
		switch n := c.node.(type) {
		case *Struct:
			lines = append(lines, c.name+": "+strings.TrimLeft(indentText(n.String()), " \t\n"))
		case *Conditional:
			lines = append(lines, n.String())
		default:
			if !isUnnamed(c.name) {
				lines = append(lines, fmt.Sprintf("%s: %s", c.name, stringifyNode(c.node)))
			}
		}
	}

	return lines
}

func stringifyNode(node Node) string {
	switch n := node.(type) {
	case fmt.Stringer:
		return n.String()
	default:
		return fmt.Sprintf("%v", node)
	}
}

// String renders a labeled, indented multi-line dump of every named child.
func (s *Struct) String() string {
	lines := s.fieldStrings()
	var b strings.Builder
	b.WriteString("{\n")
	for _, line := range lines {
		b.WriteString(indentText(line))
		b.WriteString("\n")
	}
	b.WriteString("}")
	return b.String()
}

// indentText indents every line of a newline-delimited string by two spaces.
func indentText(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = "  " + line
	}
	return strings.Join(lines, "\n")
}
