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

import "fmt"

// Array is a fixed-count, homogeneous, contiguous sequence of Fields,
// Structs, or Conditionals. Item nodes are lazily materialized: the first
// access to item i builds it from the shared template. Offset assignment
// (which New performs) walks every item, so a bound array holds all of its
// items.
type Array struct {
	count  int
	parent *Struct
	opts   Options

	template any // FieldFactory | Spec | SpecLine (branch)

	items  []Node
	offset uint64
	buf    *BitBuffer
}

// ArrayOf returns a FieldFactory for a fixed-length array of count items,
// each built from item: a FieldFactory (leaf items, including a bare
// package-level factory function like Boolean), a Spec (nested struct
// items), or a Branch SpecLine (conditional items).
func ArrayOf(count int, item any) FieldFactory {
	template, err := normalizeItemTemplate(item)

	return func(parent *Struct, opts Options) (Node, error) {
		if err != nil {
			return nil, err
		}
		return &Array{count: count, parent: parent, opts: opts, template: template, items: make([]Node, count)}, nil
	}
}

// normalizeItemTemplate recognizes a plain function matching FieldFactory's
// signature -- e.g. Boolean, passed bare rather than through a FieldFactory-
// typed variable -- which arrives here with the compiler's unnamed func
// type rather than bread.FieldFactory once boxed into an any.
func normalizeItemTemplate(item any) (any, error) {
	switch t := item.(type) {
	case FieldFactory, Spec, SpecLine:
		return item, nil
	case func(parent *Struct, opts Options) (Node, error):
		return FieldFactory(t), nil
	default:
		return nil, fmt.Errorf("bread: array item template must be a FieldFactory, Spec, or Branch, got %T", item)
	}
}

func (a *Array) createItem() (Node, error) {
	switch t := a.template.(type) {
	case FieldFactory:
		return t(a.parent, a.opts)
	case Spec:
		return buildStruct(t, "")
	case SpecLine:
		if t.kind != lineBranch {
			return nil, fmt.Errorf("bread: array item SpecLine must be a Branch")
		}
		return buildConditional(t, a.parent)
	default:
		return nil, fmt.Errorf("bread: unsupported array item template %T", a.template)
	}
}

func (a *Array) item(i int) (Node, error) {
	if a.items[i] == nil {
		node, err := a.createItem()
		if err != nil {
			return nil, fmt.Errorf("bread: array item %d: %w", i, err)
		}
		if a.buf != nil {
			node.bindBuffer(a.buf)
		}
		a.items[i] = node
	}
	return a.items[i], nil
}

func (a *Array) itemLength() uint64 {
	node, err := a.item(0)
	if err != nil || a.count == 0 {
		return 0
	}
	return node.Length()
}

// Len returns the array's fixed item count.
func (a *Array) Len() int { return a.count }

// Length implements Node: N * item length for a uniform template, or the
// sum of each item's current length for a variant-length template (arrays
// of Conditional).
func (a *Array) Length() uint64 {
	var total uint64
	for i := 0; i < a.count; i++ {
		node, err := a.item(i)
		if err != nil {
			return total
		}
		total += node.Length()
	}
	return total
}

// MinLength implements Node.
func (a *Array) MinLength() uint64 {
	if a.count == 0 {
		return 0
	}
	node, err := a.item(0)
	if err != nil {
		return 0
	}
	return node.MinLength() * uint64(a.count)
}

func (a *Array) Offset() uint64 { return a.offset }

func (a *Array) setOffset(offset uint64) {
	a.offset = offset

	current := offset
	for i := 0; i < a.count; i++ {
		node, err := a.item(i)
		if err != nil {
			return
		}
		node.setOffset(current)
		current += node.Length()
	}
}

func (a *Array) bindBuffer(buf *BitBuffer) {
	a.buf = buf
	for _, node := range a.items {
		if node != nil {
			node.bindBuffer(buf)
		}
	}
}

// Get returns item i's decoded Value for leaf items, or the item node
// itself (*Struct / *Conditional) for nested items -- the same duck-typed
// projection Struct.Get uses for nested children.
func (a *Array) Get(i int) (any, error) {
	if i < 0 || i >= a.count {
		return nil, fmt.Errorf("bread: array index %d out of range [0,%d)", i, a.count)
	}
	node, err := a.item(i)
	if err != nil {
		return nil, err
	}
	return getNode(node)
}

// Set assigns v to item i.
func (a *Array) Set(i int, v any) error {
	if i < 0 || i >= a.count {
		return fmt.Errorf("bread: array index %d out of range [0,%d)", i, a.count)
	}
	node, err := a.item(i)
	if err != nil {
		return err
	}
	return setNode(fmt.Sprintf("[%d]", i), node, v)
}

// SetAll replaces every item's value; values must have exactly Len() entries.
func (a *Array) SetAll(values []any) error {
	if len(values) != a.count {
		return &SchemaError{Err: fmt.Errorf(
			"cannot change the length of an array (would have changed from %d to %d)", a.count, len(values))}
	}
	for i, v := range values {
		if err := a.Set(i, v); err != nil {
			return err
		}
	}
	return nil
}

// Slice returns a read-only projection of items [start,stop) stepping by step.
func (a *Array) Slice(start, stop, step int) ([]any, error) {
	if step == 0 {
		return nil, fmt.Errorf("bread: array slice step cannot be 0")
	}

	var out []any
	if step > 0 {
		for i := start; i < stop; i += step {
			v, err := a.Get(i)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
	} else {
		for i := start; i > stop; i += step {
			v, err := a.Get(i)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
	}
	return out, nil
}

// AsNative returns a Value of kind List built from every item's native projection.
func (a *Array) AsNative() (Value, error) {
	items := make([]Value, a.count)
	for i := 0; i < a.count; i++ {
		node, err := a.item(i)
		if err != nil {
			return Value{}, err
		}
		v, err := nodeAsNative(node)
		if err != nil {
			return Value{}, err
		}
		items[i] = v
	}
	return ListValue(items), nil
}

// Equal reports structural equality against another *Array of equal
// length, or against a []any of equal length whose decoded items match.
func (a *Array) Equal(other any) bool {
	switch o := other.(type) {
	case *Array:
		if a.count != o.count {
			return false
		}
		for i := 0; i < a.count; i++ {
			v1, err1 := a.Get(i)
			v2, err2 := o.Get(i)
			if err1 != nil || err2 != nil || !valuesEqual(v1, v2) {
				return false
			}
		}
		return true
	case []any:
		if a.count != len(o) {
			return false
		}
		for i := 0; i < a.count; i++ {
			v, err := a.Get(i)
			if err != nil || !valuesEqual(v, o[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func valuesEqual(a, b any) bool {
	av, aok := a.(Value)
	bv, bok := b.(Value)
	if aok && bok {
		return av.Equal(bv)
	}
	return a == b
}

func (a *Array) String() string {
	parts := make([]string, a.count)
	for i := 0; i < a.count; i++ {
		v, err := a.Get(i)
		if err != nil {
			parts[i] = "<error>"
			continue
		}
		parts[i] = fmt.Sprintf("%v", v)
	}

	out := "["
	for i, p := range parts {
		if i > 0 {
			out += ", "
		}
		out += p
	}
	return out + "]"
}
