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

// Field is a leaf node: a fixed number of bits with an encode/decode pair.
type Field struct {
	name   string
	length uint64
	offset int64 // -1 means unassigned

	buf *BitBuffer

	cached    *Value
	hasCached bool

	encode func(Value) (*BitBuffer, error)
	decode func(*BitBuffer) (Value, error)

	strFormat func(Value) string
}

func newField(length uint64, encode func(Value) (*BitBuffer, error), decode func(*BitBuffer) (Value, error), strFormat func(Value) string) *Field {
	return &Field{
		length:    length,
		offset:    -1,
		encode:    encode,
		decode:    decode,
		strFormat: strFormat,
	}
}

func (f *Field) Length() uint64    { return f.length }
func (f *Field) MinLength() uint64 { return f.length }
func (f *Field) Offset() uint64 {
	if f.offset < 0 {
		return 0
	}
	return uint64(f.offset)
}

func (f *Field) setOffset(offset uint64) {
	f.offset = int64(offset)
	f.hasCached = false
	f.cached = nil
}

func (f *Field) bindBuffer(buf *BitBuffer) {
	f.buf = buf
}

// Get decodes and caches the field's value, re-using the cache while the
// offset hasn't changed since it was populated.
func (f *Field) Get() (Value, error) {
	if f.hasCached {
		return *f.cached, nil
	}

	if f.offset < 0 {
		return Value{}, fmt.Errorf("bread: field '%s' has not been assigned an offset yet", f.name)
	}
	if f.buf == nil {
		return Value{}, fmt.Errorf("bread: field '%s' is not bound to a buffer", f.name)
	}

	start := uint64(f.offset)
	end := start + f.length

	slice, err := f.buf.Slice(start, end)
	if err != nil {
		return Value{}, fmt.Errorf("bread: field '%s': %w", f.name, err)
	}

	v, err := f.decode(slice)
	if err != nil {
		return Value{}, fmt.Errorf("bread: field '%s': %w", f.name, err)
	}

	f.cached = &v
	f.hasCached = true
	return v, nil
}

// Set encodes value and overwrites the field's bit range in place. On
// failure the buffer and cache are left completely unchanged.
func (f *Field) Set(value Value) error {
	if f.offset < 0 {
		return &SchemaError{Field: f.name, Err: fmt.Errorf("field has not been assigned an offset yet")}
	}
	if f.buf == nil {
		return &SchemaError{Field: f.name, Err: fmt.Errorf("field is not bound to a buffer")}
	}

	encoded, err := f.encode(value)
	if err != nil {
		return &SchemaError{Field: f.name, Err: err}
	}
	if encoded.Len() != f.length {
		return &SchemaError{Field: f.name, Err: fmt.Errorf("encoded length %d does not match field length %d", encoded.Len(), f.length)}
	}

	if err := f.buf.Overwrite(encoded, uint64(f.offset)); err != nil {
		return &SchemaError{Field: f.name, Err: err}
	}

	// Cache the field-normalized value, not the caller's raw one: encode
	// accepts loosely-typed input (e.g. a signed Int for an unsigned
	// field), but Get must always hand back the canonical Kind a fresh
	// decode would produce.
	canonical, err := f.decode(encoded)
	if err != nil {
		return &SchemaError{Field: f.name, Err: err}
	}

	f.cached = &canonical
	f.hasCached = true
	return nil
}

// AsNative returns the field's decoded value as a plain Go value.
func (f *Field) AsNative() (any, error) {
	v, err := f.Get()
	if err != nil {
		return nil, err
	}
	return v.Native(), nil
}

// Equal reports whether two fields currently decode to the same value.
func (f *Field) Equal(other *Field) bool {
	v1, err1 := f.Get()
	v2, err2 := other.Get()
	if err1 != nil || err2 != nil {
		return false
	}
	return v1.Equal(v2)
}

func (f *Field) String() string {
	v, err := f.Get()
	if err != nil {
		return "<error>"
	}
	if f.strFormat != nil {
		return f.strFormat(v)
	}
	return v.String()
}
