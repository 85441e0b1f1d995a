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

// Package bread declares binary formats once and both parses them into a
// navigable, typed object tree and serializes that tree back to bytes
// that are bit-exactly equal to the original when nothing has changed.
//
// A format is declared as a Spec: a slice of SpecLines built with
// WithOptions, Named, NamedStruct, Unnamed, and Branch. New and Parse turn
// a Spec into a *Struct; Write turns a *Struct back into bytes.
//
//	spec := bread.Spec{
//		bread.WithOptions(bread.Options{"endianness": bread.BigEndian}),
//		bread.Named("flag", bread.Boolean),
//		bread.Named("value", bread.UInt8),
//	}
//
//	s, err := bread.Parse([]byte{0x80, 0x2a}, spec, "example")
//	v, err := s.Get("value")
//	err = s.Set("flag", false)
//	out, err := bread.Write(s, "")
package bread

import (
	"fmt"
	"io"
	"os"
)

// New builds struct from spec and binds it to data. If data is nil, a
// zero-filled buffer of exactly the struct's minimum length is allocated.
// New fails if data is shorter than the struct's minimum length.
func New(spec Spec, typeName string, data []byte) (*Struct, error) {
	s, err := buildStruct(spec, typeName)
	if err != nil {
		return nil, err
	}

	minLength := s.MinLength()

	var buf *BitBuffer
	if data == nil {
		buf = NewZeroBitBuffer(minLength)
	} else {
		buf = NewBitBuffer(data)
	}

	if buf.Len() < minLength {
		return nil, &UnderflowError{Have: buf.Len(), Want: minLength}
	}

	s.bindBuffer(buf)
	s.setOffset(0)

	return s, nil
}

// Parse converts src ([]byte or io.Reader) into bytes and delegates to New.
func Parse(src any, spec Spec, typeName string) (*Struct, error) {
	var data []byte

	switch v := src.(type) {
	case []byte:
		data = v
	case io.Reader:
		read, err := io.ReadAll(v)
		if err != nil {
			return nil, fmt.Errorf("bread: reading parse source: %w", err)
		}
		data = read
	default:
		return nil, &TypeError{Msg: fmt.Sprintf("parse called with an unsupported data source of type %T", src)}
	}

	return New(spec, typeName, data)
}

// Write serializes s's buffer, truncated to s's current bit length and
// zero-padded up to a whole byte, and returns those bytes. If filename is
// non-empty, the same bytes are also written to that file (created or
// truncated).
func Write(s *Struct, filename string) ([]byte, error) {
	if s == nil {
		return nil, &TypeError{Msg: "write called with a nil struct"}
	}

	nbits := s.Length()
	tail, err := s.buf.Slice(0, nbits)
	if err != nil {
		return nil, fmt.Errorf("bread: writing struct: %w", err)
	}
	out := tail.Bytes()

	if filename == "" {
		return out, nil
	}

	f, err := os.Create(filename)
	if err != nil {
		return nil, fmt.Errorf("bread: opening '%s' for write: %w", filename, err)
	}
	defer f.Close()

	if _, err := f.Write(out); err != nil {
		return nil, fmt.Errorf("bread: writing '%s': %w", filename, err)
	}

	return out, nil
}
