package bread

import "fmt"

type specLineKind int

const (
	lineOptions specLineKind = iota
	lineUnnamed
	lineNamed
	lineBranch
)

// SpecLine is one line of a Spec, built by WithOptions, Unnamed, Named, or
// Branch: a global-options declaration, an unnamed or named field, a named
// nested struct, or a predicate-keyed branch into variant structs.
type SpecLine struct {
	kind specLineKind

	options Options // lineOptions, or per-field override for lineNamed

	factory FieldFactory // lineUnnamed, lineNamed (leaf)
	name    string       // lineNamed
	nested  Spec         // lineNamed (nested struct), when non-nil

	predicate string            // lineBranch
	cases     map[any]Spec      // lineBranch
	caseOrder []any             // lineBranch, case keys captured once, in map iteration order
}

// Spec is an ordered sequence of SpecLines describing a binary layout.
type Spec []SpecLine

// WithOptions installs a new set of global options for every subsequent
// line of the enclosing spec, until superseded by another WithOptions line.
func WithOptions(opts Options) SpecLine {
	return SpecLine{kind: lineOptions, options: opts}
}

// Unnamed attaches factory's field anonymously: its value is never surfaced
// by AsNative, Offsets, or String. Used chiefly for Padding.
func Unnamed(factory FieldFactory) SpecLine {
	return SpecLine{kind: lineUnnamed, factory: factory}
}

// Named binds factory's field under name (use NamedStruct for a nested
// Struct). localOpts, if given, overrides the active global options for
// this field only.
func Named(name string, factory FieldFactory, localOpts ...Options) SpecLine {
	line := SpecLine{kind: lineNamed, name: name, factory: factory}
	if len(localOpts) > 0 {
		line.options = localOpts[0]
	}
	return line
}

// NamedStruct binds a nested Struct, built from nested, under name. The
// nested spec starts from the active global options (merged with
// localOpts, if given) until its own WithOptions line supersedes them.
func NamedStruct(name string, nested Spec, localOpts ...Options) SpecLine {
	line := SpecLine{kind: lineNamed, name: name, nested: nested}
	if len(localOpts) > 0 {
		line.options = localOpts[0]
	}
	return line
}

// Branch declares a Conditional keyed on the value of the field named
// predicate (which must precede this line in the same struct): cases maps
// each possible predicate value to the sub-spec of the corresponding
// variant Struct. Case keys are compared with == against the predicate's
// decoded value, normalized to bool for boolean fields, int64 for signed
// and unsigned integer fields, and string for string and enum fields.
func Branch(predicate string, cases map[any]Spec) SpecLine {
	order := make([]any, 0, len(cases))
	for k := range cases {
		order = append(order, k)
	}
	return SpecLine{kind: lineBranch, predicate: predicate, cases: cases, caseOrder: order}
}

// buildStruct walks spec in order, instantiating a Struct tree. Offsets
// are not assigned and no buffer is bound -- that happens once in New.
// Array items are created lazily; an array binds each item to its buffer
// as the item is created.
func buildStruct(spec Spec, typeName string) (*Struct, error) {
	s := newStruct(typeName)

	globals := Options{}
	unnamed := 0

	for _, line := range spec {
		switch line.kind {
		case lineOptions:
			globals = line.options

		case lineUnnamed:
			node, err := line.factory(s, globals)
			if err != nil {
				return nil, fmt.Errorf("bread: building unnamed field: %w", err)
			}
			s.addChild(fmt.Sprintf("_unnamed_%d", unnamed), node, false)
			unnamed++

		case lineBranch:
			cond, err := buildConditional(line, s)
			if err != nil {
				return nil, err
			}
			name := fmt.Sprintf("_conditional_on_%s_%d", line.predicate, unnamed)
			s.addChild(name, cond, true)
			unnamed++

		case lineNamed:
			opts := globals
			if line.options != nil {
				opts = globals.merge(line.options)
			}

			if line.nested != nil {
				child, err := buildStruct(append(Spec{WithOptions(opts)}, line.nested...), line.name)
				if err != nil {
					return nil, fmt.Errorf("bread: building nested struct '%s': %w", line.name, err)
				}
				s.addChild(line.name, child, false)
			} else {
				node, err := line.factory(s, opts)
				if err != nil {
					return nil, fmt.Errorf("bread: building field '%s': %w", line.name, err)
				}
				s.addChild(line.name, node, false)
			}
		}
	}

	return s, nil
}

func buildConditional(line SpecLine, parent *Struct) (*Conditional, error) {
	cond := &Conditional{
		predicateName: line.predicate,
		parent:        parent,
		cases:         make(map[any]*Struct, len(line.cases)),
		order:         append([]any(nil), line.caseOrder...),
	}

	for _, key := range line.caseOrder {
		sub := line.cases[key]
		variant, err := buildStruct(sub, "")
		if err != nil {
			return nil, fmt.Errorf("bread: building conditional case '%v': %w", key, err)
		}
		cond.cases[key] = variant
	}

	return cond, nil
}
