package bread

import "fmt"

// SchemaError reports a value that cannot legally be encoded, or a name
// that cannot legally be assigned: an unrecognized enum label, a
// wrong-length string, an out-of-range integer, or an assignment to a
// non-leaf. (An assignment to an unknown name is an *UnknownFieldError.)
// It carries the offending field name so callers don't have to parse it
// back out of the message.
type SchemaError struct {
	Field string
	Err   error
}

func (e *SchemaError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("bread: schema error: %s", e.Err)
	}
	return fmt.Sprintf("bread: schema error on field '%s': %s", e.Field, e.Err)
}

func (e *SchemaError) Unwrap() error { return e.Err }

// BadConditionalCaseError reports that a Conditional's predicate field
// currently holds a value that is not a key of any of its variants.
type BadConditionalCaseError struct {
	Predicate string
	Value     any
}

func (e *BadConditionalCaseError) Error() string {
	return fmt.Sprintf("bread: no known conditional case '%v' for predicate '%s'", e.Value, e.Predicate)
}

// UnderflowError reports that input data is shorter than a spec's minimum length.
type UnderflowError struct {
	Have uint64
	Want uint64
}

func (e *UnderflowError) Error() string {
	return fmt.Sprintf(
		"bread: data being parsed isn't long enough; expected at least %d bits, but data is only %d bits long",
		e.Want, e.Have)
}

// UnknownFieldError reports a name lookup that resolved to no child of a Struct.
type UnknownFieldError struct {
	Name string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("bread: no known field '%s'", e.Name)
}

// TypeError reports a value of an unsupported kind being handed to Parse or Write.
type TypeError struct {
	Msg string
}

func (e *TypeError) Error() string {
	return "bread: " + e.Msg
}
