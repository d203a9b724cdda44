package mapper

import (
	"errors"
	"fmt"
	"reflect"
)

// ErrHeaderMismatch is matched by errors.Is when the header row above the
// data does not agree with the record's fields and the expected hidden set.
var ErrHeaderMismatch = errors.New("header row does not match record fields")

// SchemaError reports a record type that cannot be mapped.
type SchemaError struct {
	Type   reflect.Type
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("record type %v: %s", e.Type, e.Reason)
}

// ConformanceError names the first field whose header label broke the
// hidden-column contract.
type ConformanceError struct {
	Field  string
	Label  string
	Hidden bool
}

func (e *ConformanceError) Error() string {
	if e.Hidden {
		return fmt.Sprintf("%v: hidden field %s has header %q", ErrHeaderMismatch, e.Field, e.Label)
	}
	return fmt.Sprintf("%v: no header %q for field %s", ErrHeaderMismatch, e.Label, e.Field)
}

func (e *ConformanceError) Is(target error) bool {
	return target == ErrHeaderMismatch
}

// CoercionError reports a cell value that could not be converted to a
// field's type.
type CoercionError struct {
	Value  any
	Target reflect.Type
	Err    error
}

func (e *CoercionError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("cannot convert %T %v to %v", e.Value, e.Value, e.Target)
	}
	return fmt.Sprintf("cannot convert %T %v to %v: %v", e.Value, e.Value, e.Target, e.Err)
}

func (e *CoercionError) Unwrap() error { return e.Err }
