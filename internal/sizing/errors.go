package sizing

import "fmt"

// UnknownTypeError reports a scalar type tag missing from the size table
// when no default scalar size is configured
type UnknownTypeError struct {
	Field string
	Type  string
}

func (e *UnknownTypeError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("unknown scalar type %q", e.Type)
	}
	return fmt.Sprintf("unknown scalar type %q for field %q", e.Type, e.Field)
}

// MissingCardinalityError reports an array field without an explicit
// cardinality while the sizer runs in strict mode
type MissingCardinalityError struct {
	Field string
}

func (e *MissingCardinalityError) Error() string {
	return fmt.Sprintf("no cardinality supplied for array field %q", e.Field)
}

// NegativeCardinalityError reports a cardinality below zero
type NegativeCardinalityError struct {
	Field string
	Value int64
}

func (e *NegativeCardinalityError) Error() string {
	return fmt.Sprintf("negative cardinality %d for array field %q", e.Value, e.Field)
}
