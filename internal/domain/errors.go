package domain

import "fmt"

// InvalidInputError is returned when a record is malformed, e.g. an
// order_date that does not parse or a string where a number is required
type InvalidInputError struct {
	Row    int
	Field  string
	Reason string
}

func (e InvalidInputError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid input on row %d: %s", e.Row, e.Reason)
	}
	return fmt.Sprintf("invalid input on row %d: field %s: %s", e.Row, e.Field, e.Reason)
}

// MissingFeatureError is returned when a column that must exist by the
// time the features are transformed is absent
type MissingFeatureError struct {
	Row    int
	Column string
}

func (e MissingFeatureError) Error() string {
	return fmt.Sprintf("missing required feature %s on row %d", e.Column, e.Row)
}

// ModelInvocationError wraps a failure from the model itself, given a
// structurally valid aligned matrix
type ModelInvocationError struct {
	Err error
}

func (e ModelInvocationError) Error() string {
	return fmt.Sprintf("model invocation failed: %v", e.Err)
}

func (e ModelInvocationError) Unwrap() error {
	return e.Err
}
