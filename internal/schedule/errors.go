package schedule

import "fmt"

// ParseError indicates that a timestamp or other raw input could not be
// parsed. It is surfaced to the caller and never retried.
type ParseError struct {
	Field string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid %s %q: %v", e.Field, e.Value, e.Err)
	}
	return fmt.Sprintf("invalid %s %q", e.Field, e.Value)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ValidationError indicates input that parsed but is semantically invalid
// after normalization, e.g. an event whose end does not come after its start.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}
