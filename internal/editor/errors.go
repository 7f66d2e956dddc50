package editor

import "fmt"

// ValidationError reports a form field that fails the save-time checks. It is
// local and recoverable: the form keeps its entered values and nothing is
// persisted.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Reason)
}
