package cli

import "fmt"

// UsageError indicates the command line itself was malformed: an unknown
// flag, a bad enum value or too many positional arguments.
type UsageError struct {
	Reason error
}

// Error returns the underlying message with a pointer to --help.
func (e *UsageError) Error() string {
	return fmt.Sprintf("%v\nRun 'labelpc --help' for usage.", e.Reason)
}

// Unwrap returns the underlying error.
func (e *UsageError) Unwrap() error {
	return e.Reason
}

// Is allows errors.Is() to work with wrapped errors.
func (e *UsageError) Is(target error) bool {
	_, ok := target.(*UsageError)
	return ok
}
