package pipeline

import (
	"errors"
	"fmt"
)

// ValidationError reports a matchup that cannot be run as given.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// SearchError wraps a failure of the search backend; it fails the whole matchup.
type SearchError struct {
	Provider string
	Err      error
}

func (e *SearchError) Error() string {
	return fmt.Sprintf("search via %s failed: %v", e.Provider, e.Err)
}

func (e *SearchError) Unwrap() error { return e.Err }

// IsSearchFailure reports whether err is (or wraps) a SearchError.
func IsSearchFailure(err error) bool {
	var s *SearchError
	return errors.As(err, &s)
}
