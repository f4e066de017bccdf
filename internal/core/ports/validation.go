package ports

import "errors"

// ErrValidation indicates a request was rejected before any network call.
var ErrValidation = errors.New("validation failed")

// ValidationError names the specific rejected input.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
