package lookup

import (
	"errors"
	"fmt"
)

// Input errors. These are never retried and map to a 400 response.
var (
	ErrEmptyInput    = errors.New("phone number is required")
	ErrInvalidFormat = errors.New("invalid number format")
)

// TransportError wraps a failure to reach the upstream at all.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("upstream unreachable: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// StatusError reports a non-200 upstream response. Code is forwarded to the
// caller verbatim.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream returned status code: %d", e.Code)
}

// IsInputError reports whether err was caused by the caller's input.
func IsInputError(err error) bool {
	return errors.Is(err, ErrEmptyInput) || errors.Is(err, ErrInvalidFormat)
}
