package service

import (
	"errors"
	"fmt"
)

// ErrValidationFailed is wrapped by every input validation error so handlers
// can map the whole family to 400 with errors.Is.
var ErrValidationFailed = errors.New("validation failed")

func validationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidationFailed, fmt.Sprintf(format, args...))
}
