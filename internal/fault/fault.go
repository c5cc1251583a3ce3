// Package fault defines the error kinds shared by the content, progress
// and quiz stores. Handlers map these to HTTP status codes; stores wrap
// driver errors so callers can distinguish "absent" from "broken".
package fault

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound    = errors.New("not found")
	ErrValidation  = errors.New("validation failed")
	ErrPersistence = errors.New("persistence failure")
)

// NotFound tags an absent entity, e.g. NotFound("course", id).
func NotFound(kind, id string) error {
	return fmt.Errorf("%s %q: %w", kind, id, ErrNotFound)
}

// Validation tags a malformed input that normalization could not recover.
func Validation(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}

// Persistence wraps a storage/driver error. The original error text is
// kept for logs; errors.Is(err, ErrPersistence) identifies the kind.
func Persistence(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrPersistence, op, err)
}
