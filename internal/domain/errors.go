package domain

import (
	"errors"
	"fmt"
)

// Error taxonomy for the procedure layer. Handlers translate these with
// errors.Is; anything outside the taxonomy is treated as an internal
// store failure and kept opaque to the caller.
var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrValidation      = errors.New("validation failed")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
	ErrRateLimited     = errors.New("rate limit exceeded")
)

// NewValidationError wraps ErrValidation with a user-presentable reason.
func NewValidationError(reason string) error {
	return fmt.Errorf("%w: %s", ErrValidation, reason)
}
