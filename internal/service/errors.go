package service

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by every service. Controllers map them to HTTP
// statuses with errors.Is; services wrap them with context via fmt.Errorf.
var (
	ErrNotFound         = errors.New("resource not found")
	ErrForbidden        = errors.New("forbidden")
	ErrReviewNotAllowed = errors.New("review is not allowed for this exam")
	ErrExamNotAvailable = errors.New("exam is not currently available")
	ErrAttemptFinalized = errors.New("attempt has already been finalized")
	ErrDuplicateSubmit  = errors.New("attempt was already submitted")
)

// ValidationError rejects malformed input before any mutation happens.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func newValidationError(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
