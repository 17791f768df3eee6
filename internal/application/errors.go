package application

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	// ErrNotFound covers both missing and not-owned resources.
	ErrNotFound           = errors.New("not found")
	ErrStorageUnavailable = errors.New("attachment storage is not configured")
)

// ValidationError carries every failed field rule as one message.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func newValidationError(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
