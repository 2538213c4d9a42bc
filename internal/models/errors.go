package models

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is the root of every "does not exist" error; match with errors.Is.
var ErrNotFound = errors.New("not found")

var (
	ErrPlayerNotFound = fmt.Errorf("player %w", ErrNotFound)
	ErrGameNotFound   = fmt.Errorf("game %w", ErrNotFound)
	ErrGuestNotFound  = fmt.Errorf("guest %w", ErrNotFound)
	ErrNoRecipients   = fmt.Errorf("players %w", ErrNotFound)
)

// IsNotFound reports whether err is any not-found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// ValidationError is a user-correctable problem with a request field.
type ValidationError struct {
	Field   string
	Message string
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// IsValidation reports whether err carries a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// NotifierError is a delivery failure. It is logged and counted, never used to
// fail a request whose main effect has already been stored.
type NotifierError struct {
	Recipients []string
	Err        error
}

func (e *NotifierError) Error() string {
	return fmt.Sprintf("notify %s: %v", strings.Join(e.Recipients, ", "), e.Err)
}

func (e *NotifierError) Unwrap() error { return e.Err }
