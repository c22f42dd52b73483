package models

import (
	"errors"
	"fmt"
)

var (
	ErrValidation         = fmt.Errorf("validation error")
	ErrAuthentication     = fmt.Errorf("invalid credentials")
	ErrUnauthorized       = fmt.Errorf("unauthorized")
	ErrForbidden          = fmt.Errorf("forbidden")
	ErrNotFound           = fmt.Errorf("not found")
	ErrConflict           = fmt.Errorf("conflict")
	ErrBackendUnavailable = fmt.Errorf("backend unavailable")
	ErrNotConfigured      = fmt.Errorf("backend not configured")
)

/*
UserError pairs one of the sentinel errors above with a message that is safe
to show to the caller.
*/
type UserError struct {
	Kind    error
	Message string
}

func NewUserError(kind error, message string) *UserError {
	return &UserError{
		Kind:    kind,
		Message: message,
	}
}

func (e *UserError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind.Error(), e.Message)
}

func (e *UserError) Unwrap() error {
	return e.Kind
}

// UserMessage returns the caller-facing message carried by err, if any.
func UserMessage(err error) (string, bool) {
	var userErr *UserError

	if errors.As(err, &userErr) {
		return userErr.Message, true
	}

	return "", false
}
