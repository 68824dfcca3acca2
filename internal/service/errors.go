package service

import (
	"errors"
	"fmt"
)

// ErrUsernameTaken is returned when a requested username already exists in
// any of the credential, client, or trainer stores.
var ErrUsernameTaken = errors.New("username is already taken")

// ValidationError reports the first field rule violated by a profile draft.
// The message is human-readable and safe to surface to callers.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func validationErrorf(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// NotFoundError reports an unknown update/lookup target.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %s not found", e.Kind, e.ID)
}

// ReferenceNotFoundError reports a dangling reference supplied by the caller,
// such as a trainer id that does not resolve to an existing trainer.
type ReferenceNotFoundError struct {
	Kind string
	ID   string
}

func (e *ReferenceNotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %s not found", e.Kind, e.ID)
}
