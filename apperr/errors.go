// Package apperr defines the error kinds surfaced by the note and reminder
// services. Handlers map kinds to HTTP statuses with errors.Is.
package apperr

import (
	"errors"

	pkgerrors "github.com/pkg/errors"
)

var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrNotDeleted = errors.New("note is not deleted")
	ErrStorage    = errors.New("storage failure")
)

// Error carries a kind sentinel, a caller-facing message and an optional cause.
type Error struct {
	Kind    error
	Message string
	Err     error
}

func (e *Error) Error() string {
	switch {
	case e.Message != "" && e.Err != nil && errors.Is(e.Kind, ErrStorage):
		return e.Message + ": " + e.Err.Error()
	case e.Message != "":
		return e.Message
	case e.Err != nil:
		return e.Err.Error()
	}
	return e.Kind.Error()
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func Validation(message string) error {
	return &Error{Kind: ErrValidation, Message: message}
}

func NotFound(message string) error {
	return &Error{Kind: ErrNotFound, Message: message}
}

// NotDeleted is a validation error: restoring a note that is not in the trash.
func NotDeleted() error {
	return &Error{Kind: ErrNotDeleted, Message: "Note is not deleted", Err: ErrValidation}
}

// Storage wraps a persistence failure. The cause keeps a stack trace so the
// logger can render where it surfaced.
func Storage(err error, message string) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: ErrStorage, Message: message, Err: pkgerrors.WithStack(err)}
}

func IsValidation(err error) bool { return errors.Is(err, ErrValidation) }
func IsNotFound(err error) bool   { return errors.Is(err, ErrNotFound) }
func IsStorage(err error) bool    { return errors.Is(err, ErrStorage) }
