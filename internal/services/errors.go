package services

import (
	"errors"
	"fmt"

	"github.com/ahmetcoskunkizilkaya/vardforalla-backend/internal/repository"
)

// Kind classifies an expected business outcome. Anything that is not an
// *Error is an infrastructure failure.
type Kind string

const (
	KindNotFound           Kind = "not_found"
	KindForbidden          Kind = "forbidden"
	KindExpired            Kind = "expired"
	KindConflict           Kind = "conflict"
	KindInvalidCredentials Kind = "invalid_credentials"
	KindInvalid            Kind = "invalid"
)

type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Is matches any *Error of the same kind, so errors.Is(err, ErrNotFound)
// holds regardless of the message.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

func newError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

var (
	ErrNotFound           = newError(KindNotFound, "not found")
	ErrForbidden          = newError(KindForbidden, "forbidden")
	ErrExpired            = newError(KindExpired, "expired")
	ErrConflict           = newError(KindConflict, "conflict")
	ErrInvalidCredentials = newError(KindInvalidCredentials, "invalid email or password")
	ErrInvalid            = newError(KindInvalid, "invalid input")
)

// KindOf returns the kind of an expected outcome and false for unexpected errors.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}

// notFoundOr turns a store miss into a NotFound outcome and wraps anything else.
func notFoundOr(err error, message, action string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return newError(KindNotFound, message)
	}
	return fmt.Errorf("failed to %s: %w", action, err)
}
