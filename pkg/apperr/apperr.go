// Package apperr defines the error taxonomy shared by all use cases.
// Errors carry a kind that maps to an HTTP status at the controller
// boundary, so handlers never inspect error strings.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	Validation Kind = iota + 1
	NotFound
	Unauthenticated
	Conflict
	Upload
	Delete
	Persistence
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, message string) error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf returns the kind of err, or 0 when err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// StatusOf maps an error to the HTTP status code of its kind.
// Unknown errors are treated as internal failures.
func StatusOf(err error) int {
	switch KindOf(err) {
	case Validation:
		return http.StatusBadRequest
	case NotFound:
		return http.StatusNotFound
	case Unauthenticated:
		return http.StatusUnauthorized
	case Conflict:
		return http.StatusConflict
	case Upload, Delete, Persistence:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// MessageOf returns the user-facing message of err. Errors outside the
// taxonomy get a generic message so internals never leak to clients.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "something went wrong"
}
