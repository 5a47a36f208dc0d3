// internal/apperrors/errors.go
package apperrors

import (
	"errors"
	"fmt"
)

// Kind classifies an error for the HTTP boundary. Handlers never inspect
// messages; they map the kind to a status code.
type Kind int

const (
	KindUnknown Kind = iota
	KindAuthentication
	KindAuthorization
	KindValidation
	KindInvalidID
	KindNotFound
	KindConflict
	KindUpstream
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

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// Upstream wraps a persistence or external-service failure. The request
// terminates immediately; there are no retries anywhere in this core.
func Upstream(err error) *Error {
	return &Error{Kind: KindUpstream, Message: "upstream failure", Err: err}
}

func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// MessageOf returns the client-safe message for classified errors. Unclassified
// errors get a generic message so internals never leak into responses.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Kind == KindUpstream {
			return "internal server error"
		}
		return e.Message
	}
	return "internal server error"
}

// Sentinels shared across middleware and services. NoToken and InvalidToken
// both surface as unauthorized but stay distinguishable for diagnostics.
var (
	ErrNoToken      = New(KindAuthentication, "not authorized, no token")
	ErrInvalidToken = New(KindAuthentication, "not authorized, token failed")
	ErrForbidden    = New(KindAuthorization, "insufficient permissions")
)
