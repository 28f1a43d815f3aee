package domain

import (
	"errors"
	"net/http"
)

// Kind classifies an Error for the transport layer.
type Kind string

const (
	KindValidation Kind = "validation"
	KindConflict   Kind = "conflict"
	KindAuth       Kind = "auth"
	KindConfig     Kind = "config"
	KindInternal   Kind = "internal"
)

// Error is the single failure type surfaced by the auth core. Message is safe
// to show to clients; Err carries the internal cause and is only logged.
type Error struct {
	Kind    Kind
	Message string
	Status  int
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// ErrInvalidCredentials is shared by every failed login path so that
// "unknown email" and "wrong password" are indistinguishable.
var ErrInvalidCredentials = &Error{Kind: KindAuth, Message: "Invalid credentials", Status: http.StatusUnauthorized}

// Messages for missing required fields, shared by the transport and the service.
const (
	MsgSignupFieldsRequired = "Please provide name, email and password"
	MsgLoginFieldsRequired  = "Please provide email and password"
)

func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg, Status: http.StatusBadRequest}
}

func Conflict(msg string) *Error {
	return &Error{Kind: KindConflict, Message: msg, Status: http.StatusBadRequest}
}

func Unauthorized(msg string) *Error {
	return &Error{Kind: KindAuth, Message: msg, Status: http.StatusUnauthorized}
}

func ConfigError(msg string) *Error {
	return &Error{Kind: KindConfig, Message: msg, Status: http.StatusInternalServerError}
}

// Internal wraps an unexpected failure behind a generic client message.
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "Internal Server Error", Status: http.StatusInternalServerError, Err: err}
}

// KindOf returns the Kind of the first *Error in err's chain, or KindInternal
// for foreign errors. A nil error has no kind.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}
