// Package apperr defines the application error taxonomy surfaced over HTTP.
//
// An *Error carries the status code and the plain-text message the client
// sees. Anything that is not an *Error by the time it reaches the terminal
// responder is reported as a generic 500. Translators rewrite recognizable
// lower-level errors (for example store validation failures) into *Error
// before the terminal responder runs.
package apperr

import (
	"errors"
	"net/http"
)

const (
	// DefaultStatus is used when an Error carries no status.
	DefaultStatus = http.StatusInternalServerError
	// DefaultMessage is used when an Error carries no message, and for every
	// error outside the taxonomy.
	DefaultMessage = "Something went wrong"

	// ValidationPrefix prefixes store validation messages after translation.
	ValidationPrefix = "Validation Failed..."
)

// Error is an HTTP-visible application error.
type Error struct {
	Status  int
	Message string
}

// New returns an Error with the given status and message.
func New(status int, msg string) *Error {
	return &Error{Status: status, Message: msg}
}

// BadRequest returns a 400 Error.
func BadRequest(msg string) *Error { return New(http.StatusBadRequest, msg) }

// NotFound returns a 404 Error.
func NotFound(msg string) *Error { return New(http.StatusNotFound, msg) }

// Error implements error.
func (e *Error) Error() string {
	if e.Message == "" {
		return DefaultMessage
	}
	return e.Message
}

// StatusCode returns Status, or DefaultStatus when unset.
func (e *Error) StatusCode() int {
	if e.Status == 0 {
		return DefaultStatus
	}
	return e.Status
}

// As reports whether err is (or wraps) an *Error and returns it.
func As(err error) (*Error, bool) {
	var ae *Error
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

// Resolve maps any error to the status and message written to the client.
func Resolve(err error) (status int, msg string) {
	if ae, ok := As(err); ok {
		return ae.StatusCode(), ae.Error()
	}
	return DefaultStatus, DefaultMessage
}
