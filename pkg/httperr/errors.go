package httperr

import (
	"errors"
	"net/http"
)

// Error is an HTTP-mappable error with a client-safe message.
type Error struct {
	Code    int    // HTTP status code
	Message string // Message written to the response body
}

// Error implements the error interface.
func (e Error) Error() string {
	return e.Message
}

// New creates an Error with the given status code and message.
func New(code int, message string) Error {
	return Error{Code: code, Message: message}
}

// Validation creates a 400 error for a missing or malformed input.
func Validation(message string) Error {
	return Error{Code: http.StatusBadRequest, Message: message}
}

// Conflict creates a 409 error for a duplicate resource.
func Conflict(message string) Error {
	return Error{Code: http.StatusConflict, Message: message}
}

// Unauthorized creates a 401 error.
func Unauthorized(message string) Error {
	return Error{Code: http.StatusUnauthorized, Message: message}
}

// NotFound creates a 404 error.
func NotFound(message string) Error {
	return Error{Code: http.StatusNotFound, Message: message}
}

// Classify extracts the HTTP mapping from err. Errors that are not an Error
// (directly or wrapped) map to 500 with a generic message.
func Classify(err error) Error {
	var httpErr Error
	if errors.As(err, &httpErr) {
		return httpErr
	}
	return Error{Code: http.StatusInternalServerError, Message: "Internal server error"}
}

// IsClientError reports whether the classified status is a 4xx.
func IsClientError(err error) bool {
	code := Classify(err).Code
	return code >= http.StatusBadRequest && code < http.StatusInternalServerError
}
