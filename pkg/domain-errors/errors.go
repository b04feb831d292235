// Package domainerrors carries coded errors across service boundaries.
// Stores report infrastructure facts via pkg/platform/sentinel; services wrap
// those facts (and their own validation failures) into coded errors so the
// HTTP layer can map them to statuses without inspecting error strings.
package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code classifies an error for transport mapping and retry decisions.
type Code string

const (
	// CodeValidation marks malformed input: empty names, negative quantities,
	// an update payload with no fields.
	CodeValidation Code = "validation"
	// CodeBadRequest marks requests the transport layer could not interpret,
	// e.g. a malformed id or an undecodable body.
	CodeBadRequest Code = "bad_request"
	// CodeNotFound marks operations targeting an id that does not exist.
	CodeNotFound Code = "not_found"
	// CodeUnavailable marks a temporarily unreachable backing store.
	CodeUnavailable Code = "unavailable"
	// CodeInternal marks everything else; details are not exposed to callers.
	CodeInternal Code = "internal"
)

// Error is a coded domain error with an optional wrapped cause and optional
// structured details surfaced to API clients.
type Error struct {
	Code    Code
	Message string
	Details any
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// New creates a coded error without a cause.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap attaches a code and message to an underlying error.
func Wrap(err error, code Code, message string) *Error {
	return &Error{Code: code, Message: message, cause: err}
}

// WithDetails returns a copy of the error carrying structured details for the
// API error envelope.
func (e *Error) WithDetails(details any) *Error {
	clone := *e
	clone.Details = details
	return &clone
}

// HasCode reports whether err (or anything it wraps) is a domain error with
// the given code.
func HasCode(err error, code Code) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// CodeOf extracts the code from err, defaulting to CodeInternal for plain
// errors so unknown failures never leak as client faults.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// ToHTTPStatus maps a code to its HTTP response status.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeValidation, CodeBadRequest:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
