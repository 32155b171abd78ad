// Package dErrors defines the typed error taxonomy for the care-team core.
//
// Services and handlers communicate failure through codes, never through
// string matching. Stores return sentinel facts (pkg/platform/sentinel);
// services translate those facts into one of these codes before they cross
// the transport boundary.
package dErrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code classifies a domain error.
type Code string

const (
	// CodeValidation marks malformed input: bad enum value, empty required
	// reason, end date before start date. Never retried.
	CodeValidation Code = "validation"

	// CodeConflict marks a mutual-exclusion violation or a concurrent-write
	// race detected by storage. Safe to retry after re-reading state.
	CodeConflict Code = "conflict"

	// CodeNotFound marks an operation on a nonexistent id.
	CodeNotFound Code = "not_found"

	// CodeArchived marks a mutation attempted against an archived client.
	CodeArchived Code = "archived_client"

	// CodeUnauthorized marks missing or invalid actor credentials.
	CodeUnauthorized Code = "unauthorized"

	// CodeTimeout marks a transaction aborted by context cancellation.
	CodeTimeout Code = "timeout"

	// CodeInternal marks infrastructure failures not otherwise classified.
	CodeInternal Code = "internal"
)

// Error carries a code together with a human-readable message and an
// optional wrapped cause.
type Error struct {
	Code    Code
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// New creates a domain error with the given code and message.
func New(code Code, message string) error {
	return &Error{Code: code, Message: message}
}

// Newf creates a domain error with a formatted message.
func Newf(code Code, format string, args ...any) error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and message to an underlying cause.
func Wrap(err error, code Code, message string) error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Message: message, cause: err}
}

// Is reports whether err carries the given code.
func Is(err error, code Code) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// CodeOf extracts the code from err, defaulting to CodeInternal.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// MessageOf extracts the message from err without the wrapped cause, so
// handlers can return it to callers without leaking internals.
func MessageOf(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Message
	}
	return "internal error"
}

// ToHTTPStatus maps a code to its transport status.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeValidation:
		return http.StatusUnprocessableEntity
	case CodeConflict:
		return http.StatusConflict
	case CodeNotFound:
		return http.StatusNotFound
	case CodeArchived:
		return http.StatusForbidden
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
