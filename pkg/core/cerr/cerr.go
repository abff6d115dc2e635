// Package cerr provides categorized errors for the core layer.
// Each error category corresponds to one HTTP status code, so the
// adapters layer can serialize failures without inspecting their
// underlying cause. The wrapped error is preserved for errors.Is and
// errors.As based inspections.
package cerr

import (
	"fmt"
	"net/http"
)

type Error struct {
	Err            error
	HTTPStatusCode int
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Error() string {
	return fmt.Sprintf("[%d] %s", e.HTTPStatusCode, e.Err.Error())
}

func BadRequest(err error) *Error {
	return &Error{Err: err, HTTPStatusCode: http.StatusBadRequest}
}

// Unauthorized marks failures of resolving a bearer credential to a
// user identity by the remote account service.
func Unauthorized(err error) *Error {
	return &Error{Err: err, HTTPStatusCode: http.StatusUnauthorized}
}

// PermissionDenied marks a denied location permission. This condition
// is terminal for the process lifetime; it may not be retried without
// an external re-grant.
func PermissionDenied(err error) *Error {
	return &Error{Err: err, HTTPStatusCode: http.StatusForbidden}
}

func NotFound(err error) *Error {
	return &Error{Err: err, HTTPStatusCode: http.StatusNotFound}
}

func Conflict(err error) *Error {
	return &Error{Err: err, HTTPStatusCode: http.StatusConflict}
}

// RejectedByServer wraps a validation rejection reported by the job
// directory for a posting mutation. The server message is carried
// verbatim so it can be surfaced to the caller.
func RejectedByServer(err error) *Error {
	return &Error{Err: err, HTTPStatusCode: http.StatusUnprocessableEntity}
}

// FetchFailed marks a network or 5xx failure while listing postings
// from the job directory. Transient; the next externally triggered
// refresh retries it.
func FetchFailed(err error) *Error {
	return &Error{Err: err, HTTPStatusCode: http.StatusBadGateway}
}

// Unavailable marks a transient collaborator outage, either of the
// location provider or of the notification sink.
func Unavailable(err error) *Error {
	return &Error{Err: err, HTTPStatusCode: http.StatusServiceUnavailable}
}

// Timeout marks a refresh cycle which was abandoned because its
// deadline elapsed before the blocking collaborators completed.
func Timeout(err error) *Error {
	return &Error{Err: err, HTTPStatusCode: http.StatusGatewayTimeout}
}
