package sponsorblock

import (
	"errors"
	"fmt"
)

// ErrInvalidInput indicates caller-supplied arguments were structurally
// invalid (empty video ID, empty explicit category set). It is never worth
// retrying; the caller has a bug.
var ErrInvalidInput = errors.New("sponsorblock: invalid input")

// ServiceError indicates the API responded with a non-2xx status other than
// 404. The status code is surfaced verbatim; retry policy is left to the
// caller.
type ServiceError struct {
	// StatusCode is the HTTP status code returned by the API.
	StatusCode int
	// Body is the response body, if any.
	Body []byte
}

// Error returns a string representation of the service error.
func (e *ServiceError) Error() string {
	return fmt.Sprintf("sponsorblock: service error: status %d", e.StatusCode)
}

// DecodeError indicates the response body did not match the expected schema:
// malformed JSON, an unrecognized category or action type value, or segment
// times that fail sanity checks. The whole response is rejected; no partial
// results are returned.
type DecodeError struct {
	// Field names the offending field or value kind, when known.
	Field string
	// Value is the offending fragment, when known.
	Value string
	// Err is the underlying error, if any.
	Err error
}

// Error returns a string representation of the decode error.
func (e *DecodeError) Error() string {
	switch {
	case e.Field != "" && e.Value != "":
		return fmt.Sprintf("sponsorblock: decode error: unrecognized %s value %q", e.Field, e.Value)
	case e.Field != "":
		return fmt.Sprintf("sponsorblock: decode error: %s: %v", e.Field, e.Err)
	default:
		return fmt.Sprintf("sponsorblock: decode error: %v", e.Err)
	}
}

// Unwrap returns the underlying error for use with errors.Is() and errors.As().
func (e *DecodeError) Unwrap() error { return e.Err }

// TransportError wraps a network-level failure (connection refused, timeout,
// DNS failure) from the underlying HTTP transport, so callers have a single
// place to branch on connectivity issues versus protocol issues.
type TransportError struct {
	Err error
}

// Error returns a string representation of the transport error.
func (e *TransportError) Error() string {
	return fmt.Sprintf("sponsorblock: transport error: %v", e.Err)
}

// Unwrap returns the underlying error for use with errors.Is() and errors.As().
func (e *TransportError) Unwrap() error { return e.Err }
