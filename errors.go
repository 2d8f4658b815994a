package jasiapi

import (
	"errors"
	"fmt"
)

// ErrNotFound reports that the queried earthquake ID has no upstream record.
var ErrNotFound = errors.New("earthquake not found")

// ValidationError reports malformed input. It is returned before any
// network call is made.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// RequestError reports a failed round trip: an unreachable host, a non-200
// status, or a rejection message from the upstream.
type RequestError struct {
	StatusCode int    // 0 when the request never completed
	Message    string // upstream rejection text, if any
	Err        error
}

func (e *RequestError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("request failed: %v", e.Err)
	case e.Message != "":
		return fmt.Sprintf("upstream rejected request: %s", e.Message)
	default:
		return fmt.Sprintf("unexpected status %d", e.StatusCode)
	}
}

func (e *RequestError) Unwrap() error { return e.Err }

// ParseError reports a response that does not match the expected shape,
// which usually means the upstream format drifted.
type ParseError struct {
	Field string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse %s %q: %v", e.Field, e.Value, e.Err)
	}
	return fmt.Sprintf("parse %s: unexpected value %q", e.Field, e.Value)
}

func (e *ParseError) Unwrap() error { return e.Err }
