package domain

import (
	"errors"
	"fmt"
)

// GenericSearchFailure is shown when a failure carries no message of its own.
const GenericSearchFailure = "Search failed"

// Domain errors represent business logic failures.
var (
	// ErrEmptyQuery indicates the query was empty after trimming.
	ErrEmptyQuery = errors.New("Please enter a search query") //nolint:staticcheck // user-facing text

	// ErrStaleOutcome indicates a response arrived for a superseded submission.
	ErrStaleOutcome = errors.New("stale search outcome")

	// ErrBackendUnavailable indicates no backend is configured.
	ErrBackendUnavailable = errors.New("search backend unavailable")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")
)

// ValidationError is raised locally before any network call.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string { return e.Err.Error() }

func (e *ValidationError) Unwrap() error { return e.Err }

// TransportError covers unreachable hosts, timeouts and malformed bodies.
type TransportError struct {
	// Op names the request that failed ("status" or "search").
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: transport failure", e.Op)
	}
	return e.Err.Error()
}

func (e *TransportError) Unwrap() error { return e.Err }

// ApplicationError is a well-formed non-success reply from the backend.
// Message is the backend-supplied error string, or GenericSearchFailure.
type ApplicationError struct {
	StatusCode int
	Message    string
}

func (e *ApplicationError) Error() string {
	if e.Message == "" {
		return GenericSearchFailure
	}
	return e.Message
}

// FailureMessage returns the text shown in the Error region for err.
func FailureMessage(err error) string {
	if err == nil {
		return ""
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return GenericSearchFailure
}
