package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Failure kinds surfaced by the dashboard workflow. Each maps to exactly one HTTP status.
var (
	// Authentication errors
	ErrUnauthenticated      = errors.New("unauthenticated")
	ErrMissingUpstreamToken = errors.New("missing upstream access token")
	ErrNotOwner             = errors.New("not the dashboard owner")

	// Login errors
	ErrMissingCode          = errors.New("missing authorization code")
	ErrAuthenticationFailed = errors.New("authentication failed")

	// Collaborator errors
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	ErrStoreUnavailable    = errors.New("store unavailable")

	// Request errors
	ErrInvalidRequest = errors.New("invalid request")
	ErrNotFound       = errors.New("not found")
)

// HTTPStatus returns the status code for the first failure kind found in err's chain.
// Unknown errors are treated as internal.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case Is(err, ErrUnauthenticated), Is(err, ErrMissingUpstreamToken):
		return http.StatusUnauthorized
	case Is(err, ErrNotOwner):
		return http.StatusForbidden
	case Is(err, ErrMissingCode), Is(err, ErrInvalidRequest):
		return http.StatusBadRequest
	case Is(err, ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// New returns an error that maps to 500 unless wrapped into a failure kind.
func New(text string) error {
	return errors.New(text)
}

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Mark attaches a failure kind to a cause so that both remain visible to Is.
func Mark(kind, cause error) error {
	if cause == nil {
		return kind
	}
	return fmt.Errorf("%w: %w", kind, cause)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
