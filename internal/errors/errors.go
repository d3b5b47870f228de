package errors

import (
	"errors"
	"fmt"
)

// Common error types for the tracker edge
var (
	// Session errors
	ErrMissingCredentials = errors.New("missing credentials")
	ErrRefreshFailed      = errors.New("token refresh failed")
	ErrInvalidExpiry      = errors.New("invalid token expiry")
	ErrInvalidToken       = errors.New("invalid token")

	// Backend errors
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrBadRequest   = errors.New("bad request")
	ErrServer       = errors.New("backend server error")

	// General errors
	ErrInvalidRequest = errors.New("invalid request")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Join returns an error that wraps the given errors, discarding nils
func Join(errs ...error) error {
	return errors.Join(errs...)
}

// FromStatus maps a non-2xx backend status onto the matching sentinel error.
func FromStatus(status int) error {
	switch {
	case status == 401 || status == 403:
		return ErrUnauthorized
	case status == 404:
		return ErrNotFound
	case status >= 500:
		return ErrServer
	default:
		return ErrBadRequest
	}
}
