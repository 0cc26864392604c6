package errors

import (
	"errors"
	"fmt"
)

// Sentinels shared by services and handlers. Backend failures match them
// through upstream.APIError, so a handler only ever switches on these.
var (
	// ErrUnauthorized: no usable session, or the backend refused the
	// credential (401/403). Rendered as 401.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrAccessDenied: a session exists but its role cannot perform the
	// action. Raised before any backend call. Rendered as 403.
	ErrAccessDenied = errors.New("access denied")

	// ErrNotFound: the one entity an action targets does not exist
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput: the request or the backend rejected the submitted values
	ErrInvalidInput = errors.New("invalid input")

	// ErrConflict: the write would repeat or collide with one already made
	ErrConflict = errors.New("conflict")

	// ErrUnavailable: the backend failed, timed out or sits behind an open breaker
	ErrUnavailable = errors.New("service unavailable")
)

// NotFoundError names the missing entity, e.g. "user not found"
func NotFoundError(entity string) error {
	return fmt.Errorf("%s %w", entity, ErrNotFound)
}

// AccessDeniedError records why the session was turned away
func AccessDeniedError(reason string) error {
	if reason == "" {
		return ErrAccessDenied
	}
	return fmt.Errorf("%w: %s", ErrAccessDenied, reason)
}

// InvalidInputError points at the offending request field
func InvalidInputError(field, reason string) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalidInput, field, reason)
}

func ConflictError(reason string) error {
	return fmt.Errorf("%w: %s", ErrConflict, reason)
}
