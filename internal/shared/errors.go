package shared

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates resource not found.
	ErrNotFound = errors.New("not found")
	// ErrInvalidCredentials indicates login failure. Unknown username and
	// wrong password both map here so callers cannot enumerate users.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUnauthenticated occurs when a guarded operation is called without a session.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrForbidden occurs when the authenticated user lacks a required permission.
	ErrForbidden = errors.New("forbidden")
	// ErrValidation indicates malformed input to a write operation.
	ErrValidation = errors.New("validation failed")
)

// MissingPermissionError is a Forbidden failure that names the single
// permission the caller lacked. It never carries the rest of the user's
// permission set.
type MissingPermissionError struct {
	Permission string
}

func (e *MissingPermissionError) Error() string {
	return fmt.Sprintf("forbidden: missing permission %q", e.Permission)
}

// Is makes the error match ErrForbidden under errors.Is.
func (e *MissingPermissionError) Is(target error) bool {
	return target == ErrForbidden
}
