package apperror

import (
	"errors"
	"fmt"
)

// ErrInvalidUserID rejects a request before any backend call is made.
var ErrInvalidUserID = errors.New("invalid user identifier")

// ValidationError carries a field-level rejection that happened before I/O.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// MalformedSessionError marks a session row whose creation timestamp is
// missing or unparseable. Callers skip the row instead of failing the page.
type MalformedSessionError struct {
	SessionID string
}

func (e *MalformedSessionError) Error() string {
	return fmt.Sprintf("session %s has a malformed creation timestamp", e.SessionID)
}

// BackendUnavailableError wraps a query/command failure from Postgres or
// Redis. It is logged server-side and degraded to a safe default response,
// never propagated raw to the client.
type BackendUnavailableError struct {
	Backend string
	Err     error
}

func (e *BackendUnavailableError) Error() string {
	return fmt.Sprintf("%s backend unavailable: %v", e.Backend, e.Err)
}

func (e *BackendUnavailableError) Unwrap() error {
	return e.Err
}
