// internal/pkg/apperrors/errors.go
package apperrors

import (
	"errors"
	"fmt"
)

// Kind classifies an error so the request boundary can map it to a response
type Kind int

const (
	// Unknown is the zero value for errors that carry no classification
	Unknown Kind = iota
	// NotFound means an entity id did not resolve, or the entity belongs to another user
	NotFound
	// InvalidInput means the caller supplied malformed data (bad quantity, missing field)
	InvalidInput
	// InvalidState means the operation is not valid for the current state (empty cart checkout)
	InvalidState
	// Conflict means a uniqueness rule was violated (duplicate email)
	Conflict
	// StorageFailure means the backing store was unreachable or rejected a write
	StorageFailure
)

// String returns a stable name for the kind
func (k Kind) String() string {
	switch k {
	case NotFound:
		return "not_found"
	case InvalidInput:
		return "invalid_input"
	case InvalidState:
		return "invalid_state"
	case Conflict:
		return "conflict"
	case StorageFailure:
		return "storage_failure"
	default:
		return "unknown"
	}
}

// Error is a classified application error
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a classified error with a formatted message
func New(kind Kind, format string, args ...interface{}) *Error {
	return &Error{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap classifies an underlying error while keeping it unwrappable
func Wrap(kind Kind, err error, format string, args ...interface{}) *Error {
	return &Error{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}

// NotFoundf creates a NotFound error
func NotFoundf(format string, args ...interface{}) *Error {
	return New(NotFound, format, args...)
}

// InvalidInputf creates an InvalidInput error
func InvalidInputf(format string, args ...interface{}) *Error {
	return New(InvalidInput, format, args...)
}

// InvalidStatef creates an InvalidState error
func InvalidStatef(format string, args ...interface{}) *Error {
	return New(InvalidState, format, args...)
}

// Conflictf creates a Conflict error
func Conflictf(format string, args ...interface{}) *Error {
	return New(Conflict, format, args...)
}

// Storage wraps a storage layer error
func Storage(err error, format string, args ...interface{}) *Error {
	return Wrap(StorageFailure, err, format, args...)
}

// KindOf extracts the kind from an error chain, Unknown if unclassified
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return Unknown
}

// IsKind reports whether the error chain carries the given kind
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
