package errors

import (
	"errors"
	"fmt"
)

// Kind classifies a domain error for the embedding UI layer.
type Kind string

const (
	KindValidation Kind = "VALIDATION"
	KindNotFound   Kind = "NOT_FOUND"
	KindStorage    Kind = "STORAGE"
	KindState      Kind = "STATE"
	KindInternal   Kind = "INTERNAL"
)

// Error represents a typed domain error.
type Error struct {
	Kind    Kind   `json:"kind"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New creates a new Error instance.
func New(kind Kind, code string, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, kind Kind, code string, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message, Err: err}
}

// Predefined errors for common scenarios.
var (
	ErrValidation = New(KindValidation, "VALIDATION_ERROR", "validation failed")
	ErrNotFound   = New(KindNotFound, "NOT_FOUND", "resource not found")
	ErrStorage    = New(KindStorage, "STORAGE_ERROR", "storage operation failed")
	ErrState      = New(KindState, "STATE_ERROR", "operation not allowed in current state")
	ErrInternal   = New(KindInternal, "INTERNAL_ERROR", "internal error")
)

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, ErrInternal.Kind, ErrInternal.Code, ErrInternal.Message)
}

// Clone returns a copy of the error allowing for message overrides.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
