// Package errors provides the error kinds shared by every domain package. Use cases
// return errors built from these kinds and HTTP handlers translate them into status
// codes, so no layer needs to know about the other's details.
package errors

import (
	"errors"
	"fmt"
)

// Error kinds. Domain errors wrap exactly one of these.
var (
	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates a conflict with existing data (e.g., duplicate username).
	ErrConflict = errors.New("conflict")

	// ErrInvalidInput indicates the input data is invalid or violates a business rule.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized indicates missing, invalid or revoked credentials.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden indicates the caller is authenticated but not allowed to act.
	ErrForbidden = errors.New("forbidden")
)

// CodedError is a domain error with a stable, machine readable code such as
// "store/out-of-stock". It unwraps to its kind.
type CodedError struct {
	kind    error
	code    string
	message string
}

// Coded builds a CodedError of the given kind.
func Coded(kind error, code, message string) *CodedError {
	return &CodedError{kind: kind, code: code, message: message}
}

// Error returns the human readable message followed by the kind.
func (e *CodedError) Error() string {
	return fmt.Sprintf("%s: %s", e.message, e.kind)
}

// Unwrap returns the error kind.
func (e *CodedError) Unwrap() error {
	return e.kind
}

// Code returns the machine readable code.
func (e *CodedError) Code() string {
	return e.code
}

// Message returns the human readable message without the kind suffix.
func (e *CodedError) Message() string {
	return e.message
}

// CodeOf returns the code of the first CodedError in err's chain, or "".
func CodeOf(err error) string {
	var coded *CodedError
	if errors.As(err, &coded) {
		return coded.code
	}
	return ""
}

// MessageOf returns the message of the first CodedError in err's chain, or "".
func MessageOf(err error) string {
	var coded *CodedError
	if errors.As(err, &coded) {
		return coded.message
	}
	return ""
}

// New creates a new error with the given message.
func New(message string) error {
	return errors.New(message)
}

// Wrap wraps an error with additional context while preserving the error chain.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Join is a convenience wrapper around errors.Join.
func Join(errs ...error) error {
	return errors.Join(errs...)
}
