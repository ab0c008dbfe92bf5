package domain

import (
	"errors"
	"strings"
)

// Error kinds. Every error returned by a service carries exactly one of these,
// so callers can branch with errors.Is.
var (
	ErrNotFound          = errors.New("not found")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrConflict          = errors.New("conflict")
	ErrInputValidation   = errors.New("input validation")
	ErrAlreadyRegistered = errors.New("already registered")
)

// Machine-readable error codes surfaced to API clients.
const (
	CodeNotFound          = "not_found"
	CodeUnauthorized      = "unauthorized"
	CodeConflict          = "conflict"
	CodeInputValidation   = "input_validation"
	CodeAlreadyRegistered = "already_registered"
)

// Error is a typed business error: a kind, a human-readable message and optional
// details (for example the ids of the events a booking collides with).
type Error struct {
	Kind    error
	Message string
	Details []string
}

func (e *Error) Error() string {
	if len(e.Details) == 0 {
		return e.Message
	}
	return e.Message + ": " + strings.Join(e.Details, ", ")
}

func (e *Error) Unwrap() error { return e.Kind }

// Code returns the machine-readable code for the error kind.
func (e *Error) Code() string {
	return codeForKind(e.Kind)
}

func codeForKind(kind error) string {
	switch {
	case errors.Is(kind, ErrNotFound):
		return CodeNotFound
	case errors.Is(kind, ErrUnauthorized):
		return CodeUnauthorized
	case errors.Is(kind, ErrConflict):
		return CodeConflict
	case errors.Is(kind, ErrInputValidation):
		return CodeInputValidation
	case errors.Is(kind, ErrAlreadyRegistered):
		return CodeAlreadyRegistered
	}
	return ""
}

// ErrorCode returns the machine-readable code carried by err, or "" when err is
// not a business error.
func ErrorCode(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Code()
	}
	return codeForKind(err)
}

func NotFound(msg string) error {
	return &Error{Kind: ErrNotFound, Message: msg}
}

func Unauthorized(msg string) error {
	return &Error{Kind: ErrUnauthorized, Message: msg}
}

func Conflict(msg string, details ...string) error {
	return &Error{Kind: ErrConflict, Message: msg, Details: details}
}

func InputValidation(msg string) error {
	return &Error{Kind: ErrInputValidation, Message: msg}
}

func AlreadyRegistered(msg string) error {
	return &Error{Kind: ErrAlreadyRegistered, Message: msg}
}
