// Package errors defines the domain error kinds returned by services and
// translated to HTTP responses by the api package.
//
//	if taken {
//	    return errors.AlreadyExists("email is already registered")
//	}
//
//	if errors.Is(err, errors.ErrInvalidCredentials) { ... }
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Re-exported so callers importing this package as domainerrors do not also
// need the standard library package.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	Join   = errors.Join
)

// Code is a machine-readable error kind.
type Code string

const (
	CodeValidation         Code = "VALIDATION"
	CodeInvalidArgument    Code = "INVALID_ARGUMENT"
	CodeAlreadyExists      Code = "ALREADY_EXISTS"
	CodeInvalidCredentials Code = "INVALID_CREDENTIALS"
	CodeNotFound           Code = "NOT_FOUND"
	CodeUnauthorized       Code = "UNAUTHORIZED"
	CodeForbidden          Code = "FORBIDDEN"
	CodeAuthProvider       Code = "AUTH_PROVIDER"
	CodeTooManyRequests    Code = "TOO_MANY_REQUESTS"
	CodeInternal           Code = "INTERNAL"
)

// HTTPStatus returns the status code a response carrying this kind uses.
// Duplicate emails and failed logins are both reported as 400 so that the
// login endpoint never distinguishes an unknown email from a bad password.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeValidation, CodeInvalidArgument, CodeAlreadyExists, CodeInvalidCredentials:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeUnauthorized, CodeAuthProvider:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeTooManyRequests:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// Error is a domain error with a code, a caller-safe message and an optional
// wrapped cause that is only ever logged.
type Error struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Is matches any *Error with the same Code.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// HTTPStatus returns the HTTP status code for this error.
func (e *Error) HTTPStatus() int {
	return e.Code.HTTPStatus()
}

// WithDetails returns a copy of e carrying details.
func (e *Error) WithDetails(details any) *Error {
	return &Error{Code: e.Code, Message: e.Message, Details: details, cause: e.cause}
}

// WithCause returns a copy of e wrapping err.
func (e *Error) WithCause(err error) *Error {
	return &Error{Code: e.Code, Message: e.Message, Details: e.Details, cause: err}
}

// Sentinels for errors.Is.
var (
	ErrValidation         = &Error{Code: CodeValidation, Message: "validation error"}
	ErrInvalidArgument    = &Error{Code: CodeInvalidArgument, Message: "invalid argument"}
	ErrAlreadyExists      = &Error{Code: CodeAlreadyExists, Message: "already exists"}
	ErrInvalidCredentials = &Error{Code: CodeInvalidCredentials, Message: "invalid email or password"}
	ErrNotFound           = &Error{Code: CodeNotFound, Message: "not found"}
	ErrUnauthorized       = &Error{Code: CodeUnauthorized, Message: "unauthorized"}
	ErrForbidden          = &Error{Code: CodeForbidden, Message: "forbidden"}
	ErrAuthProvider       = &Error{Code: CodeAuthProvider, Message: "external login failed"}
	ErrTooManyRequests    = &Error{Code: CodeTooManyRequests, Message: "too many requests"}
	ErrInternal           = &Error{Code: CodeInternal, Message: "internal server error"}
)

func Validation(msg string) *Error {
	return &Error{Code: CodeValidation, Message: msg}
}

// ValidationWithDetails creates a validation error with per-field details.
func ValidationWithDetails(msg string, details any) *Error {
	return &Error{Code: CodeValidation, Message: msg, Details: details}
}

func InvalidArgument(msg string) *Error {
	return &Error{Code: CodeInvalidArgument, Message: msg}
}

func AlreadyExists(msg string) *Error {
	return &Error{Code: CodeAlreadyExists, Message: msg}
}

// InvalidCredentials always carries the same message; callers must not be able
// to tell which factor failed.
func InvalidCredentials() *Error {
	return &Error{Code: CodeInvalidCredentials, Message: ErrInvalidCredentials.Message}
}

func NotFound(msg string) *Error {
	return &Error{Code: CodeNotFound, Message: msg}
}

func Unauthorized(msg string) *Error {
	return &Error{Code: CodeUnauthorized, Message: msg}
}

func Forbidden(msg string) *Error {
	return &Error{Code: CodeForbidden, Message: msg}
}

// AuthProvider reports a failed exchange or profile fetch with an OAuth provider.
func AuthProvider(provider string, cause error) *Error {
	return &Error{
		Code:    CodeAuthProvider,
		Message: fmt.Sprintf("%s login failed", provider),
		cause:   cause,
	}
}

func TooManyRequests(msg string) *Error {
	return &Error{Code: CodeTooManyRequests, Message: msg}
}

// Internal wraps an unexpected failure. The message returned to callers is
// always generic.
func Internal(cause error) *Error {
	return &Error{Code: CodeInternal, Message: ErrInternal.Message, cause: cause}
}

// From converts any error into a domain error. Unknown errors become INTERNAL.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var de *Error
	if errors.As(err, &de) {
		return de
	}
	return Internal(err)
}
