package errors

import (
	"errors"
	"fmt"
)

// Code categorizes an error for callers that need to branch on failure kind.
type Code string

const (
	// CodeUnknown indicates an unclassified error
	CodeUnknown Code = "unknown"

	// CodeInvalidArgument indicates the caller supplied a bad argument
	CodeInvalidArgument Code = "invalid_argument"

	// CodeNotFound indicates a requested resource was not found
	CodeNotFound Code = "not_found"

	// CodeAlreadyExists indicates an attempt to create a resource that already exists
	CodeAlreadyExists Code = "already_exists"

	// CodePermissionDenied indicates the actor does not have permission
	CodePermissionDenied Code = "permission_denied"

	// CodeConflict indicates a concurrent update lost an optimistic-lock race
	CodeConflict Code = "conflict"

	// CodeValidation indicates a user-correctable rules violation
	CodeValidation Code = "validation"

	// CodeInternal indicates a programmer or configuration error
	CodeInternal Code = "internal"
)

// Error is the application error type carrying a code and optional metadata.
type Error struct {
	Code    Code
	Message string
	Cause   error
	Meta    map[string]any
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// WithMeta attaches context to the error (builder pattern).
func (e *Error) WithMeta(key string, value any) *Error {
	if e.Meta == nil {
		e.Meta = make(map[string]any)
	}
	e.Meta[key] = value
	return e
}

// New creates an error with the given code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates an error with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap wraps an error with additional context, preserving its code when it
// is already an *Error.
func Wrap(err error, message string) *Error {
	if err == nil {
		return nil
	}

	var appErr *Error
	if errors.As(err, &appErr) {
		return &Error{
			Code:    appErr.Code,
			Message: message,
			Cause:   err,
			Meta:    copyMeta(appErr.Meta),
		}
	}

	return &Error{
		Code:    CodeUnknown,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with a formatted message.
func Wrapf(err error, format string, args ...any) *Error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// Helper constructors for common error kinds.

func NotFound(message string) *Error {
	return New(CodeNotFound, message)
}

func NotFoundf(format string, args ...any) *Error {
	return Newf(CodeNotFound, format, args...)
}

func InvalidArgument(message string) *Error {
	return New(CodeInvalidArgument, message)
}

func InvalidArgumentf(format string, args ...any) *Error {
	return Newf(CodeInvalidArgument, format, args...)
}

func AlreadyExists(message string) *Error {
	return New(CodeAlreadyExists, message)
}

func AlreadyExistsf(format string, args ...any) *Error {
	return Newf(CodeAlreadyExists, format, args...)
}

func PermissionDenied(message string) *Error {
	return New(CodePermissionDenied, message)
}

func PermissionDeniedf(format string, args ...any) *Error {
	return Newf(CodePermissionDenied, format, args...)
}

func Conflict(message string) *Error {
	return New(CodeConflict, message)
}

func Conflictf(format string, args ...any) *Error {
	return Newf(CodeConflict, format, args...)
}

func Internal(message string) *Error {
	return New(CodeInternal, message)
}

func Internalf(format string, args ...any) *Error {
	return Newf(CodeInternal, format, args...)
}

// Is reports whether err carries the given code.
func Is(err error, code Code) bool {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

func IsNotFound(err error) bool          { return Is(err, CodeNotFound) }
func IsInvalidArgument(err error) bool   { return Is(err, CodeInvalidArgument) }
func IsAlreadyExists(err error) bool     { return Is(err, CodeAlreadyExists) }
func IsPermissionDenied(err error) bool  { return Is(err, CodePermissionDenied) }
func IsConflict(err error) bool          { return Is(err, CodeConflict) }
func IsInternal(err error) bool          { return Is(err, CodeInternal) }

// GetCode returns the error's code, or CodeUnknown for foreign errors.
func GetCode(err error) Code {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeUnknown
}

func copyMeta(meta map[string]any) map[string]any {
	if meta == nil {
		return nil
	}

	copied := make(map[string]any, len(meta))
	for k, v := range meta {
		copied[k] = v
	}
	return copied
}
