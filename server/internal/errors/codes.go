// Package errors defines the structured error codes surfaced by the API
// layer. Service sentinels are mapped onto these codes at the transport
// boundary so clients see a stable machine-readable taxonomy.
package errors

import (
	"fmt"
)

// ErrorCode identifies a class of API failure.
type ErrorCode string

const (
	// ErrCodeUnauthorized indicates authentication failure.
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	// ErrCodePermissionDenied indicates the caller's role does not allow the operation.
	ErrCodePermissionDenied ErrorCode = "PERMISSION_DENIED"
	// ErrCodeInvalidArgument indicates invalid input parameters.
	ErrCodeInvalidArgument ErrorCode = "INVALID_ARGUMENT"
	// ErrCodeNotFound indicates the referenced resource does not exist.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeConflict indicates the operation clashes with existing state.
	ErrCodeConflict ErrorCode = "CONFLICT"
	// ErrCodeLoadCapExceeded indicates a schedule mutation was rejected by
	// the weekly teaching-load cap.
	ErrCodeLoadCapExceeded ErrorCode = "LOAD_CAP_EXCEEDED"
	// ErrCodeRateLimitExceeded indicates the client exceeded its rate limit.
	ErrCodeRateLimitExceeded ErrorCode = "RATE_LIMIT_EXCEEDED"
	// ErrCodeInternal indicates an unexpected server-side failure.
	ErrCodeInternal ErrorCode = "INTERNAL"
)

// APIError is a structured error carrying a code alongside the message.
type APIError struct {
	Code    ErrorCode
	Message string
	Cause   error
}

func (e *APIError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *APIError) Unwrap() error {
	return e.Cause
}

// New creates an APIError with the given code and formatted message.
func New(code ErrorCode, format string, args ...any) *APIError {
	return &APIError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an APIError wrapping a cause.
func Wrap(code ErrorCode, cause error, format string, args ...any) *APIError {
	return &APIError{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}
