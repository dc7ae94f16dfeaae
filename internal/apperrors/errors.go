package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code identifies the error category for propagation policy decisions.
type Code string

const (
	// CodeValidation marks bad or missing caller input. Surfaced immediately,
	// never retried.
	CodeValidation Code = "VALIDATION_ERROR"
	// CodeProviderUnavailable marks a configuration problem: no completion
	// provider exists for a requested enhancement.
	CodeProviderUnavailable Code = "PROVIDER_UNAVAILABLE"
	// CodeProvider marks a failed completion call. Recovered at the
	// enhancement gateway boundary and never surfaced as a pipeline failure.
	CodeProvider Code = "PROVIDER_ERROR"
	// CodeInternal marks an unexpected failure in segmentation or assembly.
	CodeInternal Code = "INTERNAL_ERROR"
)

// AppError is the application error type carrying a category code and an
// HTTP status for the outer boundary.
type AppError struct {
	Code    Code
	Message string
	Raw     error
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Raw != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Raw)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap exposes the wrapped cause for errors.Is/errors.As.
func (e *AppError) Unwrap() error {
	return e.Raw
}

// HTTPStatus maps the error category to an HTTP status code.
func (e *AppError) HTTPStatus() int {
	switch e.Code {
	case CodeValidation:
		return http.StatusBadRequest
	case CodeProviderUnavailable:
		return http.StatusServiceUnavailable
	case CodeProvider:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// NewValidation creates a validation error with the given message.
func NewValidation(format string, args ...interface{}) *AppError {
	return &AppError{Code: CodeValidation, Message: fmt.Sprintf(format, args...)}
}

// NewProviderUnavailable creates an error for a missing provider configuration.
func NewProviderUnavailable(format string, args ...interface{}) *AppError {
	return &AppError{Code: CodeProviderUnavailable, Message: fmt.Sprintf(format, args...)}
}

// NewProvider creates an error for a failed completion call.
func NewProvider(message string, cause error) *AppError {
	return &AppError{Code: CodeProvider, Message: message, Raw: cause}
}

// NewInternal wraps an unexpected failure with a generic caller-facing message.
func NewInternal(message string, cause error) *AppError {
	return &AppError{Code: CodeInternal, Message: message, Raw: cause}
}

// IsValidation reports whether err is a validation error.
func IsValidation(err error) bool {
	return hasCode(err, CodeValidation)
}

// IsProviderUnavailable reports whether err indicates a missing provider.
func IsProviderUnavailable(err error) bool {
	return hasCode(err, CodeProviderUnavailable)
}

// IsProvider reports whether err is a failed completion call.
func IsProvider(err error) bool {
	return hasCode(err, CodeProvider)
}

func hasCode(err error, code Code) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// FromError returns err as an AppError, wrapping unknown errors as internal.
func FromError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return NewInternal("unexpected error", err)
}
