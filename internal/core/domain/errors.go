package domain

import (
	"errors"
	"fmt"
)

// ErrorCode represents categorized error types.
// These codes are stable and can be used for programmatic error handling.
type ErrorCode string

const (
	ErrCodeConfigMissing ErrorCode = "config_missing"
	ErrCodeConfigInvalid ErrorCode = "config_invalid"
)

// String returns the error code as a string.
func (c ErrorCode) String() string {
	return string(c)
}

// AppError is a structured error with code, message, and optional cause.
type AppError struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Sentinel causes for expression and binding configuration failures.
var (
	ErrEmptyAttributeName = errors.New("empty attribute name")
	ErrUnmatchedBracket   = errors.New("unmatched bracket")
	ErrLengthMismatch     = errors.New("size of request_attributes != assertion_attributes")
)

// ConfigError creates a missing-configuration error.
func ConfigError(message string) *AppError {
	return &AppError{Code: ErrCodeConfigMissing, Message: message}
}

// InvalidConfigError creates an invalid-configuration error with optional cause.
func InvalidConfigError(message string, cause error) *AppError {
	return &AppError{Code: ErrCodeConfigInvalid, Message: message, Cause: cause}
}

// IsConfigError reports whether err is a configuration error of any code.
func IsConfigError(err error) bool {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return false
	}
	return appErr.Code == ErrCodeConfigMissing || appErr.Code == ErrCodeConfigInvalid
}
