package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Planning errors abort a single package
	ErrPlan ErrorCode = "PLAN"

	// Link errors are reported per link
	ErrConflict   ErrorCode = "CONFLICT"
	ErrAdopt      ErrorCode = "ADOPT"
	ErrFSMutation ErrorCode = "FS_MUTATION"
	ErrFSInspect  ErrorCode = "FS_INSPECT"

	// Store errors terminate the run
	ErrStoreLoad ErrorCode = "STORE_LOAD"
	ErrStoreSave ErrorCode = "STORE_SAVE"
)

// LinkfarmError represents a structured error with code and details
type LinkfarmError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *LinkfarmError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *LinkfarmError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *LinkfarmError) Is(target error) bool {
	var targetErr *LinkfarmError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new LinkfarmError with the given code and message
func New(code ErrorCode, message string) *LinkfarmError {
	return &LinkfarmError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new LinkfarmError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *LinkfarmError {
	return &LinkfarmError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a LinkfarmError
func Wrap(err error, code ErrorCode, message string) *LinkfarmError {
	if err == nil {
		return nil
	}
	return &LinkfarmError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *LinkfarmError {
	if err == nil {
		return nil
	}
	return &LinkfarmError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *LinkfarmError) WithDetail(key string, value interface{}) *LinkfarmError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var lfErr *LinkfarmError
	if errors.As(err, &lfErr) {
		return lfErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a LinkfarmError
func GetErrorCode(err error) ErrorCode {
	var lfErr *LinkfarmError
	if errors.As(err, &lfErr) {
		return lfErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a LinkfarmError
func GetErrorDetails(err error) map[string]interface{} {
	var lfErr *LinkfarmError
	if errors.As(err, &lfErr) {
		return lfErr.Details
	}
	return nil
}

// IsFatal reports whether an error must terminate the whole invocation
// rather than a single package or link.
func IsFatal(err error) bool {
	switch GetErrorCode(err) {
	case ErrStoreLoad, ErrStoreSave, ErrConfigLoad, ErrConfigParse, ErrConfigValid:
		return true
	default:
		return false
	}
}
