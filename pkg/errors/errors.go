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

	// Resource root preconditions. These abort a run before any mutation.
	ErrPathNotFound   ErrorCode = "PATH_NOT_FOUND"
	ErrNotADirectory  ErrorCode = "NOT_A_DIRECTORY"
	ErrRootRead       ErrorCode = "ROOT_READ"
	ErrRootPermission ErrorCode = "ROOT_PERMISSION"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Merge errors
	ErrDirRead     ErrorCode = "DIR_READ"
	ErrFileMove    ErrorCode = "FILE_MOVE"
	ErrDirNotEmpty ErrorCode = "DIR_NOT_EMPTY"
	ErrDirCleanup  ErrorCode = "DIR_CLEANUP"
	ErrBaseAccess  ErrorCode = "BASE_ACCESS"

	// FileSystem errors
	ErrFileRead   ErrorCode = "FILE_READ"
	ErrFileWrite  ErrorCode = "FILE_WRITE"
	ErrInvalidXML ErrorCode = "INVALID_XML"
)

// LocfoldError represents a structured error with code and details
type LocfoldError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *LocfoldError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *LocfoldError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *LocfoldError) Is(target error) bool {
	var targetErr *LocfoldError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new LocfoldError with the given code and message
func New(code ErrorCode, message string) *LocfoldError {
	return &LocfoldError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new LocfoldError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *LocfoldError {
	return &LocfoldError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a LocfoldError
func Wrap(err error, code ErrorCode, message string) *LocfoldError {
	if err == nil {
		return nil
	}
	return &LocfoldError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *LocfoldError {
	if err == nil {
		return nil
	}
	return &LocfoldError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *LocfoldError) WithDetail(key string, value interface{}) *LocfoldError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *LocfoldError) WithDetails(details map[string]interface{}) *LocfoldError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var lfErr *LocfoldError
	if errors.As(err, &lfErr) {
		return lfErr.Code == code
	}
	return false
}

// IsPrecondition reports whether err is a resource root failure that must
// halt the whole run.
func IsPrecondition(err error) bool {
	switch GetErrorCode(err) {
	case ErrPathNotFound, ErrNotADirectory, ErrRootRead, ErrRootPermission:
		return true
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a LocfoldError
func GetErrorCode(err error) ErrorCode {
	var lfErr *LocfoldError
	if errors.As(err, &lfErr) {
		return lfErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a LocfoldError
func GetErrorDetails(err error) map[string]interface{} {
	var lfErr *LocfoldError
	if errors.As(err, &lfErr) {
		return lfErr.Details
	}
	return nil
}
