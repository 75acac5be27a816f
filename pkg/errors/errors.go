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
	ErrNotFound     ErrorCode = "NOT_FOUND"
	ErrPermission   ErrorCode = "PERMISSION"

	// Environment errors
	ErrRootUser       ErrorCode = "ROOT_USER"
	ErrPkgMgrNotFound ErrorCode = "PKGMGR_NOT_FOUND"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"

	// Step errors
	ErrStepNotFound ErrorCode = "STEP_NOT_FOUND"
	ErrStepExecute  ErrorCode = "STEP_EXECUTE"

	// Operation errors
	ErrCommandFailed  ErrorCode = "COMMAND_FAILED"
	ErrCloneFailed    ErrorCode = "CLONE_FAILED"
	ErrDownloadFailed ErrorCode = "DOWNLOAD_FAILED"
	ErrFileCopy       ErrorCode = "FILE_COPY"
	ErrBackupFailed   ErrorCode = "BACKUP_FAILED"

	// FileSystem errors
	ErrFileNotFound ErrorCode = "FILE_NOT_FOUND"
	ErrFileAccess   ErrorCode = "FILE_ACCESS"
	ErrDirCreate    ErrorCode = "DIR_CREATE"
)

// DevinitError represents a structured error with code and details
type DevinitError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *DevinitError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *DevinitError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *DevinitError) Is(target error) bool {
	var targetErr *DevinitError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new DevinitError with the given code and message
func New(code ErrorCode, message string) *DevinitError {
	return &DevinitError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new DevinitError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *DevinitError {
	return &DevinitError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a DevinitError
func Wrap(err error, code ErrorCode, message string) *DevinitError {
	if err == nil {
		return nil
	}
	return &DevinitError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *DevinitError {
	if err == nil {
		return nil
	}
	return &DevinitError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *DevinitError) WithDetail(key string, value interface{}) *DevinitError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// GetCode extracts the error code from an error, returning ErrUnknown
// for errors that are not DevinitErrors.
func GetCode(err error) ErrorCode {
	var de *DevinitError
	if errors.As(err, &de) {
		return de.Code
	}
	return ErrUnknown
}

// IsCode reports whether err carries the given code anywhere in its chain.
func IsCode(err error, code ErrorCode) bool {
	for err != nil {
		var de *DevinitError
		if errors.As(err, &de) {
			if de.Code == code {
				return true
			}
			err = de.Wrapped
			continue
		}
		return false
	}
	return false
}
