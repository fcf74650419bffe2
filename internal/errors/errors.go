package errors

import (
	"fmt"
)

// AppError represents a structured application error
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return &AppError{
			Code:    appErr.Code,
			Message: message,
			Cause:   appErr,
		}
	}
	return &AppError{
		Code:    CodeInternalError,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted additional context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	_, ok := err.(*AppError)
	return ok
}

// GetCode returns the error code if it's an AppError, otherwise returns "UNKNOWN"
func GetCode(err error) string {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code
	}
	return "UNKNOWN"
}

// Predefined error codes. The first five are the user-visible conditions the
// dashboard recovers from locally; none of them abort a render pass.
const (
	CodeMissingSource       = "MISSING_SOURCE"
	CodeEmptySource         = "EMPTY_SOURCE"
	CodeParseFailure        = "PARSE_FAILURE"
	CodeEmptyFilterResult   = "EMPTY_FILTER_RESULT"
	CodeInvalidChartRequest = "INVALID_CHART_REQUEST"
	CodeConfigInvalid       = "CONFIG_INVALID"
	CodeInvalidInput        = "INVALID_INPUT"
	CodeInternalError       = "INTERNAL_ERROR"
)

// Common error constructors
func MissingSource(path string) *AppError {
	return New(CodeMissingSource, fmt.Sprintf("data file not found: %s — place it next to the binary and reload", path))
}

func EmptySource(path string) *AppError {
	return New(CodeEmptySource, fmt.Sprintf("data file %s loaded but contains no rows", path))
}

func ParseFailure(path string, cause error) *AppError {
	return &AppError{
		Code:    CodeParseFailure,
		Message: fmt.Sprintf("could not parse data file %s", path),
		Cause:   cause,
	}
}

func EmptyFilterResult() *AppError {
	return New(CodeEmptyFilterResult, "the current filters exclude every row — relax them in the sidebar")
}

func InvalidChartRequest(detail string) *AppError {
	return New(CodeInvalidChartRequest, detail)
}

func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

func InvalidInput(message string) *AppError {
	return New(CodeInvalidInput, message)
}

func InternalError(message string) *AppError {
	return New(CodeInternalError, message)
}
