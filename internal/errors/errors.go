package errors

import (
	"errors"
	"fmt"
)

// Error codes used across the application. Load and schema errors abort
// the current render; NotFound and GenerationFailure are per-item and
// never abort a generation pass.
const (
	CodeLoadError         = "LOAD_ERROR"
	CodeSchemaMismatch    = "SCHEMA_MISMATCH"
	CodeNotFound          = "NOT_FOUND"
	CodeGenerationFailure = "GENERATION_FAILURE"
	CodeConfigInvalid     = "CONFIG_INVALID"
	CodeInternal          = "INTERNAL_ERROR"
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

// Wrap wraps an error with additional context, preserving the code of
// an underlying AppError.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	code := CodeInternal
	var appErr *AppError
	if errors.As(err, &appErr) {
		code = appErr.Code
	}
	return &AppError{
		Code:    code,
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

// LoadError marks a workbook that is missing or unreadable.
func LoadError(message string, cause error) *AppError {
	return &AppError{Code: CodeLoadError, Message: message, Cause: cause}
}

// SchemaMismatch marks an expected column or sheet that is absent.
func SchemaMismatch(message string) *AppError {
	return New(CodeSchemaMismatch, message)
}

// NotFound marks a lookup that matched no row.
func NotFound(message string) *AppError {
	return New(CodeNotFound, message)
}

// GenerationFailure marks a failed narrative generation call.
func GenerationFailure(message string, cause error) *AppError {
	return &AppError{Code: CodeGenerationFailure, Message: message, Cause: cause}
}

// ConfigInvalid marks a fatal startup configuration problem.
func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

// HasCode reports whether err (or anything it wraps) carries the code.
func HasCode(err error, code string) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

func IsNotFound(err error) bool       { return HasCode(err, CodeNotFound) }
func IsSchemaMismatch(err error) bool { return HasCode(err, CodeSchemaMismatch) }
func IsLoadError(err error) bool      { return HasCode(err, CodeLoadError) }
