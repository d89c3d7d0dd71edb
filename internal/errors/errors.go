package errors

import (
	"errors"
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
		Code:    CodeInternal,
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

// GetCode returns the error code if it's an AppError, otherwise "UNKNOWN"
func GetCode(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return "UNKNOWN"
}

// HasCode reports whether err carries the given code
func HasCode(err error, code string) bool {
	return GetCode(err) == code
}

// Error codes for the ingestion pipeline and metric engine. The first four
// are the distinct failure kinds surfaced at the pipeline boundary.
const (
	// CodeParse: no delimiter/encoding combination produced a structurally
	// valid table.
	CodeParse = "PARSE_ERROR"
	// CodeSchema: a required column is missing or the table is empty.
	CodeSchema = "SCHEMA_ERROR"
	// CodeNumericCoercion: a measure column is entirely non-numeric.
	CodeNumericCoercion = "NUMERIC_COERCION_ERROR"
	// CodeDateCoercion: the date column is unparseable under every
	// candidate format.
	CodeDateCoercion = "DATE_COERCION_ERROR"
	// CodeInvalidPeriod: a growth-metric period selector is not a valid
	// calendar year or month.
	CodeInvalidPeriod = "INVALID_PERIOD"

	CodeConfigInvalid = "CONFIG_INVALID"
	CodeNotFound      = "NOT_FOUND"
	CodeInvalidInput  = "INVALID_INPUT"
	CodeInternal      = "INTERNAL_ERROR"
)

// Common error constructors
func ParseError(message string) *AppError {
	return New(CodeParse, message)
}

func SchemaError(message string) *AppError {
	return New(CodeSchema, message)
}

func NumericCoercionError(message string) *AppError {
	return New(CodeNumericCoercion, message)
}

func DateCoercionError(message string) *AppError {
	return New(CodeDateCoercion, message)
}

func InvalidPeriod(message string) *AppError {
	return New(CodeInvalidPeriod, message)
}

func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

func NotFound(resource string) *AppError {
	return New(CodeNotFound, fmt.Sprintf("%s not found", resource))
}

func InvalidInput(message string) *AppError {
	return New(CodeInvalidInput, message)
}

func InternalError(message string) *AppError {
	return New(CodeInternal, message)
}
