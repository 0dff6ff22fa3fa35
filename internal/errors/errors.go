package errors

import (
	"errors"
	"fmt"
)

// Standard application errors
var (
	ErrUsage              = errors.New("exactly two arguments are required: <identifier> <json-file>")
	ErrEmptyInput         = errors.New("input is empty or contains only whitespace")
	ErrInvalidJSON        = errors.New("invalid JSON format")
	ErrNoRoot             = errors.New("no root object found")
	ErrRootNotObject      = errors.New("root value must be an object")
	ErrUnbalanced         = errors.New("unbalanced brackets")
	ErrUnterminatedString = errors.New("unterminated string literal")
	ErrMultipleJSON       = errors.New("multiple JSON values found at the root, only one is allowed")
	ErrFileNotFound       = errors.New("file not found")
	ErrFileEmpty          = errors.New("file is empty")
	ErrInvalidFilePath    = errors.New("invalid file path")
	ErrKeyNotFound        = errors.New("key not found")
	ErrInvalidConfig      = errors.New("invalid configuration")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenMismatch      = errors.New("token does not match")
)

// ErrorType categorizes errors
type ErrorType string

const (
	ErrorTypeUsage    ErrorType = "usage"
	ErrorTypeInput    ErrorType = "input"
	ErrorTypeParsing  ErrorType = "parsing"
	ErrorTypeSearch   ErrorType = "search"
	ErrorTypeConfig   ErrorType = "config"
	ErrorTypeGenerate ErrorType = "generate"
	ErrorTypeFormat   ErrorType = "format"
	ErrorTypeOutput   ErrorType = "output"
	ErrorTypeVerify   ErrorType = "verify"
	ErrorTypeUnknown  ErrorType = "unknown"
)

// AppError is an application-specific error with context
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

// Error implements error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns wrapped error
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for comparison
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// NewUsageError creates a new error for wrong command-line usage
func NewUsageError(message string, err error) *AppError {
	return &AppError{Type: ErrorTypeUsage, Message: message, Err: err}
}

// NewInputError creates a new error related to reading the input file
func NewInputError(message string, err error) *AppError {
	return &AppError{Type: ErrorTypeInput, Message: message, Err: err}
}

// NewParsingError creates a new error related to JSON decoding
func NewParsingError(message string, err error) *AppError {
	return &AppError{Type: ErrorTypeParsing, Message: message, Err: err}
}

// NewSearchError creates a new error for a key that could not be found
func NewSearchError(message string, err error) *AppError {
	return &AppError{Type: ErrorTypeSearch, Message: message, Err: err}
}

// NewConfigError creates a new error related to configuration loading
func NewConfigError(message string, err error) *AppError {
	return &AppError{Type: ErrorTypeConfig, Message: message, Err: err}
}

// NewGenerateError creates a new error related to token generation
func NewGenerateError(message string, err error) *AppError {
	return &AppError{Type: ErrorTypeGenerate, Message: message, Err: err}
}

// NewFormatError creates a new error related to output rendering
func NewFormatError(message string, err error) *AppError {
	return &AppError{Type: ErrorTypeFormat, Message: message, Err: err}
}

// NewOutputError creates a new error related to output processing
func NewOutputError(message string, err error) *AppError {
	return &AppError{Type: ErrorTypeOutput, Message: message, Err: err}
}

// NewVerifyError creates a new error for a token that failed verification
func NewVerifyError(message string, err error) *AppError {
	return &AppError{Type: ErrorTypeVerify, Message: message, Err: err}
}

// UserFriendlyError returns a user-friendly error message
func UserFriendlyError(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		switch appErr.Type {
		case ErrorTypeUsage:
			return fmt.Sprintf("Usage error: %s", appErr.Message)
		case ErrorTypeInput:
			return fmt.Sprintf("Input error: %s", appErr.Message)
		case ErrorTypeParsing:
			return fmt.Sprintf("JSON parsing error: %s", appErr.Message)
		case ErrorTypeSearch:
			// The key-not-found message is part of the tool's contract
			return appErr.Message
		case ErrorTypeConfig:
			return fmt.Sprintf("Configuration error: %s", appErr.Message)
		case ErrorTypeGenerate:
			return fmt.Sprintf("Token generation error: %s", appErr.Message)
		case ErrorTypeFormat:
			return fmt.Sprintf("Output formatting error: %s", appErr.Message)
		case ErrorTypeOutput:
			return fmt.Sprintf("Output error: %s", appErr.Message)
		case ErrorTypeVerify:
			return fmt.Sprintf("Verification failed: %s", appErr.Message)
		default:
			return fmt.Sprintf("Error: %s", appErr.Message)
		}
	}

	// Handle standard errors
	if errors.Is(err, ErrUsage) {
		return "Usage: destoken <identifier> <json-file>"
	}
	if errors.Is(err, ErrEmptyInput) {
		return "Error: The input is empty. Please provide a JSON document."
	}
	if errors.Is(err, ErrInvalidJSON) {
		return "Error: The input contains invalid JSON. Please check your JSON syntax."
	}
	if errors.Is(err, ErrFileNotFound) {
		return "Error: The specified file could not be found. Please check the file path."
	}
	if errors.Is(err, ErrFileEmpty) {
		return "Error: The specified file is empty. Please provide a file with JSON content."
	}
	if errors.Is(err, ErrKeyNotFound) {
		return "Error: The requested key was not found in the JSON document."
	}

	return fmt.Sprintf("Error: %v", err)
}
