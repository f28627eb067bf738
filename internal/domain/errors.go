package domain

import (
	"encoding/json"
	"fmt"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	ErrInternal     ErrorCode = "INTERNAL_ERROR"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"

	// Generation specific errors
	ErrNoContent         ErrorCode = "NO_CONTENT"
	ErrNoTypeSelected    ErrorCode = "NO_QUESTION_TYPE_SELECTED"
	ErrMissingCredential ErrorCode = "MISSING_CREDENTIAL"
	ErrLLMServiceError   ErrorCode = "LLM_SERVICE_ERROR"
	ErrRenderError       ErrorCode = "RENDER_ERROR"
	CodeValidation       ErrorCode = "VALIDATION_ERROR"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"-"`
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Cause
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
	})
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, cause error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Helper functions for common errors
func NewInternalError(message string, cause error) *DomainError {
	return NewError(ErrInternal, message, cause)
}

func NewInvalidInputError(message string) *DomainError {
	return NewError(ErrInvalidInput, message, nil)
}

func NewNoContentError() *DomainError {
	return NewError(ErrNoContent, "No text could be extracted from the uploaded documents", nil)
}

func NewNoTypeSelectedError() *DomainError {
	return NewError(ErrNoTypeSelected, "Please select at least one question type", nil)
}

func NewMissingCredentialError(envVar string) *DomainError {
	return NewError(ErrMissingCredential, fmt.Sprintf("%s environment variable not set", envVar), nil)
}

func NewLLMServiceError(cause error) *DomainError {
	return NewError(ErrLLMServiceError, "Failed to process with LLM service", cause)
}

func NewRenderError(cause error) *DomainError {
	return NewError(ErrRenderError, "Failed to render exam paper PDF", cause)
}

// ValidationError describes one invalid request field.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors aggregates field errors for a single request.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	return fmt.Sprintf("validation failed: %s (and %d more)", e[0].Error(), len(e)-1)
}

func NewMissingFieldError(field string) ValidationError {
	return ValidationError{Field: field, Message: "is required"}
}

func NewInvalidFormatError(field string, value interface{}) ValidationError {
	return ValidationError{Field: field, Message: fmt.Sprintf("has invalid value %q", fmt.Sprint(value))}
}

func NewOutOfRangeError(field string, value, min, max int) ValidationError {
	return ValidationError{Field: field, Message: fmt.Sprintf("must be between %d and %d, got %d", min, max, value)}
}
