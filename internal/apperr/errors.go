package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType classifies failures of the prediction pipeline.
type ErrorType string

const (
	// ErrorTypeValidation indicates a request value outside its field domain
	ErrorTypeValidation ErrorType = "VALIDATION"

	// ErrorTypeInvalidInput indicates a request body that could not be decoded
	ErrorTypeInvalidInput ErrorType = "INVALID_INPUT"

	// ErrorTypeConfiguration indicates artifacts that do not fit together
	ErrorTypeConfiguration ErrorType = "CONFIGURATION"

	// ErrorTypeInference indicates the classifier could not score a vector
	ErrorTypeInference ErrorType = "INFERENCE"

	// ErrorTypeInternal indicates any other failure
	ErrorTypeInternal ErrorType = "INTERNAL"
)

// AppError represents an application error
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
	// Fields maps a request field to its problem, for validation errors.
	Fields map[string]string
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap implements the unwrap interface
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a new validation error
func NewValidationError(message string, fields map[string]string) *AppError {
	return &AppError{Type: ErrorTypeValidation, Message: message, Fields: fields}
}

// NewInvalidInputError creates a new invalid input error
func NewInvalidInputError(message string, err error) *AppError {
	return &AppError{Type: ErrorTypeInvalidInput, Message: message, Err: err}
}

// NewConfigurationError creates a new configuration error
func NewConfigurationError(message string, err error) *AppError {
	return &AppError{Type: ErrorTypeConfiguration, Message: message, Err: err}
}

// NewInferenceError creates a new inference error
func NewInferenceError(message string, err error) *AppError {
	return &AppError{Type: ErrorTypeInference, Message: message, Err: err}
}

// TypeOf returns the ErrorType of err, or ErrorTypeInternal when err is not an AppError.
func TypeOf(err error) ErrorType {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type
	}
	return ErrorTypeInternal
}

// HTTPStatus maps err to the status code the API answers with.
func HTTPStatus(err error) int {
	switch TypeOf(err) {
	case ErrorTypeValidation:
		return http.StatusUnprocessableEntity
	case ErrorTypeInvalidInput:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
