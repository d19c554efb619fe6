package errors

import (
	"fmt"
	"net/http"
)

// ErrorType represents different categories of errors
type ErrorType string

const (
	// ErrorTypeValidation covers payloads rejected before any network call.
	ErrorTypeValidation ErrorType = "validation"
	// ErrorTypeTransfer covers chunk-write failures during upload.
	ErrorTypeTransfer ErrorType = "transfer"
	// ErrorTypeMetadata covers metadata-insert failures after a
	// successful transfer, with the object cleaned up.
	ErrorTypeMetadata ErrorType = "metadata"
	// ErrorTypeOrphanedObject is the degraded double-failure state: the
	// metadata write failed and the compensating deletion failed too,
	// leaving an object behind in storage.
	ErrorTypeOrphanedObject ErrorType = "orphaned_object"
	// ErrorTypeFetch covers listing or single-record fetch failures.
	ErrorTypeFetch ErrorType = "fetch"
	// ErrorTypeNotFound means the record id has no row.
	ErrorTypeNotFound ErrorType = "not_found"
	// ErrorTypeRender covers signed-URL and PDF-parse failures.
	ErrorTypeRender ErrorType = "render"
)

// AppError represents a structured application error
type AppError struct {
	Type       ErrorType `json:"type"`
	Message    string    `json:"message"`
	Details    string    `json:"details,omitempty"`
	StatusCode int       `json:"-"`
	Cause      error     `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewValidationError creates a new validation error
func NewValidationError(message string, details ...string) *AppError {
	detail := ""
	if len(details) > 0 {
		detail = details[0]
	}
	return &AppError{
		Type:       ErrorTypeValidation,
		Message:    message,
		Details:    detail,
		StatusCode: http.StatusBadRequest,
	}
}

// NewTransferError creates a new transfer error
func NewTransferError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeTransfer,
		Message:    message,
		StatusCode: http.StatusBadGateway,
		Cause:      cause,
	}
}

// NewMetadataError creates a new metadata error
func NewMetadataError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeMetadata,
		Message:    message,
		StatusCode: http.StatusBadGateway,
		Cause:      cause,
	}
}

// NewOrphanedObjectError reports the double failure where the metadata
// insert failed and the compensating deletion failed as well. Both
// causes are preserved so the degraded state is not collapsed into a
// clean failure.
func NewOrphanedObjectError(message string, cause error, cleanupErr error) *AppError {
	detail := ""
	if cleanupErr != nil {
		detail = "cleanup failed: " + cleanupErr.Error()
	}
	return &AppError{
		Type:       ErrorTypeOrphanedObject,
		Message:    message,
		Details:    detail,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// NewFetchError creates a new fetch error
func NewFetchError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeFetch,
		Message:    message,
		StatusCode: http.StatusBadGateway,
		Cause:      cause,
	}
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Message:    message,
		StatusCode: http.StatusNotFound,
	}
}

// NewRenderError creates a new render error
func NewRenderError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeRender,
		Message:    message,
		StatusCode: http.StatusBadGateway,
		Cause:      cause,
	}
}

// IsType checks if the error is of a specific type
func IsType(err error, errorType ErrorType) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Type == errorType
	}
	return false
}

// GetStatusCode returns the HTTP status code for an error
func GetStatusCode(err error) int {
	if appErr, ok := err.(*AppError); ok {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}
