// Package errors defines the structured error responses of the HTTP
// surface. Pipeline packages return plain wrapped errors; the transport
// layer maps them onto these.
package errors

import (
	"net/http"

	"github.com/go-chi/render"
)

// APIError represents a structured API error response
type APIError struct {
	StatusCode int         `json:"status_code"`
	ErrorCode  string      `json:"error_code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// Render implements the render.Renderer interface for chi/render
func (e *APIError) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.StatusCode)
	return nil
}

// New creates a new APIError with the given parameters
func New(statusCode int, errorCode, message string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
	}
}

// NewWithDetails creates a new APIError with additional details
func NewWithDetails(statusCode int, errorCode, message string, details interface{}) *APIError {
	return &APIError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
		Details:    details,
	}
}

// Predefined error types for common scenarios
var (
	ErrInvalidRequest    = New(http.StatusBadRequest, "INVALID_REQUEST", "Invalid request format")
	ErrMissingParameter  = New(http.StatusBadRequest, "MISSING_PARAMETER", "Required parameter is missing")
	ErrRateLimitExceeded = New(http.StatusTooManyRequests, "RATE_LIMIT_EXCEEDED", "Rate limit exceeded")
	ErrInternalServer    = New(http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Internal server error")
)

// StructuralError wraps a fatal upload-shape failure: schema mismatch,
// wrong row count or malformed block layout.
func StructuralError(err error) *APIError {
	return NewWithDetails(http.StatusBadRequest, "STRUCTURAL_ERROR", "Upload failed structural validation", err.Error())
}

// RowValidationError carries the full itemized row-level error list so
// the caller can fix all problems in one pass.
func RowValidationError(details interface{}) *APIError {
	return NewWithDetails(http.StatusBadRequest, "ROW_VALIDATION_FAILED", "Upload failed row validation", details)
}

// ReconciliationError reports the fatal shift/turno_g sum mismatch.
func ReconciliationError(err error) *APIError {
	return NewWithDetails(http.StatusUnprocessableEntity, "RECONCILIATION_INCONSISTENT", "Redistribution passes disagree", err.Error())
}
