// Package api provides HTTP handlers for the API.
package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/phrazzld/taskdeck-api/internal/store"
)

// Machine-readable error codes exposed in error responses. These are part
// of the API contract and map one-to-one onto status codes.
const (
	CodeValidationError   = "VALIDATION_ERROR"
	CodeNotFound          = "NOT_FOUND"
	CodeInternalError     = "INTERNAL_ERROR"
	CodeRateLimitExceeded = "RATE_LIMIT_EXCEEDED"
)

// genericInternalMessage is the only message clients ever see for
// unclassified faults; detail goes to the logs.
const genericInternalMessage = "Internal Server Error"

// ValidationError reports every failing field of a request in one error.
// Validation does not stop at the first failure; Messages holds one entry
// per failed rule and Error joins them into the single string clients see.
type ValidationError struct {
	Messages []string
}

// Error implements the error interface, joining all field messages.
func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, "; ")
}

// NewValidationError creates a ValidationError from field-level messages.
func NewValidationError(messages ...string) *ValidationError {
	return &ValidationError{Messages: messages}
}

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	var vErr *ValidationError
	switch {
	case errors.As(err, &vErr):
		return http.StatusBadRequest
	case store.IsNotFoundError(err):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// MapErrorToCode returns the machine-readable error code for an error.
func MapErrorToCode(err error) string {
	var vErr *ValidationError
	switch {
	case errors.As(err, &vErr):
		return CodeValidationError
	case store.IsNotFoundError(err):
		return CodeNotFound
	default:
		return CodeInternalError
	}
}

// GetSafeErrorMessage returns the message that may be exposed to clients.
// Validation and not-found errors are operational and reported verbatim;
// anything else collapses to a generic message.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return genericInternalMessage
	}

	var vErr *ValidationError
	switch {
	case errors.As(err, &vErr):
		return vErr.Error()
	case store.IsNotFoundError(err):
		return err.Error()
	default:
		return genericInternalMessage
	}
}
