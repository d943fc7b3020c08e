package shared

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/phrazzld/taskdeck-api/internal/redact"
)

// ErrorDetail is the error payload exposed to clients. The shape
// (message/errorCode/statusCode under an "error" key) is part of the API
// contract.
type ErrorDetail struct {
	Message    string `json:"message"`
	ErrorCode  string `json:"errorCode"`
	StatusCode int    `json:"statusCode"`
	TraceID    string `json:"trace_id,omitempty"`
}

// ErrorResponse defines the standard error response structure.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// DataResponse wraps a single resource under a "data" key.
type DataResponse struct {
	Data interface{} `json:"data"`
}

// RespondWithJSON writes a JSON response with the given status code and data.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// RespondWithError writes a JSON error response with the given status code,
// error code, and message. It also sets the trace ID from the request
// context if available.
func RespondWithError(w http.ResponseWriter, r *http.Request, status int, errorCode, message string) {
	traceID := GetTraceID(r.Context())

	slog.Debug("sending error response",
		"status_code", status,
		"error_code", errorCode,
		"message", message,
		"trace_id", traceID,
		"path", r.URL.Path,
		"method", r.Method)

	RespondWithJSON(w, r, status, ErrorResponse{Error: ErrorDetail{
		Message:    message,
		ErrorCode:  errorCode,
		StatusCode: status,
		TraceID:    traceID,
	}})
}

// RespondWithErrorAndLog writes a JSON error response and also logs the
// detailed error. Use it where the full error must be recorded for
// operators but only a sanitized message may reach the client.
//
// Log level strategy: 5xx at ERROR, 429 at WARN, other 4xx at DEBUG.
func RespondWithErrorAndLog(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	errorCode, userMessage string,
	err error,
) {
	traceID := GetTraceID(r.Context())

	logAttrs := []slog.Attr{
		slog.String("trace_id", traceID),
		slog.String("path", r.URL.Path),
		slog.String("method", r.Method),
		slog.Int("status_code", status),
		slog.String("user_message", userMessage),
	}
	if err != nil {
		logAttrs = append(logAttrs,
			slog.String("error", redact.Error(err)),
			slog.String("error_type", fmt.Sprintf("%T", err)))
	}

	logLevel := slog.LevelDebug
	switch {
	case status >= http.StatusInternalServerError:
		logLevel = slog.LevelError
	case status == http.StatusTooManyRequests:
		logLevel = slog.LevelWarn
	}

	slog.LogAttrs(r.Context(), logLevel, "API error response", logAttrs...)

	RespondWithJSON(w, r, status, ErrorResponse{Error: ErrorDetail{
		Message:    userMessage,
		ErrorCode:  errorCode,
		StatusCode: status,
		TraceID:    traceID,
	}})
}
