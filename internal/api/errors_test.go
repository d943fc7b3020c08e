package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/phrazzld/taskdeck-api/internal/store"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		err            error
		expectedStatus int
	}{
		{
			name:           "nil error",
			err:            nil,
			expectedStatus: http.StatusInternalServerError,
		},
		{
			name:           "validation error",
			err:            NewValidationError("Title is required and must not be empty"),
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "not found error",
			err:            store.ErrTaskNotFound,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "wrapped not found error",
			err:            fmt.Errorf("lookup failed: %w", store.ErrTaskNotFound),
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "unclassified error",
			err:            errors.New("redis: connection refused"),
			expectedStatus: http.StatusInternalServerError,
		},
		{
			name:           "store error wrapping an outage",
			err:            store.NewStoreError("getAll", "failed to read task index", errors.New("timeout")),
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expectedStatus, MapErrorToStatusCode(tt.err))
		})
	}
}

func TestMapErrorToCode(t *testing.T) {
	t.Parallel()

	assert.Equal(t, CodeValidationError, MapErrorToCode(NewValidationError("bad")))
	assert.Equal(t, CodeNotFound, MapErrorToCode(store.ErrTaskNotFound))
	assert.Equal(t, CodeInternalError, MapErrorToCode(errors.New("boom")))
}

func TestGetSafeErrorMessage(t *testing.T) {
	t.Parallel()

	// Operational errors are reported verbatim.
	vErr := NewValidationError("Title is required and must not be empty", "Priority must be one of: low, medium, high")
	assert.Equal(t,
		"Title is required and must not be empty; Priority must be one of: low, medium, high",
		GetSafeErrorMessage(vErr))

	assert.Contains(t, GetSafeErrorMessage(store.ErrTaskNotFound), "not found")

	// Unclassified faults never leak detail.
	assert.Equal(t, "Internal Server Error", GetSafeErrorMessage(errors.New("redis: AUTH failed for user admin")))
	assert.Equal(t, "Internal Server Error", GetSafeErrorMessage(nil))
}

func TestValidationErrorJoinsMessages(t *testing.T) {
	t.Parallel()

	err := NewValidationError("first failure", "second failure")
	assert.Equal(t, "first failure; second failure", err.Error())

	single := NewValidationError("only failure")
	assert.Equal(t, "only failure", single.Error())
}
