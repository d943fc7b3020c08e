package api

import (
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/taskdeck-api/internal/domain"
)

func createRequest(t *testing.T, body string) (*CreateTaskRequest, error) {
	t.Helper()
	r := httptest.NewRequest("POST", "/api/v1/tasks", strings.NewReader(body))
	return DecodeAndValidateCreate(r)
}

func updateRequest(t *testing.T, body string) (*UpdateTaskRequest, error) {
	t.Helper()
	r := httptest.NewRequest("PUT", "/api/v1/tasks/some-id", strings.NewReader(body))
	return DecodeAndValidateUpdate(r)
}

func TestCreateValidationMinimalPayload(t *testing.T) {
	t.Parallel()

	req, err := createRequest(t, `{"title": "Buy milk"}`)
	require.NoError(t, err)
	assert.Equal(t, "Buy milk", req.Title)

	input := req.ToInput()
	assert.Equal(t, "Buy milk", input.Title)
	assert.Empty(t, input.Description)
	assert.Empty(t, input.Priority, "priority defaulting happens in the domain, not here")
	assert.Nil(t, input.DueDate)
}

func TestCreateValidationSanitizesTitle(t *testing.T) {
	t.Parallel()

	req, err := createRequest(t, `{"title": "  <b>Hi</b>  "}`)
	require.NoError(t, err)
	assert.Equal(t, "Hi", req.Title, "HTML must be stripped and whitespace trimmed before validation")
}

func TestCreateValidationStrippedMarkupDoesNotCountTowardLength(t *testing.T) {
	t.Parallel()

	// 250 characters of text wrapped in markup: fine after stripping.
	long := strings.Repeat("a", 250)
	req, err := createRequest(t, `{"title": "<em>`+long+`</em>"}`)
	require.NoError(t, err)
	assert.Equal(t, long, req.Title)

	// 256 characters of real text: over the limit.
	_, err = createRequest(t, `{"title": "`+strings.Repeat("a", 256)+`"}`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Title must not exceed 255 characters")
}

func TestCreateValidationAllMarkupTitleFailsRequired(t *testing.T) {
	t.Parallel()

	_, err := createRequest(t, `{"title": "<b></b>"}`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Title is required and must not be empty")
}

func TestCreateValidationCollectsAllFailures(t *testing.T) {
	t.Parallel()

	_, err := createRequest(t, `{"title": "", "priority": "urgent"}`)
	require.Error(t, err)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	require.Len(t, vErr.Messages, 2, "validation must not stop at the first failing field")
	assert.Contains(t, err.Error(), "Title is required and must not be empty")
	assert.Contains(t, err.Error(), "Priority must be one of: low, medium, high")
	assert.Contains(t, err.Error(), "; ", "messages must be joined into one payload")
}

func TestCreateValidationRejectsUnknownFields(t *testing.T) {
	t.Parallel()

	// Clients must not set status at creation time; it is outside the schema.
	_, err := createRequest(t, `{"title": "ok", "status": "completed"}`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status")
}

func TestCreateValidationRejectsWrongTypes(t *testing.T) {
	t.Parallel()

	_, err := createRequest(t, `{"title": 5}`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Title must be a string")
}

func TestCreateValidationDescriptionLimit(t *testing.T) {
	t.Parallel()

	_, err := createRequest(t, `{"title": "ok", "description": "`+strings.Repeat("d", 1001)+`"}`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Description must not exceed 1000 characters")
}

func TestCreateValidationDueDateFormat(t *testing.T) {
	t.Parallel()

	_, err := createRequest(t, `{"title": "ok", "dueDate": "next tuesday"}`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "valid ISO 8601 date string")

	// Fractional seconds are accepted.
	due := time.Now().UTC().Add(24 * time.Hour).Format("2006-01-02T15:04:05.000Z")
	req, err := createRequest(t, `{"title": "ok", "dueDate": "`+due+`"}`)
	require.NoError(t, err)
	require.NotNil(t, req.ToInput().DueDate)
}

func TestHighPriorityDueDateRule(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()
	within := now.Add(3 * 24 * time.Hour).Format(time.RFC3339)
	beyond := now.Add(10 * 24 * time.Hour).Format(time.RFC3339)
	past := now.Add(-24 * time.Hour).Format(time.RFC3339)

	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"high priority with near-term due date", `{"title": "t", "priority": "high", "dueDate": "` + within + `"}`, false},
		{"high priority without due date", `{"title": "t", "priority": "high"}`, true},
		{"high priority with far due date", `{"title": "t", "priority": "high", "dueDate": "` + beyond + `"}`, true},
		{"high priority with past due date", `{"title": "t", "priority": "high", "dueDate": "` + past + `"}`, true},
		{"medium priority without due date", `{"title": "t", "priority": "medium"}`, false},
		{"low priority with far due date", `{"title": "t", "priority": "low", "dueDate": "` + beyond + `"}`, false},
		{"no priority without due date", `{"title": "t"}`, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := createRequest(t, tt.body)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "High priority tasks must have a due date within the next 7 days")
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestUpdateValidationPartialPayload(t *testing.T) {
	t.Parallel()

	req, err := updateRequest(t, `{"status": "in-progress"}`)
	require.NoError(t, err)

	input := req.ToInput()
	require.NotNil(t, input.Status)
	assert.Equal(t, domain.TaskStatusInProgress, *input.Status)
	assert.Nil(t, input.Title)
	assert.Nil(t, input.Description)
	assert.Nil(t, input.Priority)
	assert.Nil(t, input.DueDate)
}

func TestUpdateValidationRejectsUnknownStatus(t *testing.T) {
	t.Parallel()

	_, err := updateRequest(t, `{"status": "archived"}`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Status must be one of: pending, in-progress, completed")
}

func TestUpdateValidationProvidedTitleMustBeNonEmpty(t *testing.T) {
	t.Parallel()

	_, err := updateRequest(t, `{"title": "  <i></i> "}`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Title, if provided, must not be empty")
}

func TestUpdateValidationHighPriorityRuleAppliesToSubmittedValue(t *testing.T) {
	t.Parallel()

	_, err := updateRequest(t, `{"priority": "high"}`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "High priority tasks must have a due date within the next 7 days")

	due := time.Now().UTC().Add(24 * time.Hour).Format(time.RFC3339)
	_, err = updateRequest(t, `{"priority": "high", "dueDate": "`+due+`"}`)
	assert.NoError(t, err)
}

func TestUpdateValidationRejectsUnknownFields(t *testing.T) {
	t.Parallel()

	_, err := updateRequest(t, `{"owner": "me"}`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "owner")
}

func TestUpdateValidationEmptyBody(t *testing.T) {
	t.Parallel()

	_, err := updateRequest(t, ``)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Request body is required")
}

func TestParseListQueryDefaultsAndValues(t *testing.T) {
	t.Parallel()

	params, err := ParseListQuery(url.Values{})
	require.NoError(t, err)
	assert.Zero(t, params.Page, "defaults are applied by the query engine, not the parser")
	assert.Zero(t, params.Limit)

	params, err = ParseListQuery(url.Values{
		"page":      {"3"},
		"limit":     {"25"},
		"status":    {"completed"},
		"sortBy":    {"dueDate"},
		"sortOrder": {"asc"},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, params.Page)
	assert.Equal(t, 25, params.Limit)
	assert.Equal(t, domain.TaskStatusCompleted, params.Status)
	assert.Equal(t, "dueDate", params.SortBy)
	assert.Equal(t, "asc", params.SortOrder)
}

func TestParseListQueryIgnoresUnknownParams(t *testing.T) {
	t.Parallel()

	params, err := ParseListQuery(url.Values{"utm_source": {"newsletter"}, "page": {"2"}})
	require.NoError(t, err)
	assert.Equal(t, 2, params.Page)
}

func TestParseListQueryRejectsBadValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		values  url.Values
		message string
	}{
		{"non-numeric page", url.Values{"page": {"abc"}}, "Page must be a number"},
		{"non-numeric limit", url.Values{"limit": {"ten"}}, "Limit must be a number"},
		{"bad status filter", url.Values{"status": {"archived"}}, "Status filter must be one of: pending, in-progress, completed"},
		{"bad sortBy", url.Values{"sortBy": {"priority"}}, "sortBy must be one of: createdAt, updatedAt, title, dueDate"},
		{"bad sortOrder", url.Values{"sortOrder": {"up"}}, "sortOrder must be one of: asc, desc"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := ParseListQuery(tt.values)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}
