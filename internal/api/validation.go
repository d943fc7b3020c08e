package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/phrazzld/taskdeck-api/internal/domain"
	"github.com/phrazzld/taskdeck-api/internal/query"
)

// Global validator instance for reuse
var validate = newValidator()

// htmlTagPattern matches anything that looks like an HTML tag. Sanitization
// runs before validation, so markup never counts toward length limits.
var htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

func newValidator() *validator.Validate {
	v := validator.New()

	// dueDate arrives as a string; accept anything time.Parse reads as
	// RFC 3339, fractional seconds included.
	if err := v.RegisterValidation("rfc3339", func(fl validator.FieldLevel) bool {
		_, err := time.Parse(time.RFC3339, fl.Field().String())
		return err == nil
	}); err != nil {
		// ALLOW-PANIC: registration only fails for an empty tag name
		panic(fmt.Sprintf("failed to register rfc3339 validation: %v", err))
	}

	v.RegisterStructValidation(createTaskStructLevel, CreateTaskRequest{})
	v.RegisterStructValidation(updateTaskStructLevel, UpdateTaskRequest{})

	return v
}

func sanitizeText(s string) string {
	return strings.TrimSpace(htmlTagPattern.ReplaceAllString(s, ""))
}

// Cross-field rule: when the priority being set is high, a due date is
// mandatory and must fall within the next seven days, evaluated at
// validation time.
func createTaskStructLevel(sl validator.StructLevel) {
	req := sl.Current().Interface().(CreateTaskRequest)
	checkHighPriorityDueDate(sl, req.Priority, req.DueDate)
}

func updateTaskStructLevel(sl validator.StructLevel) {
	req := sl.Current().Interface().(UpdateTaskRequest)
	checkHighPriorityDueDate(sl, req.Priority, req.DueDate)
}

func checkHighPriorityDueDate(sl validator.StructLevel, priority, dueDate *string) {
	if priority == nil || *priority != string(domain.TaskPriorityHigh) {
		return
	}

	report := func() {
		sl.ReportError(dueDate, "DueDate", "DueDate", "highpriorityduedate", "")
	}

	if dueDate == nil {
		report()
		return
	}
	due, err := time.Parse(time.RFC3339, *dueDate)
	if err != nil {
		report()
		return
	}

	now := time.Now()
	if due.Before(now) || due.After(now.Add(domain.HighPriorityDueWindow)) {
		report()
	}
}

// DecodeAndValidateCreate decodes a strict create payload, sanitizes its
// free-text fields, and runs the full validation schema. All failures are
// collected into a single *ValidationError.
func DecodeAndValidateCreate(r *http.Request) (*CreateTaskRequest, error) {
	var req CreateTaskRequest
	if err := decodeStrictBody(r, &req); err != nil {
		return nil, err
	}

	req.Sanitize()

	if err := validate.Struct(&req); err != nil {
		return nil, translateValidationErrors(err)
	}
	return &req, nil
}

// DecodeAndValidateUpdate decodes a strict partial-update payload, sanitizes
// provided free-text fields, and runs the full validation schema.
func DecodeAndValidateUpdate(r *http.Request) (*UpdateTaskRequest, error) {
	var req UpdateTaskRequest
	if err := decodeStrictBody(r, &req); err != nil {
		return nil, err
	}

	req.Sanitize()

	if err := validate.Struct(&req); err != nil {
		return nil, translateValidationErrors(err)
	}
	return &req, nil
}

// ParseListQuery validates the recognized list parameters and converts them
// into engine parameters. Unknown query parameters are ignored.
func ParseListQuery(values url.Values) (query.Params, error) {
	q := ListTasksQuery{
		Page:      values.Get("page"),
		Limit:     values.Get("limit"),
		Status:    values.Get("status"),
		SortBy:    values.Get("sortBy"),
		SortOrder: values.Get("sortOrder"),
	}

	if err := validate.Struct(&q); err != nil {
		return query.Params{}, translateValidationErrors(err)
	}

	params := query.Params{
		Status:    domain.TaskStatus(q.Status),
		SortBy:    q.SortBy,
		SortOrder: q.SortOrder,
	}
	if q.Page != "" {
		params.Page, _ = strconv.Atoi(q.Page)
	}
	if q.Limit != "" {
		params.Limit, _ = strconv.Atoi(q.Limit)
	}
	return params, nil
}

// decodeStrictBody decodes the request body, rejecting fields outside the
// schema. Body validation is strict, unlike query validation.
func decodeStrictBody(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		return translateDecodeError(err)
	}
	return nil
}

func translateDecodeError(err error) error {
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.Is(err, io.EOF):
		return NewValidationError("Request body is required")
	case errors.As(err, &typeErr):
		return NewValidationError(fmt.Sprintf("%s must be a string", titleCase(typeErr.Field)))
	case strings.HasPrefix(err.Error(), "json: unknown field "):
		field := strings.Trim(strings.TrimPrefix(err.Error(), "json: unknown field "), `"`)
		return NewValidationError(fmt.Sprintf("Unknown field '%s' is not allowed", field))
	default:
		return NewValidationError("Request body must be valid JSON")
	}
}

// translateValidationErrors converts validator failures into one
// ValidationError carrying a message per failed rule, in schema order.
func translateValidationErrors(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return NewValidationError("Request validation failed")
	}

	messages := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		messages = append(messages, messageFor(fe))
	}
	return NewValidationError(messages...)
}

func messageFor(fe validator.FieldError) string {
	isQuery := strings.HasPrefix(fe.Namespace(), "ListTasksQuery")

	switch fe.StructField() {
	case "Title":
		switch fe.Tag() {
		case "required":
			return "Title is required and must not be empty"
		case "min":
			return "Title, if provided, must not be empty"
		case "max":
			return "Title must not exceed 255 characters"
		}
	case "Description":
		if fe.Tag() == "max" {
			return "Description must not exceed 1000 characters"
		}
	case "Status":
		if isQuery {
			return "Status filter must be one of: pending, in-progress, completed"
		}
		return "Status must be one of: pending, in-progress, completed"
	case "Priority":
		return "Priority must be one of: low, medium, high"
	case "DueDate":
		if fe.Tag() == "highpriorityduedate" {
			return "High priority tasks must have a due date within the next 7 days"
		}
		return "Due date must be a valid ISO 8601 date string (e.g. 2026-03-01T00:00:00.000Z)"
	case "Page":
		return "Page must be a number"
	case "Limit":
		return "Limit must be a number"
	case "SortBy":
		return "sortBy must be one of: createdAt, updatedAt, title, dueDate"
	case "SortOrder":
		return "sortOrder must be one of: asc, desc"
	}
	return fmt.Sprintf("%s is invalid", titleCase(fe.Field()))
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
