package api

import (
	"time"

	"github.com/phrazzld/taskdeck-api/internal/domain"
)

// Request models for the task endpoints. The `validate` tags are the
// declarative field schema; the cross-field high-priority/due-date rule is
// registered as a struct-level validation (see validation.go). Bodies are
// decoded strictly, so any field outside these structs is rejected.

// CreateTaskRequest defines the payload for creating a task. Status is
// deliberately not part of the schema: new tasks always start as pending.
type CreateTaskRequest struct {
	Title       string  `json:"title"       validate:"required,max=255"`
	Description *string `json:"description" validate:"omitnil,max=1000"`
	Priority    *string `json:"priority"    validate:"omitnil,oneof=low medium high"`
	DueDate     *string `json:"dueDate"     validate:"omitnil,rfc3339"`
}

// UpdateTaskRequest defines the payload for a partial task update. Nil
// fields are left untouched; a provided title must survive sanitization
// non-empty.
type UpdateTaskRequest struct {
	Title       *string `json:"title"       validate:"omitnil,min=1,max=255"`
	Description *string `json:"description" validate:"omitnil,max=1000"`
	Status      *string `json:"status"      validate:"omitnil,oneof=pending in-progress completed"`
	Priority    *string `json:"priority"    validate:"omitnil,oneof=low medium high"`
	DueDate     *string `json:"dueDate"     validate:"omitnil,rfc3339"`
}

// ListTasksQuery defines the recognized list query parameters. Unlike body
// validation, query validation is lenient: parameters outside this set are
// simply ignored.
type ListTasksQuery struct {
	Page      string `validate:"omitempty,number"`
	Limit     string `validate:"omitempty,number"`
	Status    string `validate:"omitempty,oneof=pending in-progress completed"`
	SortBy    string `validate:"omitempty,oneof=createdAt updatedAt title dueDate"`
	SortOrder string `validate:"omitempty,oneof=asc desc"`
}

// Sanitize strips HTML tags and trims whitespace from the free-text fields.
// It runs before validation so stripped markup never counts toward length
// limits and an all-markup title fails the required check.
func (r *CreateTaskRequest) Sanitize() {
	r.Title = sanitizeText(r.Title)
	if r.Description != nil {
		d := sanitizeText(*r.Description)
		r.Description = &d
	}
}

// Sanitize strips HTML tags and trims whitespace from provided free-text
// fields.
func (r *UpdateTaskRequest) Sanitize() {
	if r.Title != nil {
		t := sanitizeText(*r.Title)
		r.Title = &t
	}
	if r.Description != nil {
		d := sanitizeText(*r.Description)
		r.Description = &d
	}
}

// ToInput converts a validated request into the domain create input.
func (r *CreateTaskRequest) ToInput() domain.CreateTaskInput {
	input := domain.CreateTaskInput{Title: r.Title}
	if r.Description != nil {
		input.Description = *r.Description
	}
	if r.Priority != nil {
		input.Priority = domain.TaskPriority(*r.Priority)
	}
	if r.DueDate != nil {
		if due, err := time.Parse(time.RFC3339, *r.DueDate); err == nil {
			input.DueDate = &due
		}
	}
	return input
}

// ToInput converts a validated request into the domain partial-update input.
func (r *UpdateTaskRequest) ToInput() domain.UpdateTaskInput {
	input := domain.UpdateTaskInput{
		Title:       r.Title,
		Description: r.Description,
	}
	if r.Status != nil {
		status := domain.TaskStatus(*r.Status)
		input.Status = &status
	}
	if r.Priority != nil {
		priority := domain.TaskPriority(*r.Priority)
		input.Priority = &priority
	}
	if r.DueDate != nil {
		if due, err := time.Parse(time.RFC3339, *r.DueDate); err == nil {
			input.DueDate = &due
		}
	}
	return input
}
