package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TaskStatus represents the lifecycle state of a task.
type TaskStatus string

// Valid task statuses.
const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in-progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

// TaskPriority represents the urgency of a task.
type TaskPriority string

// Valid task priorities.
const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

// IsValid reports whether the status is one of the recognized values.
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted:
		return true
	}
	return false
}

// IsValid reports whether the priority is one of the recognized values.
func (p TaskPriority) IsValid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	}
	return false
}

// HighPriorityDueWindow is how far into the future a high-priority task's
// due date may fall.
const HighPriorityDueWindow = 7 * 24 * time.Hour

// Task represents a single task record. Tasks are persisted as JSON strings
// in the store; DueDate is a pointer so an absent due date stays absent on
// the wire rather than serializing as the zero time.
type Task struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Status      TaskStatus   `json:"status"`
	Priority    TaskPriority `json:"priority"`
	DueDate     *time.Time   `json:"dueDate,omitempty"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// CreateTaskInput carries the validated fields for creating a task.
// Status is deliberately absent: new tasks always start as pending.
type CreateTaskInput struct {
	Title       string
	Description string
	Priority    TaskPriority
	DueDate     *time.Time
}

// UpdateTaskInput carries a partial update. Nil fields are left untouched;
// non-nil fields overwrite the stored value.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Status      *TaskStatus
	Priority    *TaskPriority
	DueDate     *time.Time
}

// NewTask builds a Task from validated input, generating its ID and stamping
// both timestamps. Priority defaults to medium when the input leaves it empty.
func NewTask(input CreateTaskInput) *Task {
	now := time.Now().UTC()

	priority := input.Priority
	if priority == "" {
		priority = TaskPriorityMedium
	}

	return &Task{
		ID:          NewTaskID(),
		Title:       input.Title,
		Description: input.Description,
		Status:      TaskStatusPending,
		Priority:    priority,
		DueDate:     input.DueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Apply merges a partial update into the task and bumps UpdatedAt.
// Only non-nil fields of the input are applied.
func (t *Task) Apply(input UpdateTaskInput) {
	if input.Title != nil {
		t.Title = *input.Title
	}
	if input.Description != nil {
		t.Description = *input.Description
	}
	if input.Status != nil {
		t.Status = *input.Status
	}
	if input.Priority != nil {
		t.Priority = *input.Priority
	}
	if input.DueDate != nil {
		t.DueDate = input.DueDate
	}
	t.UpdatedAt = time.Now().UTC()
}

// NewTaskID generates a task ID of the form "<unix-ms>-<8 hex chars>".
// The millisecond prefix keeps IDs roughly sortable by creation time; the
// random suffix makes collisions under concurrent creation practically
// impossible without any coordination between writers.
func NewTaskID() string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), suffix)
}
