// Package store defines the persistence contract for tasks and the sentinel
// errors shared by every implementation.
package store

import (
	"context"

	"github.com/phrazzld/taskdeck-api/internal/domain"
)

// TaskStore is the persistence boundary for task records. Implementations
// own key layout and serialization; they perform no payload validation.
type TaskStore interface {
	// GetAll returns every task reachable from the index. Index entries
	// whose record is missing are skipped rather than reported as errors.
	GetAll(ctx context.Context) ([]domain.Task, error)

	// GetByID returns the task with the given ID, or ErrTaskNotFound.
	GetByID(ctx context.Context, id string) (*domain.Task, error)

	// Create persists a new task built from the input, assigning its ID,
	// timestamps, and default status/priority.
	Create(ctx context.Context, input domain.CreateTaskInput) (*domain.Task, error)

	// Update applies a partial update to an existing task and returns the
	// stored result, or ErrTaskNotFound when no such task exists. The
	// read-modify-write is not atomic against concurrent writers of the
	// same ID; the last write wins.
	Update(ctx context.Context, id string, input domain.UpdateTaskInput) (*domain.Task, error)

	// Delete removes the task with the given ID, or returns ErrTaskNotFound.
	Delete(ctx context.Context, id string) error

	// DeleteAll removes every indexed task and clears the index, returning
	// the number of index entries processed.
	DeleteAll(ctx context.Context) (int, error)
}
