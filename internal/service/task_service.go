// Package service contains the orchestration layer between the HTTP boundary
// and the task store.
package service

import (
	"context"
	"log/slog"

	"github.com/phrazzld/taskdeck-api/internal/domain"
	"github.com/phrazzld/taskdeck-api/internal/query"
	"github.com/phrazzld/taskdeck-api/internal/store"
)

// TaskService provides task operations to the HTTP boundary. Payloads are
// assumed to be validated before they reach this layer; "not found" is
// reported via store.ErrTaskNotFound and propagates unchanged.
type TaskService interface {
	// List returns one page of tasks with pagination metadata.
	List(ctx context.Context, params query.Params) (query.Result, error)

	// Get returns the task with the given ID.
	Get(ctx context.Context, id string) (*domain.Task, error)

	// Create persists a new task from validated input.
	Create(ctx context.Context, input domain.CreateTaskInput) (*domain.Task, error)

	// Update applies a validated partial update to an existing task.
	Update(ctx context.Context, id string, input domain.UpdateTaskInput) (*domain.Task, error)

	// Delete removes the task with the given ID.
	Delete(ctx context.Context, id string) error

	// DeleteAll removes every task and returns the number of index entries
	// processed. Always succeeds on an empty store, returning 0.
	DeleteAll(ctx context.Context) (int, error)
}

type taskService struct {
	store  store.TaskStore
	logger *slog.Logger
}

// NewTaskService creates a TaskService backed by the given store.
func NewTaskService(taskStore store.TaskStore, logger *slog.Logger) TaskService {
	if taskStore == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("taskStore cannot be nil for TaskService")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for TaskService")
	}

	return &taskService{
		store:  taskStore,
		logger: logger.With(slog.String("component", "task_service")),
	}
}

func (s *taskService) List(ctx context.Context, params query.Params) (query.Result, error) {
	tasks, err := s.store.GetAll(ctx)
	if err != nil {
		return query.Result{}, err
	}

	result := query.Run(tasks, params)

	s.logger.Info("tasks retrieved",
		slog.Int("total", result.Pagination.Total),
		slog.Int("page", result.Pagination.Page),
		slog.Int("limit", result.Pagination.Limit))

	return result, nil
}

func (s *taskService) Get(ctx context.Context, id string) (*domain.Task, error) {
	task, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("task retrieved", slog.String("task_id", id))
	return task, nil
}

func (s *taskService) Create(ctx context.Context, input domain.CreateTaskInput) (*domain.Task, error) {
	task, err := s.store.Create(ctx, input)
	if err != nil {
		return nil, err
	}

	s.logger.Info("task created", slog.String("task_id", task.ID))
	return task, nil
}

func (s *taskService) Update(ctx context.Context, id string, input domain.UpdateTaskInput) (*domain.Task, error) {
	task, err := s.store.Update(ctx, id, input)
	if err != nil {
		return nil, err
	}

	s.logger.Info("task updated", slog.String("task_id", id))
	return task, nil
}

func (s *taskService) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("task deleted", slog.String("task_id", id))
	return nil
}

func (s *taskService) DeleteAll(ctx context.Context) (int, error) {
	count, err := s.store.DeleteAll(ctx)
	if err != nil {
		return 0, err
	}

	s.logger.Info("all tasks deleted", slog.Int("deleted_count", count))
	return count, nil
}
