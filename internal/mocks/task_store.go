package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/taskdeck-api/internal/domain"
	"github.com/phrazzld/taskdeck-api/internal/store"
)

// MemoryTaskStore is an in-memory implementation of store.TaskStore for
// tests. It mirrors the semantics of the Redis-backed store: not-found
// sentinels, read-modify-write updates, and a deleteAll count equal to the
// number of stored entries. Optional error hooks let tests inject faults
// per operation.
type MemoryTaskStore struct {
	mu    sync.Mutex
	tasks map[string]domain.Task

	// When set, the corresponding operation returns this error instead of
	// touching the in-memory state.
	GetAllErr    error
	GetByIDErr   error
	CreateErr    error
	UpdateErr    error
	DeleteErr    error
	DeleteAllErr error
}

// Compile-time interface check.
var _ store.TaskStore = (*MemoryTaskStore)(nil)

// NewMemoryTaskStore creates an empty in-memory task store.
func NewMemoryTaskStore() *MemoryTaskStore {
	return &MemoryTaskStore{tasks: make(map[string]domain.Task)}
}

// Seed inserts a task directly, bypassing ID generation. Useful for tests
// that need deterministic IDs or timestamps.
func (m *MemoryTaskStore) Seed(task domain.Task) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tasks[task.ID] = task
}

// Len reports the number of stored tasks.
func (m *MemoryTaskStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tasks)
}

func (m *MemoryTaskStore) GetAll(ctx context.Context) ([]domain.Task, error) {
	if m.GetAllErr != nil {
		return nil, m.GetAllErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	tasks := make([]domain.Task, 0, len(m.tasks))
	for _, t := range m.tasks {
		tasks = append(tasks, t)
	}
	return tasks, nil
}

func (m *MemoryTaskStore) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	if m.GetByIDErr != nil {
		return nil, m.GetByIDErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	task, ok := m.tasks[id]
	if !ok {
		return nil, store.ErrTaskNotFound
	}
	return &task, nil
}

func (m *MemoryTaskStore) Create(ctx context.Context, input domain.CreateTaskInput) (*domain.Task, error) {
	if m.CreateErr != nil {
		return nil, m.CreateErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	task := domain.NewTask(input)
	m.tasks[task.ID] = *task
	return task, nil
}

func (m *MemoryTaskStore) Update(ctx context.Context, id string, input domain.UpdateTaskInput) (*domain.Task, error) {
	if m.UpdateErr != nil {
		return nil, m.UpdateErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	task, ok := m.tasks[id]
	if !ok {
		return nil, store.ErrTaskNotFound
	}
	task.Apply(input)
	m.tasks[id] = task
	return &task, nil
}

func (m *MemoryTaskStore) Delete(ctx context.Context, id string) error {
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.tasks[id]; !ok {
		return store.ErrTaskNotFound
	}
	delete(m.tasks, id)
	return nil
}

func (m *MemoryTaskStore) DeleteAll(ctx context.Context) (int, error) {
	if m.DeleteAllErr != nil {
		return 0, m.DeleteAllErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	count := len(m.tasks)
	m.tasks = make(map[string]domain.Task)
	return count, nil
}
