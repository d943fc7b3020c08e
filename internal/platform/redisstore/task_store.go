package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/phrazzld/taskdeck-api/internal/domain"
	"github.com/phrazzld/taskdeck-api/internal/platform/logger"
	"github.com/phrazzld/taskdeck-api/internal/store"
)

// Key layout in Redis.
const (
	taskKeyPrefix = "task:"
	taskIndexKey  = "tasks:index"
)

// TaskStore implements the store.TaskStore interface using Redis.
type TaskStore struct {
	client redis.Cmdable
}

// Compile-time interface check.
var _ store.TaskStore = (*TaskStore)(nil)

// NewTaskStore creates a new TaskStore backed by the given Redis client.
func NewTaskStore(client redis.Cmdable) *TaskStore {
	return &TaskStore{client: client}
}

func taskKey(id string) string {
	return taskKeyPrefix + id
}

// GetAll reads the index and bulk-fetches every record in one pipelined
// round trip. Index entries with no backing record, and records that no
// longer unmarshal, are skipped so a partially failed write cannot take the
// whole listing down.
func (s *TaskStore) GetAll(ctx context.Context) ([]domain.Task, error) {
	log := logger.FromContext(ctx)

	ids, err := s.client.SMembers(ctx, taskIndexKey).Result()
	if err != nil {
		return nil, store.NewStoreError("getAll", "failed to read task index", err)
	}
	if len(ids) == 0 {
		return []domain.Task{}, nil
	}

	cmds := make([]*redis.StringCmd, 0, len(ids))
	_, err = s.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, id := range ids {
			cmds = append(cmds, pipe.Get(ctx, taskKey(id)))
		}
		return nil
	})
	// redis.Nil from individual GETs surfaces as the pipeline error; missing
	// records are handled per-command below, not treated as a failure here.
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, store.NewStoreError("getAll", "failed to fetch task records", err)
	}

	tasks := make([]domain.Task, 0, len(ids))
	for i, cmd := range cmds {
		raw, err := cmd.Result()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			return nil, store.NewStoreError("getAll", "failed to fetch task record", err)
		}

		var task domain.Task
		if err := json.Unmarshal([]byte(raw), &task); err != nil {
			log.Warn("skipping unreadable task record",
				"task_id", ids[i],
				"error", err)
			continue
		}
		tasks = append(tasks, task)
	}

	return tasks, nil
}

// GetByID returns the task with the given ID, or store.ErrTaskNotFound.
func (s *TaskStore) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	raw, err := s.client.Get(ctx, taskKey(id)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, store.ErrTaskNotFound
	}
	if err != nil {
		return nil, store.NewStoreError("getById", "failed to fetch task record", err)
	}

	var task domain.Task
	if err := json.Unmarshal([]byte(raw), &task); err != nil {
		return nil, store.NewStoreError("getById", "failed to decode task record", err)
	}
	return &task, nil
}

// Create builds the task from validated input and persists it: record first,
// then the index entry.
func (s *TaskStore) Create(ctx context.Context, input domain.CreateTaskInput) (*domain.Task, error) {
	task := domain.NewTask(input)

	if err := s.writeTask(ctx, task); err != nil {
		return nil, store.NewStoreError("create", "failed to write task record", err)
	}
	if err := s.client.SAdd(ctx, taskIndexKey, task.ID).Err(); err != nil {
		return nil, store.NewStoreError("create", "failed to index task", err)
	}

	return task, nil
}

// Update fetches the existing record, applies only the provided fields, and
// writes the result back. The read-modify-write is not atomic against
// concurrent writers of the same ID; the last write wins.
func (s *TaskStore) Update(ctx context.Context, id string, input domain.UpdateTaskInput) (*domain.Task, error) {
	task, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	task.Apply(input)

	if err := s.writeTask(ctx, task); err != nil {
		return nil, store.NewStoreError("update", "failed to write task record", err)
	}
	return task, nil
}

// Delete removes the record first and only then the index entry, and only
// when the record actually existed. Removing the index entry for a
// never-existing ID would mask index drift elsewhere.
func (s *TaskStore) Delete(ctx context.Context, id string) error {
	removed, err := s.client.Del(ctx, taskKey(id)).Result()
	if err != nil {
		return store.NewStoreError("delete", "failed to delete task record", err)
	}
	if removed == 0 {
		return store.ErrTaskNotFound
	}

	if err := s.client.SRem(ctx, taskIndexKey, id).Err(); err != nil {
		return store.NewStoreError("delete", "failed to remove task from index", err)
	}
	return nil
}

// DeleteAll removes every indexed record and the index itself in one
// pipelined round trip. The returned count is the number of index entries
// processed, which may exceed the number of records that actually existed;
// stale index entries still count.
func (s *TaskStore) DeleteAll(ctx context.Context) (int, error) {
	ids, err := s.client.SMembers(ctx, taskIndexKey).Result()
	if err != nil {
		return 0, store.NewStoreError("deleteAll", "failed to read task index", err)
	}
	if len(ids) == 0 {
		return 0, nil
	}

	_, err = s.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, id := range ids {
			pipe.Del(ctx, taskKey(id))
		}
		pipe.Del(ctx, taskIndexKey)
		return nil
	})
	if err != nil {
		return 0, store.NewStoreError("deleteAll", "failed to delete task records", err)
	}

	return len(ids), nil
}

func (s *TaskStore) writeTask(ctx context.Context, task *domain.Task) error {
	raw, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("failed to encode task %s: %w", task.ID, err)
	}
	return s.client.Set(ctx, taskKey(task.ID), raw, 0).Err()
}
