package api

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/phrazzld/taskdeck-api/internal/api/shared"
	"github.com/phrazzld/taskdeck-api/internal/platform/logger"
	"github.com/phrazzld/taskdeck-api/internal/service"
)

// DeleteAllResponse is the payload returned by the bulk delete endpoint.
type DeleteAllResponse struct {
	Message      string `json:"message"`
	DeletedCount int    `json:"deletedCount"`
}

// TaskHandler handles task-related HTTP requests.
type TaskHandler struct {
	taskService service.TaskService
	logger      *slog.Logger
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService service.TaskService, logger *slog.Logger) *TaskHandler {
	if taskService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("taskService cannot be nil for TaskHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for TaskHandler")
	}

	return &TaskHandler{
		taskService: taskService,
		logger:      logger.With(slog.String("component", "task_handler")),
	}
}

// ListTasks handles GET /tasks requests with pagination, filtering, and
// sorting.
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	params, err := ParseListQuery(r.URL.Query())
	if err != nil {
		log.Warn("list query validation failed", slog.String("error", err.Error()))
		h.respondError(w, r, err, "")
		return
	}

	result, err := h.taskService.List(r.Context(), params)
	if err != nil {
		h.respondError(w, r, err, "")
		return
	}

	log.Debug("tasks listed",
		slog.Int("total", result.Pagination.Total),
		slog.Int("returned", len(result.Data)))
	shared.RespondWithJSON(w, r, http.StatusOK, result)
}

// GetTask handles GET /tasks/{id} requests.
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id := chi.URLParam(r, "id")
	if id == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, CodeValidationError, "Task ID is required")
		return
	}

	task, err := h.taskService.Get(r.Context(), id)
	if err != nil {
		h.respondError(w, r, err, taskNotFoundMessage(id))
		return
	}

	log.Debug("task retrieved", slog.String("task_id", id))
	shared.RespondWithJSON(w, r, http.StatusOK, shared.DataResponse{Data: task})
}

// CreateTask handles POST /tasks requests.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	req, err := DecodeAndValidateCreate(r)
	if err != nil {
		log.Warn("create validation failed", slog.String("error", err.Error()))
		h.respondError(w, r, err, "")
		return
	}

	task, err := h.taskService.Create(r.Context(), req.ToInput())
	if err != nil {
		h.respondError(w, r, err, "")
		return
	}

	log.Debug("task created", slog.String("task_id", task.ID))
	shared.RespondWithJSON(w, r, http.StatusCreated, shared.DataResponse{Data: task})
}

// UpdateTask handles PUT /tasks/{id} requests with a partial payload.
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id := chi.URLParam(r, "id")
	if id == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, CodeValidationError, "Task ID is required")
		return
	}

	req, err := DecodeAndValidateUpdate(r)
	if err != nil {
		log.Warn("update validation failed",
			slog.String("task_id", id),
			slog.String("error", err.Error()))
		h.respondError(w, r, err, "")
		return
	}

	task, err := h.taskService.Update(r.Context(), id, req.ToInput())
	if err != nil {
		h.respondError(w, r, err, taskNotFoundMessage(id))
		return
	}

	log.Debug("task updated", slog.String("task_id", id))
	shared.RespondWithJSON(w, r, http.StatusOK, shared.DataResponse{Data: task})
}

// DeleteTask handles DELETE /tasks/{id} requests.
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id := chi.URLParam(r, "id")
	if id == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, CodeValidationError, "Task ID is required")
		return
	}

	if err := h.taskService.Delete(r.Context(), id); err != nil {
		h.respondError(w, r, err, taskNotFoundMessage(id))
		return
	}

	log.Debug("task deleted", slog.String("task_id", id))
	w.WriteHeader(http.StatusNoContent)
}

// DeleteAllTasks handles DELETE /tasks requests.
func (h *TaskHandler) DeleteAllTasks(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	count, err := h.taskService.DeleteAll(r.Context())
	if err != nil {
		h.respondError(w, r, err, "")
		return
	}

	log.Debug("all tasks deleted", slog.Int("deleted_count", count))
	shared.RespondWithJSON(w, r, http.StatusOK, shared.DataResponse{Data: DeleteAllResponse{
		Message:      fmt.Sprintf("Successfully deleted %d task(s)", count),
		DeletedCount: count,
	}})
}

// respondError translates an error into the transport response. Operational
// errors (validation, not found) carry their message verbatim; anything else
// is logged in full and collapsed to a generic message for the client.
func (h *TaskHandler) respondError(w http.ResponseWriter, r *http.Request, err error, notFoundMessage string) {
	status := MapErrorToStatusCode(err)
	code := MapErrorToCode(err)
	message := GetSafeErrorMessage(err)

	if status == http.StatusNotFound && notFoundMessage != "" {
		message = notFoundMessage
	}

	if status >= http.StatusInternalServerError {
		shared.RespondWithErrorAndLog(w, r, status, code, message, err)
		return
	}
	shared.RespondWithError(w, r, status, code, message)
}

func taskNotFoundMessage(id string) string {
	return fmt.Sprintf("Task with id '%s' not found", id)
}
