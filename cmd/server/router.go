package main

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/phrazzld/taskdeck-api/internal/api"
	apiMiddleware "github.com/phrazzld/taskdeck-api/internal/api/middleware"
	"github.com/phrazzld/taskdeck-api/internal/platform/metrics"
)

// maxConcurrentRequests bounds in-flight requests; excess requests wait and
// time out with 503, the fixed rate-limiting collaborator in front of the API.
const maxConcurrentRequests = 100

// setupRouter creates and configures the application router with all routes
// and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)
	r.Use(apiMiddleware.RequestLogger)
	r.Use(metrics.Middleware)

	taskHandler := api.NewTaskHandler(app.taskService, app.logger)

	// Register routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.ThrottleBacklog(maxConcurrentRequests, maxConcurrentRequests, time.Second))

		r.Get("/tasks", taskHandler.ListTasks)
		r.Post("/tasks", taskHandler.CreateTask)
		r.Delete("/tasks", taskHandler.DeleteAllTasks)

		r.Get("/tasks/{id}", taskHandler.GetTask)
		r.Put("/tasks/{id}", taskHandler.UpdateTask)
		r.Delete("/tasks/{id}", taskHandler.DeleteTask)
	})

	// Health check endpoint: reports whether the store is reachable.
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := app.redisClient.Ping(ctx).Err(); err != nil {
			app.logger.Error("health check failed", "error", err)
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("store unreachable"))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	// Prometheus scrape endpoint
	r.Handle("/metrics", metrics.Handler())

	return r
}
