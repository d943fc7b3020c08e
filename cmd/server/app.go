package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/phrazzld/taskdeck-api/internal/config"
	"github.com/phrazzld/taskdeck-api/internal/platform/logger"
	"github.com/phrazzld/taskdeck-api/internal/platform/redisstore"
	"github.com/phrazzld/taskdeck-api/internal/service"
)

// application bundles the process-wide dependencies: configuration, logger,
// the Redis handle, and the task service built on top of it. Everything is
// constructed once here and injected; no package-level singletons.
type application struct {
	config      *config.Config
	logger      *slog.Logger
	redisClient *redis.Client
	taskService service.TaskService
}

// newApplication loads configuration, sets up logging, connects to Redis,
// and wires the service layer. The Redis connection is verified before the
// server starts accepting requests.
func newApplication(ctx context.Context) (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	log.Info("server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"redis_addr", cfg.Redis.Addr)

	redisClient, err := redisstore.NewClient(ctx, cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	log.Info("connected to redis", "addr", cfg.Redis.Addr)

	taskStore := redisstore.NewTaskStore(redisClient)
	taskService := service.NewTaskService(taskStore, log)

	return &application{
		config:      cfg,
		logger:      log,
		redisClient: redisClient,
		taskService: taskService,
	}, nil
}

// cleanup releases process-wide resources during shutdown.
func (app *application) cleanup() {
	if app.redisClient != nil {
		if err := app.redisClient.Close(); err != nil {
			app.logger.Error("failed to close redis client", "error", err)
		}
	}
}
