// Package main implements the entry point for the taskdeck API server,
// a task-management service backed by Redis.
package main

import (
	"context"
	"log"
)

// main wires configuration, logging, the Redis connection, and the HTTP
// server, then blocks until shutdown.
func main() {
	ctx := context.Background()

	app, err := newApplication(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		app.cleanup()
		log.Fatalf("Server error: %v", err)
	}
}
