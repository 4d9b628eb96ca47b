// Package main implements the entry point of the gogoanime API server,
// which exposes the gogoanime catalog provider over HTTP.
package main

import (
	"context"
	"log"
	"log/slog"
)

func main() {
	cfg, err := loadAppConfig()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	logger, err := setupAppLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	app, err := newApplication(cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize application", slog.String("error", err.Error()))
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if err := app.startHTTPServer(context.Background(), app.setupRouter()); err != nil {
		logger.Error("Server stopped with error", slog.String("error", err.Error()))
		log.Fatalf("Server error: %v", err)
	}
}
