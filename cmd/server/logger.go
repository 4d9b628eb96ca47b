package main

import (
	"fmt"
	"log/slog"

	"github.com/phrazzld/gogoanime-api/internal/config"
	"github.com/phrazzld/gogoanime-api/internal/platform/logger"
)

// setupAppLogger configures the application logger from config settings.
func setupAppLogger(cfg *config.Config) (*slog.Logger, error) {
	l, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}
	return l, nil
}
