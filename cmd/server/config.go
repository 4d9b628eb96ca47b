package main

import (
	"fmt"
	"log/slog"

	"github.com/phrazzld/gogoanime-api/internal/config"
)

// loadAppConfig loads the application configuration from defaults, an optional
// config file and the environment.
func loadAppConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"provider_origin", cfg.Provider.BaseURL())

	if cfg.Cache.Enabled() {
		slog.Debug("Cache configuration", "redis_addr", cfg.Cache.Addr(), "ttl", cfg.Cache.TTL.String())
	}

	return cfg, nil
}
