package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/phrazzld/gogoanime-api/internal/config"
	"github.com/phrazzld/gogoanime-api/internal/platform/cache"
	"github.com/phrazzld/gogoanime-api/internal/platform/gogoanime"
	"github.com/phrazzld/gogoanime-api/internal/platform/metrics"
	"github.com/phrazzld/gogoanime-api/internal/platform/network"
	"github.com/phrazzld/gogoanime-api/internal/provider"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const cachePingTimeout = 2 * time.Second

// application holds the shared application dependencies and releases them
// on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	// provider is the fully decorated provider handed to the HTTP layer.
	// It is built once and only read afterwards.
	provider provider.Provider
	origin   string

	registry   *prometheus.Registry
	redisStore *cache.RedisStore
}

// newApplication builds the provider chain: the gogoanime scraper, an optional
// Redis cache, and Prometheus instrumentation on top.
func newApplication(cfg *config.Config, logger *slog.Logger) (*application, error) {
	return newApplicationWithClient(cfg, logger, network.NewClient())
}

func newApplicationWithClient(cfg *config.Config, logger *slog.Logger, httpClient *http.Client) (*application, error) {
	app := &application{
		config:   cfg,
		logger:   logger,
		registry: prometheus.NewRegistry(),
	}

	client, err := gogoanime.NewClient(cfg.Provider.BaseURL(), cfg.Provider.AjaxURL, httpClient, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create gogoanime client: %w", err)
	}
	app.origin = client.BaseURL()

	var p provider.Provider = client
	if cfg.Cache.Enabled() {
		app.redisStore = cache.NewRedisStore(cache.NewRedisClient(cfg.Cache))
		p = cache.NewCachedProvider(p, app.redisStore, cfg.Cache.TTL, logger)
		logger.Info("Provider cache enabled", "redis_addr", cfg.Cache.Addr(), "ttl", cfg.Cache.TTL.String())

		if err := app.checkCache(context.Background()); err != nil {
			logger.Warn("Provider cache unreachable, serving from origin until it recovers",
				"redis_addr", cfg.Cache.Addr(), "error", err)
		}
	}

	app.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	app.provider = metrics.NewInstrumentedProvider(p, app.registry)

	return app, nil
}

// checkCache pings the cache store, if one is configured.
func (app *application) checkCache(ctx context.Context) error {
	if app.redisStore == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, cachePingTimeout)
	defer cancel()
	return app.redisStore.Ping(ctx)
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.redisStore != nil {
		if err := app.redisStore.Close(); err != nil {
			app.logger.Error("Failed to close redis client", "error", err)
		}
	}
}
