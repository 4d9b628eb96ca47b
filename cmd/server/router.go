package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/gogoanime-api/internal/api"
	apiMiddleware "github.com/phrazzld/gogoanime-api/internal/api/middleware"
	"github.com/phrazzld/gogoanime-api/internal/platform/metrics"
)

// ProviderPrefix is the path every gogoanime route is mounted under.
const ProviderPrefix = "/anime/gogoanime"

// setupRouter creates the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))
	r.Use(apiMiddleware.Recoverer(api.GenericErrorMessage))

	handler := api.NewGogoanimeHandler(app.provider, app.origin, app.logger)
	r.Route(ProviderPrefix, handler.Mount)

	r.Handle("/metrics", metrics.Handler(app.registry))

	r.Get("/health", app.health)

	return r
}

// health answers OK, or DEGRADED when the provider cache is unreachable.
// Both answer 200.
func (app *application) health(w http.ResponseWriter, r *http.Request) {
	status := "OK"
	if err := app.checkCache(r.Context()); err != nil {
		app.logger.WarnContext(r.Context(), "Health check: provider cache unreachable", "error", err)
		status = "DEGRADED: provider cache unreachable"
	}

	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(status)); err != nil {
		app.logger.Error("Failed to write health check response", "error", err)
	}
}
