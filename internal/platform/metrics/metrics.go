// Package metrics instruments the provider with Prometheus collectors.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/phrazzld/gogoanime-api/internal/provider"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcomes recorded in the outcome label.
const (
	OutcomeSuccess  = "success"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

// InstrumentedProvider records the count, outcome and latency of every
// provider call.
type InstrumentedProvider struct {
	next     provider.Provider
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

var _ provider.Provider = (*InstrumentedProvider)(nil)

// NewInstrumentedProvider registers its collectors on reg and decorates next.
func NewInstrumentedProvider(next provider.Provider, reg prometheus.Registerer) *InstrumentedProvider {
	factory := promauto.With(reg)
	return &InstrumentedProvider{
		next: next,
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "gogoanime_provider_requests_total",
			Help: "Provider calls by operation and outcome.",
		}, []string{"operation", "outcome"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "gogoanime_provider_request_duration_seconds",
			Help:    "Provider call latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
	}
}

// Handler serves the metrics gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

func outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, provider.ErrNotFound):
		return OutcomeNotFound
	default:
		return OutcomeError
	}
}

// observe runs call and records it under operation.
func observe[T any](p *InstrumentedProvider, operation string, call func() (T, error)) (T, error) {
	start := time.Now()
	value, err := call()
	p.duration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	p.requests.WithLabelValues(operation, outcome(err)).Inc()
	return value, err
}

func (p *InstrumentedProvider) Search(ctx context.Context, query string, page int) (*provider.Page, error) {
	return observe(p, "search", func() (*provider.Page, error) { return p.next.Search(ctx, query, page) })
}

func (p *InstrumentedProvider) FetchLatestCompleted(ctx context.Context, page int) (*provider.Page, error) {
	return observe(p, "latest_completed", func() (*provider.Page, error) { return p.next.FetchLatestCompleted(ctx, page) })
}

func (p *InstrumentedProvider) FetchNewReleases(ctx context.Context, page int) (*provider.Page, error) {
	return observe(p, "new_releases", func() (*provider.Page, error) { return p.next.FetchNewReleases(ctx, page) })
}

func (p *InstrumentedProvider) FetchRecentlyAdded(ctx context.Context, page int) (*provider.Page, error) {
	return observe(p, "recent_added", func() (*provider.Page, error) { return p.next.FetchRecentlyAdded(ctx, page) })
}

func (p *InstrumentedProvider) FetchRecentlyUpdated(ctx context.Context, page int) (*provider.Page, error) {
	return observe(p, "recent_episodes", func() (*provider.Page, error) { return p.next.FetchRecentlyUpdated(ctx, page) })
}

func (p *InstrumentedProvider) FetchSchedule(ctx context.Context, date string) (*provider.Schedule, error) {
	return observe(p, "schedule", func() (*provider.Schedule, error) { return p.next.FetchSchedule(ctx, date) })
}

func (p *InstrumentedProvider) FetchSpotlight(ctx context.Context) (*provider.Spotlight, error) {
	return observe(p, "spotlight", func() (*provider.Spotlight, error) { return p.next.FetchSpotlight(ctx) })
}

func (p *InstrumentedProvider) FetchSearchSuggestions(ctx context.Context, query string) (*provider.Suggestions, error) {
	return observe(p, "search_suggestions", func() (*provider.Suggestions, error) { return p.next.FetchSearchSuggestions(ctx, query) })
}

func (p *InstrumentedProvider) FetchAnimeInfo(ctx context.Context, id string) (*provider.AnimeInfo, error) {
	return observe(p, "info", func() (*provider.AnimeInfo, error) { return p.next.FetchAnimeInfo(ctx, id) })
}

func (p *InstrumentedProvider) FetchEpisodeSources(ctx context.Context, episodeID string, server provider.StreamingServer, subOrDub provider.SubOrDub) (*provider.Sources, error) {
	return observe(p, "watch", func() (*provider.Sources, error) {
		return p.next.FetchEpisodeSources(ctx, episodeID, server, subOrDub)
	})
}

func (p *InstrumentedProvider) FetchEpisodeServers(ctx context.Context, episodeID string, subOrDub provider.SubOrDub) ([]provider.EpisodeServer, error) {
	return observe(p, "servers", func() ([]provider.EpisodeServer, error) {
		return p.next.FetchEpisodeServers(ctx, episodeID, subOrDub)
	})
}

func (p *InstrumentedProvider) FetchGenres(ctx context.Context) ([]provider.Genre, error) {
	return observe(p, "genre_list", func() ([]provider.Genre, error) { return p.next.FetchGenres(ctx) })
}

func (p *InstrumentedProvider) GenreSearch(ctx context.Context, genre string, page int) (*provider.Page, error) {
	return observe(p, "genre", func() (*provider.Page, error) { return p.next.GenreSearch(ctx, genre, page) })
}

func (p *InstrumentedProvider) FetchCategory(ctx context.Context, category provider.Category, page int) (*provider.Page, error) {
	return observe(p, "category_"+string(category), func() (*provider.Page, error) {
		return p.next.FetchCategory(ctx, category, page)
	})
}
