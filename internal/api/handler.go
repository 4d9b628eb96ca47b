package api

import (
	"context"
	"log/slog"

	"github.com/phrazzld/gogoanime-api/internal/provider"
)

// DocumentationURL is the public documentation of the provider routes.
const DocumentationURL = "https://docs.consumet.org/#tag/gogoanime"

// Argument structs bound from each route's path and query parameters.
type (
	searchArgs struct {
		Query string `path:"query" validate:"required"`
		Page  int    `query:"page"`
	}

	pageArgs struct {
		Page int `query:"page"`
	}

	scheduleArgs struct {
		Date string `path:"date" validate:"required"`
	}

	suggestionArgs struct {
		Query string `path:"query" validate:"required"`
	}

	infoArgs struct {
		ID string `query:"id" validate:"required"`
	}

	watchArgs struct {
		EpisodeID string                   `path:"episodeId" label:"id" validate:"required"`
		Server    provider.StreamingServer `query:"server" validate:"omitempty,streaming_server"`
		Dub       bool                     `query:"dub"`
	}

	serversArgs struct {
		EpisodeID string `path:"episodeId" label:"id" validate:"required"`
		Dub       bool   `query:"dub"`
	}

	genreArgs struct {
		Genre string `path:"genre" validate:"required"`
		Page  int    `query:"page"`
	}
)

// Landing is the static description served at the provider root.
type Landing struct {
	Intro         string   `json:"intro"`
	Routes        []string `json:"routes"`
	Documentation string   `json:"documentation"`
}

// GogoanimeHandler serves the gogoanime routes.
type GogoanimeHandler struct {
	provider provider.Provider
	baseURL  string
	logger   *slog.Logger
	routes   []Route
	landing  Landing
}

// NewGogoanimeHandler creates a handler dispatching to p. baseURL is the
// provider's origin as shown to clients.
func NewGogoanimeHandler(p provider.Provider, baseURL string, logger *slog.Logger) *GogoanimeHandler {
	if p == nil {
		panic("provider cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}

	h := &GogoanimeHandler{
		provider: p,
		baseURL:  baseURL,
		logger:   logger.With(slog.String("component", "gogoanime_handler")),
	}
	h.routes = h.buildRoutes()
	h.landing = Landing{
		Intro:         "Welcome to the gogoanime provider: check out the provider's website @ " + baseURL,
		Routes:        documentedPaths(h.routes),
		Documentation: DocumentationURL,
	}
	return h
}

func (h *GogoanimeHandler) describe(context.Context, noArgs) (Landing, error) {
	return h.landing, nil
}

func (h *GogoanimeHandler) search(ctx context.Context, a searchArgs) (*provider.Page, error) {
	return h.provider.Search(ctx, a.Query, a.Page)
}

func (h *GogoanimeHandler) latestCompleted(ctx context.Context, a pageArgs) (*provider.Page, error) {
	return h.provider.FetchLatestCompleted(ctx, a.Page)
}

func (h *GogoanimeHandler) newReleases(ctx context.Context, a pageArgs) (*provider.Page, error) {
	return h.provider.FetchNewReleases(ctx, a.Page)
}

func (h *GogoanimeHandler) recentlyAdded(ctx context.Context, a pageArgs) (*provider.Page, error) {
	return h.provider.FetchRecentlyAdded(ctx, a.Page)
}

func (h *GogoanimeHandler) recentEpisodes(ctx context.Context, a pageArgs) (*provider.Page, error) {
	return h.provider.FetchRecentlyUpdated(ctx, a.Page)
}

func (h *GogoanimeHandler) schedule(ctx context.Context, a scheduleArgs) (*provider.Schedule, error) {
	return h.provider.FetchSchedule(ctx, a.Date)
}

func (h *GogoanimeHandler) spotlight(ctx context.Context, _ noArgs) (*provider.Spotlight, error) {
	return h.provider.FetchSpotlight(ctx)
}

func (h *GogoanimeHandler) searchSuggestions(ctx context.Context, a suggestionArgs) (*provider.Suggestions, error) {
	return h.provider.FetchSearchSuggestions(ctx, a.Query)
}

func (h *GogoanimeHandler) info(ctx context.Context, a infoArgs) (*provider.AnimeInfo, error) {
	return h.provider.FetchAnimeInfo(ctx, a.ID)
}

func (h *GogoanimeHandler) watch(ctx context.Context, a watchArgs) (*provider.Sources, error) {
	return h.provider.FetchEpisodeSources(ctx, a.EpisodeID, a.Server, provider.SubOrDubFromFlag(a.Dub))
}

func (h *GogoanimeHandler) servers(ctx context.Context, a serversArgs) ([]provider.EpisodeServer, error) {
	return h.provider.FetchEpisodeServers(ctx, a.EpisodeID, provider.SubOrDubFromFlag(a.Dub))
}

func (h *GogoanimeHandler) genres(ctx context.Context, _ noArgs) ([]provider.Genre, error) {
	return h.provider.FetchGenres(ctx)
}

func (h *GogoanimeHandler) genre(ctx context.Context, a genreArgs) (*provider.Page, error) {
	return h.provider.GenreSearch(ctx, a.Genre, a.Page)
}

// category returns the operation listing one category.
func (h *GogoanimeHandler) category(c provider.Category) operation[pageArgs, *provider.Page] {
	return func(ctx context.Context, a pageArgs) (*provider.Page, error) {
		return h.provider.FetchCategory(ctx, c, a.Page)
	}
}
