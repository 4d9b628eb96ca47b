package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/gogoanime-api/internal/provider"
)

// Route describes one GET endpoint of the provider.
type Route struct {
	// Pattern is the chi pattern relative to the provider prefix.
	Pattern string
	// Operation names the provider operation in logs.
	Operation string
	// Documented routes are listed on the landing page.
	Documented bool
	Handler    http.HandlerFunc
}

// buildRoutes returns the route table in registration order. The order of
// documented routes is the order shown on the landing page.
func (h *GogoanimeHandler) buildRoutes() []Route {
	return []Route{
		{"/", "describe", false, dispatch(h, "describe", FailureUnexpected, h.describe)},
		{"/{query}", "search", true, dispatch(h, "search", FailureUnexpected, h.search)},
		{"/latest-completed", "latest_completed", true, dispatch(h, "latest_completed", FailureUnexpected, h.latestCompleted)},
		{"/new-releases", "new_releases", true, dispatch(h, "new_releases", FailureUnexpected, h.newReleases)},
		{"/recent-added", "recent_added", true, dispatch(h, "recent_added", FailureUnexpected, h.recentlyAdded)},
		{"/recent-episodes", "recent_episodes", true, dispatch(h, "recent_episodes", FailureUnexpected, h.recentEpisodes)},
		{"/schedule/{date}", "schedule", true, dispatch(h, "schedule", FailureUnexpected, h.schedule)},
		{"/spotlight", "spotlight", true, dispatch(h, "spotlight", FailureUnexpected, h.spotlight)},
		{"/search-suggestions/{query}", "search_suggestions", true, dispatch(h, "search_suggestions", FailureUnexpected, h.searchSuggestions)},
		{"/info", "info", true, dispatch(h, "info", FailureLookup, h.info)},
		{"/watch/{episodeId}", "watch", true, dispatch(h, "watch", FailureLookup, h.watch)},
		{"/servers/{episodeId}", "servers", false, dispatch(h, "servers", FailureLookup, h.servers)},
		{"/genre/list", "genre_list", true, dispatch(h, "genre_list", FailureUnexpected, h.genres)},
		{"/genre/{genre}", "genre", true, dispatch(h, "genre", FailureUnexpected, h.genre)},
		{"/movies", "movies", true, dispatch(h, "movies", FailureUnexpected, h.category(provider.CategoryMovie))},
		{"/ona", "ona", true, dispatch(h, "ona", FailureUnexpected, h.category(provider.CategoryONA))},
		{"/ova", "ova", true, dispatch(h, "ova", FailureUnexpected, h.category(provider.CategoryOVA))},
		{"/specials", "specials", true, dispatch(h, "specials", FailureUnexpected, h.category(provider.CategorySpecial))},
		{"/tv", "tv", true, dispatch(h, "tv", FailureUnexpected, h.category(provider.CategoryTV))},
	}
}

// Routes returns a copy of the route table.
func (h *GogoanimeHandler) Routes() []Route {
	return append([]Route(nil), h.routes...)
}

// Landing returns the description served at the provider root.
func (h *GogoanimeHandler) Landing() Landing {
	return h.landing
}

// Mount registers every route on r.
func (h *GogoanimeHandler) Mount(r chi.Router) {
	for _, route := range h.routes {
		r.Get(route.Pattern, route.Handler)
	}
}

var patternDisplay = strings.NewReplacer("{", ":", "}", "")

// documentedPaths lists documented patterns in the :param notation.
func documentedPaths(routes []Route) []string {
	paths := make([]string, 0, len(routes))
	for _, route := range routes {
		if route.Documented {
			paths = append(paths, patternDisplay.Replace(route.Pattern))
		}
	}
	return paths
}
