package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/gogoanime-api/internal/api/shared"
	"github.com/phrazzld/gogoanime-api/internal/mocks"
	"github.com/phrazzld/gogoanime-api/internal/platform/logger"
	"github.com/phrazzld/gogoanime-api/internal/provider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testOrigin = "https://animekai.to"

func newTestRouter(t *testing.T, spy *mocks.MockProvider) (*GogoanimeHandler, http.Handler) {
	t.Helper()
	_, log := logger.SetupTestLogger(t)

	h := NewGogoanimeHandler(spy, testOrigin, log)
	r := chi.NewRouter()
	r.Route("/anime/gogoanime", h.Mount)
	return h, r
}

func serve(handler http.Handler, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func routeFor(t *testing.T, h *GogoanimeHandler, pattern string) Route {
	t.Helper()
	for _, route := range h.Routes() {
		if route.Pattern == pattern {
			return route
		}
	}
	t.Fatalf("no route with pattern %s", pattern)
	return Route{}
}

// serveRoute invokes a route handler directly with the given chi params,
// so path parameters can be empty.
func serveRoute(t *testing.T, h *GogoanimeHandler, pattern, target string, params map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	rec := httptest.NewRecorder()
	routeFor(t, h, pattern).Handler.ServeHTTP(rec, req)
	return rec
}

func messageOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body shared.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Message
}

func TestNewGogoanimeHandler_PanicsOnNilDependencies(t *testing.T) {
	_, log := logger.SetupTestLogger(t)

	assert.Panics(t, func() { NewGogoanimeHandler(nil, testOrigin, log) })
	assert.Panics(t, func() { NewGogoanimeHandler(&mocks.MockProvider{}, testOrigin, nil) })
}

func TestLanding(t *testing.T) {
	spy := &mocks.MockProvider{DefaultError: errors.New("must not be called")}
	_, router := newTestRouter(t, spy)

	rec := serve(router, "/anime/gogoanime/")

	require.Equal(t, http.StatusOK, rec.Code)
	var landing Landing
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &landing))
	assert.Contains(t, landing.Intro, testOrigin)
	assert.Equal(t, DocumentationURL, landing.Documentation)
	assert.Equal(t, []string{
		"/:query",
		"/latest-completed",
		"/new-releases",
		"/recent-added",
		"/recent-episodes",
		"/schedule/:date",
		"/spotlight",
		"/search-suggestions/:query",
		"/info",
		"/watch/:episodeId",
		"/genre/list",
		"/genre/:genre",
		"/movies",
		"/ona",
		"/ova",
		"/specials",
		"/tv",
	}, landing.Routes)
	assert.Empty(t, spy.Calls())
}

func TestRequiredFields(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		target  string
		params  map[string]string
		message string
	}{
		{"search query", "/{query}", "/?page=2", map[string]string{"query": ""}, "query is required"},
		{"schedule date", "/schedule/{date}", "/schedule/", map[string]string{"date": ""}, "date is required"},
		{"suggestion query", "/search-suggestions/{query}", "/search-suggestions/", map[string]string{"query": ""}, "query is required"},
		{"info id", "/info", "/info", nil, "id is required"},
		{"info empty id", "/info", "/info?id=", nil, "id is required"},
		{"watch episode", "/watch/{episodeId}", "/watch/?server=vidcloud", map[string]string{"episodeId": ""}, "id is required"},
		{"watch episode before server", "/watch/{episodeId}", "/watch/?server=bogus", map[string]string{"episodeId": ""}, "id is required"},
		{"servers episode", "/servers/{episodeId}", "/servers/", map[string]string{"episodeId": ""}, "id is required"},
		{"genre", "/genre/{genre}", "/genre/", map[string]string{"genre": ""}, "genre is required"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			spy := &mocks.MockProvider{}
			h, _ := newTestRouter(t, spy)

			rec := serveRoute(t, h, tc.pattern, tc.target, tc.params)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tc.message, messageOf(t, rec))
			assert.Empty(t, spy.Calls(), "provider must not be called")
		})
	}
}

func TestRequiredFields_ThroughRouter(t *testing.T) {
	spy := &mocks.MockProvider{}
	_, router := newTestRouter(t, spy)

	rec := serve(router, "/anime/gogoanime/info")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "id is required", messageOf(t, rec))
	assert.Empty(t, spy.Calls())
}

func TestWatch_ServerValidation(t *testing.T) {
	t.Run("unknown server", func(t *testing.T) {
		spy := &mocks.MockProvider{}
		_, router := newTestRouter(t, spy)

		rec := serve(router, "/anime/gogoanime/watch/naruto-episode-1?server=not-a-real-server")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "server is invalid", messageOf(t, rec))
		assert.Empty(t, spy.Calls())
	})

	t.Run("server ids are case sensitive", func(t *testing.T) {
		spy := &mocks.MockProvider{}
		_, router := newTestRouter(t, spy)

		rec := serve(router, "/anime/gogoanime/watch/naruto-episode-1?server=VidCloud")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Empty(t, spy.Calls())
	})

	for _, server := range []provider.StreamingServer{provider.ServerVidCloud, provider.ServerStreamWish, provider.ServerGogoCDN} {
		t.Run("forwards "+string(server), func(t *testing.T) {
			spy := &mocks.MockProvider{}
			_, router := newTestRouter(t, spy)

			rec := serve(router, "/anime/gogoanime/watch/naruto-episode-1?server="+string(server))

			assert.Equal(t, http.StatusOK, rec.Code)
			calls := spy.Calls()
			require.Len(t, calls, 1)
			assert.Equal(t, server, calls[0].Server)
			assert.Equal(t, []any{"naruto-episode-1"}, calls[0].Args)
		})
	}

	t.Run("absent server uses provider default", func(t *testing.T) {
		spy := &mocks.MockProvider{}
		_, router := newTestRouter(t, spy)

		serve(router, "/anime/gogoanime/watch/naruto-episode-1")

		calls := spy.Calls()
		require.Len(t, calls, 1)
		assert.Equal(t, provider.StreamingServer(""), calls[0].Server)
	})
}

func TestDubCoercion(t *testing.T) {
	tests := []struct {
		query string
		want  provider.SubOrDub
	}{
		{"?dub=true", provider.Dub},
		{"?dub=1", provider.Dub},
		{"?dub=false", provider.Sub},
		{"?dub=0", provider.Sub},
		{"?dub=yes", provider.Sub},
		{"?dub=True", provider.Sub},
		{"?dub=", provider.Sub},
		{"", provider.Sub},
	}

	for _, prefix := range []string{"/anime/gogoanime/watch/ep-1", "/anime/gogoanime/servers/ep-1"} {
		for _, tc := range tests {
			t.Run(prefix+tc.query, func(t *testing.T) {
				spy := &mocks.MockProvider{}
				_, router := newTestRouter(t, spy)

				rec := serve(router, prefix+tc.query)

				require.Equal(t, http.StatusOK, rec.Code)
				calls := spy.Calls()
				require.Len(t, calls, 1)
				assert.Equal(t, tc.want, calls[0].SubOrDub)
			})
		}
	}
}

func TestProviderFailures(t *testing.T) {
	providerErr := errors.New("no anime with id \"missing\"")

	tests := []struct {
		name    string
		target  string
		status  int
		message string
	}{
		{"info", "/anime/gogoanime/info?id=missing", http.StatusNotFound, providerErr.Error()},
		{"watch", "/anime/gogoanime/watch/missing-episode-1", http.StatusNotFound, providerErr.Error()},
		{"servers", "/anime/gogoanime/servers/missing-episode-1", http.StatusNotFound, providerErr.Error()},
		{"movies", "/anime/gogoanime/movies?page=1", http.StatusInternalServerError, GenericErrorMessage},
		{"search", "/anime/gogoanime/naruto", http.StatusInternalServerError, GenericErrorMessage},
		{"schedule", "/anime/gogoanime/schedule/2024-10-20", http.StatusInternalServerError, GenericErrorMessage},
		{"spotlight", "/anime/gogoanime/spotlight", http.StatusInternalServerError, GenericErrorMessage},
		{"genre list", "/anime/gogoanime/genre/list", http.StatusInternalServerError, GenericErrorMessage},
		{"genre", "/anime/gogoanime/genre/action", http.StatusInternalServerError, GenericErrorMessage},
		{"recent episodes", "/anime/gogoanime/recent-episodes", http.StatusInternalServerError, GenericErrorMessage},
		{"latest completed", "/anime/gogoanime/latest-completed", http.StatusInternalServerError, GenericErrorMessage},
		{"new releases", "/anime/gogoanime/new-releases", http.StatusInternalServerError, GenericErrorMessage},
		{"recent added", "/anime/gogoanime/recent-added", http.StatusInternalServerError, GenericErrorMessage},
		{"search suggestions", "/anime/gogoanime/search-suggestions/naru", http.StatusInternalServerError, GenericErrorMessage},
		{"ona", "/anime/gogoanime/ona", http.StatusInternalServerError, GenericErrorMessage},
		{"ova", "/anime/gogoanime/ova", http.StatusInternalServerError, GenericErrorMessage},
		{"specials", "/anime/gogoanime/specials", http.StatusInternalServerError, GenericErrorMessage},
		{"tv", "/anime/gogoanime/tv", http.StatusInternalServerError, GenericErrorMessage},
	}

	h, _ := newTestRouter(t, &mocks.MockProvider{})
	require.Len(t, tests, len(h.Routes())-1, "every provider route has a failure row")

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			spy := &mocks.MockProvider{DefaultError: providerErr}
			_, router := newTestRouter(t, spy)

			rec := serve(router, tc.target)

			assert.Equal(t, tc.status, rec.Code)
			assert.Equal(t, tc.message, messageOf(t, rec))
			assert.Len(t, spy.Calls(), 1)
		})
	}
}

func TestWatch_SourcesFromProvider(t *testing.T) {
	var gotServer provider.StreamingServer
	var gotSubOrDub provider.SubOrDub
	spy := &mocks.MockProvider{
		FetchEpisodeSourcesFn: func(ctx context.Context, episodeID string, server provider.StreamingServer, subOrDub provider.SubOrDub) (*provider.Sources, error) {
			gotServer, gotSubOrDub = server, subOrDub
			if episodeID != "naruto-episode-1" {
				return nil, fmt.Errorf("%w: episode %q", provider.ErrNotFound, episodeID)
			}
			return &provider.Sources{Sources: []provider.Video{{URL: "https://embed.example/e/1", IsEmbed: true}}}, nil
		},
	}
	_, router := newTestRouter(t, spy)

	rec := serve(router, "/anime/gogoanime/watch/naruto-episode-1?server=streamwish&dub=true")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"sources":[{"url":"https://embed.example/e/1","isM3U8":false,"isEmbed":true}]}`, rec.Body.String())
	assert.Equal(t, provider.ServerStreamWish, gotServer)
	assert.Equal(t, provider.Dub, gotSubOrDub)

	rec = serve(router, "/anime/gogoanime/watch/ghost-episode-9")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, `resource not found on provider: episode "ghost-episode-9"`, messageOf(t, rec))
}

func TestProviderFailures_WrappedNotFound(t *testing.T) {
	spy := &mocks.MockProvider{
		FetchAnimeInfoFn: func(ctx context.Context, id string) (*provider.AnimeInfo, error) {
			return nil, errors.Join(provider.ErrNotFound, errors.New(id))
		},
	}
	_, router := newTestRouter(t, spy)

	rec := serve(router, "/anime/gogoanime/info?id=ghost")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "resource not found on provider\nghost", messageOf(t, rec))
}

func TestSuccessPassthrough(t *testing.T) {
	page := &provider.Page{
		CurrentPage: 2,
		HasNextPage: true,
		Results:     []provider.AnimeResult{{ID: "naruto", Title: "Naruto", SubOrDub: "sub"}},
	}

	tests := []struct {
		target string
		value  any
	}{
		{"/anime/gogoanime/naruto?page=2", page},
		{"/anime/gogoanime/latest-completed", page},
		{"/anime/gogoanime/new-releases", page},
		{"/anime/gogoanime/recent-added", page},
		{"/anime/gogoanime/recent-episodes", page},
		{"/anime/gogoanime/schedule/2024-10-20", &provider.Schedule{
			Date:    "2024-10-20",
			Results: []provider.ScheduleEntry{{ID: "one-piece", Title: "One Piece", AiringTime: "09:30", AiringEpisode: "Episode 1120"}},
		}},
		{"/anime/gogoanime/spotlight", &provider.Spotlight{Results: []provider.SpotlightEntry{{ID: "frieren", Title: "Frieren", Rank: 1}}}},
		{"/anime/gogoanime/search-suggestions/naru", &provider.Suggestions{Results: []provider.Suggestion{{ID: "naruto", Title: "Naruto"}}}},
		{"/anime/gogoanime/info?id=naruto", &provider.AnimeInfo{
			ID:       "naruto",
			Title:    "Naruto",
			URL:      testOrigin + "/category/naruto",
			SubOrDub: provider.Sub,
			Genres:   []string{"Action"},
			Episodes: []provider.Episode{{ID: "naruto-episode-1", Number: 1, URL: testOrigin + "/naruto-episode-1"}},
		}},
		{"/anime/gogoanime/watch/naruto-episode-1", &provider.Sources{
			Headers: map[string]string{"Referer": "https://embed.example/e/1"},
			Sources: []provider.Video{{URL: "https://embed.example/e/1", IsEmbed: true}},
		}},
		{"/anime/gogoanime/servers/naruto-episode-1", []provider.EpisodeServer{{Name: "Vidstreaming", URL: "https://embed.example/e/1"}}},
		{"/anime/gogoanime/genre/list", []provider.Genre{{ID: "action", Title: "Action"}}},
		{"/anime/gogoanime/genre/action", page},
		{"/anime/gogoanime/movies", page},
		{"/anime/gogoanime/ona", page},
		{"/anime/gogoanime/ova", page},
		{"/anime/gogoanime/specials", page},
		{"/anime/gogoanime/tv", page},
	}

	for _, tc := range tests {
		t.Run(tc.target, func(t *testing.T) {
			spy := &mocks.MockProvider{Result: tc.value}
			_, router := newTestRouter(t, spy)

			rec := serve(router, tc.target)

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			want, err := json.Marshal(tc.value)
			require.NoError(t, err)
			assert.JSONEq(t, string(want), rec.Body.String())
			assert.Len(t, spy.Calls(), 1)
		})
	}
}

func TestArgumentsForwarded(t *testing.T) {
	tests := []struct {
		target string
		method string
		args   []any
	}{
		{"/anime/gogoanime/one%20piece?page=3", "Search", []any{"one piece", 3}},
		{"/anime/gogoanime/naruto?page=abc", "Search", []any{"naruto", 0}},
		{"/anime/gogoanime/latest-completed?page=4", "FetchLatestCompleted", []any{4}},
		{"/anime/gogoanime/new-releases", "FetchNewReleases", []any{0}},
		{"/anime/gogoanime/recent-added?page=1", "FetchRecentlyAdded", []any{1}},
		{"/anime/gogoanime/recent-episodes?page=2", "FetchRecentlyUpdated", []any{2}},
		{"/anime/gogoanime/schedule/not-a-date", "FetchSchedule", []any{"not-a-date"}},
		{"/anime/gogoanime/search-suggestions/naru", "FetchSearchSuggestions", []any{"naru"}},
		{"/anime/gogoanime/info?id=naruto", "FetchAnimeInfo", []any{"naruto"}},
		{"/anime/gogoanime/genre/slice-of-life?page=5", "GenreSearch", []any{"slice-of-life", 5}},
		{"/anime/gogoanime/movies?page=2", "FetchCategory", []any{provider.CategoryMovie, 2}},
		{"/anime/gogoanime/ona", "FetchCategory", []any{provider.CategoryONA, 0}},
		{"/anime/gogoanime/ova", "FetchCategory", []any{provider.CategoryOVA, 0}},
		{"/anime/gogoanime/specials", "FetchCategory", []any{provider.CategorySpecial, 0}},
		{"/anime/gogoanime/tv", "FetchCategory", []any{provider.CategoryTV, 0}},
	}

	for _, tc := range tests {
		t.Run(tc.target, func(t *testing.T) {
			spy := &mocks.MockProvider{}
			_, router := newTestRouter(t, spy)

			serve(router, tc.target)

			calls := spy.Calls()
			require.Len(t, calls, 1)
			assert.Equal(t, tc.method, calls[0].Method)
			assert.Equal(t, tc.args, calls[0].Args)
		})
	}
}

// countingWriter counts how many replies a handler starts.
type countingWriter struct {
	*httptest.ResponseRecorder
	replies int
}

func (c *countingWriter) WriteHeader(code int) {
	c.replies++
	c.ResponseRecorder.WriteHeader(code)
}

func TestSingleReply(t *testing.T) {
	tests := []struct {
		name   string
		spy    *mocks.MockProvider
		target string
		status int
	}{
		{"lookup failure", &mocks.MockProvider{DefaultError: errors.New("gone")}, "/anime/gogoanime/info?id=x", http.StatusNotFound},
		{"listing failure", &mocks.MockProvider{DefaultError: errors.New("gone")}, "/anime/gogoanime/tv", http.StatusInternalServerError},
		{"validation failure", &mocks.MockProvider{}, "/anime/gogoanime/watch/ep-1?server=nope", http.StatusBadRequest},
		{"success", &mocks.MockProvider{Result: []provider.Genre{}}, "/anime/gogoanime/genre/list", http.StatusOK},
		{"landing", &mocks.MockProvider{}, "/anime/gogoanime/", http.StatusOK},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, router := newTestRouter(t, tc.spy)
			w := &countingWriter{ResponseRecorder: httptest.NewRecorder()}

			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tc.target, nil))

			assert.Equal(t, 1, w.replies)
			assert.Equal(t, tc.status, w.Code)
			assert.LessOrEqual(t, len(tc.spy.Calls()), 1)
		})
	}
}

func TestRoutes_Table(t *testing.T) {
	h, _ := newTestRouter(t, &mocks.MockProvider{})

	routes := h.Routes()
	require.Len(t, routes, 19)

	documented := 0
	for _, route := range routes {
		assert.NotNil(t, route.Handler, route.Pattern)
		assert.NotEmpty(t, route.Operation, route.Pattern)
		if route.Documented {
			documented++
		}
	}
	assert.Equal(t, 17, documented)
	assert.Equal(t, h.Landing().Routes, documentedPaths(routes))
	assert.False(t, routeFor(t, h, "/servers/{episodeId}").Documented)
}
