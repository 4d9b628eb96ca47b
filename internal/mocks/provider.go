package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/gogoanime-api/internal/provider"
)

// Call records one provider invocation.
type Call struct {
	Method   string
	Args     []any
	SubOrDub provider.SubOrDub
	Server   provider.StreamingServer
}

// MockProvider implements provider.Provider for testing.
// Operations without a function field return Result, when it has the
// operation's result type, and DefaultError.
type MockProvider struct {
	// Default return values
	Result       any
	DefaultError error

	// Custom behavior functions
	SearchFn              func(ctx context.Context, query string, page int) (*provider.Page, error)
	FetchAnimeInfoFn      func(ctx context.Context, id string) (*provider.AnimeInfo, error)
	FetchEpisodeSourcesFn func(ctx context.Context, episodeID string, server provider.StreamingServer, subOrDub provider.SubOrDub) (*provider.Sources, error)
	FetchGenresFn         func(ctx context.Context) ([]provider.Genre, error)

	mu    sync.Mutex
	calls []Call
}

var _ provider.Provider = (*MockProvider)(nil)

func (m *MockProvider) record(call Call) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, call)
}

// CallCount returns how many times method was invoked.
func (m *MockProvider) CallCount(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.calls {
		if c.Method == method {
			n++
		}
	}
	return n
}

// Calls returns the recorded invocations in call order.
func (m *MockProvider) Calls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Call(nil), m.calls...)
}

func result[T any](m *MockProvider) (T, error) {
	var zero T
	if m.DefaultError != nil {
		return zero, m.DefaultError
	}
	if v, ok := m.Result.(T); ok {
		return v, nil
	}
	return zero, nil
}

func (m *MockProvider) Search(ctx context.Context, query string, page int) (*provider.Page, error) {
	m.record(Call{Method: "Search", Args: []any{query, page}})
	if m.SearchFn != nil {
		return m.SearchFn(ctx, query, page)
	}
	return result[*provider.Page](m)
}

func (m *MockProvider) FetchLatestCompleted(ctx context.Context, page int) (*provider.Page, error) {
	m.record(Call{Method: "FetchLatestCompleted", Args: []any{page}})
	return result[*provider.Page](m)
}

func (m *MockProvider) FetchNewReleases(ctx context.Context, page int) (*provider.Page, error) {
	m.record(Call{Method: "FetchNewReleases", Args: []any{page}})
	return result[*provider.Page](m)
}

func (m *MockProvider) FetchRecentlyAdded(ctx context.Context, page int) (*provider.Page, error) {
	m.record(Call{Method: "FetchRecentlyAdded", Args: []any{page}})
	return result[*provider.Page](m)
}

func (m *MockProvider) FetchRecentlyUpdated(ctx context.Context, page int) (*provider.Page, error) {
	m.record(Call{Method: "FetchRecentlyUpdated", Args: []any{page}})
	return result[*provider.Page](m)
}

func (m *MockProvider) FetchSchedule(ctx context.Context, date string) (*provider.Schedule, error) {
	m.record(Call{Method: "FetchSchedule", Args: []any{date}})
	return result[*provider.Schedule](m)
}

func (m *MockProvider) FetchSpotlight(ctx context.Context) (*provider.Spotlight, error) {
	m.record(Call{Method: "FetchSpotlight"})
	return result[*provider.Spotlight](m)
}

func (m *MockProvider) FetchSearchSuggestions(ctx context.Context, query string) (*provider.Suggestions, error) {
	m.record(Call{Method: "FetchSearchSuggestions", Args: []any{query}})
	return result[*provider.Suggestions](m)
}

func (m *MockProvider) FetchAnimeInfo(ctx context.Context, id string) (*provider.AnimeInfo, error) {
	m.record(Call{Method: "FetchAnimeInfo", Args: []any{id}})
	if m.FetchAnimeInfoFn != nil {
		return m.FetchAnimeInfoFn(ctx, id)
	}
	return result[*provider.AnimeInfo](m)
}

func (m *MockProvider) FetchEpisodeSources(ctx context.Context, episodeID string, server provider.StreamingServer, subOrDub provider.SubOrDub) (*provider.Sources, error) {
	m.record(Call{Method: "FetchEpisodeSources", Args: []any{episodeID}, Server: server, SubOrDub: subOrDub})
	if m.FetchEpisodeSourcesFn != nil {
		return m.FetchEpisodeSourcesFn(ctx, episodeID, server, subOrDub)
	}
	return result[*provider.Sources](m)
}

func (m *MockProvider) FetchEpisodeServers(ctx context.Context, episodeID string, subOrDub provider.SubOrDub) ([]provider.EpisodeServer, error) {
	m.record(Call{Method: "FetchEpisodeServers", Args: []any{episodeID}, SubOrDub: subOrDub})
	return result[[]provider.EpisodeServer](m)
}

func (m *MockProvider) FetchGenres(ctx context.Context) ([]provider.Genre, error) {
	m.record(Call{Method: "FetchGenres"})
	if m.FetchGenresFn != nil {
		return m.FetchGenresFn(ctx)
	}
	return result[[]provider.Genre](m)
}

func (m *MockProvider) GenreSearch(ctx context.Context, genre string, page int) (*provider.Page, error) {
	m.record(Call{Method: "GenreSearch", Args: []any{genre, page}})
	return result[*provider.Page](m)
}

func (m *MockProvider) FetchCategory(ctx context.Context, category provider.Category, page int) (*provider.Page, error) {
	m.record(Call{Method: "FetchCategory", Args: []any{category, page}})
	return result[*provider.Page](m)
}
