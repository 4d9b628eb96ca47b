package provider

import "context"

// Provider is the catalog capability the HTTP layer dispatches to.
// Each method corresponds to one endpoint of the public route catalog.
// A page of 0 means "provider default" (the first page).
type Provider interface {
	// Search finds titles matching a free text query.
	Search(ctx context.Context, query string, page int) (*Page, error)

	// FetchLatestCompleted lists recently completed series.
	FetchLatestCompleted(ctx context.Context, page int) (*Page, error)

	// FetchNewReleases lists newly released series.
	FetchNewReleases(ctx context.Context, page int) (*Page, error)

	// FetchRecentlyAdded lists recently added entries.
	FetchRecentlyAdded(ctx context.Context, page int) (*Page, error)

	// FetchRecentlyUpdated lists recently updated episodes.
	FetchRecentlyUpdated(ctx context.Context, page int) (*Page, error)

	// FetchSchedule returns the release schedule for a date (YYYY-MM-DD).
	FetchSchedule(ctx context.Context, date string) (*Schedule, error)

	// FetchSpotlight returns the featured entries.
	FetchSpotlight(ctx context.Context) (*Spotlight, error)

	// FetchSearchSuggestions returns lightweight suggestions for a partial query.
	FetchSearchSuggestions(ctx context.Context, query string) (*Suggestions, error)

	// FetchAnimeInfo returns the full detail of one title, including its episodes.
	FetchAnimeInfo(ctx context.Context, id string) (*AnimeInfo, error)

	// FetchEpisodeSources returns the playable sources of an episode. An empty
	// server selects the provider default.
	FetchEpisodeSources(ctx context.Context, episodeID string, server StreamingServer, subOrDub SubOrDub) (*Sources, error)

	// FetchEpisodeServers lists the streaming servers hosting an episode.
	FetchEpisodeServers(ctx context.Context, episodeID string, subOrDub SubOrDub) ([]EpisodeServer, error)

	// FetchGenres lists every genre.
	FetchGenres(ctx context.Context) ([]Genre, error)

	// GenreSearch lists titles of one genre.
	GenreSearch(ctx context.Context, genre string, page int) (*Page, error)

	// FetchCategory lists titles of one category (movies, ONA, OVA, specials, TV).
	FetchCategory(ctx context.Context, category Category, page int) (*Page, error)
}
