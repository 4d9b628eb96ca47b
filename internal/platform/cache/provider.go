package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/phrazzld/gogoanime-api/internal/provider"
	"golang.org/x/sync/singleflight"
)

const keyPrefix = "gogoanime"

// loadTimeout bounds a shared provider load once it no longer follows the
// cancellation of the request that started it.
const loadTimeout = 30 * time.Second

// CachedProvider serves provider results from a Store.
type CachedProvider struct {
	next   provider.Provider
	store  Store
	ttl    time.Duration
	logger *slog.Logger
	group  singleflight.Group
}

var _ provider.Provider = (*CachedProvider)(nil)

// NewCachedProvider decorates next with store. Entries live for ttl.
func NewCachedProvider(next provider.Provider, store Store, ttl time.Duration, logger *slog.Logger) *CachedProvider {
	if logger == nil {
		logger = slog.Default()
	}
	return &CachedProvider{
		next:   next,
		store:  store,
		ttl:    ttl,
		logger: logger.With(slog.String("component", "provider_cache")),
	}
}

// Key builds the store key of an operation. Arguments are escaped so that
// free text cannot collide with the separator.
func Key(operation string, args ...string) string {
	parts := make([]string, 0, len(args)+2)
	parts = append(parts, keyPrefix, operation)
	for _, a := range args {
		parts = append(parts, url.QueryEscape(a))
	}
	return strings.Join(parts, ":")
}

// fetch returns the cached value at key or loads, stores and returns it.
// Concurrent misses on the same key share one load. The shared load is
// detached from the cancellation of any single caller and bounded by
// loadTimeout; each caller stops waiting when its own ctx is done.
func fetch[T any](ctx context.Context, c *CachedProvider, key string, load func(context.Context) (T, error)) (T, error) {
	var zero T

	data, err := c.store.Get(ctx, key)
	switch {
	case err == nil:
		var cached T
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
		c.logger.WarnContext(ctx, "discarding undecodable cache entry", slog.String("key", key))
	case !errors.Is(err, ErrMiss):
		c.logger.WarnContext(ctx, "cache read failed", slog.String("key", key), slog.String("error", err.Error()))
	}

	ch := c.group.DoChan(key, func() (any, error) {
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), loadTimeout)
		defer cancel()

		value, err := load(loadCtx)
		if err != nil {
			return nil, err
		}
		c.save(loadCtx, key, value)
		return value, nil
	})

	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		return res.Val.(T), nil
	}
}

func (c *CachedProvider) save(ctx context.Context, key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		c.logger.WarnContext(ctx, "cannot encode provider result", slog.String("key", key), slog.String("error", err.Error()))
		return
	}
	if err := c.store.Set(ctx, key, data, c.ttl); err != nil {
		c.logger.WarnContext(ctx, "cache write failed", slog.String("key", key), slog.String("error", err.Error()))
	}
}

func (c *CachedProvider) Search(ctx context.Context, query string, page int) (*provider.Page, error) {
	return fetch(ctx, c, Key("search", query, strconv.Itoa(page)), func(ctx context.Context) (*provider.Page, error) {
		return c.next.Search(ctx, query, page)
	})
}

func (c *CachedProvider) FetchLatestCompleted(ctx context.Context, page int) (*provider.Page, error) {
	return fetch(ctx, c, Key("latest-completed", strconv.Itoa(page)), func(ctx context.Context) (*provider.Page, error) {
		return c.next.FetchLatestCompleted(ctx, page)
	})
}

func (c *CachedProvider) FetchNewReleases(ctx context.Context, page int) (*provider.Page, error) {
	return fetch(ctx, c, Key("new-releases", strconv.Itoa(page)), func(ctx context.Context) (*provider.Page, error) {
		return c.next.FetchNewReleases(ctx, page)
	})
}

func (c *CachedProvider) FetchRecentlyAdded(ctx context.Context, page int) (*provider.Page, error) {
	return fetch(ctx, c, Key("recent-added", strconv.Itoa(page)), func(ctx context.Context) (*provider.Page, error) {
		return c.next.FetchRecentlyAdded(ctx, page)
	})
}

func (c *CachedProvider) FetchRecentlyUpdated(ctx context.Context, page int) (*provider.Page, error) {
	return fetch(ctx, c, Key("recent-episodes", strconv.Itoa(page)), func(ctx context.Context) (*provider.Page, error) {
		return c.next.FetchRecentlyUpdated(ctx, page)
	})
}

func (c *CachedProvider) FetchSchedule(ctx context.Context, date string) (*provider.Schedule, error) {
	return fetch(ctx, c, Key("schedule", date), func(ctx context.Context) (*provider.Schedule, error) {
		return c.next.FetchSchedule(ctx, date)
	})
}

func (c *CachedProvider) FetchSpotlight(ctx context.Context) (*provider.Spotlight, error) {
	return fetch(ctx, c, Key("spotlight"), func(ctx context.Context) (*provider.Spotlight, error) {
		return c.next.FetchSpotlight(ctx)
	})
}

func (c *CachedProvider) FetchSearchSuggestions(ctx context.Context, query string) (*provider.Suggestions, error) {
	return fetch(ctx, c, Key("search-suggestions", query), func(ctx context.Context) (*provider.Suggestions, error) {
		return c.next.FetchSearchSuggestions(ctx, query)
	})
}

func (c *CachedProvider) FetchAnimeInfo(ctx context.Context, id string) (*provider.AnimeInfo, error) {
	return fetch(ctx, c, Key("info", id), func(ctx context.Context) (*provider.AnimeInfo, error) {
		return c.next.FetchAnimeInfo(ctx, id)
	})
}

func (c *CachedProvider) FetchEpisodeSources(ctx context.Context, episodeID string, server provider.StreamingServer, subOrDub provider.SubOrDub) (*provider.Sources, error) {
	return fetch(ctx, c, Key("watch", episodeID, string(server), string(subOrDub)), func(ctx context.Context) (*provider.Sources, error) {
		return c.next.FetchEpisodeSources(ctx, episodeID, server, subOrDub)
	})
}

func (c *CachedProvider) FetchEpisodeServers(ctx context.Context, episodeID string, subOrDub provider.SubOrDub) ([]provider.EpisodeServer, error) {
	return fetch(ctx, c, Key("servers", episodeID, string(subOrDub)), func(ctx context.Context) ([]provider.EpisodeServer, error) {
		return c.next.FetchEpisodeServers(ctx, episodeID, subOrDub)
	})
}

func (c *CachedProvider) FetchGenres(ctx context.Context) ([]provider.Genre, error) {
	return fetch(ctx, c, Key("genre-list"), func(ctx context.Context) ([]provider.Genre, error) {
		return c.next.FetchGenres(ctx)
	})
}

func (c *CachedProvider) GenreSearch(ctx context.Context, genre string, page int) (*provider.Page, error) {
	return fetch(ctx, c, Key("genre", genre, strconv.Itoa(page)), func(ctx context.Context) (*provider.Page, error) {
		return c.next.GenreSearch(ctx, genre, page)
	})
}

func (c *CachedProvider) FetchCategory(ctx context.Context, category provider.Category, page int) (*provider.Page, error) {
	return fetch(ctx, c, Key("category", string(category), strconv.Itoa(page)), func(ctx context.Context) (*provider.Page, error) {
		return c.next.FetchCategory(ctx, category, page)
	})
}
