// Package mocks provides centralized mock implementations for testing.
//
// Mocks expose one function field per interface method and fall back to
// default return values when a field is nil. Every call is recorded so tests
// can assert on what reached the dependency, or that nothing did.
//
//	p := &mocks.MockProvider{
//	    FetchAnimeInfoFn: func(ctx context.Context, id string) (*provider.AnimeInfo, error) {
//	        return nil, provider.ErrNotFound
//	    },
//	}
package mocks
