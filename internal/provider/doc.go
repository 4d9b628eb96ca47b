// Package provider defines the port between the HTTP layer and the anime catalog
// provider. It holds the Provider interface, the normalized argument types the
// HTTP layer builds (streaming server, sub/dub, category) and the result types
// that are handed back to clients unmodified.
//
// Implementations live in internal/platform (the gogoanime scraper) and are
// decorated there with caching and metrics. Every implementation must be safe
// for concurrent use: one instance is built at startup and shared by all requests.
package provider
