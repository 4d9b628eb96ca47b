// Package cache stores provider results in a key-value store.
//
// CachedProvider decorates a provider.Provider: successful results are JSON
// encoded under "gogoanime:<operation>:<args>" keys and served from the store
// until their TTL expires. Failures are never cached, and a store that is down
// only costs a log line and a direct provider call.
package cache
