// Package gogoanime implements provider.Provider by scraping a gogoanime origin.
//
// Catalog pages are plain HTML and are parsed with goquery; episode lists, recent
// releases, schedules and search suggestions come from the origin's ajax endpoints.
// The Client keeps no mutable state after construction and is safe for concurrent
// use by any number of requests.
//
// Episode sources are reported as the embed URL of the selected video host. This
// package does not unpack the hosts' players.
package gogoanime
