// Package api exposes the gogoanime provider over HTTP.
//
// Every route is described once in a table and served by the same pipeline:
// path and query parameters are bound into a typed argument struct, the struct
// is validated, exactly one provider operation runs, and its outcome is
// answered by a single reply. Validation failures become 400 responses. Failed
// identifier lookups (info, watch, servers) become 404 responses carrying the
// provider's error text, and every other failure becomes a generic 500.
package api
