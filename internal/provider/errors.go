package provider

import "errors"

// Errors returned by Provider implementations. Implementations wrap them with
// detail about the failing request, so callers should use errors.Is.
var (
	// ErrNotFound is returned when the origin has no entry for an identifier.
	ErrNotFound = errors.New("resource not found on provider")

	// ErrUnexpectedResponse is returned when the origin answers with a
	// non-success status or a document that cannot be parsed.
	ErrUnexpectedResponse = errors.New("unexpected response from provider")
)
