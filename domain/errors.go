package domain

import "errors"

// Shared error taxonomy. Handlers map these onto HTTP status codes with
// errors.Is; services wrap them with fmt.Errorf("%w: ...").
var (
	// ErrInvalidInput marks an empty or malformed request payload.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUpstreamUnavailable marks a failed read against the provider
	// catalog or the aggregate store. Matching fails closed on it.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")

	// ErrNotFound marks a referenced record that does not exist.
	ErrNotFound = errors.New("not found")
)
