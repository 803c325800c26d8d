package places

import "errors"

var (
	// ErrNotConfigured is returned when no API key was provided
	ErrNotConfigured = errors.New("places search is not configured")
	// ErrSearchFailed is returned for non-2xx responses
	ErrSearchFailed = errors.New("places search failed")
)
