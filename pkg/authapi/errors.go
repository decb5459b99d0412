package authapi

import "errors"

var (
	// ErrMissingBaseURL is returned by New when no backend URL is
	// configured.
	ErrMissingBaseURL = errors.New("auth api base url is required")

	// ErrUnauthorized wraps a profile check the backend rejected because
	// the access token is no longer valid.
	ErrUnauthorized = errors.New("access token rejected")

	// ErrMalformedResponse indicates a backend response that could not be
	// decoded or was missing required fields.
	ErrMalformedResponse = errors.New("malformed backend response")
)
