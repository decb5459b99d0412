package credentials

import "errors"

var (
	ErrMalformedToken = errors.New("malformed access token")
	ErrNoExpiryClaim  = errors.New("access token has no expiry claim")
	ErrNoAccessToken  = errors.New("no access token available")
)
