package credentials

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenPair holds the credentials issued for one authenticated session.
type TokenPair struct {
	Access  string
	Refresh string
}

// Present reports whether the pair carries an access token.
func (p TokenPair) Present() bool {
	return p.Access != ""
}

// ExpiresAt extracts the expiry claim from a JWT access token without
// verifying its signature. Clients receive tokens signed by the backend and
// have no verification key; the expiry is advisory and only the backend's
// own validation is authoritative.
func ExpiresAt(token string) (time.Time, error) {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}, errors.Join(ErrMalformedToken, err)
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, ErrNoExpiryClaim
	}
	return claims.ExpiresAt.Time, nil
}
