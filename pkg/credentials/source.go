package credentials

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
)

// FetchFunc supplies the current token pair. Implementations typically read
// from a session manager, which keeps the pair fresh as the session refreshes.
type FetchFunc func(ctx context.Context) (TokenPair, error)

// NewTokenSource adapts fetch into an oauth2.TokenSource. Tokens are cached
// and re-fetched only once the cached token expires, following the
// oauth2.ReuseTokenSource contract. An access token without a parsable
// expiry claim never expires from the source's point of view.
func NewTokenSource(ctx context.Context, fetch FetchFunc) oauth2.TokenSource {
	return oauth2.ReuseTokenSource(nil, &fetchSource{ctx: ctx, fetch: fetch})
}

type fetchSource struct {
	ctx   context.Context
	fetch FetchFunc
}

var _ oauth2.TokenSource = (*fetchSource)(nil)

func (s *fetchSource) Token() (*oauth2.Token, error) {
	pair, err := s.fetch(s.ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch token pair: %w", err)
	}
	if !pair.Present() {
		return nil, ErrNoAccessToken
	}

	tok := &oauth2.Token{
		AccessToken:  pair.Access,
		RefreshToken: pair.Refresh,
		TokenType:    "Bearer",
	}
	if exp, err := ExpiresAt(pair.Access); err == nil {
		tok.Expiry = exp
	}
	return tok, nil
}
