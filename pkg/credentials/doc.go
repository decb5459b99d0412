// Package credentials carries the token pair issued by the authentication
// backend and adapts it to standard token-consuming interfaces.
//
// The backend issues a short-lived access token (a JWT) together with a
// refresh token. ExpiresAt reads the expiry claim without verifying the
// signature; clients hold tokens they did not sign, so verification happens
// server-side only.
//
// NewTokenSource bridges a session-backed fetch function into an
// oauth2.TokenSource, which lets the token pair authenticate any client
// built on golang.org/x/oauth2:
//
//	src := credentials.NewTokenSource(ctx, func(ctx context.Context) (credentials.TokenPair, error) {
//		return manager.Tokens(), nil
//	})
//	httpClient := oauth2.NewClient(ctx, src)
package credentials
