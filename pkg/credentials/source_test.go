package credentials_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authkit/pkg/credentials"
)

func TestTokenSource(t *testing.T) {
	t.Parallel()

	t.Run("returns fetched pair as bearer token", func(t *testing.T) {
		t.Parallel()

		access := signedToken(t, jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		})
		src := credentials.NewTokenSource(context.Background(), func(ctx context.Context) (credentials.TokenPair, error) {
			return credentials.TokenPair{Access: access, Refresh: "refresh-1"}, nil
		})

		tok, err := src.Token()
		require.NoError(t, err)
		assert.Equal(t, access, tok.AccessToken)
		assert.Equal(t, "refresh-1", tok.RefreshToken)
		assert.Equal(t, "Bearer", tok.TokenType)
		assert.False(t, tok.Expiry.IsZero())
	})

	t.Run("caches token until expiry", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int64
		access := signedToken(t, jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		})
		src := credentials.NewTokenSource(context.Background(), func(ctx context.Context) (credentials.TokenPair, error) {
			calls.Add(1)
			return credentials.TokenPair{Access: access}, nil
		})

		for range 3 {
			_, err := src.Token()
			require.NoError(t, err)
		}
		assert.Equal(t, int64(1), calls.Load())
	})

	t.Run("refetches once cached token expired", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int64
		expired := signedToken(t, jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		})
		src := credentials.NewTokenSource(context.Background(), func(ctx context.Context) (credentials.TokenPair, error) {
			calls.Add(1)
			return credentials.TokenPair{Access: expired}, nil
		})

		// An expired token is never reused, so every call hits fetch.
		_, err := src.Token()
		require.NoError(t, err)
		_, err = src.Token()
		require.NoError(t, err)
		assert.Equal(t, int64(2), calls.Load())
	})

	t.Run("propagates fetch errors", func(t *testing.T) {
		t.Parallel()

		fetchErr := errors.New("session gone")
		src := credentials.NewTokenSource(context.Background(), func(ctx context.Context) (credentials.TokenPair, error) {
			return credentials.TokenPair{}, fetchErr
		})

		_, err := src.Token()
		assert.ErrorIs(t, err, fetchErr)
	})

	t.Run("empty pair rejected", func(t *testing.T) {
		t.Parallel()

		src := credentials.NewTokenSource(context.Background(), func(ctx context.Context) (credentials.TokenPair, error) {
			return credentials.TokenPair{}, nil
		})

		_, err := src.Token()
		assert.ErrorIs(t, err, credentials.ErrNoAccessToken)
	})
}
