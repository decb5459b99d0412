package otp

import (
	"context"
	"time"
)

// Assertion is the identity proof issued after a successful code
// confirmation. The token is opaque to clients; the authentication backend
// verifies it with the issuing provider during the credential exchange.
type Assertion struct {
	// IDToken proves possession of the phone number.
	IDToken string
	// Phone is the canonical number the assertion was issued for.
	Phone string
	// IssuedAt records when the confirmation succeeded.
	IssuedAt time.Time
}

// Challenge is a single-use handle for one dispatched verification code.
//
// Confirm may be retried with different codes while attempts remain. After
// a code is consumed, by success, expiry, or attempt exhaustion, every
// further Confirm returns ErrChallengeConsumed.
type Challenge interface {
	// Confirm submits the user-entered code and returns the identity
	// assertion on success. Failures are reported through the package
	// sentinels: ErrInvalidCode, ErrCodeExpired, ErrTooManyAttempts,
	// ErrChallengeConsumed.
	Confirm(ctx context.Context, code string) (Assertion, error)

	// Phone returns the canonical number the code was sent to.
	Phone() string
}

// Provider dispatches verification codes and revokes provider-side state.
type Provider interface {
	// RequestChallenge sends a one-time code to phone and returns the
	// handle for confirming it. phone must be in international form.
	RequestChallenge(ctx context.Context, phone string) (Challenge, error)

	// SignOut revokes any provider-side session state for this client.
	// Providers without server-side state return nil.
	SignOut(ctx context.Context) error
}
