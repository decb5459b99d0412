// Package otp defines the phone verification contract used for passwordless
// sign-in, plus two providers: an HTTP gateway client for production and an
// in-process provider for development and tests.
//
// The flow has two steps. RequestChallenge sends a one-time code to a phone
// number and returns a Challenge, a single-use handle bound to that
// dispatch. Confirm submits the user-entered code; on success it yields an
// Assertion whose identity token proves possession of the phone number and
// is exchanged with the backend for session credentials.
//
//	challenge, err := provider.RequestChallenge(ctx, "+919876543210")
//	if err != nil {
//		return err
//	}
//	assertion, err := challenge.Confirm(ctx, enteredCode)
//	if errors.Is(err, otp.ErrInvalidCode) {
//		// prompt again; the challenge stays usable until attempts run out
//	}
//
// A challenge is single use. After a successful confirmation further
// Confirm calls fail with ErrChallengeConsumed, and an expired or
// attempt-exhausted challenge never becomes confirmable again; recovery is
// always a fresh RequestChallenge.
//
// HTTPProvider talks to a verification gateway over a small JSON protocol:
//
//	POST {base}/v1/challenges                {"phone": "..."}
//	POST {base}/v1/challenges/{id}/verify    {"code": "..."}
//	POST {base}/v1/signout
//
// Gateway error codes (invalid_code, code_expired, too_many_attempts,
// challenge_consumed, delivery_failed) map onto this package's sentinel
// errors, so callers discriminate with errors.Is regardless of provider.
//
// DevProvider keeps challenges in memory and logs issued codes at debug
// level. It enforces the same expiry and attempt limits as the gateway so
// client code exercises realistic failure paths in development.
package otp
