package otp

import "errors"

var (
	ErrInvalidCode       = errors.New("invalid verification code")
	ErrCodeExpired       = errors.New("verification code expired")
	ErrTooManyAttempts   = errors.New("too many verification attempts")
	ErrChallengeConsumed = errors.New("verification challenge already consumed")
	ErrDeliveryFailed    = errors.New("failed to deliver verification code")
	ErrEmptyPhone        = errors.New("empty phone number")
	ErrMissingGatewayURL = errors.New("otp gateway base URL is required")
)
