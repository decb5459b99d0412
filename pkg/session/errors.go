package session

import "errors"

var (
	// ErrNoActiveChallenge is returned by VerifyCode when no verification
	// code has been requested or the previous challenge was already spent.
	ErrNoActiveChallenge = errors.New("no active verification challenge")

	// ErrNoSession is returned when an operation needs stored credentials
	// and none exist.
	ErrNoSession = errors.New("no active session")

	// ErrNotAuthenticated is returned when an operation requires a signed-in
	// user.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrAlreadyViewingAs is returned by EnterViewAs when an impersonation
	// overlay is already active. Nested impersonation is not supported.
	ErrAlreadyViewingAs = errors.New("view-as mode already active")

	// ErrCorruptRecord indicates a persisted session record that could not
	// be decoded. The stored session is dropped when this happens.
	ErrCorruptRecord = errors.New("corrupt session record")

	// ErrUnsupportedSchema indicates a persisted session record written by
	// an incompatible version. The stored session is dropped when this
	// happens.
	ErrUnsupportedSchema = errors.New("unsupported session record schema")
)
