// Package session manages the authentication session lifecycle of a
// mobile or desktop client: requesting and verifying one-time sign-in
// codes, exchanging the verified identity for backend credentials,
// persisting the session across restarts, rehydrating and re-validating
// it on startup, and tearing it down on logout. An impersonation overlay
// lets operators view the product as another role without giving up their
// own identity.
//
// The package is storage- and transport-agnostic: persistence goes
// through kvstore.Store, code delivery through otp.Provider, and the
// credential exchange through the Backend interface. The authapi package
// provides the HTTP Backend implementation.
//
// # Architecture
//
// A Manager orchestrates the lifecycle. It relies on an otp.Provider to
// deliver and confirm sign-in codes, a Backend to exchange verified
// identities for credentials and to validate them later, and a
// kvstore.Store to persist the session between runs.
//
//	┌────────┐  code    ┌──────────────┐
//	│ Caller │ ───────► │ otp.Provider │
//	└────────┘          └──────────────┘
//	     │                     │ identity token
//	     ▼                     ▼
//	┌─────────────────────────────────┐
//	│             Manager             │
//	└─────────────────────────────────┘
//	     │ exchange / validate   │ persist
//	     ▼                       ▼
//	┌─────────┐            ┌─────────────┐
//	│ Backend │            │ kvstore.Store│
//	└─────────┘            └─────────────┘
//
// The session is authenticated exactly when a user profile is present;
// there is no separate flag that could drift out of sync. Startup
// rehydration makes the stored profile visible immediately and then
// validates it with the backend: the server either replaces it with the
// authoritative profile or the whole session is torn down, locally and in
// the store.
//
// # Usage
//
//	import (
//	    "github.com/dmitrymomot/authkit/pkg/kvstore"
//	    "github.com/dmitrymomot/authkit/pkg/otp"
//	    "github.com/dmitrymomot/authkit/pkg/session"
//	)
//
//	manager := session.New(store, provider, backend,
//	    session.WithLogger(log),
//	    session.WithNavigator(func(route string) { router.Replace(route) }),
//	)
//
//	// On startup: rehydrate and validate whatever was persisted.
//	_ = manager.Initialize(ctx)
//
//	// Sign-in: request a code, then verify what the user typed.
//	_, err := manager.RequestCode(ctx, "9876543210", session.RoleCustomer)
//	res, err := manager.VerifyCode(ctx, "123456", session.RoleCustomer)
//	// res.NextScreen tells the caller where to go next.
//
// State can be read at any time with Snapshot, or observed reactively:
//
//	for snap := range manager.Subscribe(ctx) {
//	    render(snap)
//	}
//
// # Persistence
//
// The manager stores the access token, the refresh token, a versioned
// profile record, and a versioned view-as record under fixed keys,
// written in single atomic batches. A record that cannot be decoded on
// rehydration drops the whole persisted session; a session the backend no
// longer recognizes is purged the same way. Wrap the store with
// kvstore.NewEncryptedStore when the platform's storage is not already
// encrypted at rest.
//
// # Error Handling
//
// Common error values returned by the package:
//
//   - ErrNoActiveChallenge – VerifyCode without a pending code request
//   - ErrNoSession         – refresh with no stored credentials
//   - ErrNotAuthenticated  – EnterViewAs while signed out
//   - ErrAlreadyViewingAs  – nested impersonation attempt
//   - ErrCorruptRecord     – undecodable persisted record (session dropped)
//   - ErrUnsupportedSchema – persisted record from an incompatible version
//
// Initialize and RefreshSession return informational errors only: every
// failure path still settles the manager into a consistent state before
// returning. VerifyCode returns backend rejections verbatim so callers
// can show the backend's own message.
//
// # Concurrency
//
// All methods are safe for concurrent use. The lifecycle operations
// (Initialize, VerifyCode, Logout, RefreshSession, EnterViewAs,
// ExitViewAs) are serialized with each other so overlapping calls cannot
// interleave their read-validate-persist sequences; RequestCode and the
// read-only accessors run alongside them.
package session
