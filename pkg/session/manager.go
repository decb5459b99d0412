package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"golang.org/x/oauth2"

	"github.com/dmitrymomot/authkit/pkg/credentials"
	"github.com/dmitrymomot/authkit/pkg/kvstore"
	"github.com/dmitrymomot/authkit/pkg/logger"
	"github.com/dmitrymomot/authkit/pkg/otp"
	"github.com/dmitrymomot/authkit/pkg/phone"
)

// Manager owns the authentication session lifecycle: requesting and
// verifying sign-in codes, exchanging verified identities for credentials,
// persisting the session, rehydrating it on startup, and tearing it down.
// All methods are safe for concurrent use.
type Manager struct {
	store    kvstore.Store
	provider otp.Provider
	backend  Backend
	logger   *slog.Logger
	navigate NavigateFunc
	country  string

	keyPrefix string
	keys      storageKeys

	// opMu serializes the lifecycle operations so overlapping calls cannot
	// interleave their read-validate-persist sequences. RequestCode and the
	// read-only accessors stay outside it.
	opMu sync.Mutex

	// mu guards the session state below.
	mu        sync.RWMutex
	user      *User
	tokens    credentials.TokenPair
	loading   bool
	challenge otp.Challenge
	viewAs    ViewAsState

	subMu   sync.Mutex
	subs    map[*subscriber]struct{}
	closed  bool
	bufSize int
}

// New creates a session manager. The store holds the persisted session,
// the provider issues and confirms sign-in codes, and the backend
// exchanges verified identities for credentials.
func New(store kvstore.Store, provider otp.Provider, backend Backend, opts ...Option) *Manager {
	m := &Manager{
		store:    store,
		provider: provider,
		backend:  backend,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		country:  DefaultCountryCode,
		subs:     make(map[*subscriber]struct{}),
		bufSize:  defaultSubscriberBuffer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.keys = newStorageKeys(m.keyPrefix)
	m.logger = m.logger.With(logger.Component("session"))
	return m
}

// Initialize rehydrates the persisted session and validates it with the
// backend. When nothing is stored, it settles into the unauthenticated
// state without any backend call. The stored profile becomes visible
// immediately so the app can render it while validation is still in
// flight; validation then either confirms it with a fresh server profile
// or tears the session down.
//
// The returned error is informational: every failure path still leaves
// the manager in a consistent, typically unauthenticated, state.
func (m *Manager) Initialize(ctx context.Context) error {
	m.opMu.Lock()
	defer m.opMu.Unlock()

	m.setLoading(true)
	defer m.setLoading(false)

	records, err := m.store.GetMulti(ctx, m.keys.all())
	if err != nil {
		// a session that cannot be read reliably is treated as no session
		m.reset()
		m.logger.ErrorContext(ctx, "failed to read persisted session", logger.Error(err))
		return fmt.Errorf("rehydrate session: %w", err)
	}

	access := records[m.keys.access]
	profileRaw := records[m.keys.profile]
	if len(access) == 0 || len(profileRaw) == 0 {
		m.reset()
		m.logger.DebugContext(ctx, "no persisted session")
		return nil
	}

	user, err := decodeProfile(profileRaw)
	if err != nil {
		// an unreadable profile is indistinguishable from a tampered one,
		// so the whole persisted session goes
		m.purge(ctx)
		m.reset()
		m.logger.ErrorContext(ctx, "rejected persisted profile", logger.Error(err))
		return fmt.Errorf("rehydrate session: %w", err)
	}

	viewAs := ViewAsState{}
	if raw := records[m.keys.viewAs]; len(raw) > 0 {
		state, err := decodeViewAs(raw)
		if err != nil {
			// the base session is still usable, only the overlay is lost
			m.logger.WarnContext(ctx, "rejected persisted view-as state", logger.Error(err))
		} else {
			viewAs = state
		}
	}

	m.mu.Lock()
	m.user = user
	m.tokens = credentials.TokenPair{
		Access:  string(access),
		Refresh: string(records[m.keys.refresh]),
	}
	m.challenge = nil
	m.viewAs = viewAs
	m.mu.Unlock()
	m.publish()

	if err := m.validate(ctx); err != nil {
		return fmt.Errorf("validate rehydrated session: %w", err)
	}
	m.logger.InfoContext(ctx, "session rehydrated", logger.UserID(user.ID))
	return nil
}

// RequestCode normalizes the phone number, asks the provider to deliver a
// verification code to it, and records the returned challenge as the
// pending one. A new request replaces any previous pending challenge; a
// failed request leaves it untouched.
func (m *Manager) RequestCode(ctx context.Context, rawPhone string, role Role) (otp.Challenge, error) {
	normalized, err := phone.Normalize(m.country, rawPhone)
	if err != nil {
		return nil, fmt.Errorf("normalize phone number: %w", err)
	}

	challenge, err := m.provider.RequestChallenge(ctx, normalized)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.challenge = challenge
	m.mu.Unlock()

	m.logger.InfoContext(ctx, "verification code requested",
		slog.String("phone", phone.Mask(normalized)),
		logger.Role(role),
	)
	return challenge, nil
}

// VerifyCode confirms the submitted code against the pending challenge,
// exchanges the resulting identity token for session credentials, persists
// them in one batch, and signs the user in.
//
// A wrong or dead code burns the pending challenge, so the caller must
// request a fresh one; transient confirmation failures keep it pending
// for a retry. Backend rejections of the exchange are returned as-is so
// callers see the backend's own message, and nothing is persisted.
func (m *Manager) VerifyCode(ctx context.Context, code string, role Role) (VerifyResult, error) {
	m.opMu.Lock()
	defer m.opMu.Unlock()

	m.mu.RLock()
	challenge := m.challenge
	m.mu.RUnlock()
	if challenge == nil {
		return VerifyResult{}, ErrNoActiveChallenge
	}

	m.setLoading(true)
	defer m.setLoading(false)

	assertion, err := challenge.Confirm(ctx, code)
	if err != nil {
		if isCodeRejection(err) {
			m.clearChallenge()
			return VerifyResult{}, err
		}
		return VerifyResult{}, fmt.Errorf("confirm verification code: %w", err)
	}

	// the code is spent: whatever happens next, this challenge is done
	m.clearChallenge()

	login, err := m.backend.Login(ctx, assertion.IDToken, role)
	if err != nil {
		return VerifyResult{}, err
	}

	profileRaw, err := encodeProfile(login.User)
	if err != nil {
		return VerifyResult{}, fmt.Errorf("persist session: %w", err)
	}
	items := map[string][]byte{
		m.keys.access:  []byte(login.AccessToken),
		m.keys.refresh: []byte(login.RefreshToken),
		m.keys.profile: profileRaw,
	}
	// the store applies batches atomically, so a failure here leaves no
	// partial credential set behind
	if err := m.store.SetMulti(ctx, items); err != nil {
		return VerifyResult{}, fmt.Errorf("persist session: %w", err)
	}

	user := login.User.Clone()
	if user != nil {
		user.Onboarded = deriveOnboarded(user)
	}
	m.mu.Lock()
	m.user = user
	m.tokens = credentials.TokenPair{Access: login.AccessToken, Refresh: login.RefreshToken}
	m.mu.Unlock()
	m.publish()

	next := RouteRoot
	var uid any
	if user != nil {
		next = RouteInitial
		uid = user.ID
	}
	m.logger.InfoContext(ctx, "session established", logger.UserID(uid), logger.Role(role))
	return VerifyResult{NextScreen: next, Success: true}, nil
}

// Logout signs the user out. The provider sign-out and the store purge are
// best-effort: failures are logged and absorbed, and the in-memory session
// is dropped regardless, so the local state always ends up signed out.
// Logging out while already signed out is a no-op. The returned error is
// always nil; the signature matches the other lifecycle operations.
func (m *Manager) Logout(ctx context.Context) error {
	m.opMu.Lock()
	defer m.opMu.Unlock()

	m.setLoading(true)
	defer m.setLoading(false)

	signOutErr := m.provider.SignOut(ctx)
	removeErr := m.store.RemoveMulti(ctx, m.keys.all())
	if signOutErr != nil || removeErr != nil {
		m.logger.WarnContext(ctx, "logout cleanup incomplete", logger.Errors(signOutErr, removeErr))
	}

	m.reset()
	m.logger.InfoContext(ctx, "signed out")
	return nil
}

// RefreshSession re-validates the current credentials with the backend.
// On success the server profile replaces the local one and the caller is
// pointed at the landing screen; on any failure the session is fully torn
// down, locally and in the store, and the caller is pointed back at the
// entry screen.
//
// The returned error is informational: when it is non-nil the manager has
// already settled into the unauthenticated state.
func (m *Manager) RefreshSession(ctx context.Context) error {
	m.opMu.Lock()
	defer m.opMu.Unlock()

	m.setLoading(true)
	defer m.setLoading(false)

	if err := m.validate(ctx); err != nil {
		return fmt.Errorf("refresh session: %w", err)
	}
	return nil
}

// SetUser overwrites the in-memory user, bypassing the lifecycle state
// machine. It exists for flows that change the visible profile outside
// the authentication path, such as profile edits or view-as data loads.
// It deliberately touches neither persistence nor credentials; callers
// own keeping the stored profile in sync.
func (m *Manager) SetUser(user *User) {
	m.mu.Lock()
	m.user = user.Clone()
	m.mu.Unlock()
	m.publish()
}

// Tokens returns the credential pair of the current session. The zero
// pair means no session.
func (m *Manager) Tokens() credentials.TokenPair {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.tokens
}

// TokenSource adapts the session to oauth2.TokenSource so its credentials
// can be plumbed into any API client that speaks oauth2. Each fetch reads
// the credentials the session holds at that moment; the source caches
// them until they expire, so short-lived access tokens pick up re-logins
// automatically.
func (m *Manager) TokenSource(ctx context.Context) oauth2.TokenSource {
	return credentials.NewTokenSource(ctx, func(context.Context) (credentials.TokenPair, error) {
		pair := m.Tokens()
		if !pair.Present() {
			return credentials.TokenPair{}, ErrNoSession
		}
		return pair, nil
	})
}

// Snapshot returns a consistent copy of the observable session state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshotLocked()
}

func (m *Manager) snapshotLocked() Snapshot {
	return Snapshot{
		User:          m.user.Clone(),
		Loading:       m.loading,
		Authenticated: m.user != nil,
		ViewAs:        m.viewAs.clone(),
	}
}

// validate confirms the current access token with the backend and applies
// the authoritative profile. On any failure the persisted session is
// purged, the in-memory state is reset, and the caller is routed to the
// entry screen. Callers hold opMu.
func (m *Manager) validate(ctx context.Context) error {
	m.mu.RLock()
	access := m.tokens.Access
	m.mu.RUnlock()

	if access == "" {
		m.purge(ctx)
		m.reset()
		m.navigateTo(ctx, RouteRoot)
		return ErrNoSession
	}

	user, err := m.backend.Me(ctx, access)
	if err == nil && user == nil {
		err = errors.New("backend returned empty profile")
	}
	if err != nil {
		m.purge(ctx)
		m.reset()
		m.navigateTo(ctx, RouteRoot)
		m.logger.WarnContext(ctx, "session validation failed", logger.Error(err))
		return err
	}

	fresh := user.Clone()
	fresh.Onboarded = deriveOnboarded(fresh)
	m.mu.Lock()
	m.user = fresh
	m.mu.Unlock()
	m.publish()
	m.navigateTo(ctx, RouteInitial)
	return nil
}

// reset drops all in-memory session state and publishes the resulting
// unauthenticated snapshot. Persisted state is not touched.
func (m *Manager) reset() {
	m.mu.Lock()
	m.user = nil
	m.tokens = credentials.TokenPair{}
	m.challenge = nil
	m.viewAs = ViewAsState{}
	m.mu.Unlock()
	m.publish()
}

// purge removes every persisted session key. Failures are logged only:
// the next successful login overwrites the keys anyway.
func (m *Manager) purge(ctx context.Context) {
	if err := m.store.RemoveMulti(ctx, m.keys.all()); err != nil {
		m.logger.ErrorContext(ctx, "failed to purge persisted session", logger.Error(err))
	}
}

func (m *Manager) setLoading(v bool) {
	m.mu.Lock()
	m.loading = v
	m.mu.Unlock()
	m.publish()
}

func (m *Manager) clearChallenge() {
	m.mu.Lock()
	m.challenge = nil
	m.mu.Unlock()
}

func (m *Manager) navigateTo(ctx context.Context, route string) {
	if m.navigate == nil {
		return
	}
	m.logger.DebugContext(ctx, "navigation hint", logger.Route(route))
	m.navigate(route)
}

// isCodeRejection reports whether err is a terminal verdict on the
// submitted code rather than a transient provider failure.
func isCodeRejection(err error) bool {
	return errors.Is(err, otp.ErrInvalidCode) ||
		errors.Is(err, otp.ErrCodeExpired) ||
		errors.Is(err, otp.ErrTooManyAttempts) ||
		errors.Is(err, otp.ErrChallengeConsumed)
}

// deriveOnboarded computes the onboarding flag from the authoritative
// profile: a user who finished onboarding has a name on file.
func deriveOnboarded(u *User) bool {
	return u != nil && u.Name != ""
}
