package session

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/authkit/pkg/logger"
)

// ViewAsTarget identifies whose data an operator is viewing. Fields are
// descriptive only; the backend enforces what the underlying credentials
// may actually access.
type ViewAsTarget struct {
	FranchiseID   string `json:"franchiseId,omitempty"`
	FranchiseName string `json:"franchiseName,omitempty"`
	UserID        string `json:"userId,omitempty"`
	UserName      string `json:"userName,omitempty"`
}

// ViewAsState is the impersonation overlay on top of the base session.
// While active, the manager keeps the operator's real profile in
// OriginalUser so ExitViewAs can restore it exactly, no matter what the
// impersonated flows did to the visible user in the meantime.
type ViewAsState struct {
	Active       bool         `json:"active"`
	OriginalUser *User        `json:"originalUser,omitempty"`
	Role         Role         `json:"role,omitempty"`
	Target       ViewAsTarget `json:"target"`
}

// clone returns a copy that shares no pointers with the receiver.
func (v ViewAsState) clone() ViewAsState {
	v.OriginalUser = v.OriginalUser.Clone()
	return v
}

// EnterViewAs activates the impersonation overlay: the current user is
// captured for later restoration and the overlay is persisted before it
// becomes visible. The base credentials are untouched. Entering while
// already impersonating fails with ErrAlreadyViewingAs; entering while
// signed out fails with ErrNotAuthenticated.
func (m *Manager) EnterViewAs(ctx context.Context, role Role, target ViewAsTarget) error {
	m.opMu.Lock()
	defer m.opMu.Unlock()

	m.mu.RLock()
	active := m.viewAs.Active
	current := m.user.Clone()
	m.mu.RUnlock()

	if active {
		return ErrAlreadyViewingAs
	}
	if current == nil {
		return ErrNotAuthenticated
	}

	next := ViewAsState{
		Active:       true,
		OriginalUser: current,
		Role:         role,
		Target:       target,
	}
	raw, err := encodeViewAs(next)
	if err != nil {
		return fmt.Errorf("persist view-as state: %w", err)
	}
	if err := m.store.SetMulti(ctx, map[string][]byte{m.keys.viewAs: raw}); err != nil {
		return fmt.Errorf("persist view-as state: %w", err)
	}

	m.mu.Lock()
	m.viewAs = next
	m.mu.Unlock()
	m.publish()

	m.logger.InfoContext(ctx, "view-as entered",
		logger.Role(role),
		slog.String("franchise_id", target.FranchiseID),
		slog.String("target_user_id", target.UserID),
	)
	return nil
}

// ExitViewAs clears the overlay and restores the user captured by
// EnterViewAs. The cleared overlay is persisted before the restoration
// becomes visible. Calling it while not impersonating is a no-op.
func (m *Manager) ExitViewAs(ctx context.Context) error {
	m.opMu.Lock()
	defer m.opMu.Unlock()

	m.mu.RLock()
	state := m.viewAs
	m.mu.RUnlock()

	if !state.Active {
		return nil
	}

	raw, err := encodeViewAs(ViewAsState{})
	if err != nil {
		return fmt.Errorf("persist view-as state: %w", err)
	}
	if err := m.store.SetMulti(ctx, map[string][]byte{m.keys.viewAs: raw}); err != nil {
		return fmt.Errorf("persist view-as state: %w", err)
	}

	m.mu.Lock()
	m.user = state.OriginalUser
	m.viewAs = ViewAsState{}
	m.mu.Unlock()
	m.publish()

	m.logger.InfoContext(ctx, "view-as exited")
	return nil
}
