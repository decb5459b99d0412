package session

import "slices"

// Role identifies which authorization profile a sign-in requests. The
// backend decides what each role may do; the client only labels the
// attempt.
type Role string

const (
	RoleCustomer  Role = "customer"
	RoleFranchise Role = "franchise"
	RoleAdmin     Role = "admin"
)

// User is the profile the backend associates with an authenticated
// session. The JSON shape matches both the wire format and the persisted
// profile record.
type User struct {
	ID          string   `json:"id"`
	Phone       string   `json:"phone"`
	Role        Role     `json:"role"`
	Permissions []string `json:"permissions,omitempty"`
	Name        string   `json:"name,omitempty"`
	Email       string   `json:"email,omitempty"`
	Onboarded   bool     `json:"onboarded,omitempty"`
}

// Clone returns an independent deep copy of the user. It is nil-safe so
// callers can clone an unauthenticated (nil) user without checking first.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	cp := *u
	if u.Permissions != nil {
		cp.Permissions = slices.Clone(u.Permissions)
	}
	return &cp
}

// HasPermission reports whether the user carries the named permission.
// A nil user has no permissions.
func (u *User) HasPermission(perm string) bool {
	return u != nil && slices.Contains(u.Permissions, perm)
}

// Snapshot is a self-consistent copy of the observable session state.
// Every field is derived from the same moment, so consumers never see a
// half-applied transition. Authenticated is always user presence: there is
// no separate flag to drift out of sync.
type Snapshot struct {
	// User is the signed-in profile, or nil when unauthenticated.
	User *User

	// Loading is true exactly while a session lifecycle operation
	// (Initialize, VerifyCode, Logout, RefreshSession) is in flight.
	Loading bool

	// Authenticated mirrors User != nil.
	Authenticated bool

	// ViewAs is the impersonation overlay, zero when inactive.
	ViewAs ViewAsState
}

// VerifyResult is the outcome of a successful code verification.
type VerifyResult struct {
	// NextScreen is the route the caller should navigate to.
	NextScreen string `json:"nextScreen"`

	// Success is always true on a nil-error return; it exists so the
	// result can be serialized for bridge layers that expect the flag.
	Success bool `json:"success"`
}
