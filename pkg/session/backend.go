package session

import "context"

// LoginData is what a successful credential exchange returns: the token
// pair plus the authoritative profile for the signed-in user.
type LoginData struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	User         *User  `json:"user"`
}

// Backend exchanges verified identities for session credentials and
// validates previously issued credentials. The authapi package provides
// the HTTP implementation.
type Backend interface {
	// Login exchanges an identity token obtained from code verification
	// for session credentials. When the backend rejects the exchange,
	// implementations must return an error whose message is the backend's
	// own rejection reason; the manager surfaces it to callers verbatim.
	Login(ctx context.Context, idToken string, role Role) (*LoginData, error)

	// Me returns the profile the backend currently associates with the
	// access token. A non-nil error means the credentials are no longer
	// valid or could not be checked; the manager treats both the same way.
	Me(ctx context.Context, accessToken string) (*User, error)
}
