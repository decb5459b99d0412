package session

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Storage key names are part of the on-device contract: existing installs
// already hold sessions under these keys, so they never change.
const (
	keyAccessToken  = "accessToken"
	keyRefreshToken = "refreshToken"
	keyUserProfile  = "userProfile"
	keyViewAsState  = "viewAsState"
)

const (
	profileSchemaVersion = 1
	viewAsSchemaVersion  = 1
)

// storageKeys holds the fully prefixed key names for one manager instance.
type storageKeys struct {
	access  string
	refresh string
	profile string
	viewAs  string
}

func newStorageKeys(prefix string) storageKeys {
	return storageKeys{
		access:  prefix + keyAccessToken,
		refresh: prefix + keyRefreshToken,
		profile: prefix + keyUserProfile,
		viewAs:  prefix + keyViewAsState,
	}
}

func (k storageKeys) all() []string {
	return []string{k.access, k.refresh, k.profile, k.viewAs}
}

// profileRecord is the persisted envelope for the user profile. The
// version field lets future releases detect records they cannot read
// instead of silently misinterpreting them.
type profileRecord struct {
	Version int   `json:"v"`
	User    *User `json:"user"`
}

func encodeProfile(u *User) ([]byte, error) {
	raw, err := json.Marshal(profileRecord{Version: profileSchemaVersion, User: u})
	if err != nil {
		return nil, fmt.Errorf("encode profile record: %w", err)
	}
	return raw, nil
}

func decodeProfile(raw []byte) (*User, error) {
	var rec profileRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, errors.Join(ErrCorruptRecord, err)
	}
	if rec.Version != profileSchemaVersion {
		return nil, fmt.Errorf("%w: profile record v%d", ErrUnsupportedSchema, rec.Version)
	}
	if rec.User == nil || rec.User.ID == "" {
		return nil, fmt.Errorf("%w: profile record missing user", ErrCorruptRecord)
	}
	return rec.User, nil
}

// viewAsRecord is the persisted envelope for the impersonation overlay.
// An inactive overlay is stored as a zero state rather than removed, so a
// missing key and an explicitly cleared overlay stay distinguishable.
type viewAsRecord struct {
	Version int         `json:"v"`
	State   ViewAsState `json:"state"`
}

func encodeViewAs(state ViewAsState) ([]byte, error) {
	raw, err := json.Marshal(viewAsRecord{Version: viewAsSchemaVersion, State: state})
	if err != nil {
		return nil, fmt.Errorf("encode view-as record: %w", err)
	}
	return raw, nil
}

func decodeViewAs(raw []byte) (ViewAsState, error) {
	var rec viewAsRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return ViewAsState{}, errors.Join(ErrCorruptRecord, err)
	}
	if rec.Version != viewAsSchemaVersion {
		return ViewAsState{}, fmt.Errorf("%w: view-as record v%d", ErrUnsupportedSchema, rec.Version)
	}
	if rec.State.Active && rec.State.OriginalUser == nil {
		return ViewAsState{}, fmt.Errorf("%w: active view-as record missing original user", ErrCorruptRecord)
	}
	return rec.State, nil
}
