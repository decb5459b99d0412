package session

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authkit/pkg/kvstore"
)

func TestManager_EnterViewAs(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	target := ViewAsTarget{FranchiseID: "f-7", FranchiseName: "North", UserID: "u-3", UserName: "Ravi"}

	t.Run("requires authentication", func(t *testing.T) {
		t.Parallel()

		m := New(kvstore.NewMemoryStore(), &MockProvider{}, &MockBackend{})
		err := m.EnterViewAs(ctx, RoleFranchise, target)
		assert.ErrorIs(t, err, ErrNotAuthenticated)
	})

	t.Run("activates and persists the overlay", func(t *testing.T) {
		t.Parallel()

		store := kvstore.NewMemoryStore()
		m := New(store, &MockProvider{}, &MockBackend{})
		admin := &User{ID: "9", Role: RoleAdmin, Name: "Ops"}
		m.SetUser(admin)

		require.NoError(t, m.EnterViewAs(ctx, RoleFranchise, target))

		snap := m.Snapshot()
		require.True(t, snap.ViewAs.Active)
		assert.Equal(t, RoleFranchise, snap.ViewAs.Role)
		assert.Equal(t, target, snap.ViewAs.Target)
		assert.Equal(t, admin, snap.ViewAs.OriginalUser)
		// the visible user is untouched until view-as flows load their own data
		assert.Equal(t, admin, snap.User)

		records, err := store.GetMulti(ctx, []string{keyViewAsState})
		require.NoError(t, err)
		state, err := decodeViewAs(records[keyViewAsState])
		require.NoError(t, err)
		assert.True(t, state.Active)
		assert.Equal(t, "9", state.OriginalUser.ID)
		assert.Equal(t, target, state.Target)
	})

	t.Run("rejects nested impersonation", func(t *testing.T) {
		t.Parallel()

		m := New(kvstore.NewMemoryStore(), &MockProvider{}, &MockBackend{})
		m.SetUser(&User{ID: "9", Role: RoleAdmin})
		require.NoError(t, m.EnterViewAs(ctx, RoleFranchise, target))

		err := m.EnterViewAs(ctx, RoleCustomer, ViewAsTarget{UserID: "u-4"})
		assert.ErrorIs(t, err, ErrAlreadyViewingAs)

		// the first overlay is still intact
		snap := m.Snapshot()
		assert.Equal(t, RoleFranchise, snap.ViewAs.Role)
		assert.Equal(t, target, snap.ViewAs.Target)
	})

	t.Run("does not activate when persistence fails", func(t *testing.T) {
		t.Parallel()

		store := &MockStore{}
		store.On("SetMulti", mock.Anything, mock.Anything).Return(errors.New("disk full")).Once()

		m := New(store, &MockProvider{}, &MockBackend{})
		m.SetUser(&User{ID: "9", Role: RoleAdmin})

		err := m.EnterViewAs(ctx, RoleFranchise, target)
		require.Error(t, err)
		assert.False(t, m.Snapshot().ViewAs.Active)
	})
}

func TestManager_ExitViewAs(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("restores the captured user", func(t *testing.T) {
		t.Parallel()

		store := kvstore.NewMemoryStore()
		m := New(store, &MockProvider{}, &MockBackend{})
		admin := &User{ID: "9", Role: RoleAdmin, Name: "Ops", Permissions: []string{"franchises.read"}}
		m.SetUser(admin)
		require.NoError(t, m.EnterViewAs(ctx, RoleFranchise, ViewAsTarget{FranchiseID: "f-7"}))

		// impersonated flows typically swap the visible user for the target's
		m.SetUser(&User{ID: "f-7", Role: RoleFranchise, Name: "North"})

		require.NoError(t, m.ExitViewAs(ctx))

		snap := m.Snapshot()
		assert.False(t, snap.ViewAs.Active)
		assert.Nil(t, snap.ViewAs.OriginalUser)
		assert.Equal(t, admin, snap.User)

		// the persisted overlay is an explicit zero record, not a removal
		records, err := store.GetMulti(ctx, []string{keyViewAsState})
		require.NoError(t, err)
		require.Contains(t, records, keyViewAsState)
		state, err := decodeViewAs(records[keyViewAsState])
		require.NoError(t, err)
		assert.False(t, state.Active)
	})

	t.Run("is a no-op when not impersonating", func(t *testing.T) {
		t.Parallel()

		store := kvstore.NewMemoryStore()
		m := New(store, &MockProvider{}, &MockBackend{})
		m.SetUser(&User{ID: "9", Role: RoleAdmin})

		require.NoError(t, m.ExitViewAs(ctx))
		assert.Equal(t, 0, store.Len())
		assert.Equal(t, "9", m.Snapshot().User.ID)
	})

	t.Run("keeps the overlay when persistence fails", func(t *testing.T) {
		t.Parallel()

		store := &MockStore{}
		store.On("SetMulti", mock.Anything, mock.Anything).Return(nil).Once()
		store.On("SetMulti", mock.Anything, mock.Anything).Return(errors.New("disk full")).Once()

		m := New(store, &MockProvider{}, &MockBackend{})
		m.SetUser(&User{ID: "9", Role: RoleAdmin})
		require.NoError(t, m.EnterViewAs(ctx, RoleFranchise, ViewAsTarget{FranchiseID: "f-7"}))

		err := m.ExitViewAs(ctx)
		require.Error(t, err)
		assert.True(t, m.Snapshot().ViewAs.Active)
	})
}

func TestManager_Logout_ClearsViewAs(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	provider := &MockProvider{}
	provider.On("SignOut", mock.Anything).Return(nil).Once()
	store := kvstore.NewMemoryStore()
	m := New(store, provider, &MockBackend{})
	m.SetUser(&User{ID: "9", Role: RoleAdmin})
	require.NoError(t, m.EnterViewAs(ctx, RoleFranchise, ViewAsTarget{FranchiseID: "f-7"}))

	require.NoError(t, m.Logout(ctx))

	snap := m.Snapshot()
	assert.False(t, snap.ViewAs.Active)
	assert.False(t, snap.Authenticated)
	// logout removes the key entirely, unlike ExitViewAs
	assert.Equal(t, 0, store.Len())
}
