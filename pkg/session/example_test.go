package session_test

import (
	"context"
	"fmt"

	"github.com/dmitrymomot/authkit/pkg/kvstore"
	"github.com/dmitrymomot/authkit/pkg/otp"
	"github.com/dmitrymomot/authkit/pkg/session"
)

// staticBackend answers every exchange with the same account. Real
// applications use authapi.Client instead.
type staticBackend struct{}

func (staticBackend) Login(ctx context.Context, idToken string, role session.Role) (*session.LoginData, error) {
	return &session.LoginData{
		AccessToken:  "access-token",
		RefreshToken: "refresh-token",
		User:         &session.User{ID: "1", Phone: "+919876543210", Role: role, Name: "Asha"},
	}, nil
}

func (staticBackend) Me(ctx context.Context, accessToken string) (*session.User, error) {
	return &session.User{ID: "1", Phone: "+919876543210", Role: session.RoleCustomer, Name: "Asha"}, nil
}

func ExampleManager() {
	ctx := context.Background()

	manager := session.New(
		kvstore.NewMemoryStore(),
		otp.NewDevProvider(otp.WithDevCode("000000")),
		staticBackend{},
		session.WithNavigator(func(route string) {
			fmt.Println("navigate to", route)
		}),
	)
	defer manager.Close()

	if _, err := manager.RequestCode(ctx, "9876543210", session.RoleCustomer); err != nil {
		panic(err)
	}
	res, err := manager.VerifyCode(ctx, "000000", session.RoleCustomer)
	if err != nil {
		panic(err)
	}

	fmt.Println(res.NextScreen, manager.Snapshot().Authenticated)
}

func ExampleManager_Initialize() {
	ctx := context.Background()

	store := kvstore.NewMemoryStore()
	manager := session.New(store, otp.NewDevProvider(), staticBackend{})
	defer manager.Close()

	// On a cold start nothing is stored, so this settles into the
	// unauthenticated state without calling the backend.
	if err := manager.Initialize(ctx); err != nil {
		fmt.Println("starting signed out:", err)
	}

	fmt.Println(manager.Snapshot().Authenticated)
}

func ExampleManager_Subscribe() {
	ctx := context.Background()

	manager := session.New(kvstore.NewMemoryStore(), otp.NewDevProvider(), staticBackend{})

	ch := manager.Subscribe(ctx)
	go func() {
		for snap := range ch {
			fmt.Println("authenticated:", snap.Authenticated, "loading:", snap.Loading)
		}
	}()

	manager.SetUser(&session.User{ID: "1", Role: session.RoleCustomer})
	manager.Close()
}

func ExampleManager_EnterViewAs() {
	ctx := context.Background()

	manager := session.New(kvstore.NewMemoryStore(), otp.NewDevProvider(), staticBackend{})
	defer manager.Close()

	manager.SetUser(&session.User{ID: "9", Role: session.RoleAdmin, Name: "Ops"})

	err := manager.EnterViewAs(ctx, session.RoleFranchise, session.ViewAsTarget{
		FranchiseID:   "f-7",
		FranchiseName: "North",
	})
	if err != nil {
		panic(err)
	}

	snap := manager.Snapshot()
	fmt.Println(snap.ViewAs.Active, snap.ViewAs.Target.FranchiseName)

	// Back to the real identity.
	if err := manager.ExitViewAs(ctx); err != nil {
		panic(err)
	}
}
