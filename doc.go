// Package authkit provides a client-side authentication session toolkit for Go applications.
//
// AuthKit is designed for API clients that hold a long-lived signed-in session: CLI tools,
// device agents, and backend-for-frontend services managing per-device credentials. It covers
// the full session lifecycle: phone verification, credential exchange, durable persistence,
// startup rehydration, refresh, impersonation, and sign-out.
//
// Key Features:
//
//   - One-time code sign-in with pluggable verification providers
//   - Atomic credential persistence over swappable key-value stores
//   - Startup rehydration with server-side session validation
//   - Snapshot broadcast so consumers can observe every session transition
//   - Support-operator impersonation with structural state restore
//   - Storage, transport, and navigation injected at the edges
//
// Packages:
//
//   - pkg/session: the session manager and its lifecycle operations
//   - pkg/otp: verification providers (dev provider, HTTP gateway)
//   - pkg/authapi: client for the credential exchange backend
//   - pkg/kvstore: batched key-value stores (memory, file, Redis, Postgres, Mongo, encrypted)
//   - pkg/credentials: token pair introspection and oauth2 integration
//   - pkg/phone: phone number normalization and masking
//   - pkg/logger: slog factory and shared log attributes
//   - pkg/config: environment-based configuration loading
//
// Basic Usage:
//
//	store := kvstore.NewMemoryStore()
//	provider := otp.NewDevProvider()
//
//	backend, err := authapi.New(authapi.Config{BaseURL: "https://api.example.com"})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	manager := session.New(store, provider, backend,
//		session.WithNavigator(func(route string) { router.Go(route) }),
//	)
//
//	// Restore whatever session the previous run left behind.
//	if err := manager.Initialize(ctx); err != nil {
//		log.Printf("no session restored: %v", err)
//	}
//
//	// Sign in with a one-time code.
//	if _, err := manager.RequestCode(ctx, "9876543210", session.RoleCustomer); err != nil {
//		log.Fatal(err)
//	}
//	result, err := manager.VerifyCode(ctx, "123456", session.RoleCustomer)
//
// The toolkit follows these principles:
//   - Session state is derived, never duplicated
//   - Credentials are written atomically or not at all
//   - Side effects (storage, network, navigation) stay behind interfaces
//   - Explicit over implicit
package authkit
