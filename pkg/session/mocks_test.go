package session

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dmitrymomot/authkit/pkg/otp"
)

// MockBackend is a mock implementation of Backend.
type MockBackend struct {
	mock.Mock
}

func (m *MockBackend) Login(ctx context.Context, idToken string, role Role) (*LoginData, error) {
	args := m.Called(ctx, idToken, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*LoginData), args.Error(1)
}

func (m *MockBackend) Me(ctx context.Context, accessToken string) (*User, error) {
	args := m.Called(ctx, accessToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

// MockProvider is a mock implementation of otp.Provider.
type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) RequestChallenge(ctx context.Context, phoneNumber string) (otp.Challenge, error) {
	args := m.Called(ctx, phoneNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(otp.Challenge), args.Error(1)
}

func (m *MockProvider) SignOut(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockChallenge is a mock implementation of otp.Challenge.
type MockChallenge struct {
	mock.Mock
}

func (m *MockChallenge) Confirm(ctx context.Context, code string) (otp.Assertion, error) {
	args := m.Called(ctx, code)
	return args.Get(0).(otp.Assertion), args.Error(1)
}

func (m *MockChallenge) Phone() string {
	args := m.Called()
	return args.String(0)
}

// MockStore is a mock implementation of kvstore.Store, used to inject
// storage failures. Success paths use kvstore.MemoryStore instead.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) GetMulti(ctx context.Context, keys []string) (map[string][]byte, error) {
	args := m.Called(ctx, keys)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string][]byte), args.Error(1)
}

func (m *MockStore) SetMulti(ctx context.Context, items map[string][]byte) error {
	args := m.Called(ctx, items)
	return args.Error(0)
}

func (m *MockStore) RemoveMulti(ctx context.Context, keys []string) error {
	args := m.Called(ctx, keys)
	return args.Error(0)
}
