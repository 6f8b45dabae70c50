package authapi_test

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	authapi "github.com/nexa-labs/go-auth-api"
)

// MockUserStore implements authapi.UserStore
type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) Create(ctx context.Context, user *authapi.User) (*authapi.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authapi.User), args.Error(1)
}

func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*authapi.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authapi.User), args.Error(1)
}

func (m *MockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*authapi.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authapi.User), args.Error(1)
}

func (m *MockUserStore) SetResetToken(ctx context.Context, id uuid.UUID, code string) error {
	args := m.Called(ctx, id, code)
	return args.Error(0)
}

func (m *MockUserStore) ConsumeResetToken(ctx context.Context, code, passwordHash string) (*authapi.User, error) {
	args := m.Called(ctx, code, passwordHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authapi.User), args.Error(1)
}

func (m *MockUserStore) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	args := m.Called(ctx, id, passwordHash)
	return args.Error(0)
}

// MockMailer implements authapi.Mailer
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendPasswordReset(ctx context.Context, to, name, code string) error {
	args := m.Called(ctx, to, name, code)
	return args.Error(0)
}

func newActiveUser(password string) *authapi.User {
	hash, err := authapi.HashPassword(password)
	if err != nil {
		panic(err)
	}
	return &authapi.User{
		ID:           uuid.New(),
		Name:         "Someone New",
		Email:        "a@x.com",
		PasswordHash: hash,
		IsActive:     true,
	}
}
