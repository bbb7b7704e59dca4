package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"terptickets/internal/domain"
)

// MockIdentity is a mock implementation of port.Identity.
type MockIdentity struct {
	mock.Mock
}

func (m *MockIdentity) Authenticate(ctx context.Context, email, password string) (*domain.Session, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *MockIdentity) Register(ctx context.Context, email, password string) (*domain.Session, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *MockIdentity) UpdateProfile(ctx context.Context, userID uuid.UUID, update domain.ProfileUpdate) error {
	args := m.Called(ctx, userID, update)
	return args.Error(0)
}

func (m *MockIdentity) CurrentUser(ctx context.Context, token string) (*domain.UserRecord, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserRecord), args.Error(1)
}

func (m *MockIdentity) SignOut(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}
