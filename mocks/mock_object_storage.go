package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"terptickets/internal/port"
)

// MockObjectStorage is a mock implementation of port.ObjectStorage.
type MockObjectStorage struct {
	mock.Mock
}

func (m *MockObjectStorage) Put(ctx context.Context, input port.PutInput) (*port.ObjectRef, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.ObjectRef), args.Error(1)
}

func (m *MockObjectStorage) URLFor(ctx context.Context, ref port.ObjectRef) (string, error) {
	args := m.Called(ctx, ref)
	return args.String(0), args.Error(1)
}
