package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockDocumentStore is a mock implementation of port.DocumentStore.
type MockDocumentStore struct {
	mock.Mock
}

func (m *MockDocumentStore) Insert(ctx context.Context, collection string, record any) (string, error) {
	args := m.Called(ctx, collection, record)
	return args.String(0), args.Error(1)
}
