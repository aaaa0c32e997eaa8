// Package mocks provides mock implementations of registry use case dependencies for testing.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/allisson/hname/internal/hname"
	registryDomain "github.com/allisson/hname/internal/registry/domain"
)

// MockEntryRepository is a mock implementation of EntryRepository.
type MockEntryRepository struct {
	mock.Mock
}

// Create mocks the Create method.
func (m *MockEntryRepository) Create(ctx context.Context, entry *registryDomain.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

// GetByName mocks the GetByName method.
func (m *MockEntryRepository) GetByName(ctx context.Context, name string) (*registryDomain.Entry, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*registryDomain.Entry), args.Error(1)
}

// GetByHName mocks the GetByHName method.
func (m *MockEntryRepository) GetByHName(ctx context.Context, h hname.HName) (*registryDomain.Entry, error) {
	args := m.Called(ctx, h)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*registryDomain.Entry), args.Error(1)
}

// List mocks the List method.
func (m *MockEntryRepository) List(ctx context.Context, offset, limit int) ([]*registryDomain.Entry, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*registryDomain.Entry), args.Error(1)
}

// Delete mocks the Delete method.
func (m *MockEntryRepository) Delete(ctx context.Context, h hname.HName) error {
	args := m.Called(ctx, h)
	return args.Error(0)
}

// MockRegistryUseCase is a mock implementation of RegistryUseCase.
type MockRegistryUseCase struct {
	mock.Mock
}

// Hash mocks the Hash method.
func (m *MockRegistryUseCase) Hash(ctx context.Context, names []string) ([]hname.HName, error) {
	args := m.Called(ctx, names)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]hname.HName), args.Error(1)
}

// Register mocks the Register method.
func (m *MockRegistryUseCase) Register(
	ctx context.Context,
	name string,
	kind registryDomain.Kind,
) (*registryDomain.Entry, error) {
	args := m.Called(ctx, name, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*registryDomain.Entry), args.Error(1)
}

// GetByName mocks the GetByName method.
func (m *MockRegistryUseCase) GetByName(ctx context.Context, name string) (*registryDomain.Entry, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*registryDomain.Entry), args.Error(1)
}

// GetByHName mocks the GetByHName method.
func (m *MockRegistryUseCase) GetByHName(ctx context.Context, h hname.HName) (*registryDomain.Entry, error) {
	args := m.Called(ctx, h)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*registryDomain.Entry), args.Error(1)
}

// List mocks the List method.
func (m *MockRegistryUseCase) List(ctx context.Context, offset, limit int) ([]*registryDomain.Entry, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*registryDomain.Entry), args.Error(1)
}

// Delete mocks the Delete method.
func (m *MockRegistryUseCase) Delete(ctx context.Context, h hname.HName) error {
	args := m.Called(ctx, h)
	return args.Error(0)
}

// MockTxManager runs the callback inline without a real transaction.
type MockTxManager struct {
	mock.Mock
}

// WithTx mocks the WithTx method and invokes fn with the same context.
func (m *MockTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(ctx)
}
