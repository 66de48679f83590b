// Package mocks provides testify mocks for the user use case interfaces.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/allisson/go-api-starter/internal/user/domain"
)

// MockUserUseCase is a mock implementation of usecase.UserUseCase.
type MockUserUseCase struct {
	mock.Mock
}

func userOrNil(args mock.Arguments) (*domain.User, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// Register mocks the Register method.
func (m *MockUserUseCase) Register(ctx context.Context, input domain.CreateUserInput) (*domain.User, error) {
	return userOrNil(m.Called(ctx, input))
}

// Get mocks the Get method.
func (m *MockUserUseCase) Get(ctx context.Context, actor *domain.User, id uuid.UUID) (*domain.User, error) {
	return userOrNil(m.Called(ctx, actor, id))
}

// List mocks the List method.
func (m *MockUserUseCase) List(ctx context.Context, offset, limit int) ([]*domain.User, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.User), args.Error(1)
}

// Update mocks the Update method.
func (m *MockUserUseCase) Update(
	ctx context.Context,
	actor *domain.User,
	id uuid.UUID,
	input domain.UpdateUserInput,
) (*domain.User, error) {
	return userOrNil(m.Called(ctx, actor, id, input))
}

// Delete mocks the Delete method.
func (m *MockUserUseCase) Delete(ctx context.Context, actor *domain.User, id uuid.UUID) error {
	args := m.Called(ctx, actor, id)
	return args.Error(0)
}

// SetStatus mocks the SetStatus method.
func (m *MockUserUseCase) SetStatus(
	ctx context.Context,
	username string,
	isActive, isAdmin *bool,
) (*domain.User, error) {
	return userOrNil(m.Called(ctx, username, isActive, isAdmin))
}

// MockTxManager runs the function directly unless an error is configured.
type MockTxManager struct {
	mock.Mock
}

// WithTx mocks the WithTx method.
func (m *MockTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx, fn)
	if args.Get(0) != nil {
		return args.Error(0)
	}
	return fn(ctx)
}
