// Package mocks provides testify mocks for the auth use case interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	authDomain "github.com/allisson/go-api-starter/internal/auth/domain"
	userDomain "github.com/allisson/go-api-starter/internal/user/domain"
)

// MockAuthUseCase is a mock implementation of usecase.AuthUseCase.
type MockAuthUseCase struct {
	mock.Mock
}

// Login mocks the Login method.
func (m *MockAuthUseCase) Login(
	ctx context.Context,
	handleOrAddress, password string,
) (*authDomain.AccessToken, error) {
	args := m.Called(ctx, handleOrAddress, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.AccessToken), args.Error(1)
}

// ResolveCurrent mocks the ResolveCurrent method.
func (m *MockAuthUseCase) ResolveCurrent(ctx context.Context, token string) (*userDomain.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*userDomain.User), args.Error(1)
}

// RequireActive mocks the RequireActive method.
func (m *MockAuthUseCase) RequireActive(user *userDomain.User) (*userDomain.User, error) {
	args := m.Called(user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*userDomain.User), args.Error(1)
}

// RequireAdmin mocks the RequireAdmin method.
func (m *MockAuthUseCase) RequireAdmin(user *userDomain.User) (*userDomain.User, error) {
	args := m.Called(user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*userDomain.User), args.Error(1)
}

// MockIdentityRepository is a mock implementation of usecase.IdentityRepository.
type MockIdentityRepository struct {
	mock.Mock
}

// GetByUsernameOrEmail mocks the GetByUsernameOrEmail method.
func (m *MockIdentityRepository) GetByUsernameOrEmail(ctx context.Context, value string) (*userDomain.User, error) {
	args := m.Called(ctx, value)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*userDomain.User), args.Error(1)
}

// GetByUsername mocks the GetByUsername method.
func (m *MockIdentityRepository) GetByUsername(ctx context.Context, username string) (*userDomain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*userDomain.User), args.Error(1)
}
