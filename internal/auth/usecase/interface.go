// Package usecase defines the authentication business logic: credential
// exchange, bearer token resolution and the active/admin checks.
package usecase

import (
	"context"

	authDomain "github.com/allisson/go-api-starter/internal/auth/domain"
	userDomain "github.com/allisson/go-api-starter/internal/user/domain"
)

// IdentityRepository is the read side of the credential store used by authentication.
// Both lookups return userDomain.ErrUserNotFound on a miss.
type IdentityRepository interface {
	// GetByUsernameOrEmail matches value against the username or the email.
	GetByUsernameOrEmail(ctx context.Context, value string) (*userDomain.User, error)

	// GetByUsername matches value against the username only.
	GetByUsername(ctx context.Context, username string) (*userDomain.User, error)
}

// AuthUseCase exchanges credentials for access tokens and resolves tokens back
// to identities.
type AuthUseCase interface {
	// Login verifies handleOrAddress (username or email) and password and issues
	// an access token. Returns authDomain.ErrInvalidCredentials for an unknown
	// identity or a wrong password, and authDomain.ErrAccountDisabled when the
	// credentials are right but the account is inactive.
	Login(ctx context.Context, handleOrAddress, password string) (*authDomain.AccessToken, error)

	// ResolveCurrent decodes token and loads the identity named by its subject.
	// Every failure matches errors.ErrUnauthorized.
	ResolveCurrent(ctx context.Context, token string) (*userDomain.User, error)

	// RequireActive returns user unchanged, or authDomain.ErrInactiveUser.
	RequireActive(user *userDomain.User) (*userDomain.User, error)

	// RequireAdmin returns user unchanged, or authDomain.ErrAdminRequired.
	RequireAdmin(user *userDomain.User) (*userDomain.User, error)
}
