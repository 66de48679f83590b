// Package usecase implements user management: registration, lookup, listing,
// partial updates and deletion.
package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/allisson/go-api-starter/internal/user/domain"
)

// UserRepository is the credential store. Lookups return domain.ErrUserNotFound
// on a miss; writes return one of the domain.ErrUserAlreadyExists errors on a
// uniqueness violation.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByUsernameOrEmail(ctx context.Context, value string) (*domain.User, error)
	List(ctx context.Context, offset, limit int) ([]*domain.User, error)
}

// UserUseCase defines the user management operations.
type UserUseCase interface {
	// Register validates input, hashes the password and stores a new user.
	Register(ctx context.Context, input domain.CreateUserInput) (*domain.User, error)

	// Get returns the user with id if actor may manage it.
	Get(ctx context.Context, actor *domain.User, id uuid.UUID) (*domain.User, error)

	// List returns a page of users.
	List(ctx context.Context, offset, limit int) ([]*domain.User, error)

	// Update applies a partial update on behalf of actor. Only admins may
	// change the account flags.
	Update(ctx context.Context, actor *domain.User, id uuid.UUID, input domain.UpdateUserInput) (*domain.User, error)

	// Delete removes the user with id. actor must be an admin other than the target.
	Delete(ctx context.Context, actor *domain.User, id uuid.UUID) error

	// SetStatus changes the account flags of the user with username. It is
	// meant for operator tooling and performs no actor checks.
	SetStatus(ctx context.Context, username string, isActive, isAdmin *bool) (*domain.User, error)
}
