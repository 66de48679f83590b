// Package domain defines the user entity and its errors.
package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/allisson/go-api-starter/internal/errors"
)

// User is a stored identity. Username and Email are each unique.
// PasswordHash holds the digest produced by the password hasher, never plaintext.
type User struct {
	ID           uuid.UUID
	Username     string
	Email        string
	PasswordHash string
	IsActive     bool
	IsAdmin      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CanManage reports whether u may read or modify the user identified by id:
// admins manage everyone, other users only themselves.
func (u *User) CanManage(id uuid.UUID) bool {
	return u.IsAdmin || u.ID == id
}

// CreateUserInput holds the data needed to create a user.
// The json tags name the fields in validation errors.
type CreateUserInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	IsActive bool   `json:"is_active"`
	IsAdmin  bool   `json:"is_admin"`
}

// UpdateUserInput holds a partial update; nil fields are left untouched.
type UpdateUserInput struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	IsActive *bool   `json:"is_active"`
	IsAdmin  *bool   `json:"is_admin"`
}

// ChangesFlags reports whether the update touches the administrative flags.
func (in *UpdateUserInput) ChangesFlags() bool {
	return in.IsActive != nil || in.IsAdmin != nil
}

var (
	// ErrUserNotFound indicates the requested user does not exist.
	ErrUserNotFound = errors.Wrap(errors.ErrNotFound, "user not found")

	// ErrUserAlreadyExists indicates a uniqueness violation reported by the store.
	ErrUserAlreadyExists = errors.Wrap(errors.ErrConflict, "user already exists")

	// ErrUsernameTaken indicates another user already has the username.
	ErrUsernameTaken = errors.Wrap(ErrUserAlreadyExists, "username already registered")

	// ErrEmailTaken indicates another user already has the email.
	ErrEmailTaken = errors.Wrap(ErrUserAlreadyExists, "email already registered")

	// ErrUserAccessForbidden indicates a non-admin tried to read or modify another user.
	ErrUserAccessForbidden = errors.Wrap(errors.ErrForbidden, "not allowed to manage this user")

	// ErrFlagChangeForbidden indicates a non-admin tried to change is_active or is_admin.
	ErrFlagChangeForbidden = errors.Wrap(errors.ErrForbidden, "only administrators can change account flags")

	// ErrCannotDeleteSelf indicates an admin tried to delete their own account.
	ErrCannotDeleteSelf = errors.Wrap(errors.ErrInvalidInput, "administrators cannot delete their own account")
)
