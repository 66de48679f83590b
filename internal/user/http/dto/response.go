package dto

import (
	"time"

	"github.com/google/uuid"
)

// UserResponse is the API representation of a user. It never carries the
// password digest.
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	IsActive  bool      `json:"is_active"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ListUsersResponse is a page of users.
type ListUsersResponse struct {
	Data []UserResponse `json:"data"`
}
