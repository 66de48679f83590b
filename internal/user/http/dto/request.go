// Package dto provides data transfer objects for the user HTTP layer.
package dto

import (
	"github.com/allisson/go-api-starter/internal/user/domain"
)

// UpdateUserRequest is the body of PUT /api/v1/users/:id. Omitted fields are
// left unchanged. Field rules are enforced by the user use case.
type UpdateUserRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	IsActive *bool   `json:"is_active"`
	IsAdmin  *bool   `json:"is_admin"`
}

// ToUpdateUserInput converts the request into a use case input.
func (r *UpdateUserRequest) ToUpdateUserInput() domain.UpdateUserInput {
	return domain.UpdateUserInput{
		Username: r.Username,
		Email:    r.Email,
		Password: r.Password,
		IsActive: r.IsActive,
		IsAdmin:  r.IsAdmin,
	}
}
