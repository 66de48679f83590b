// Package dto provides data transfer objects for the authentication HTTP layer.
package dto

import (
	"strings"

	validation "github.com/jellydator/validation"

	"github.com/allisson/go-api-starter/internal/user/domain"
	appValidation "github.com/allisson/go-api-starter/internal/validation"
)

// LoginRequest is the body of POST /api/v1/auth/login. It is accepted both as
// JSON and as an OAuth2-style form. Username may also hold an email address.
type LoginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// Normalize trims surrounding whitespace from Username. Password is left
// untouched.
func (r *LoginRequest) Normalize() {
	r.Username = strings.TrimSpace(r.Username)
}

// Validate checks that both credentials are present.
func (r *LoginRequest) Validate() error {
	err := validation.ValidateStruct(r,
		validation.Field(&r.Username, validation.Required, appValidation.NotBlank),
		validation.Field(&r.Password, validation.Required),
	)
	return appValidation.WrapValidationError(err)
}

// RegisterRequest is the body of POST /api/v1/auth/register.
// Field rules are enforced by the user use case.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ToCreateUserInput converts the request into an active, non-admin user input.
func (r *RegisterRequest) ToCreateUserInput() domain.CreateUserInput {
	return domain.CreateUserInput{
		Username: r.Username,
		Email:    r.Email,
		Password: r.Password,
		IsActive: true,
		IsAdmin:  false,
	}
}
