// Package domain defines the authentication models: access tokens, their
// verified claims and the errors raised by login and route guards.
package domain

import (
	"time"
)

// TokenType is the token_type advertised to clients.
const TokenType = "bearer"

// TokenClaims is the verified content of an access token.
type TokenClaims struct {
	ID        string
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// AccessToken is the result of a successful login.
type AccessToken struct {
	Token     string
	TokenType string
	ExpiresAt time.Time
}
