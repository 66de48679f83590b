package dto

import (
	"time"

	authDomain "github.com/allisson/go-api-starter/internal/auth/domain"
)

// TokenResponse is returned by a successful login.
type TokenResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// MapAccessTokenToResponse converts an issued access token to its API representation.
func MapAccessTokenToResponse(token *authDomain.AccessToken) TokenResponse {
	return TokenResponse{
		AccessToken: token.Token,
		TokenType:   token.TokenType,
		ExpiresAt:   token.ExpiresAt,
	}
}
