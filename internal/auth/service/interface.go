// Package service provides the cryptographic building blocks of authentication:
// password hashing, access token encoding and signing key loading.
package service

import (
	authDomain "github.com/allisson/go-api-starter/internal/auth/domain"
)

// PasswordHasher turns plaintext passwords into salted one-way digests and
// checks plaintext against them.
type PasswordHasher interface {
	// Hash returns a salted digest of plaintext. Hashing the same plaintext
	// twice yields different digests.
	Hash(plaintext string) (string, error)

	// Verify reports whether plaintext matches digest. A mismatch or an
	// unparsable digest returns false. The comparison is constant-time.
	Verify(plaintext, digest string) bool
}

// TokenCodec issues and verifies signed access tokens.
type TokenCodec interface {
	// Encode issues a token for subject, stamping issued-at and expiry.
	Encode(subject string) (string, *authDomain.TokenClaims, error)

	// Decode verifies signature and expiry and returns the claims.
	// Errors are authDomain.ErrTokenInvalidSignature, authDomain.ErrTokenExpired
	// or authDomain.ErrTokenMalformed.
	Decode(token string) (*authDomain.TokenClaims, error)
}
