package service

import (
	"strings"

	"github.com/allisson/go-pwdhash"
	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/allisson/go-api-starter/internal/errors"
)

// bcryptPrefixes identify digests created by bcrypt implementations.
var bcryptPrefixes = []string{"$2a$", "$2b$", "$2y$"}

// passwordHasher hashes with Argon2id and verifies both Argon2id and legacy
// bcrypt digests.
type passwordHasher struct {
	hasher *pwdhash.PasswordHasher
}

// NewPasswordHasher creates a PasswordHasher using the Argon2id interactive policy.
func NewPasswordHasher() (PasswordHasher, error) {
	hasher, err := pwdhash.New(pwdhash.WithPolicy(pwdhash.PolicyInteractive))
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to create password hasher")
	}
	return &passwordHasher{hasher: hasher}, nil
}

// Hash hashes plaintext using Argon2id.
func (p *passwordHasher) Hash(plaintext string) (string, error) {
	digest, err := p.hasher.Hash([]byte(plaintext))
	if err != nil {
		return "", apperrors.Wrap(err, "failed to hash password")
	}
	return digest, nil
}

// Verify compares plaintext against an Argon2id or bcrypt digest.
func (p *passwordHasher) Verify(plaintext, digest string) bool {
	if digest == "" {
		return false
	}

	if isBcrypt(digest) {
		return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
	}

	ok, err := p.hasher.Verify([]byte(plaintext), digest)
	if err != nil {
		return false
	}
	return ok
}

func isBcrypt(digest string) bool {
	for _, prefix := range bcryptPrefixes {
		if strings.HasPrefix(digest, prefix) {
			return true
		}
	}
	return false
}
