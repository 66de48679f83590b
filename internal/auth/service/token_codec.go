package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	authDomain "github.com/allisson/go-api-starter/internal/auth/domain"
	apperrors "github.com/allisson/go-api-starter/internal/errors"
)

// DefaultAlgorithm is the signing algorithm used when none is configured.
const DefaultAlgorithm = "HS256"

// TokenConfig holds the token signing parameters.
type TokenConfig struct {
	SigningKey []byte
	Algorithm  string
	TTL        time.Duration
}

// TokenCodecOption customizes a token codec.
type TokenCodecOption func(*tokenCodec)

// WithClock overrides the time source used to stamp and validate tokens.
func WithClock(now func() time.Time) TokenCodecOption {
	return func(c *tokenCodec) {
		c.now = now
	}
}

// tokenCodec implements TokenCodec with HMAC-signed JWTs.
type tokenCodec struct {
	key    []byte
	method jwt.SigningMethod
	ttl    time.Duration
	now    func() time.Time
	parser *jwt.Parser
}

// NewTokenCodec validates cfg and creates a TokenCodec.
// Only the HMAC family (HS256, HS384, HS512) is accepted.
func NewTokenCodec(cfg TokenConfig, opts ...TokenCodecOption) (TokenCodec, error) {
	if len(cfg.SigningKey) == 0 {
		return nil, apperrors.New("token signing key is required")
	}
	if cfg.TTL <= 0 {
		return nil, apperrors.New("token ttl must be positive")
	}

	algorithm := cfg.Algorithm
	if algorithm == "" {
		algorithm = DefaultAlgorithm
	}
	method, ok := jwt.GetSigningMethod(algorithm).(*jwt.SigningMethodHMAC)
	if !ok {
		return nil, fmt.Errorf("unsupported token algorithm %q", algorithm)
	}

	c := &tokenCodec{
		key:    cfg.SigningKey,
		method: method,
		ttl:    cfg.TTL,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.parser = jwt.NewParser(
		jwt.WithValidMethods([]string{method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(func() time.Time { return c.now() }),
	)

	return c, nil
}

// Encode issues a signed token for subject valid for the configured TTL.
func (c *tokenCodec) Encode(subject string) (string, *authDomain.TokenClaims, error) {
	if subject == "" {
		return "", nil, apperrors.New("token subject is required")
	}

	issuedAt := c.now().UTC()
	claims := jwt.RegisteredClaims{
		ID:        uuid.Must(uuid.NewV7()).String(),
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(issuedAt.Add(c.ttl)),
	}

	signed, err := jwt.NewWithClaims(c.method, claims).SignedString(c.key)
	if err != nil {
		return "", nil, apperrors.Wrap(err, "failed to sign token")
	}

	return signed, toTokenClaims(&claims), nil
}

// Decode verifies token and maps library failures onto the domain token errors.
func (c *tokenCodec) Decode(token string) (*authDomain.TokenClaims, error) {
	var claims jwt.RegisteredClaims

	_, err := c.parser.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return c.key, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, apperrors.Wrap(authDomain.ErrTokenInvalidSignature, err.Error())
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, apperrors.Wrap(authDomain.ErrTokenExpired, err.Error())
		default:
			return nil, apperrors.Wrap(authDomain.ErrTokenMalformed, err.Error())
		}
	}

	if claims.Subject == "" {
		return nil, apperrors.Wrap(authDomain.ErrTokenMalformed, "token has no subject")
	}

	return toTokenClaims(&claims), nil
}

func toTokenClaims(claims *jwt.RegisteredClaims) *authDomain.TokenClaims {
	out := &authDomain.TokenClaims{
		ID:      claims.ID,
		Subject: claims.Subject,
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out
}
