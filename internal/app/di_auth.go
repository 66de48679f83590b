package app

import (
	"context"
	"fmt"
	"time"

	authHTTP "github.com/allisson/go-api-starter/internal/auth/http"
	authService "github.com/allisson/go-api-starter/internal/auth/service"
	authUseCase "github.com/allisson/go-api-starter/internal/auth/usecase"
)

// signingKeyTimeout bounds the KMS call that decrypts the signing key.
const signingKeyTimeout = 30 * time.Second

// PasswordHasher returns the Argon2id password hasher.
func (c *Container) PasswordHasher() (authService.PasswordHasher, error) {
	return lazy(c, &c.passwordHasherInit, "passwordHasher", &c.passwordHasher, authService.NewPasswordHasher)
}

// TokenCodec returns the access token codec. The first call resolves the
// signing key, which may involve a KMS round trip.
func (c *Container) TokenCodec() (authService.TokenCodec, error) {
	return lazy(c, &c.tokenCodecInit, "tokenCodec", &c.tokenCodec, c.initTokenCodec)
}

// AuthUseCase returns the auth use case.
func (c *Container) AuthUseCase() (authUseCase.AuthUseCase, error) {
	return lazy(c, &c.authUseCaseInit, "authUseCase", &c.authUseCase, c.initAuthUseCase)
}

// AuthHandler returns the HTTP handler for login, register and me.
func (c *Container) AuthHandler() (*authHTTP.AuthHandler, error) {
	return lazy(c, &c.authHandlerInit, "authHandler", &c.authHandler, c.initAuthHandler)
}

func (c *Container) initTokenCodec() (authService.TokenCodec, error) {
	ctx, cancel := context.WithTimeout(c.ctx, signingKeyTimeout)
	defer cancel()

	key, err := authService.LoadSigningKey(ctx, authService.SigningKeySource{
		Plaintext:  c.config.SecretKey,
		Ciphertext: c.config.SecretKeyCiphertext,
		KMSKeyURI:  c.config.KMSKeyURI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load token signing key: %w", err)
	}

	codec, err := authService.NewTokenCodec(authService.TokenConfig{
		SigningKey: key,
		Algorithm:  c.config.JWTAlgorithm,
		TTL:        c.config.AccessTokenExpiration,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create token codec: %w", err)
	}
	return codec, nil
}

func (c *Container) initAuthUseCase() (authUseCase.AuthUseCase, error) {
	userRepository, err := c.UserRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get user repository for auth use case: %w", err)
	}

	passwordHasher, err := c.PasswordHasher()
	if err != nil {
		return nil, fmt.Errorf("failed to get password hasher for auth use case: %w", err)
	}

	tokenCodec, err := c.TokenCodec()
	if err != nil {
		return nil, fmt.Errorf("failed to get token codec for auth use case: %w", err)
	}

	baseUseCase := authUseCase.NewAuthUseCase(userRepository, passwordHasher, tokenCodec, c.Logger())

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for auth use case: %w", err)
		}
		return authUseCase.NewAuthUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

func (c *Container) initAuthHandler() (*authHTTP.AuthHandler, error) {
	authUseCase, err := c.AuthUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get auth use case for auth handler: %w", err)
	}

	userUseCase, err := c.UserUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get user use case for auth handler: %w", err)
	}

	return authHTTP.NewAuthHandler(authUseCase, userUseCase, c.Logger()), nil
}
