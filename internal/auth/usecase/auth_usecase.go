package usecase

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	authDomain "github.com/allisson/go-api-starter/internal/auth/domain"
	authService "github.com/allisson/go-api-starter/internal/auth/service"
	apperrors "github.com/allisson/go-api-starter/internal/errors"
	userDomain "github.com/allisson/go-api-starter/internal/user/domain"
)

// authUseCase implements AuthUseCase.
type authUseCase struct {
	identityRepo   IdentityRepository
	passwordHasher authService.PasswordHasher
	tokenCodec     authService.TokenCodec
	logger         *slog.Logger

	// dummyDigest is verified against when the identity does not exist so an
	// unknown user costs the same as a wrong password.
	dummyDigestOnce sync.Once
	dummyDigest     string
}

// NewAuthUseCase creates an AuthUseCase.
func NewAuthUseCase(
	identityRepo IdentityRepository,
	passwordHasher authService.PasswordHasher,
	tokenCodec authService.TokenCodec,
	logger *slog.Logger,
) AuthUseCase {
	return &authUseCase{
		identityRepo:   identityRepo,
		passwordHasher: passwordHasher,
		tokenCodec:     tokenCodec,
		logger:         logger,
	}
}

// normalizeIdentifier matches how registration stores identities: usernames
// are trimmed, emails are trimmed and lowercased. Usernames never contain "@".
func normalizeIdentifier(s string) string {
	s = strings.TrimSpace(s)
	if strings.Contains(s, "@") {
		return strings.ToLower(s)
	}
	return s
}

// Login implements AuthUseCase.
func (a *authUseCase) Login(
	ctx context.Context,
	handleOrAddress, password string,
) (*authDomain.AccessToken, error) {
	handleOrAddress = normalizeIdentifier(handleOrAddress)
	user, err := a.identityRepo.GetByUsernameOrEmail(ctx, handleOrAddress)
	if err != nil {
		if apperrors.Is(err, userDomain.ErrUserNotFound) {
			a.passwordHasher.Verify(password, a.getDummyDigest())
			a.logger.WarnContext(ctx, "login failed",
				slog.String("reason", "user_not_found"),
				slog.String("identifier", handleOrAddress))
			return nil, authDomain.ErrInvalidCredentials
		}
		return nil, apperrors.Wrap(err, "failed to look up identity")
	}

	if !a.passwordHasher.Verify(password, user.PasswordHash) {
		a.logger.WarnContext(ctx, "login failed",
			slog.String("reason", "invalid_password"),
			slog.String("user_id", user.ID.String()))
		return nil, authDomain.ErrInvalidCredentials
	}

	if !user.IsActive {
		a.logger.WarnContext(ctx, "login failed",
			slog.String("reason", "account_disabled"),
			slog.String("user_id", user.ID.String()))
		return nil, authDomain.ErrAccountDisabled
	}

	token, claims, err := a.tokenCodec.Encode(user.Username)
	if err != nil {
		return nil, err
	}

	a.logger.InfoContext(ctx, "user authenticated",
		slog.String("user_id", user.ID.String()),
		slog.String("username", user.Username))

	return &authDomain.AccessToken{
		Token:     token,
		TokenType: authDomain.TokenType,
		ExpiresAt: claims.ExpiresAt,
	}, nil
}

// ResolveCurrent implements AuthUseCase.
func (a *authUseCase) ResolveCurrent(ctx context.Context, token string) (*userDomain.User, error) {
	if token == "" {
		return nil, authDomain.ErrMissingToken
	}

	claims, err := a.tokenCodec.Decode(token)
	if err != nil {
		return nil, err
	}

	user, err := a.identityRepo.GetByUsername(ctx, claims.Subject)
	if err != nil {
		if apperrors.Is(err, userDomain.ErrUserNotFound) {
			return nil, authDomain.ErrSubjectNotFound
		}
		return nil, apperrors.Wrap(err, "failed to load token subject")
	}

	return user, nil
}

// RequireActive implements AuthUseCase.
func (a *authUseCase) RequireActive(user *userDomain.User) (*userDomain.User, error) {
	if user == nil {
		return nil, authDomain.ErrMissingToken
	}
	if !user.IsActive {
		return nil, authDomain.ErrInactiveUser
	}
	return user, nil
}

// RequireAdmin implements AuthUseCase.
func (a *authUseCase) RequireAdmin(user *userDomain.User) (*userDomain.User, error) {
	if user == nil {
		return nil, authDomain.ErrMissingToken
	}
	if !user.IsAdmin {
		return nil, authDomain.ErrAdminRequired
	}
	return user, nil
}

func (a *authUseCase) getDummyDigest() string {
	a.dummyDigestOnce.Do(func() {
		digest, err := a.passwordHasher.Hash("timing-equalization-placeholder")
		if err == nil {
			a.dummyDigest = digest
		}
	})
	return a.dummyDigest
}
