package usecase

import (
	"context"
	"errors"
	"time"

	authDomain "github.com/allisson/go-api-starter/internal/auth/domain"
	"github.com/allisson/go-api-starter/internal/metrics"
	userDomain "github.com/allisson/go-api-starter/internal/user/domain"
)

// authUseCaseWithMetrics decorates AuthUseCase with metrics instrumentation.
type authUseCaseWithMetrics struct {
	next    AuthUseCase
	metrics metrics.BusinessMetrics
}

// NewAuthUseCaseWithMetrics wraps an AuthUseCase with metrics recording.
func NewAuthUseCaseWithMetrics(useCase AuthUseCase, m metrics.BusinessMetrics) AuthUseCase {
	return &authUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Login records metrics for credential exchanges.
func (a *authUseCaseWithMetrics) Login(
	ctx context.Context,
	handleOrAddress, password string,
) (*authDomain.AccessToken, error) {
	start := time.Now()
	token, err := a.next.Login(ctx, handleOrAddress, password)
	a.record(ctx, "login", start, err)
	if reason := loginFailureReason(err); reason != "" {
		a.metrics.RecordLoginFailure(ctx, reason)
	}
	return token, err
}

// ResolveCurrent records metrics for bearer token resolution.
func (a *authUseCaseWithMetrics) ResolveCurrent(ctx context.Context, token string) (*userDomain.User, error) {
	start := time.Now()
	user, err := a.next.ResolveCurrent(ctx, token)
	a.record(ctx, "resolve_current", start, err)
	return user, err
}

// RequireActive is a pure check and is not instrumented.
func (a *authUseCaseWithMetrics) RequireActive(user *userDomain.User) (*userDomain.User, error) {
	return a.next.RequireActive(user)
}

// RequireAdmin is a pure check and is not instrumented.
func (a *authUseCaseWithMetrics) RequireAdmin(user *userDomain.User) (*userDomain.User, error) {
	return a.next.RequireAdmin(user)
}

func (a *authUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	a.metrics.RecordOperation(ctx, "auth", operation, status)
	a.metrics.RecordDuration(ctx, "auth", operation, time.Since(start), status)
}

// loginFailureReason maps rejected credentials to a metric label. Other
// errors (storage, hashing) are not login failures.
func loginFailureReason(err error) string {
	switch {
	case errors.Is(err, authDomain.ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, authDomain.ErrAccountDisabled):
		return "account_disabled"
	default:
		return ""
	}
}
