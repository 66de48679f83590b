package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/go-api-starter/internal/metrics"
	"github.com/allisson/go-api-starter/internal/user/domain"
)

// userUseCaseWithMetrics decorates UserUseCase with metrics instrumentation.
type userUseCaseWithMetrics struct {
	next    UserUseCase
	metrics metrics.BusinessMetrics
}

// NewUserUseCaseWithMetrics wraps a UserUseCase with metrics recording.
func NewUserUseCaseWithMetrics(useCase UserUseCase, m metrics.BusinessMetrics) UserUseCase {
	return &userUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (u *userUseCaseWithMetrics) Register(ctx context.Context, input domain.CreateUserInput) (*domain.User, error) {
	start := time.Now()
	user, err := u.next.Register(ctx, input)
	u.record(ctx, "register", start, err)
	return user, err
}

func (u *userUseCaseWithMetrics) Get(ctx context.Context, actor *domain.User, id uuid.UUID) (*domain.User, error) {
	start := time.Now()
	user, err := u.next.Get(ctx, actor, id)
	u.record(ctx, "get", start, err)
	return user, err
}

func (u *userUseCaseWithMetrics) List(ctx context.Context, offset, limit int) ([]*domain.User, error) {
	start := time.Now()
	users, err := u.next.List(ctx, offset, limit)
	u.record(ctx, "list", start, err)
	return users, err
}

func (u *userUseCaseWithMetrics) Update(
	ctx context.Context,
	actor *domain.User,
	id uuid.UUID,
	input domain.UpdateUserInput,
) (*domain.User, error) {
	start := time.Now()
	user, err := u.next.Update(ctx, actor, id, input)
	u.record(ctx, "update", start, err)
	return user, err
}

func (u *userUseCaseWithMetrics) Delete(ctx context.Context, actor *domain.User, id uuid.UUID) error {
	start := time.Now()
	err := u.next.Delete(ctx, actor, id)
	u.record(ctx, "delete", start, err)
	return err
}

func (u *userUseCaseWithMetrics) SetStatus(
	ctx context.Context,
	username string,
	isActive, isAdmin *bool,
) (*domain.User, error) {
	start := time.Now()
	user, err := u.next.SetStatus(ctx, username, isActive, isAdmin)
	u.record(ctx, "set_status", start, err)
	return user, err
}

func (u *userUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	u.metrics.RecordOperation(ctx, "users", operation, status)
	u.metrics.RecordDuration(ctx, "users", operation, time.Since(start), status)
}
