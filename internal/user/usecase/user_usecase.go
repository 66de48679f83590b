package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	authService "github.com/allisson/go-api-starter/internal/auth/service"
	"github.com/allisson/go-api-starter/internal/database"
	apperrors "github.com/allisson/go-api-starter/internal/errors"
	"github.com/allisson/go-api-starter/internal/user/domain"
	appValidation "github.com/allisson/go-api-starter/internal/validation"
)

var (
	usernameRules = []validation.Rule{
		validation.Length(3, 50).Error("username must be between 3 and 50 characters"),
		appValidation.Username,
	}
	emailRules = []validation.Rule{
		appValidation.Email,
		validation.Length(5, 255).Error("email must be between 5 and 255 characters"),
	}
	passwordRules = []validation.Rule{
		validation.Length(6, 128).Error("password must be between 6 and 128 characters"),
		appValidation.PasswordPolicy{MinLength: 6, Require: []appValidation.CharClass{appValidation.Digit}},
	}
)

// userUseCase implements UserUseCase.
type userUseCase struct {
	txManager      database.TxManager
	userRepo       UserRepository
	passwordHasher authService.PasswordHasher
	logger         *slog.Logger
}

// NewUserUseCase creates a UserUseCase.
func NewUserUseCase(
	txManager database.TxManager,
	userRepo UserRepository,
	passwordHasher authService.PasswordHasher,
	logger *slog.Logger,
) UserUseCase {
	return &userUseCase{
		txManager:      txManager,
		userRepo:       userRepo,
		passwordHasher: passwordHasher,
		logger:         logger,
	}
}

func normalizeUsername(s string) string {
	return strings.TrimSpace(s)
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func validateCreateUserInput(input domain.CreateUserInput) error {
	err := validation.ValidateStruct(&input,
		validation.Field(&input.Username, append([]validation.Rule{validation.Required}, usernameRules...)...),
		validation.Field(&input.Email, append([]validation.Rule{validation.Required}, emailRules...)...),
		validation.Field(&input.Password, append([]validation.Rule{validation.Required}, passwordRules...)...),
	)
	return appValidation.WrapValidationError(err)
}

func validateUpdateUserInput(input domain.UpdateUserInput) error {
	err := validation.ValidateStruct(&input,
		validation.Field(&input.Username, append([]validation.Rule{validation.NilOrNotEmpty}, usernameRules...)...),
		validation.Field(&input.Email, append([]validation.Rule{validation.NilOrNotEmpty}, emailRules...)...),
		validation.Field(&input.Password, append([]validation.Rule{validation.NilOrNotEmpty}, passwordRules...)...),
	)
	return appValidation.WrapValidationError(err)
}

// Register implements UserUseCase.
func (uc *userUseCase) Register(ctx context.Context, input domain.CreateUserInput) (*domain.User, error) {
	input.Username = normalizeUsername(input.Username)
	input.Email = normalizeEmail(input.Email)

	if err := validateCreateUserInput(input); err != nil {
		return nil, err
	}

	digest, err := uc.passwordHasher.Hash(input.Password)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to hash password")
	}

	user := &domain.User{
		ID:           uuid.Must(uuid.NewV7()),
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: digest,
		IsActive:     input.IsActive,
		IsAdmin:      input.IsAdmin,
	}

	err = uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := uc.ensureAvailable(ctx, user.Username, user.Email); err != nil {
			return err
		}
		return uc.userRepo.Create(ctx, user)
	})
	if err != nil {
		return nil, err
	}

	uc.logger.InfoContext(ctx, "user registered",
		slog.String("user_id", user.ID.String()),
		slog.String("username", user.Username),
		slog.Bool("is_admin", user.IsAdmin),
	)
	return user, nil
}

// ensureAvailable reports a taken username or email with its specific error.
// The unique indexes still catch races between the check and the write.
func (uc *userUseCase) ensureAvailable(ctx context.Context, username, email string) error {
	if username != "" {
		if _, err := uc.userRepo.GetByUsername(ctx, username); err == nil {
			return domain.ErrUsernameTaken
		} else if !apperrors.Is(err, domain.ErrUserNotFound) {
			return err
		}
	}

	if email != "" {
		if _, err := uc.userRepo.GetByEmail(ctx, email); err == nil {
			return domain.ErrEmailTaken
		} else if !apperrors.Is(err, domain.ErrUserNotFound) {
			return err
		}
	}
	return nil
}

// Get implements UserUseCase.
func (uc *userUseCase) Get(ctx context.Context, actor *domain.User, id uuid.UUID) (*domain.User, error) {
	if !actor.CanManage(id) {
		return nil, domain.ErrUserAccessForbidden
	}
	return uc.userRepo.GetByID(ctx, id)
}

// List implements UserUseCase.
func (uc *userUseCase) List(ctx context.Context, offset, limit int) ([]*domain.User, error) {
	return uc.userRepo.List(ctx, offset, limit)
}

// Update implements UserUseCase.
func (uc *userUseCase) Update(
	ctx context.Context,
	actor *domain.User,
	id uuid.UUID,
	input domain.UpdateUserInput,
) (*domain.User, error) {
	if !actor.CanManage(id) {
		return nil, domain.ErrUserAccessForbidden
	}
	if input.ChangesFlags() && !actor.IsAdmin {
		return nil, domain.ErrFlagChangeForbidden
	}

	if input.Username != nil {
		v := normalizeUsername(*input.Username)
		input.Username = &v
	}
	if input.Email != nil {
		v := normalizeEmail(*input.Email)
		input.Email = &v
	}
	if err := validateUpdateUserInput(input); err != nil {
		return nil, err
	}

	var digest string
	if input.Password != nil {
		var err error
		if digest, err = uc.passwordHasher.Hash(*input.Password); err != nil {
			return nil, apperrors.Wrap(err, "failed to hash password")
		}
	}

	var user *domain.User
	err := uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		var err error
		if user, err = uc.userRepo.GetByID(ctx, id); err != nil {
			return err
		}

		var newUsername, newEmail string
		if input.Username != nil && *input.Username != user.Username {
			newUsername = *input.Username
		}
		if input.Email != nil && *input.Email != user.Email {
			newEmail = *input.Email
		}
		if err := uc.ensureAvailable(ctx, newUsername, newEmail); err != nil {
			return err
		}

		applyUpdate(user, input, digest)
		return uc.userRepo.Update(ctx, user)
	})
	if err != nil {
		return nil, err
	}

	uc.logger.InfoContext(ctx, "user updated",
		slog.String("user_id", user.ID.String()),
		slog.String("actor_id", actor.ID.String()),
	)
	return user, nil
}

func applyUpdate(user *domain.User, input domain.UpdateUserInput, digest string) {
	if input.Username != nil {
		user.Username = *input.Username
	}
	if input.Email != nil {
		user.Email = *input.Email
	}
	if digest != "" {
		user.PasswordHash = digest
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}
	if input.IsAdmin != nil {
		user.IsAdmin = *input.IsAdmin
	}
}

// Delete implements UserUseCase.
func (uc *userUseCase) Delete(ctx context.Context, actor *domain.User, id uuid.UUID) error {
	if !actor.IsAdmin {
		return domain.ErrUserAccessForbidden
	}
	if actor.ID == id {
		return domain.ErrCannotDeleteSelf
	}

	if err := uc.userRepo.Delete(ctx, id); err != nil {
		return err
	}

	uc.logger.InfoContext(ctx, "user deleted",
		slog.String("user_id", id.String()),
		slog.String("actor_id", actor.ID.String()),
	)
	return nil
}

// SetStatus implements UserUseCase.
func (uc *userUseCase) SetStatus(
	ctx context.Context,
	username string,
	isActive, isAdmin *bool,
) (*domain.User, error) {
	var user *domain.User
	err := uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		var err error
		if user, err = uc.userRepo.GetByUsername(ctx, normalizeUsername(username)); err != nil {
			return err
		}
		applyUpdate(user, domain.UpdateUserInput{IsActive: isActive, IsAdmin: isAdmin}, "")
		return uc.userRepo.Update(ctx, user)
	})
	if err != nil {
		return nil, err
	}

	uc.logger.InfoContext(ctx, "user updated",
		slog.String("user_id", user.ID.String()),
		slog.Bool("is_active", user.IsActive),
		slog.Bool("is_admin", user.IsAdmin),
	)
	return user, nil
}
