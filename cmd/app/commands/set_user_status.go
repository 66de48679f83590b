package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	userUseCase "github.com/allisson/go-api-starter/internal/user/usecase"
)

// RunSetUserStatus changes the active and admin flags of username. A nil flag
// is left unchanged; at least one must be given.
func RunSetUserStatus(
	ctx context.Context,
	userUseCase userUseCase.UserUseCase,
	logger *slog.Logger,
	writer io.Writer,
	username string,
	isActive, isAdmin *bool,
	format string,
) error {
	if isActive == nil && isAdmin == nil {
		return fmt.Errorf("at least one of --active or --admin is required")
	}

	user, err := userUseCase.SetStatus(ctx, username, isActive, isAdmin)
	if err != nil {
		return fmt.Errorf("failed to update user status: %w", err)
	}

	writeUser(writer, user, "User status updated.", format)

	logger.Info("user status updated",
		slog.String("user_id", user.ID.String()),
		slog.Bool("is_active", user.IsActive),
		slog.Bool("is_admin", user.IsAdmin))

	return nil
}
