package commands

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/term"

	userDomain "github.com/allisson/go-api-starter/internal/user/domain"
	userUseCase "github.com/allisson/go-api-starter/internal/user/usecase"
)

// CreateUserParams holds the create-user flags.
type CreateUserParams struct {
	Username string
	Email    string
	Password string
	IsActive bool
	IsAdmin  bool
}

// RunCreateUser creates a user, typically the first administrator.
// When params.Password is empty the password is read from io.Reader.
//
// Requirements: Database must be migrated and accessible.
func RunCreateUser(
	ctx context.Context,
	userUseCase userUseCase.UserUseCase,
	logger *slog.Logger,
	io IOTuple,
	params CreateUserParams,
	format string,
) error {
	logger.Info("creating new user",
		slog.String("username", params.Username),
		slog.Bool("is_active", params.IsActive),
		slog.Bool("is_admin", params.IsAdmin))

	password := params.Password
	if password == "" {
		var err error
		password, err = promptForPassword(io)
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
	}

	user, err := userUseCase.Register(ctx, userDomain.CreateUserInput{
		Username: params.Username,
		Email:    params.Email,
		Password: password,
		IsActive: params.IsActive,
		IsAdmin:  params.IsAdmin,
	})
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	writeUser(io.Writer, user, "User created successfully!", format)

	logger.Info("user created successfully",
		slog.String("user_id", user.ID.String()),
		slog.String("username", user.Username))

	return nil
}

// promptForPassword reads without echo when the reader is a terminal and
// falls back to a single line otherwise (pipes, tests).
func promptForPassword(io IOTuple) (string, error) {
	if io.Reader == nil {
		return "", fmt.Errorf("no input available")
	}

	_, _ = fmt.Fprint(io.Writer, "Password: ")

	if f, ok := io.Reader.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		raw, err := term.ReadPassword(int(f.Fd()))
		_, _ = fmt.Fprintln(io.Writer)
		if err != nil {
			return "", err
		}
		if len(raw) == 0 {
			return "", fmt.Errorf("password is required")
		}
		return string(raw), nil
	}

	scanner := bufio.NewScanner(io.Reader)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", err
		}
		return "", fmt.Errorf("password is required")
	}

	password := strings.TrimRight(scanner.Text(), "\r")
	if password == "" {
		return "", fmt.Errorf("password is required")
	}
	return password, nil
}
