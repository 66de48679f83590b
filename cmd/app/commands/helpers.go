// Package commands contains CLI command implementations for the application.
package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/allisson/go-api-starter/internal/app"
	userDomain "github.com/allisson/go-api-starter/internal/user/domain"
)

// IOTuple holds reader and writer for commands, allowing for testing.
type IOTuple struct {
	Reader io.Reader
	Writer io.Writer
}

// DefaultIO returns an IOTuple with os.Stdin and os.Stdout.
func DefaultIO() IOTuple {
	return IOTuple{
		Reader: os.Stdin,
		Writer: os.Stdout,
	}
}

// closeContainer closes all resources in the container and logs any errors.
func closeContainer(container *app.Container, logger *slog.Logger) {
	if err := container.Shutdown(context.Background()); err != nil {
		logger.Error("failed to shutdown container", slog.Any("error", err))
	}
}

// writeUser prints a user in text or JSON format. The password digest is never printed.
func writeUser(writer io.Writer, user *userDomain.User, title, format string) {
	if format == "json" {
		result := map[string]any{
			"id":        user.ID.String(),
			"username":  user.Username,
			"email":     user.Email,
			"is_active": user.IsActive,
			"is_admin":  user.IsAdmin,
		}
		jsonBytes, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "failed to marshal JSON: %v\n", err)
			return
		}
		_, _ = fmt.Fprintln(writer, string(jsonBytes))
		return
	}

	_, _ = fmt.Fprintln(writer, title)
	_, _ = fmt.Fprintf(writer, "ID: %s\n", user.ID.String())
	_, _ = fmt.Fprintf(writer, "Username: %s\n", user.Username)
	_, _ = fmt.Fprintf(writer, "Email: %s\n", user.Email)
	_, _ = fmt.Fprintf(writer, "Active: %t\n", user.IsActive)
	_, _ = fmt.Fprintf(writer, "Admin: %t\n", user.IsAdmin)
}
