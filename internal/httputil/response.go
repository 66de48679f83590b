// Package httputil provides HTTP helpers shared by the gin handlers.
package httputil

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	authDomain "github.com/allisson/go-api-starter/internal/auth/domain"
	apperrors "github.com/allisson/go-api-starter/internal/errors"
	userDomain "github.com/allisson/go-api-starter/internal/user/domain"
)

// ErrorResponse is the JSON body of every error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// HandleErrorGin maps domain errors to HTTP status codes and writes a JSON
// error response. The full error chain is logged, never returned.
func HandleErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	if err == nil {
		return
	}

	var statusCode int
	var errorResponse ErrorResponse

	switch {
	case apperrors.Is(err, apperrors.ErrNotFound):
		statusCode = http.StatusNotFound
		errorResponse = ErrorResponse{
			Error:   "not_found",
			Message: "The requested resource was not found",
		}

	case apperrors.Is(err, apperrors.ErrConflict):
		statusCode = http.StatusConflict
		errorResponse = ErrorResponse{
			Error:   "conflict",
			Message: "A conflict occurred with existing data",
		}

	case apperrors.Is(err, apperrors.ErrInvalidInput):
		statusCode = http.StatusUnprocessableEntity
		errorResponse = ErrorResponse{
			Error:   "invalid_input",
			Message: inputMessage(err),
		}

	case apperrors.Is(err, apperrors.ErrAuthentication):
		statusCode = http.StatusBadRequest
		errorResponse = ErrorResponse{
			Error:   "invalid_credentials",
			Message: "Incorrect username or password",
		}

	case apperrors.Is(err, apperrors.ErrUnauthorized):
		statusCode = http.StatusUnauthorized
		errorResponse = ErrorResponse{
			Error:   "unauthorized",
			Message: "Could not validate credentials",
		}
		c.Header("WWW-Authenticate", "Bearer")

	case apperrors.Is(err, apperrors.ErrForbidden):
		statusCode = http.StatusForbidden
		errorResponse = ErrorResponse{
			Error:   "forbidden",
			Message: "You don't have permission to access this resource",
		}

	default:
		statusCode = http.StatusInternalServerError
		errorResponse = ErrorResponse{
			Error:   "internal_error",
			Message: "An internal error occurred",
		}
	}

	if code, message, ok := specificError(err); ok {
		errorResponse.Error = code
		errorResponse.Message = message
	}

	if logger != nil {
		level := slog.LevelWarn
		if statusCode >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		logger.Log(c, level, "request failed",
			slog.Int("status_code", statusCode),
			slog.String("error_code", errorResponse.Error),
			slog.Any("error", err),
		)
	}

	c.JSON(statusCode, errorResponse)
}

// inputMessage renders an ErrInvalidInput chain without the sentinel's own
// text, e.g. "email: must be a valid email address.".
func inputMessage(err error) string {
	return strings.TrimSuffix(err.Error(), ": "+apperrors.ErrInvalidInput.Error())
}

// specificError returns a more precise code and message for domain errors
// that share a sentinel with others.
func specificError(err error) (code, message string, ok bool) {
	switch {
	case apperrors.Is(err, authDomain.ErrAccountDisabled):
		return "account_disabled", "Account is disabled", true
	case apperrors.Is(err, authDomain.ErrInactiveUser):
		return "inactive_user", "Inactive user", true
	case apperrors.Is(err, authDomain.ErrAdminRequired):
		return "forbidden", "Administrator privileges are required", true
	case apperrors.Is(err, userDomain.ErrUsernameTaken):
		return "conflict", "Username already registered", true
	case apperrors.Is(err, userDomain.ErrEmailTaken):
		return "conflict", "Email already registered", true
	case apperrors.Is(err, userDomain.ErrUserNotFound):
		return "not_found", "User not found", true
	}
	return "", "", false
}

// HandleBadRequestGin writes a 400 Bad Request response for malformed bodies or parameters.
func HandleBadRequestGin(c *gin.Context, err error, logger *slog.Logger) {
	if logger != nil {
		logger.Warn("bad request", slog.Any("error", err))
	}

	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:   "bad_request",
		Message: err.Error(),
	})
}
