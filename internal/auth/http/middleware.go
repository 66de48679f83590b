package http

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	authDomain "github.com/allisson/go-api-starter/internal/auth/domain"
	authUseCase "github.com/allisson/go-api-starter/internal/auth/usecase"
	"github.com/allisson/go-api-starter/internal/httputil"
	userDomain "github.com/allisson/go-api-starter/internal/user/domain"
)

// AuthenticationMiddleware resolves the bearer token in the Authorization
// header to a user and stores it in the request context (see GetUser).
//
// Authorization header format: "Bearer <token>" (case-insensitive "bearer").
// A missing, malformed or empty header is rejected with 401 before any token
// decoding or store lookup. Every resolution failure is a 401 carrying
// "WWW-Authenticate: Bearer".
func AuthenticationMiddleware(authUseCase authUseCase.AuthUseCase, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			logger.Debug("authentication failed: missing or malformed authorization header")
			httputil.HandleErrorGin(c, authDomain.ErrMissingToken, logger)
			c.Abort()
			return
		}

		user, err := authUseCase.ResolveCurrent(c.Request.Context(), token)
		if err != nil {
			logger.Debug("authentication failed", slog.Any("error", err))
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		c.Request = c.Request.WithContext(WithUser(c.Request.Context(), user))
		c.Next()
	}
}

// bearerToken extracts the token from an Authorization header value.
func bearerToken(header string) (string, bool) {
	const bearerPrefix = "bearer "
	if len(header) < len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(bearerPrefix):])
	return token, token != ""
}

// RequireActiveMiddleware rejects inactive users with 403.
// It must run after AuthenticationMiddleware.
func RequireActiveMiddleware(authUseCase authUseCase.AuthUseCase, logger *slog.Logger) gin.HandlerFunc {
	return requireMiddleware(authUseCase.RequireActive, logger)
}

// RequireAdminMiddleware rejects users without the admin flag with 403.
// It must run after AuthenticationMiddleware and RequireActiveMiddleware.
func RequireAdminMiddleware(authUseCase authUseCase.AuthUseCase, logger *slog.Logger) gin.HandlerFunc {
	return requireMiddleware(authUseCase.RequireAdmin, logger)
}

func requireMiddleware(
	check func(*userDomain.User) (*userDomain.User, error),
	logger *slog.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, _ := GetUser(c.Request.Context())
		if _, err := check(user); err != nil {
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}
		c.Next()
	}
}
