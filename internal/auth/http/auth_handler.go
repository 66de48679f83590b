package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	authDomain "github.com/allisson/go-api-starter/internal/auth/domain"
	"github.com/allisson/go-api-starter/internal/auth/http/dto"
	authUseCase "github.com/allisson/go-api-starter/internal/auth/usecase"
	"github.com/allisson/go-api-starter/internal/httputil"
	userDto "github.com/allisson/go-api-starter/internal/user/http/dto"
	userUseCase "github.com/allisson/go-api-starter/internal/user/usecase"
)

// AuthHandler handles login, self-registration and the current-user endpoint.
type AuthHandler struct {
	authUseCase authUseCase.AuthUseCase
	userUseCase userUseCase.UserUseCase
	logger      *slog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(
	authUseCase authUseCase.AuthUseCase,
	userUseCase userUseCase.UserUseCase,
	logger *slog.Logger,
) *AuthHandler {
	return &AuthHandler{
		authUseCase: authUseCase,
		userUseCase: userUseCase,
		logger:      logger,
	}
}

// LoginHandler exchanges credentials for an access token.
// POST /api/v1/auth/login
//
// Accepts application/json and application/x-www-form-urlencoded bodies.
// Unknown identities and wrong passwords both yield 400 invalid_credentials.
func (h *AuthHandler) LoginHandler(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	req.Normalize()
	if err := req.Validate(); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	token, err := h.authUseCase.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapAccessTokenToResponse(token))
}

// RegisterHandler creates an active, non-admin user.
// POST /api/v1/auth/register
func (h *AuthHandler) RegisterHandler(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	user, err := h.userUseCase.Register(c.Request.Context(), req.ToCreateUserInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, userDto.MapUserToResponse(user))
}

// MeHandler returns the authenticated user.
// GET /api/v1/auth/me
func (h *AuthHandler) MeHandler(c *gin.Context) {
	user, ok := GetUser(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, authDomain.ErrMissingToken, h.logger)
		return
	}

	c.JSON(http.StatusOK, userDto.MapUserToResponse(user))
}
