// Package http provides the HTTP handlers for user management.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authDomain "github.com/allisson/go-api-starter/internal/auth/domain"
	authHttp "github.com/allisson/go-api-starter/internal/auth/http"
	apperrors "github.com/allisson/go-api-starter/internal/errors"
	"github.com/allisson/go-api-starter/internal/httputil"
	"github.com/allisson/go-api-starter/internal/user/domain"
	"github.com/allisson/go-api-starter/internal/user/http/dto"
	"github.com/allisson/go-api-starter/internal/user/usecase"
)

// UserHandler handles user management requests. Every route it serves runs
// behind the authentication and active-user guards.
type UserHandler struct {
	userUseCase usecase.UserUseCase
	logger      *slog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userUseCase usecase.UserUseCase, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		userUseCase: userUseCase,
		logger:      logger,
	}
}

// ListHandler returns a page of users.
// GET /api/v1/users?offset=0&limit=50 (admin only)
func (h *UserHandler) ListHandler(c *gin.Context) {
	page, err := httputil.ParsePage(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	users, err := h.userUseCase.List(c.Request.Context(), page.Offset, page.Limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapUsersToListResponse(users))
}

// GetHandler returns one user.
// GET /api/v1/users/:id (self or admin)
func (h *UserHandler) GetHandler(c *gin.Context) {
	actor, id, ok := h.actorAndID(c)
	if !ok {
		return
	}

	user, err := h.userUseCase.Get(c.Request.Context(), actor, id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapUserToResponse(user))
}

// UpdateHandler applies a partial update.
// PUT /api/v1/users/:id (self or admin; account flags admin only)
func (h *UserHandler) UpdateHandler(c *gin.Context) {
	actor, id, ok := h.actorAndID(c)
	if !ok {
		return
	}

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	user, err := h.userUseCase.Update(c.Request.Context(), actor, id, req.ToUpdateUserInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapUserToResponse(user))
}

// DeleteHandler removes a user.
// DELETE /api/v1/users/:id (admin only, not self)
func (h *UserHandler) DeleteHandler(c *gin.Context) {
	actor, id, ok := h.actorAndID(c)
	if !ok {
		return
	}

	if err := h.userUseCase.Delete(c.Request.Context(), actor, id); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// actorAndID reads the authenticated user and the :id path parameter. It
// writes the error response itself and returns ok=false on failure.
func (h *UserHandler) actorAndID(c *gin.Context) (*domain.User, uuid.UUID, bool) {
	actor, ok := authHttp.GetUser(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, authDomain.ErrMissingToken, h.logger)
		return nil, uuid.Nil, false
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleBadRequestGin(c, apperrors.New("invalid user id format"), h.logger)
		return nil, uuid.Nil, false
	}

	return actor, id, true
}
