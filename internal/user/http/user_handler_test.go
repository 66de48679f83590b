package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	authHttp "github.com/allisson/go-api-starter/internal/auth/http"
	apperrors "github.com/allisson/go-api-starter/internal/errors"
	"github.com/allisson/go-api-starter/internal/httputil"
	"github.com/allisson/go-api-starter/internal/user/domain"
	"github.com/allisson/go-api-starter/internal/user/http/dto"
	"github.com/allisson/go-api-starter/internal/user/usecase/mocks"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func newTestUser(username string, isAdmin bool) *domain.User {
	now := time.Now().UTC()
	return &domain.User{
		ID:           uuid.Must(uuid.NewV7()),
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "digest",
		IsActive:     true,
		IsAdmin:      isAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func setupRouter(actor *domain.User, uc *mocks.MockUserUseCase) *gin.Engine {
	handler := NewUserHandler(uc, slog.New(slog.NewTextHandler(io.Discard, nil)))

	router := gin.New()
	router.Use(func(c *gin.Context) {
		if actor != nil {
			c.Request = c.Request.WithContext(authHttp.WithUser(c.Request.Context(), actor))
		}
		c.Next()
	})
	router.GET("/api/v1/users", handler.ListHandler)
	router.GET("/api/v1/users/:id", handler.GetHandler)
	router.PUT("/api/v1/users/:id", handler.UpdateHandler)
	router.DELETE("/api/v1/users/:id", handler.DeleteHandler)
	return router
}

func serve(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestUserHandler_List(t *testing.T) {
	admin := newTestUser("root", true)

	t.Run("default pagination", func(t *testing.T) {
		uc := &mocks.MockUserUseCase{}
		uc.On("List", mock.Anything, 0, httputil.DefaultLimit).
			Return([]*domain.User{admin, newTestUser("alice", false)}, nil).Once()

		w := serve(setupRouter(admin, uc), http.MethodGet, "/api/v1/users", "")

		assert.Equal(t, http.StatusOK, w.Code)
		var resp dto.ListUsersResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Len(t, resp.Data, 2)
		assert.NotContains(t, w.Body.String(), "digest")
		uc.AssertExpectations(t)
	})

	t.Run("skip alias and limit", func(t *testing.T) {
		uc := &mocks.MockUserUseCase{}
		uc.On("List", mock.Anything, 10, 5).Return([]*domain.User{}, nil).Once()

		w := serve(setupRouter(admin, uc), http.MethodGet, "/api/v1/users?skip=10&limit=5", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"data":[]}`, w.Body.String())
		uc.AssertExpectations(t)
	})

	t.Run("limit above maximum", func(t *testing.T) {
		uc := &mocks.MockUserUseCase{}

		w := serve(setupRouter(admin, uc), http.MethodGet, "/api/v1/users?limit=101", "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		uc.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestUserHandler_Get(t *testing.T) {
	alice := newTestUser("alice", false)

	t.Run("self", func(t *testing.T) {
		uc := &mocks.MockUserUseCase{}
		uc.On("Get", mock.Anything, alice, alice.ID).Return(alice, nil).Once()

		w := serve(setupRouter(alice, uc), http.MethodGet, "/api/v1/users/"+alice.ID.String(), "")

		assert.Equal(t, http.StatusOK, w.Code)
		var resp dto.UserResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, alice.ID, resp.ID)
		uc.AssertExpectations(t)
	})

	t.Run("other user forbidden", func(t *testing.T) {
		uc := &mocks.MockUserUseCase{}
		other := uuid.Must(uuid.NewV7())
		uc.On("Get", mock.Anything, alice, other).Return(nil, domain.ErrUserAccessForbidden).Once()

		w := serve(setupRouter(alice, uc), http.MethodGet, "/api/v1/users/"+other.String(), "")

		assert.Equal(t, http.StatusForbidden, w.Code)
		uc.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		uc := &mocks.MockUserUseCase{}
		admin := newTestUser("root", true)
		missing := uuid.Must(uuid.NewV7())
		uc.On("Get", mock.Anything, admin, missing).Return(nil, domain.ErrUserNotFound).Once()

		w := serve(setupRouter(admin, uc), http.MethodGet, "/api/v1/users/"+missing.String(), "")

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "User not found")
	})

	t.Run("invalid id", func(t *testing.T) {
		uc := &mocks.MockUserUseCase{}

		w := serve(setupRouter(alice, uc), http.MethodGet, "/api/v1/users/not-a-uuid", "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		uc.AssertNotCalled(t, "Get", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("no authenticated user", func(t *testing.T) {
		uc := &mocks.MockUserUseCase{}

		w := serve(setupRouter(nil, uc), http.MethodGet, "/api/v1/users/"+alice.ID.String(), "")

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestUserHandler_Update(t *testing.T) {
	alice := newTestUser("alice", false)

	t.Run("partial update", func(t *testing.T) {
		uc := &mocks.MockUserUseCase{}
		updated := *alice
		updated.Email = "alice2@example.com"
		uc.On("Update", mock.Anything, alice, alice.ID, mock.MatchedBy(func(in domain.UpdateUserInput) bool {
			return in.Email != nil && *in.Email == "alice2@example.com" && in.Username == nil && !in.ChangesFlags()
		})).Return(&updated, nil).Once()

		w := serve(setupRouter(alice, uc), http.MethodPut, "/api/v1/users/"+alice.ID.String(),
			`{"email":"alice2@example.com"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "alice2@example.com")
		uc.AssertExpectations(t)
	})

	t.Run("flag change by non-admin", func(t *testing.T) {
		uc := &mocks.MockUserUseCase{}
		uc.On("Update", mock.Anything, alice, alice.ID, mock.Anything).
			Return(nil, domain.ErrFlagChangeForbidden).Once()

		w := serve(setupRouter(alice, uc), http.MethodPut, "/api/v1/users/"+alice.ID.String(),
			`{"is_admin":true}`)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("email taken", func(t *testing.T) {
		uc := &mocks.MockUserUseCase{}
		uc.On("Update", mock.Anything, alice, alice.ID, mock.Anything).
			Return(nil, domain.ErrEmailTaken).Once()

		w := serve(setupRouter(alice, uc), http.MethodPut, "/api/v1/users/"+alice.ID.String(),
			`{"email":"bob@example.com"}`)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "Email already registered")
	})

	t.Run("validation error", func(t *testing.T) {
		uc := &mocks.MockUserUseCase{}
		uc.On("Update", mock.Anything, alice, alice.ID, mock.Anything).
			Return(nil, apperrors.Wrap(apperrors.ErrInvalidInput, "email: must be a valid email address")).Once()

		w := serve(setupRouter(alice, uc), http.MethodPut, "/api/v1/users/"+alice.ID.String(),
			`{"email":"nope"}`)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		uc := &mocks.MockUserUseCase{}

		w := serve(setupRouter(alice, uc), http.MethodPut, "/api/v1/users/"+alice.ID.String(), `{"email":`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		uc.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestUserHandler_Delete(t *testing.T) {
	admin := newTestUser("root", true)

	t.Run("success", func(t *testing.T) {
		uc := &mocks.MockUserUseCase{}
		target := uuid.Must(uuid.NewV7())
		uc.On("Delete", mock.Anything, admin, target).Return(nil).Once()

		w := serve(setupRouter(admin, uc), http.MethodDelete, "/api/v1/users/"+target.String(), "")

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.String())
		uc.AssertExpectations(t)
	})

	t.Run("self", func(t *testing.T) {
		uc := &mocks.MockUserUseCase{}
		uc.On("Delete", mock.Anything, admin, admin.ID).Return(domain.ErrCannotDeleteSelf).Once()

		w := serve(setupRouter(admin, uc), http.MethodDelete, "/api/v1/users/"+admin.ID.String(), "")

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}
