package usecase

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/allisson/go-api-starter/internal/database"
	apperrors "github.com/allisson/go-api-starter/internal/errors"
	"github.com/allisson/go-api-starter/internal/testutil"
	"github.com/allisson/go-api-starter/internal/user/domain"
	"github.com/allisson/go-api-starter/internal/user/repository"
	"github.com/allisson/go-api-starter/internal/user/usecase/mocks"
)

// prefixHasher is a fast, reversible stand-in for the argon2 hasher.
type prefixHasher struct{}

func (prefixHasher) Hash(plaintext string) (string, error) { return "hashed:" + plaintext, nil }

func (prefixHasher) Verify(plaintext, digest string) bool { return digest == "hashed:"+plaintext }

func createTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }

func setupUseCase(t *testing.T) (UserUseCase, *repository.SQLiteUserRepository) {
	t.Helper()
	db := testutil.SetupSQLiteDB(t)
	t.Cleanup(func() { testutil.TeardownDB(t, db) })

	repo := repository.NewSQLiteUserRepository(db)
	uc := NewUserUseCase(database.NewTxManager(db), repo, prefixHasher{}, createTestLogger())
	return uc, repo
}

func register(t *testing.T, uc UserUseCase, username string, isAdmin bool) *domain.User {
	t.Helper()
	user, err := uc.Register(context.Background(), domain.CreateUserInput{
		Username: username,
		Email:    username + "@example.com",
		Password: "s3cret!",
		IsActive: true,
		IsAdmin:  isAdmin,
	})
	require.NoError(t, err)
	return user
}

func TestUserUseCase_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		uc, repo := setupUseCase(t)

		user, err := uc.Register(ctx, domain.CreateUserInput{
			Username: "  alice ",
			Email:    "Alice@Example.com",
			Password: "s3cret!",
			IsActive: true,
		})
		require.NoError(t, err)
		assert.Equal(t, "alice", user.Username)
		assert.Equal(t, "alice@example.com", user.Email)
		assert.Equal(t, "hashed:s3cret!", user.PasswordHash)
		assert.True(t, user.IsActive)
		assert.False(t, user.IsAdmin)
		assert.Equal(t, uuid.Version(7), user.ID.Version())

		stored, err := repo.GetByUsername(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, user.ID, stored.ID)
	})

	t.Run("Error_UsernameTaken", func(t *testing.T) {
		uc, _ := setupUseCase(t)
		register(t, uc, "alice", false)

		_, err := uc.Register(ctx, domain.CreateUserInput{
			Username: "alice", Email: "other@example.com", Password: "s3cret!",
		})
		assert.ErrorIs(t, err, domain.ErrUsernameTaken)
		assert.True(t, apperrors.Is(err, apperrors.ErrConflict))
	})

	t.Run("Error_EmailTaken", func(t *testing.T) {
		uc, _ := setupUseCase(t)
		register(t, uc, "alice", false)

		_, err := uc.Register(ctx, domain.CreateUserInput{
			Username: "alice2", Email: "ALICE@example.com", Password: "s3cret!",
		})
		assert.ErrorIs(t, err, domain.ErrEmailTaken)
	})

	t.Run("Error_Validation", func(t *testing.T) {
		uc, _ := setupUseCase(t)

		tests := []struct {
			name  string
			input domain.CreateUserInput
			msg   string
		}{
			{
				name:  "missing username",
				input: domain.CreateUserInput{Email: "a@example.com", Password: "s3cret!"},
				msg:   "username",
			},
			{
				name:  "username with at sign",
				input: domain.CreateUserInput{Username: "a@b", Email: "a@example.com", Password: "s3cret!"},
				msg:   "username",
			},
			{
				name:  "invalid email",
				input: domain.CreateUserInput{Username: "alice", Email: "not-an-email", Password: "s3cret!"},
				msg:   "email",
			},
			{
				name:  "password without number",
				input: domain.CreateUserInput{Username: "alice", Email: "a@example.com", Password: "secret!"},
				msg:   "number",
			},
			{
				name:  "short password",
				input: domain.CreateUserInput{Username: "alice", Email: "a@example.com", Password: "s3c"},
				msg:   "password",
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := uc.Register(ctx, tt.input)
				require.Error(t, err)
				assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
				assert.Contains(t, err.Error(), tt.msg)
			})
		}
	})

	t.Run("Error_TransactionFailure", func(t *testing.T) {
		txManager := &mocks.MockTxManager{}
		txManager.On("WithTx", mock.Anything, mock.Anything).Return(assert.AnError).Once()

		uc := NewUserUseCase(txManager, nil, prefixHasher{}, createTestLogger())
		_, err := uc.Register(ctx, domain.CreateUserInput{
			Username: "alice", Email: "alice@example.com", Password: "s3cret!",
		})
		assert.ErrorIs(t, err, assert.AnError)
		txManager.AssertExpectations(t)
	})
}

func TestUserUseCase_Get(t *testing.T) {
	ctx := context.Background()
	uc, _ := setupUseCase(t)

	admin := register(t, uc, "admin", true)
	alice := register(t, uc, "alice", false)
	bob := register(t, uc, "bob", false)

	got, err := uc.Get(ctx, alice, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, got.ID)

	got, err = uc.Get(ctx, admin, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, bob.ID, got.ID)

	_, err = uc.Get(ctx, alice, bob.ID)
	assert.ErrorIs(t, err, domain.ErrUserAccessForbidden)

	_, err = uc.Get(ctx, admin, uuid.Must(uuid.NewV7()))
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserUseCase_List(t *testing.T) {
	ctx := context.Background()
	uc, _ := setupUseCase(t)

	register(t, uc, "alice", false)
	register(t, uc, "bob", false)
	register(t, uc, "carol", false)

	users, err := uc.List(ctx, 1, 50)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "bob", users[0].Username)
	assert.Equal(t, "carol", users[1].Username)
}

func TestUserUseCase_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("Self_ChangesEmailAndPassword", func(t *testing.T) {
		uc, repo := setupUseCase(t)
		alice := register(t, uc, "alice", false)

		updated, err := uc.Update(ctx, alice, alice.ID, domain.UpdateUserInput{
			Email:    strPtr("alice@example.org"),
			Password: strPtr("n3w-pass"),
		})
		require.NoError(t, err)
		assert.Equal(t, "alice@example.org", updated.Email)
		assert.Equal(t, "alice", updated.Username)

		stored, err := repo.GetByID(ctx, alice.ID)
		require.NoError(t, err)
		assert.Equal(t, "hashed:n3w-pass", stored.PasswordHash)
	})

	t.Run("Self_CannotChangeFlags", func(t *testing.T) {
		uc, _ := setupUseCase(t)
		alice := register(t, uc, "alice", false)

		_, err := uc.Update(ctx, alice, alice.ID, domain.UpdateUserInput{IsAdmin: boolPtr(true)})
		assert.ErrorIs(t, err, domain.ErrFlagChangeForbidden)
		assert.True(t, apperrors.Is(err, apperrors.ErrForbidden))
	})

	t.Run("Other_Forbidden", func(t *testing.T) {
		uc, _ := setupUseCase(t)
		alice := register(t, uc, "alice", false)
		bob := register(t, uc, "bob", false)

		_, err := uc.Update(ctx, alice, bob.ID, domain.UpdateUserInput{Email: strPtr("x@example.com")})
		assert.ErrorIs(t, err, domain.ErrUserAccessForbidden)
	})

	t.Run("Admin_ChangesFlags", func(t *testing.T) {
		uc, _ := setupUseCase(t)
		admin := register(t, uc, "admin", true)
		bob := register(t, uc, "bob", false)

		updated, err := uc.Update(ctx, admin, bob.ID, domain.UpdateUserInput{
			IsActive: boolPtr(false),
			IsAdmin:  boolPtr(true),
		})
		require.NoError(t, err)
		assert.False(t, updated.IsActive)
		assert.True(t, updated.IsAdmin)
	})

	t.Run("UsernameTaken", func(t *testing.T) {
		uc, _ := setupUseCase(t)
		alice := register(t, uc, "alice", false)
		register(t, uc, "bob", false)

		_, err := uc.Update(ctx, alice, alice.ID, domain.UpdateUserInput{Username: strPtr("bob")})
		assert.ErrorIs(t, err, domain.ErrUsernameTaken)
	})

	t.Run("UnchangedUsernameIsNotAConflict", func(t *testing.T) {
		uc, _ := setupUseCase(t)
		alice := register(t, uc, "alice", false)

		_, err := uc.Update(ctx, alice, alice.ID, domain.UpdateUserInput{
			Username: strPtr("alice"),
			Email:    strPtr("alice@example.com"),
		})
		assert.NoError(t, err)
	})

	t.Run("Validation", func(t *testing.T) {
		uc, _ := setupUseCase(t)
		alice := register(t, uc, "alice", false)

		_, err := uc.Update(ctx, alice, alice.ID, domain.UpdateUserInput{Email: strPtr("nope")})
		assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))

		_, err = uc.Update(ctx, alice, alice.ID, domain.UpdateUserInput{Password: strPtr("")})
		assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
	})

	t.Run("NotFound", func(t *testing.T) {
		uc, _ := setupUseCase(t)
		admin := register(t, uc, "admin", true)

		_, err := uc.Update(ctx, admin, uuid.Must(uuid.NewV7()), domain.UpdateUserInput{})
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})
}

func TestUserUseCase_Delete(t *testing.T) {
	ctx := context.Background()
	uc, repo := setupUseCase(t)

	admin := register(t, uc, "admin", true)
	alice := register(t, uc, "alice", false)
	bob := register(t, uc, "bob", false)

	assert.ErrorIs(t, uc.Delete(ctx, alice, bob.ID), domain.ErrUserAccessForbidden)

	err := uc.Delete(ctx, admin, admin.ID)
	assert.ErrorIs(t, err, domain.ErrCannotDeleteSelf)
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))

	require.NoError(t, uc.Delete(ctx, admin, bob.ID))
	_, err = repo.GetByID(ctx, bob.ID)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	assert.ErrorIs(t, uc.Delete(ctx, admin, bob.ID), domain.ErrUserNotFound)
}

func TestUserUseCase_SetStatus(t *testing.T) {
	ctx := context.Background()
	uc, _ := setupUseCase(t)
	register(t, uc, "alice", false)

	user, err := uc.SetStatus(ctx, "alice", boolPtr(false), nil)
	require.NoError(t, err)
	assert.False(t, user.IsActive)
	assert.False(t, user.IsAdmin)

	user, err = uc.SetStatus(ctx, "alice", nil, boolPtr(true))
	require.NoError(t, err)
	assert.False(t, user.IsActive)
	assert.True(t, user.IsAdmin)

	_, err = uc.SetStatus(ctx, "ghost", boolPtr(true), nil)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
