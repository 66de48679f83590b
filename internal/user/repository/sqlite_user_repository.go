package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/allisson/go-api-starter/internal/database"
	apperrors "github.com/allisson/go-api-starter/internal/errors"
	"github.com/allisson/go-api-starter/internal/user/domain"
)

// SQLiteUserRepository handles user persistence for SQLite. Ids are stored as text.
type SQLiteUserRepository struct {
	db *sql.DB
}

// NewSQLiteUserRepository creates a new SQLiteUserRepository.
func NewSQLiteUserRepository(db *sql.DB) *SQLiteUserRepository {
	return &SQLiteUserRepository{db: db}
}

// Create inserts user and sets its timestamps.
func (r *SQLiteUserRepository) Create(ctx context.Context, user *domain.User) error {
	querier := database.GetTx(ctx, r.db)

	ts := now()
	query := `INSERT INTO users (` + userColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := querier.ExecContext(ctx, query,
		user.ID.String(), user.Username, user.Email, user.PasswordHash, user.IsActive, user.IsAdmin, ts, ts,
	)
	if err != nil {
		if isSQLiteUniqueViolation(err) {
			return uniqueViolation(err.Error())
		}
		return apperrors.Wrap(err, "failed to create user")
	}

	user.CreatedAt = ts
	user.UpdatedAt = ts
	return nil
}

// Update overwrites every mutable column of user and refreshes UpdatedAt.
func (r *SQLiteUserRepository) Update(ctx context.Context, user *domain.User) error {
	querier := database.GetTx(ctx, r.db)

	ts := now()
	query := `UPDATE users
			  SET username = ?, email = ?, password_hash = ?, is_active = ?, is_admin = ?, updated_at = ?
			  WHERE id = ?`

	result, err := querier.ExecContext(ctx, query,
		user.Username, user.Email, user.PasswordHash, user.IsActive, user.IsAdmin, ts, user.ID.String(),
	)
	if err != nil {
		if isSQLiteUniqueViolation(err) {
			return uniqueViolation(err.Error())
		}
		return apperrors.Wrap(err, "failed to update user")
	}

	if err := requireAffected(result); err != nil {
		return err
	}

	user.UpdatedAt = ts
	return nil
}

// Delete removes the user with id.
func (r *SQLiteUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id.String())
	if err != nil {
		return apperrors.Wrap(err, "failed to delete user")
	}
	return requireAffected(result)
}

// GetByID retrieves a user by ID.
func (r *SQLiteUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return r.getOne(ctx, "id = ?", "failed to get user by id", id.String())
}

// GetByUsername retrieves a user by exact username.
func (r *SQLiteUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.getOne(ctx, "username = ?", "failed to get user by username", username)
}

// GetByEmail retrieves a user by exact email.
func (r *SQLiteUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getOne(ctx, "email = ?", "failed to get user by email", email)
}

// GetByUsernameOrEmail retrieves the user whose username or email equals value.
// A username match wins over an email match.
func (r *SQLiteUserRepository) GetByUsernameOrEmail(ctx context.Context, value string) (*domain.User, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + userColumns + ` FROM users
			  WHERE username = ?1 OR email = ?1
			  ORDER BY CASE WHEN username = ?1 THEN 0 ELSE 1 END
			  LIMIT 1`

	user, err := scanUser(querier.QueryRowContext(ctx, query, value))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get user by username or email")
	}
	return user, nil
}

// List returns users ordered by id (creation order for UUIDv7 ids).
func (r *SQLiteUserRepository) List(ctx context.Context, offset, limit int) ([]*domain.User, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + userColumns + ` FROM users ORDER BY id LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list users")
	}
	return collectUsers(rows, scanUser)
}

func (r *SQLiteUserRepository) getOne(ctx context.Context, where, failure string, arg any) (*domain.User, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + userColumns + ` FROM users WHERE ` + where

	user, err := scanUser(querier.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, failure)
	}
	return user, nil
}

// isSQLiteUniqueViolation checks if the error is a SQLite unique constraint violation.
func isSQLiteUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	// SQLite: "constraint failed: UNIQUE constraint failed: users.username (2067)"
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}
