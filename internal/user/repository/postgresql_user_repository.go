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

// PostgreSQLUserRepository handles user persistence for PostgreSQL.
type PostgreSQLUserRepository struct {
	db *sql.DB
}

// NewPostgreSQLUserRepository creates a new PostgreSQLUserRepository.
func NewPostgreSQLUserRepository(db *sql.DB) *PostgreSQLUserRepository {
	return &PostgreSQLUserRepository{db: db}
}

// Create inserts user and sets its timestamps.
func (r *PostgreSQLUserRepository) Create(ctx context.Context, user *domain.User) error {
	querier := database.GetTx(ctx, r.db)

	ts := now()
	query := `INSERT INTO users (` + userColumns + `)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := querier.ExecContext(ctx, query,
		user.ID, user.Username, user.Email, user.PasswordHash, user.IsActive, user.IsAdmin, ts, ts,
	)
	if err != nil {
		if isPostgreSQLUniqueViolation(err) {
			return uniqueViolation(err.Error())
		}
		return apperrors.Wrap(err, "failed to create user")
	}

	user.CreatedAt = ts
	user.UpdatedAt = ts
	return nil
}

// Update overwrites every mutable column of user and refreshes UpdatedAt.
func (r *PostgreSQLUserRepository) Update(ctx context.Context, user *domain.User) error {
	querier := database.GetTx(ctx, r.db)

	ts := now()
	query := `UPDATE users
			  SET username = $1, email = $2, password_hash = $3, is_active = $4, is_admin = $5, updated_at = $6
			  WHERE id = $7`

	result, err := querier.ExecContext(ctx, query,
		user.Username, user.Email, user.PasswordHash, user.IsActive, user.IsAdmin, ts, user.ID,
	)
	if err != nil {
		if isPostgreSQLUniqueViolation(err) {
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
func (r *PostgreSQLUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete user")
	}
	return requireAffected(result)
}

// GetByID retrieves a user by ID.
func (r *PostgreSQLUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return r.getOne(ctx, "id = $1", "failed to get user by id", id)
}

// GetByUsername retrieves a user by exact username.
func (r *PostgreSQLUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.getOne(ctx, "username = $1", "failed to get user by username", username)
}

// GetByEmail retrieves a user by exact email.
func (r *PostgreSQLUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getOne(ctx, "email = $1", "failed to get user by email", email)
}

// GetByUsernameOrEmail retrieves the user whose username or email equals value.
// A username match wins over an email match.
func (r *PostgreSQLUserRepository) GetByUsernameOrEmail(ctx context.Context, value string) (*domain.User, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + userColumns + ` FROM users
			  WHERE username = $1 OR email = $1
			  ORDER BY CASE WHEN username = $1 THEN 0 ELSE 1 END
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
func (r *PostgreSQLUserRepository) List(ctx context.Context, offset, limit int) ([]*domain.User, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + userColumns + ` FROM users ORDER BY id LIMIT $1 OFFSET $2`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list users")
	}
	return collectUsers(rows, scanUser)
}

func (r *PostgreSQLUserRepository) getOne(
	ctx context.Context,
	where, failure string,
	arg any,
) (*domain.User, error) {
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

// isPostgreSQLUniqueViolation checks if the error is a PostgreSQL unique constraint violation.
func isPostgreSQLUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	// PostgreSQL: pq: duplicate key value violates unique constraint "users_email_key" (SQLSTATE 23505)
	return strings.Contains(errMsg, "duplicate key") || strings.Contains(errMsg, "23505")
}
