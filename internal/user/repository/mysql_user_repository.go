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

// MySQLUserRepository handles user persistence for MySQL. Ids are stored as BINARY(16).
type MySQLUserRepository struct {
	db *sql.DB
}

// NewMySQLUserRepository creates a new MySQLUserRepository.
func NewMySQLUserRepository(db *sql.DB) *MySQLUserRepository {
	return &MySQLUserRepository{db: db}
}

// Create inserts user and sets its timestamps.
func (r *MySQLUserRepository) Create(ctx context.Context, user *domain.User) error {
	querier := database.GetTx(ctx, r.db)

	// Convert UUID to bytes for MySQL BINARY(16)
	uuidBytes, err := user.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	ts := now()
	query := `INSERT INTO users (` + userColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(ctx, query,
		uuidBytes, user.Username, user.Email, user.PasswordHash, user.IsActive, user.IsAdmin, ts, ts,
	)
	if err != nil {
		if isMySQLUniqueViolation(err) {
			return uniqueViolation(err.Error())
		}
		return apperrors.Wrap(err, "failed to create user")
	}

	user.CreatedAt = ts
	user.UpdatedAt = ts
	return nil
}

// Update overwrites every mutable column of user and refreshes UpdatedAt.
func (r *MySQLUserRepository) Update(ctx context.Context, user *domain.User) error {
	querier := database.GetTx(ctx, r.db)

	uuidBytes, err := user.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	ts := now()
	query := `UPDATE users
			  SET username = ?, email = ?, password_hash = ?, is_active = ?, is_admin = ?, updated_at = ?
			  WHERE id = ?`

	result, err := querier.ExecContext(ctx, query,
		user.Username, user.Email, user.PasswordHash, user.IsActive, user.IsAdmin, ts, uuidBytes,
	)
	if err != nil {
		if isMySQLUniqueViolation(err) {
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
func (r *MySQLUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	uuidBytes, err := id.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	result, err := querier.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, uuidBytes)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete user")
	}
	return requireAffected(result)
}

// GetByID retrieves a user by ID.
func (r *MySQLUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	uuidBytes, err := id.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal UUID")
	}
	return r.getOne(ctx, "id = ?", "failed to get user by id", uuidBytes)
}

// GetByUsername retrieves a user by exact username.
func (r *MySQLUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.getOne(ctx, "username = ?", "failed to get user by username", username)
}

// GetByEmail retrieves a user by exact email.
func (r *MySQLUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getOne(ctx, "email = ?", "failed to get user by email", email)
}

// GetByUsernameOrEmail retrieves the user whose username or email equals value.
// A username match wins over an email match.
func (r *MySQLUserRepository) GetByUsernameOrEmail(ctx context.Context, value string) (*domain.User, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + userColumns + ` FROM users
			  WHERE username = ? OR email = ?
			  ORDER BY CASE WHEN username = ? THEN 0 ELSE 1 END
			  LIMIT 1`

	user, err := scanMySQLUser(querier.QueryRowContext(ctx, query, value, value, value))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get user by username or email")
	}
	return user, nil
}

// List returns users ordered by id (creation order for UUIDv7 ids).
func (r *MySQLUserRepository) List(ctx context.Context, offset, limit int) ([]*domain.User, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + userColumns + ` FROM users ORDER BY id LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list users")
	}
	return collectUsers(rows, scanMySQLUser)
}

func (r *MySQLUserRepository) getOne(ctx context.Context, where, failure string, arg any) (*domain.User, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + userColumns + ` FROM users WHERE ` + where

	user, err := scanMySQLUser(querier.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, failure)
	}
	return user, nil
}

func scanMySQLUser(row rowScanner) (*domain.User, error) {
	var user domain.User
	var idBytes []byte
	err := row.Scan(
		&idBytes,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.IsActive,
		&user.IsAdmin,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	// Convert bytes back to UUID
	if err := user.ID.UnmarshalBinary(idBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal UUID")
	}
	return &user, nil
}

// isMySQLUniqueViolation checks if the error is a MySQL unique constraint violation.
func isMySQLUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	// MySQL: "Error 1062 (23000): Duplicate entry 'alice' for key 'users.username'"
	return strings.Contains(errMsg, "duplicate entry") || strings.Contains(errMsg, "1062")
}
