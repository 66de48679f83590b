// Package repository provides data persistence implementations for user entities.
// There is one implementation per supported driver; all of them report a miss
// as domain.ErrUserNotFound and a uniqueness violation as one of the
// domain.ErrUserAlreadyExists errors.
package repository

import (
	"strings"
	"time"

	"github.com/allisson/go-api-starter/internal/user/domain"
)

const userColumns = "id, username, email, password_hash, is_active, is_admin, created_at, updated_at"

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// now returns the current time at the precision every supported database keeps.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// uniqueViolation maps a unique constraint error message to the matching
// domain error. All three drivers name the offending column or index.
func uniqueViolation(errMsg string) error {
	switch {
	case strings.Contains(errMsg, "username"):
		return domain.ErrUsernameTaken
	case strings.Contains(errMsg, "email"):
		return domain.ErrEmailTaken
	default:
		return domain.ErrUserAlreadyExists
	}
}
