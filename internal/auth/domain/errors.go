package domain

import (
	"github.com/allisson/go-api-starter/internal/errors"
)

// Login errors. Both wrap errors.ErrAuthentication.
var (
	// ErrInvalidCredentials is returned for an unknown identity and for a wrong
	// password alike, so callers cannot tell which half was wrong.
	ErrInvalidCredentials = errors.Wrap(errors.ErrAuthentication, "invalid credentials")

	// ErrAccountDisabled is returned when the credentials are correct but the
	// account is inactive.
	ErrAccountDisabled = errors.Wrap(errors.ErrAuthentication, "account disabled")
)

// Bearer token errors. All wrap errors.ErrUnauthorized.
var (
	ErrMissingToken          = errors.Wrap(errors.ErrUnauthorized, "missing bearer token")
	ErrTokenMalformed        = errors.Wrap(errors.ErrUnauthorized, "malformed token")
	ErrTokenInvalidSignature = errors.Wrap(errors.ErrUnauthorized, "invalid token signature")
	ErrTokenExpired          = errors.Wrap(errors.ErrUnauthorized, "token expired")

	// ErrSubjectNotFound is returned when a valid token names an identity that
	// no longer exists.
	ErrSubjectNotFound = errors.Wrap(errors.ErrUnauthorized, "token subject not found")
)

// Guard errors. Both wrap errors.ErrForbidden.
var (
	ErrInactiveUser  = errors.Wrap(errors.ErrForbidden, "inactive user")
	ErrAdminRequired = errors.Wrap(errors.ErrForbidden, "admin privileges required")
)
