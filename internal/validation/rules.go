// Package validation holds the jellydator rules shared by DTOs, use cases and
// configuration.
package validation

import (
	"encoding/base64"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/go-api-starter/internal/errors"
)

var (
	emailRegex    = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_.\-]+$`)
)

// WrapValidationError turns a jellydator error into ErrInvalidInput so the
// HTTP layer answers 422.
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// CharClass is a family of runes a password may be required to contain.
type CharClass int

const (
	Letter CharClass = iota
	Upper
	Lower
	Digit
	Symbol
)

var charClasses = map[CharClass]struct {
	match   func(rune) bool
	code    string
	message string
}{
	Letter: {unicode.IsLetter, "validation_password_letter", "password must contain at least one letter"},
	Upper:  {unicode.IsUpper, "validation_password_uppercase", "password must contain at least one uppercase letter"},
	Lower:  {unicode.IsLower, "validation_password_lowercase", "password must contain at least one lowercase letter"},
	Digit:  {unicode.IsDigit, "validation_password_number", "password must contain at least one number"},
	Symbol: {
		func(r rune) bool { return unicode.IsPunct(r) || unicode.IsSymbol(r) },
		"validation_password_special",
		"password must contain at least one special character",
	},
}

// PasswordPolicy requires a minimum length and at least one rune of every
// listed class. Nil pointers pass so partial updates can reuse the rule.
type PasswordPolicy struct {
	MinLength int
	Require   []CharClass
}

// Validate implements validation.Rule.
func (p PasswordPolicy) Validate(value interface{}) error {
	value, isNil := validation.Indirect(value)
	if isNil {
		return nil
	}
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_password_type", "password must be a string")
	}
	if len(s) < p.MinLength {
		return validation.NewError(
			"validation_password_min_length",
			"password must be at least "+strconv.Itoa(p.MinLength)+" characters",
		)
	}
	for _, class := range p.Require {
		c, ok := charClasses[class]
		if !ok {
			continue
		}
		if strings.IndexFunc(s, c.match) < 0 {
			return validation.NewError(c.code, c.message)
		}
	}
	return nil
}

// Email is a pragmatic address check, not a full RFC 5322 parser.
var Email = validation.NewStringRuleWithError(
	emailRegex.MatchString,
	validation.NewError("validation_email_format", "must be a valid email address"),
)

// Username allows letters, digits, underscores, dots and hyphens. An "@" is
// rejected so a username can never be mistaken for an email at login.
var Username = validation.NewStringRuleWithError(
	usernameRegex.MatchString,
	validation.NewError(
		"validation_username_format",
		"may only contain letters, digits, underscores, dots and hyphens",
	),
)

// NotBlank rejects strings made only of whitespace.
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool { return strings.TrimSpace(s) != "" },
	validation.NewError("validation_not_blank", "must not be blank"),
)

// Base64 accepts standard padded base64, the encoding of SECRET_KEY_CIPHERTEXT.
// Empty strings are left to Required.
var Base64 = validation.NewStringRuleWithError(
	func(s string) bool {
		_, err := base64.StdEncoding.DecodeString(s)
		return err == nil
	},
	validation.NewError("validation_base64", "must be valid base64-encoded data"),
)
