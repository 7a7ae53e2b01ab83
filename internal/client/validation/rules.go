package validation

import (
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	// MinPasswordLength counts Unicode code points, not bytes or UTF-16
	// units: four emoji are four characters, not eight.
	MinPasswordLength = 8

	// SpecialCharacters is the set a registration password must draw from.
	SpecialCharacters = `!@#$%^&*(),.?":{}|<>`
)

var (
	ErrEmailRequired     = errors.New("email is required")
	ErrEmailInvalid      = errors.New("enter a valid email address")
	ErrPasswordRequired  = errors.New("password is required")
	ErrPasswordTooShort  = errors.New("password must be at least 8 characters")
	ErrPasswordNoUpper   = errors.New("password must contain an uppercase letter")
	ErrPasswordNoLower   = errors.New("password must contain a lowercase letter")
	ErrPasswordNoDigit   = errors.New("password must contain a digit")
	ErrPasswordNoSpecial = errors.New("password must contain a special character")
	ErrConfirmRequired   = errors.New("password confirmation is required")
	ErrPasswordMismatch  = errors.New("passwords do not match")
)

// emailPattern is "non-space @ non-space". Space means ASCII whitespace, \v,
// any Unicode space separator and U+FEFF; RE2's \S covers only ASCII.
var emailPattern = regexp.MustCompile(`^[^\s\v\p{Z}\x{FEFF}]+@[^\s\v\p{Z}\x{FEFF}]+$`)

// Email checks presence and the loose "x@y" shape.
func Email(email string) error {
	if email == "" {
		return ErrEmailRequired
	}
	if !emailPattern.MatchString(email) {
		return ErrEmailInvalid
	}
	return nil
}

// LoginPassword checks presence and minimum length only.
func LoginPassword(password string) error {
	if password == "" {
		return ErrPasswordRequired
	}
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	return nil
}

// RegisterPassword checks, in order: presence, length, uppercase, lowercase,
// digit, special character. The first unmet requirement is returned.
func RegisterPassword(password string) error {
	if err := LoginPassword(password); err != nil {
		return err
	}
	if !containsRange(password, 'A', 'Z') {
		return ErrPasswordNoUpper
	}
	if !containsRange(password, 'a', 'z') {
		return ErrPasswordNoLower
	}
	if !containsRange(password, '0', '9') {
		return ErrPasswordNoDigit
	}
	if !strings.ContainsAny(password, SpecialCharacters) {
		return ErrPasswordNoSpecial
	}
	return nil
}

// Confirmation fails when confirm differs from password byte for byte.
func Confirmation(password, confirm string) error {
	if password != confirm {
		return ErrPasswordMismatch
	}
	return nil
}

func containsRange(s string, lo, hi rune) bool {
	for _, r := range s {
		if r >= lo && r <= hi {
			return true
		}
	}
	return false
}
