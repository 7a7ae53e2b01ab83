package validation

import (
	"errors"
	"sort"
	"strings"

	"github.com/dmitrijs2005/authdemo/internal/client/models"
)

// Field names used as FieldErrors keys.
const (
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldConfirmPassword = "confirmPassword"
)

// ErrValidation matches any FieldErrors via errors.Is.
var ErrValidation = errors.New("validation error")

// FieldErrors maps a field name to the message of its first failing rule.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+fe[k])
	}
	return strings.Join(parts, "; ")
}

func (fe FieldErrors) Is(target error) bool {
	return target == ErrValidation
}

// Err returns nil when there are no field errors, fe otherwise.
func (fe FieldErrors) Err() error {
	if len(fe) == 0 {
		return nil
	}
	return fe
}

func (fe FieldErrors) add(field string, err error) {
	if err != nil {
		fe[field] = err.Error()
	}
}

// ValidateLogin applies the login rules to every field.
func ValidateLogin(form models.LoginForm) FieldErrors {
	fe := FieldErrors{}
	fe.add(FieldEmail, Email(form.Email))
	fe.add(FieldPassword, LoginPassword(form.Password))
	return fe
}

// ValidateRegister applies the registration rules to every field.
func ValidateRegister(form models.RegisterForm) FieldErrors {
	fe := FieldErrors{}
	fe.add(FieldEmail, Email(form.Email))
	fe.add(FieldPassword, RegisterPassword(form.Password))
	if form.ConfirmPassword == "" {
		fe.add(FieldConfirmPassword, ErrConfirmRequired)
	} else {
		fe.add(FieldConfirmPassword, Confirmation(form.Password, form.ConfirmPassword))
	}
	return fe
}
