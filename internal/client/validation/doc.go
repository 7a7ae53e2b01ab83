// Package validation holds the field rules applied to the login and
// registration forms before anything is sent to the auth service.
//
// Rules are pure and synchronous. Each returns nil or one sentinel error
// whose text is the message shown next to the field. Form validators collect
// the first failing rule per field into FieldErrors.
//
// The email rule is deliberately permissive: some non-space characters, an
// "@", then more non-space characters. Password complexity is only checked
// at registration; login only enforces the minimum length.
package validation
