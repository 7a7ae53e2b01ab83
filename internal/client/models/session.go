package models

// SessionStatus describes where the client stands with the auth service.
type SessionStatus string

const (
	// StatusAnonymous means no identity; the token may or may not exist.
	StatusAnonymous SessionStatus = "anonymous"
	// StatusAuthenticating is set while a login or validation is in flight.
	StatusAuthenticating SessionStatus = "authenticating"
	// StatusAuthenticated means a validated token produced the current identity.
	StatusAuthenticated SessionStatus = "authenticated"
	// StatusUnreachable means the token is kept but could not be validated
	// because the service did not answer.
	StatusUnreachable SessionStatus = "unreachable"
)
