// Package common contains shared constants and helpers used across the
// authdemo client components.
package common

// TokenStorageKey is the fixed name under which the bearer token is
// persisted in the local key/value store.
const TokenStorageKey = "token"

// TokenSavedAtKey records when the current token was persisted (RFC 3339).
const TokenSavedAtKey = "token_saved_at"

// AuthorizationHeaderName carries the bearer credential on protected requests.
const AuthorizationHeaderName = "Authorization"

// BearerScheme is the authorization scheme prefix, including the trailing space.
const BearerScheme = "Bearer "

// RequestIDHeaderName is the header used to correlate client logs with the service.
const RequestIDHeaderName = "X-Request-ID"
