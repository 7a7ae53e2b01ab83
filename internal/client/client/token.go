package client

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenExpired peeks at a JWT's exp claim without verifying the signature.
// Opaque tokens and tokens without exp are never reported as expired; only
// the service can decide for those.
func TokenExpired(token string, now time.Time) bool {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return !claims.ExpiresAt.After(now)
}
