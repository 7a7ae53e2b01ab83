// Package models defines the client-side data types shared by the session
// store, the screens and the front ends.
package models

// Identity is the authenticated principal as reported by the auth service.
// It is held in memory only and never persisted.
type Identity struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

// ProtectedResource is the payload of the protected endpoint. The same call
// doubles as the token validation check. User is nil when the payload has no
// user object.
type ProtectedResource struct {
	Message string    `json:"message"`
	User    *Identity `json:"user"`
}

// HasIdentity reports whether the payload names an authenticated user.
func (r *ProtectedResource) HasIdentity() bool {
	return r != nil && r.User != nil && r.User.Email != ""
}
