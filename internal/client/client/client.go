package client

import (
	"context"

	"github.com/dmitrijs2005/authdemo/internal/client/models"
)

type Client interface {
	// Login exchanges credentials for a bearer token.
	Login(ctx context.Context, email, password string) (string, error)
	// Register creates an account. It does not log in.
	Register(ctx context.Context, email, password string) error
	// FetchIdentity calls the protected resource with token as bearer credential.
	FetchIdentity(ctx context.Context, token string) (*models.ProtectedResource, error)
}
