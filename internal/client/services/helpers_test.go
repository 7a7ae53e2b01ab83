package services

import (
	"context"
	"database/sql"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/authdemo/internal/authtest"
	"github.com/dmitrijs2005/authdemo/internal/client/client"
	"github.com/dmitrijs2005/authdemo/internal/client/models"
	"github.com/dmitrijs2005/authdemo/internal/common"
)

const (
	testEmail    = "alice@example.com"
	testPassword = "Secret12!"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func storedToken(t *testing.T, tokens TokenStore) string {
	t.Helper()
	tok, err := tokens.Load(context.Background())
	if err != nil {
		require.ErrorIs(t, err, common.ErrorTokenNotFound)
		return ""
	}
	return tok
}

// newHTTPSession wires a session to the stand-in service and a fresh database.
func newHTTPSession(t *testing.T, srv *authtest.Server, opts ...Option) (SessionStore, TokenStore) {
	t.Helper()
	c, err := client.NewHTTPClient(srv.URL, client.WithHTTPClient(srv.Client()), client.WithTimeout(2*time.Second))
	require.NoError(t, err)
	tokens := NewTokenStore(setupDB(t))
	return NewSessionStore(c, tokens, opts...), tokens
}

// ---- fakes ----

type fakeClient struct {
	mu sync.Mutex

	loginToken  string
	loginErr    error
	registerErr error

	resource      *models.ProtectedResource
	identityErrs  []error
	identityCalls int

	// When set, the call blocks until the channel is closed.
	loginGate chan struct{}
	fetchGate chan struct{}
	// Signalled when a gated call is entered.
	entered chan struct{}
}

func (f *fakeClient) Login(ctx context.Context, email, password string) (string, error) {
	f.wait(f.loginGate)
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loginToken, f.loginErr
}

func (f *fakeClient) Register(ctx context.Context, email, password string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.registerErr
}

func (f *fakeClient) FetchIdentity(ctx context.Context, token string) (*models.ProtectedResource, error) {
	f.wait(f.fetchGate)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.identityCalls++
	if len(f.identityErrs) > 0 {
		err := f.identityErrs[0]
		f.identityErrs = f.identityErrs[1:]
		if err != nil {
			return nil, err
		}
	}
	return f.resource, nil
}

func (f *fakeClient) setIdentityErrs(errs ...error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.identityErrs = errs
}

func (f *fakeClient) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.identityCalls
}

func (f *fakeClient) wait(gate chan struct{}) {
	if gate == nil {
		return
	}
	if f.entered != nil {
		f.entered <- struct{}{}
	}
	<-gate
}

func aliceResource() *models.ProtectedResource {
	return &models.ProtectedResource{
		Message: authtest.MessageProtectedAccessed,
		User:    &models.Identity{ID: 7, Email: testEmail},
	}
}

var (
	errUnreachable = &client.ServiceError{Kind: client.ErrRequestFailed, Err: context.DeadlineExceeded}
	errRejected    = &client.ServiceError{Kind: client.ErrUnauthorized, Status: 401, Detail: authtest.DetailInvalidToken}
)

type memTokenStore struct {
	mu    sync.Mutex
	token string
	err   error
}

func (m *memTokenStore) Load(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return "", m.err
	}
	if m.token == "" {
		return "", common.ErrorTokenNotFound
	}
	return m.token, nil
}

func (m *memTokenStore) Save(ctx context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.token = token
	return nil
}

func (m *memTokenStore) Delete(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.token = ""
	return nil
}
