package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/authdemo/internal/authtest"
	"github.com/dmitrijs2005/authdemo/internal/client/config"
	"github.com/dmitrijs2005/authdemo/internal/client/models"
	"github.com/dmitrijs2005/authdemo/internal/logging"
)

const (
	testEmail    = "alice@example.com"
	testPassword = "Secret12!"
)

func newTestApp(t *testing.T, srv *authtest.Server) (*App, *bytes.Buffer) {
	t.Helper()
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.ServerBaseURL = srv.URL
	cfg.DBPath = t.TempDir() + "/session.db"
	cfg.RequestTimeout = 2 * time.Second
	cfg.RevalidateInterval = 0

	app, err := NewApp(context.Background(), cfg, logging.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })

	var out bytes.Buffer
	app.out = &out
	return app, &out
}

func stubInputs(t *testing.T, text string, passwords ...string) {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) { return text, nil }
	getPassword = func(_ io.Writer, _ string) ([]byte, error) {
		if len(passwords) == 0 {
			return nil, io.EOF
		}
		pw := passwords[0]
		passwords = passwords[1:]
		return []byte(pw), nil
	}
	t.Cleanup(func() {
		getSimpleText = origST
		getPassword = origGP
	})
}

func TestApp_LoginShowsDashboard(t *testing.T) {
	srv := authtest.NewServer(t, authtest.WithUser(testEmail, testPassword))
	app, out := newTestApp(t, srv)
	stubInputs(t, testEmail, testPassword)

	require.NoError(t, app.Login(context.Background()))

	assert.True(t, app.isLoggedIn())
	assert.Equal(t, models.RouteDashboard, app.route)
	assert.Contains(t, out.String(), "Login successful")
	assert.Contains(t, out.String(), "Email: "+testEmail)
	assert.Contains(t, out.String(), "Message: "+authtest.MessageProtectedAccessed)
	assert.Equal(t, "("+testEmail+" /dashboard authenticated)", app.getStatus())
}

func TestApp_LoginRejected(t *testing.T) {
	srv := authtest.NewServer(t, authtest.WithUser(testEmail, testPassword))
	app, out := newTestApp(t, srv)
	stubInputs(t, testEmail, "Wrong123!")

	require.NoError(t, app.Login(context.Background()))

	assert.False(t, app.isLoggedIn())
	assert.Equal(t, models.RouteLogin, app.route)
	assert.Contains(t, out.String(), "Error: "+authtest.DetailBadCredentials)
}

func TestApp_LoginValidationErrors(t *testing.T) {
	srv := authtest.NewServer(t)
	app, out := newTestApp(t, srv)
	stubInputs(t, "not-an-email", "short")

	require.NoError(t, app.Login(context.Background()))

	assert.Contains(t, out.String(), "  email: ")
	assert.Contains(t, out.String(), "  password: ")
	assert.Empty(t, srv.Requests())
}

func TestApp_LoginRejectsPaddedEmail(t *testing.T) {
	srv := authtest.NewServer(t, authtest.WithUser(testEmail, testPassword))
	app, out := newTestApp(t, srv)
	stubInputs(t, "", testPassword)
	getSimpleText = GetSimpleText
	app.reader = bufio.NewReader(strings.NewReader(" " + testEmail + "\n"))

	require.NoError(t, app.Login(context.Background()))

	assert.False(t, app.isLoggedIn())
	assert.Contains(t, out.String(), "  email: ")
	assert.Empty(t, srv.Requests())
}

func TestApp_LoginInputError(t *testing.T) {
	srv := authtest.NewServer(t)
	app, _ := newTestApp(t, srv)
	stubInputs(t, testEmail)

	require.ErrorIs(t, app.Login(context.Background()), io.EOF)
}

func TestApp_RegisterGoesToLogin(t *testing.T) {
	srv := authtest.NewServer(t)
	app, out := newTestApp(t, srv)
	stubInputs(t, testEmail, testPassword, testPassword)

	require.NoError(t, app.Register(context.Background()))

	assert.True(t, srv.HasUser(testEmail))
	assert.False(t, app.isLoggedIn())
	assert.Equal(t, models.RouteLogin, app.route)
	assert.Contains(t, out.String(), "Registration successful")
}

func TestApp_RegisterMismatch(t *testing.T) {
	srv := authtest.NewServer(t)
	app, out := newTestApp(t, srv)
	stubInputs(t, testEmail, testPassword, "Secret12?")

	require.NoError(t, app.Register(context.Background()))

	assert.Contains(t, out.String(), "confirmPassword: passwords do not match")
	assert.False(t, srv.HasUser(testEmail))
}

func TestApp_DashboardGuard(t *testing.T) {
	srv := authtest.NewServer(t)
	app, out := newTestApp(t, srv)

	require.NoError(t, app.Dashboard(context.Background()))

	assert.Equal(t, models.RouteLogin, app.route)
	assert.Contains(t, out.String(), "Please log in first")
	assert.Empty(t, srv.Requests())
}

func TestApp_DashboardRejectedTokenLogsOut(t *testing.T) {
	srv := authtest.NewServer(t, authtest.WithUser(testEmail, testPassword))
	app, out := newTestApp(t, srv)
	stubInputs(t, testEmail, testPassword)
	require.NoError(t, app.Login(context.Background()))

	out.Reset()
	srv.FailNext("/protected", 401, authtest.DetailInvalidToken)
	require.NoError(t, app.Dashboard(context.Background()))

	assert.False(t, app.isLoggedIn())
	assert.Equal(t, models.RouteLogin, app.route)
	assert.Contains(t, out.String(), "Error: "+authtest.DetailInvalidToken)
}

func TestApp_LogoutAndStatus(t *testing.T) {
	srv := authtest.NewServer(t, authtest.WithUser(testEmail, testPassword))
	app, out := newTestApp(t, srv)
	stubInputs(t, testEmail, testPassword)
	ctx := context.Background()
	require.NoError(t, app.Login(ctx))

	out.Reset()
	require.NoError(t, app.Status(ctx))
	assert.Contains(t, out.String(), "Status: authenticated")
	assert.Contains(t, out.String(), "User: "+testEmail+" (id 1)")

	require.NoError(t, app.Logout(ctx))
	assert.False(t, app.isLoggedIn())
	assert.Equal(t, models.RouteLogin, app.route)

	out.Reset()
	require.NoError(t, app.Home(ctx))
	assert.Contains(t, out.String(), "Login (/login)")
	assert.Contains(t, out.String(), "Register (/register)")
}

func TestApp_StartRestoresSession(t *testing.T) {
	srv := authtest.NewServer(t, authtest.WithUser(testEmail, testPassword))
	app, _ := newTestApp(t, srv)
	stubInputs(t, testEmail, testPassword)
	ctx := context.Background()
	require.NoError(t, app.Login(ctx))

	restarted, err := NewApp(ctx, app.config, logging.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { _ = restarted.Close() })

	require.False(t, restarted.isLoggedIn())
	require.NoError(t, restarted.Start(ctx))
	assert.True(t, restarted.isLoggedIn())
	assert.Equal(t, testEmail, restarted.Session().State().Identity.Email)
}

func TestApp_RootRunsREPL(t *testing.T) {
	capturePrintln(t)
	srv := authtest.NewServer(t)
	app, out := newTestApp(t, srv)
	app.reader = bufio.NewReader(strings.NewReader("status\nexit\n"))

	app.Run(context.Background())

	assert.Contains(t, out.String(), "Welcome")
	assert.Contains(t, out.String(), "Status: anonymous")
}

func TestNewApp_BadBaseURL(t *testing.T) {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.ServerBaseURL = "localhost:8000"
	cfg.DBPath = t.TempDir() + "/session.db"

	_, err := NewApp(context.Background(), cfg, logging.Discard())
	require.Error(t, err)
}
