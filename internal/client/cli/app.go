package cli

import (
	"bufio"
	"context"
	"database/sql"
	"io"
	"os"

	"github.com/dmitrijs2005/authdemo/internal/client/client"
	"github.com/dmitrijs2005/authdemo/internal/client/config"
	"github.com/dmitrijs2005/authdemo/internal/client/models"
	"github.com/dmitrijs2005/authdemo/internal/client/screens"
	"github.com/dmitrijs2005/authdemo/internal/client/services"
	"github.com/dmitrijs2005/authdemo/internal/logging"
)

type App struct {
	config  *config.Config
	log     logging.Logger
	db      *sql.DB
	session services.SessionStore
	screens *screens.Controllers
	route   models.Route
	reader  *bufio.Reader
	out     io.Writer
}

// NewApp opens the session database and builds the service stack for c.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	db, err := client.InitDatabase(ctx, c.DBPath)
	if err != nil {
		log.Error(ctx, "error initializing database", "path", c.DBPath, "error", err)
		return nil, err
	}

	apiClient, err := client.NewHTTPClient(c.ServerBaseURL,
		client.WithTimeout(c.RequestTimeout),
		client.WithLogger(log.With("component", "auth-client")),
	)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	session := services.NewSessionStore(apiClient, services.NewTokenStore(db),
		services.WithStrictLogout(c.StrictLogout),
		services.WithValidateRetries(c.ValidateRetries, 0),
		services.WithLogger(log.With("component", "session")),
	)

	return newApp(c, log, db, session, screens.NewControllers(session, apiClient, log)), nil
}

func newApp(c *config.Config, log logging.Logger, db *sql.DB, session services.SessionStore, ctrls *screens.Controllers) *App {
	return &App{
		config:  c,
		log:     log,
		db:      db,
		session: session,
		screens: ctrls,
		route:   models.RouteHome,
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
	}
}

func (a *App) Session() services.SessionStore { return a.session }

func (a *App) Screens() *screens.Controllers { return a.screens }

// Start restores the persisted session and launches the revalidation
// watcher, which stops with ctx.
func (a *App) Start(ctx context.Context) error {
	if err := a.session.Initialize(ctx); err != nil {
		return err
	}
	if a.config.RevalidateInterval > 0 {
		go a.session.StartRevalidationWatcher(ctx, a.config.RevalidateInterval)
	}
	return nil
}

// Run blocks in the REPL until the user exits or input ends.
func (a *App) Run(ctx context.Context) {
	a.Root(ctx)
}

func (a *App) Close() error {
	return a.db.Close()
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}
