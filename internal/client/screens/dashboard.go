package screens

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/authdemo/internal/client/client"
	"github.com/dmitrijs2005/authdemo/internal/client/models"
	"github.com/dmitrijs2005/authdemo/internal/client/services"
	"github.com/dmitrijs2005/authdemo/internal/common"
	"github.com/dmitrijs2005/authdemo/internal/logging"
)

type DashboardState string

const (
	DashboardLoading DashboardState = "loading"
	DashboardLoaded  DashboardState = "loaded"
	DashboardError   DashboardState = "error"
)

// DashboardView is what the dashboard shows. A non-empty Redirect means the
// screen must not be rendered and the caller should navigate there.
type DashboardView struct {
	State    DashboardState
	Email    string
	Message  string
	Error    string
	Redirect models.Route
}

// Dashboard fetches the protected resource directly with the stored token.
type Dashboard struct {
	session services.SessionStore
	client  client.Client
	log     logging.Logger
}

func NewDashboard(session services.SessionStore, c client.Client, log logging.Logger) *Dashboard {
	return &Dashboard{session: session, client: c, log: log}
}

// Load runs the protected fetch. A rejected token logs the session out and
// redirects to login, the same end state as an explicit logout.
func (d *Dashboard) Load(ctx context.Context) DashboardView {
	st := d.session.State()
	if !st.IsAuthenticated() {
		return DashboardView{State: DashboardLoading, Redirect: models.RouteLogin}
	}

	token, err := d.session.Token(ctx)
	if err != nil {
		msg := MsgFetchFailed
		if errors.Is(err, common.ErrorTokenNotFound) {
			msg = MsgTokenNotFound
		}
		return DashboardView{State: DashboardError, Error: msg}
	}

	res, err := d.client.FetchIdentity(ctx, token)
	if err != nil {
		view := DashboardView{State: DashboardError, Error: bannerFor(err, MsgFetchFailed)}
		if errors.Is(err, client.ErrUnauthorized) {
			route, lerr := d.session.Logout(ctx)
			if lerr != nil {
				d.log.Error(ctx, "logout after rejected token failed", "error", lerr)
			}
			view.Redirect = route
		}
		return view
	}

	return DashboardView{
		State:   DashboardLoaded,
		Email:   st.Identity.Email,
		Message: res.Message,
	}
}

// Logout ends the session from the dashboard.
func (d *Dashboard) Logout(ctx context.Context) (models.Route, error) {
	return d.session.Logout(ctx)
}
