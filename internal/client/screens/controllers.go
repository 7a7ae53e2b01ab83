package screens

import (
	"github.com/dmitrijs2005/authdemo/internal/client/client"
	"github.com/dmitrijs2005/authdemo/internal/client/services"
	"github.com/dmitrijs2005/authdemo/internal/logging"
)

// Controllers bundles one controller per screen over a shared session.
type Controllers struct {
	Home      *Home
	Login     *Login
	Register  *Register
	Dashboard *Dashboard
}

func NewControllers(session services.SessionStore, c client.Client, log logging.Logger) *Controllers {
	return &Controllers{
		Home:      NewHome(session),
		Login:     NewLogin(session),
		Register:  NewRegister(session),
		Dashboard: NewDashboard(session, c, log),
	}
}
