package screens

import (
	"github.com/dmitrijs2005/authdemo/internal/client/models"
	"github.com/dmitrijs2005/authdemo/internal/client/services"
)

const appTitle = "Auth Demo"

// HomeView is what the home screen shows.
type HomeView struct {
	Title    string
	Greeting string
	Links    []models.Route
}

type Home struct {
	session services.SessionStore
}

func NewHome(session services.SessionStore) *Home {
	return &Home{session: session}
}

// View greets an authenticated user and links to the dashboard; anonymous
// users get the login and register links.
func (h *Home) View() HomeView {
	st := h.session.State()
	if !st.IsAuthenticated() {
		return HomeView{
			Title:    appTitle,
			Greeting: "Welcome to the authentication demo",
			Links:    []models.Route{models.RouteLogin, models.RouteRegister},
		}
	}
	return HomeView{
		Title:    appTitle,
		Greeting: "Hello, " + st.Identity.Email,
		Links:    []models.Route{models.RouteDashboard},
	}
}
