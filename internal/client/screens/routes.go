package screens

import (
	"github.com/dmitrijs2005/authdemo/internal/client/models"
)

// Screen describes one navigable screen.
type Screen struct {
	Route        models.Route
	Title        string
	RequiresAuth bool
}

var screens = []Screen{
	{Route: models.RouteHome, Title: "Home"},
	{Route: models.RouteLogin, Title: "Login"},
	{Route: models.RouteRegister, Title: "Register"},
	{Route: models.RouteDashboard, Title: "Dashboard", RequiresAuth: true},
}

// All returns the screens in navigation order.
func All() []Screen {
	return append([]Screen(nil), screens...)
}

// Lookup finds the screen for r.
func Lookup(r models.Route) (Screen, bool) {
	for _, s := range screens {
		if s.Route == r {
			return s, true
		}
	}
	return Screen{}, false
}

// Guard returns the route to render when navigating to target. Screens that
// require authentication send anonymous users to the login screen. Unknown
// routes fall back to home.
func Guard(target models.Route, authenticated bool) models.Route {
	s, ok := Lookup(target)
	if !ok {
		return models.RouteHome
	}
	if s.RequiresAuth && !authenticated {
		return models.RouteLogin
	}
	return s.Route
}
