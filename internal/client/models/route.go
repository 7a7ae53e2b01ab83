package models

// Route names a screen. Values mirror the navigation paths.
type Route string

const (
	RouteNone      Route = ""
	RouteHome      Route = "/"
	RouteLogin     Route = "/login"
	RouteRegister  Route = "/register"
	RouteDashboard Route = "/dashboard"
)
