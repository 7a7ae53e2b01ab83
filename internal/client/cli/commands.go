package cli

import (
	"context"
	"fmt"
	"sort"

	"github.com/dmitrijs2005/authdemo/internal/client/models"
	"github.com/dmitrijs2005/authdemo/internal/client/screens"
	"github.com/dmitrijs2005/authdemo/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Home shows the home screen.
func (a *App) Home(ctx context.Context) error {
	a.navigate(ctx, models.RouteHome)
	return nil
}

// Register prompts for email, password and confirmation and submits the
// registration form. Validation and service errors are printed; only input
// errors are returned.
func (a *App) Register(ctx context.Context) error {
	a.route = models.RouteRegister

	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out, "Enter password: ")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	confirm, err := getPassword(a.out, "Confirm password: ")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	res := a.screens.Register.Submit(ctx, models.RegisterForm{
		Email:           email,
		Password:        string(password),
		ConfirmPassword: string(confirm),
	})
	if !res.OK() {
		a.printFormResult(res)
		return nil
	}

	fmt.Fprintln(a.out, "Registration successful, please log in")
	a.navigate(ctx, res.Route)
	return nil
}

// Login prompts for credentials and submits the login form. On success the
// dashboard is shown.
func (a *App) Login(ctx context.Context) error {
	a.route = models.RouteLogin

	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out, "Enter password: ")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	res := a.screens.Login.Submit(ctx, models.LoginForm{Email: email, Password: string(password)})
	if !res.OK() {
		a.printFormResult(res)
		return nil
	}

	fmt.Fprintln(a.out, "Login successful")
	a.navigate(ctx, res.Route)
	return nil
}

// Dashboard runs the protected fetch and prints the result.
func (a *App) Dashboard(ctx context.Context) error {
	a.navigate(ctx, models.RouteDashboard)
	return nil
}

// Logout ends the session.
func (a *App) Logout(ctx context.Context) error {
	route, err := a.session.Logout(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	a.navigate(ctx, route)
	return nil
}

// Status prints the session status.
func (a *App) Status(ctx context.Context) error {
	st := a.session.State()
	fmt.Fprintf(a.out, "Status: %s\n", st.Status)
	if st.Identity != nil {
		fmt.Fprintf(a.out, "User: %s (id %d)\n", st.Identity.Email, st.Identity.ID)
	}
	if st.LastError != nil {
		fmt.Fprintf(a.out, "Last error: %v\n", st.LastError)
	}
	return nil
}

// navigate applies the route guard and renders the resulting screen.
func (a *App) navigate(ctx context.Context, target models.Route) {
	if target == models.RouteNone {
		return
	}

	a.route = screens.Guard(target, a.isLoggedIn())
	if a.route != target {
		fmt.Fprintln(a.out, "Please log in first")
	}

	switch a.route {
	case models.RouteHome:
		a.renderHome()
	case models.RouteLogin:
		fmt.Fprintln(a.out, "Type 'login' to sign in or 'register' to create an account")
	case models.RouteRegister:
		fmt.Fprintln(a.out, "Type 'register' to create an account")
	case models.RouteDashboard:
		a.renderDashboard(ctx)
	}
}

func (a *App) renderHome() {
	v := a.screens.Home.View()
	fmt.Fprintln(a.out, v.Title)
	fmt.Fprintln(a.out, v.Greeting)
	for _, r := range v.Links {
		if s, ok := screens.Lookup(r); ok {
			fmt.Fprintf(a.out, "  %s (%s)\n", s.Title, s.Route)
		}
	}
}

func (a *App) renderDashboard(ctx context.Context) {
	fmt.Fprintln(a.out, "Loading...")
	v := a.screens.Dashboard.Load(ctx)

	switch v.State {
	case screens.DashboardLoaded:
		fmt.Fprintln(a.out, "Dashboard")
		fmt.Fprintf(a.out, "Email: %s\n", v.Email)
		fmt.Fprintf(a.out, "Message: %s\n", v.Message)
	case screens.DashboardError:
		fmt.Fprintf(a.out, "Error: %s\n", v.Error)
	}

	if v.Redirect != models.RouteNone {
		a.navigate(ctx, v.Redirect)
	}
}

func (a *App) printFormResult(res screens.FormResult) {
	if res.Banner != "" {
		fmt.Fprintf(a.out, "Error: %s\n", res.Banner)
	}

	fields := make([]string, 0, len(res.Fields))
	for f := range res.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	for _, f := range fields {
		fmt.Fprintf(a.out, "  %s: %s\n", f, res.Fields[f])
	}
}
