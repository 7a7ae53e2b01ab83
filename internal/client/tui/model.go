package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dmitrijs2005/authdemo/internal/client/models"
	"github.com/dmitrijs2005/authdemo/internal/client/screens"
	"github.com/dmitrijs2005/authdemo/internal/client/services"
	"github.com/dmitrijs2005/authdemo/internal/client/validation"
)

// Messages produced by the model's commands.
type (
	initDoneMsg struct{ err error }

	formDoneMsg struct {
		from models.Route
		res  screens.FormResult
	}

	dashboardMsg struct{ view screens.DashboardView }

	logoutDoneMsg struct {
		route models.Route
		err   error
	}
)

type field struct {
	name  string
	label string
	input textinput.Model
}

// Model is the bubbletea model of the client.
type Model struct {
	ctx     context.Context
	session services.SessionStore
	screens *screens.Controllers
	keys    KeyMap
	styles  styles

	route     models.Route
	fields    []field
	focus     int
	errors    validation.FieldErrors
	banner    string
	notice    string
	busy      bool
	dashboard screens.DashboardView
	width     int
}

// New builds the model. ctx bounds every network call it starts.
func New(ctx context.Context, session services.SessionStore, ctrls *screens.Controllers) Model {
	return Model{
		ctx:     ctx,
		session: session,
		screens: ctrls,
		keys:    DefaultKeyMap,
		styles:  newStyles(DefaultTheme),
		route:   models.RouteHome,
		busy:    true,
	}
}

// Init restores the persisted session.
func (m Model) Init() tea.Cmd {
	ctx, session := m.ctx, m.session
	return func() tea.Msg {
		return initDoneMsg{err: session.Initialize(ctx)}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case initDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.banner = "Could not restore session: " + msg.err.Error()
		}
		return m, nil

	case formDoneMsg:
		if msg.from != m.route {
			return m, nil
		}
		m.busy = false
		if !msg.res.OK() {
			m.errors = msg.res.Fields
			m.banner = msg.res.Banner
			return m, nil
		}
		notice := ""
		if msg.from == models.RouteRegister {
			notice = "Registration successful, please log in"
		}
		var cmd tea.Cmd
		m, cmd = m.navigate(msg.res.Route)
		m.notice = notice
		return m, cmd

	case dashboardMsg:
		if m.route != models.RouteDashboard {
			return m, nil
		}
		m.busy = false
		m.dashboard = msg.view
		if msg.view.Redirect != models.RouteNone {
			var cmd tea.Cmd
			m, cmd = m.navigate(msg.view.Redirect)
			m.banner = msg.view.Error
			return m, cmd
		}
		return m, nil

	case logoutDoneMsg:
		var cmd tea.Cmd
		m, cmd = m.navigate(msg.route)
		if msg.err != nil {
			m.banner = msg.err.Error()
		} else {
			m.notice = "Logged out"
		}
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.updateFocused(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		return m, tea.Quit
	}
	if m.inForm() {
		return m.handleFormKey(msg)
	}
	if m.busy {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Home):
		return m.navigate(models.RouteHome)
	case key.Matches(msg, m.keys.Login):
		return m.navigate(models.RouteLogin)
	case key.Matches(msg, m.keys.Register):
		return m.navigate(models.RouteRegister)
	case key.Matches(msg, m.keys.Dashboard):
		return m.navigate(models.RouteDashboard)
	case key.Matches(msg, m.keys.Reload) && m.route == models.RouteDashboard:
		return m.navigate(models.RouteDashboard)
	case key.Matches(msg, m.keys.Logout) && m.session.IsAuthenticated():
		m.busy = true
		ctx, session := m.ctx, m.session
		return m, func() tea.Msg {
			route, err := session.Logout(ctx)
			return logoutDoneMsg{route: route, err: err}
		}
	}
	return m, nil
}

func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.busy {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Back):
		return m.navigate(models.RouteHome)
	case key.Matches(msg, m.keys.Next):
		m.setFocus(m.focus + 1)
		return m, nil
	case key.Matches(msg, m.keys.Prev):
		m.setFocus(m.focus - 1)
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		if m.focus < len(m.fields)-1 {
			m.setFocus(m.focus + 1)
			return m, nil
		}
		return m.submit()
	}
	return m.updateFocused(msg)
}

func (m Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	if !m.inForm() {
		return m, nil
	}
	var cmd tea.Cmd
	m.fields[m.focus].input, cmd = m.fields[m.focus].input.Update(msg)
	return m, cmd
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	m.busy = true
	m.banner, m.notice, m.errors = "", "", nil

	ctx, from := m.ctx, m.route
	switch m.route {
	case models.RouteLogin:
		form := models.LoginForm{
			Email:    m.value(validation.FieldEmail),
			Password: m.value(validation.FieldPassword),
		}
		ctrl := m.screens.Login
		return m, func() tea.Msg {
			return formDoneMsg{from: from, res: ctrl.Submit(ctx, form)}
		}

	case models.RouteRegister:
		form := models.RegisterForm{
			Email:           m.value(validation.FieldEmail),
			Password:        m.value(validation.FieldPassword),
			ConfirmPassword: m.value(validation.FieldConfirmPassword),
		}
		ctrl := m.screens.Register
		return m, func() tea.Msg {
			return formDoneMsg{from: from, res: ctrl.Submit(ctx, form)}
		}
	}

	m.busy = false
	return m, nil
}

// navigate applies the route guard, resets per-screen state and starts the
// dashboard fetch when needed.
func (m Model) navigate(target models.Route) (Model, tea.Cmd) {
	if target == models.RouteNone {
		return m, nil
	}

	m.route = screens.Guard(target, m.session.IsAuthenticated())
	m.banner, m.notice, m.errors = "", "", nil
	m.fields = nil
	m.focus = 0
	m.busy = false

	switch m.route {
	case models.RouteLogin:
		m.fields = []field{
			newField(validation.FieldEmail, "Email", false),
			newField(validation.FieldPassword, "Password", true),
		}
	case models.RouteRegister:
		m.fields = []field{
			newField(validation.FieldEmail, "Email", false),
			newField(validation.FieldPassword, "Password", true),
			newField(validation.FieldConfirmPassword, "Confirm password", true),
		}
	case models.RouteDashboard:
		m.busy = true
		m.dashboard = screens.DashboardView{State: screens.DashboardLoading}
		ctx, ctrl := m.ctx, m.screens.Dashboard
		return m, func() tea.Msg {
			return dashboardMsg{view: ctrl.Load(ctx)}
		}
	}

	m.setFocus(0)
	return m, nil
}

func newField(name, label string, secret bool) field {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 254
	ti.Cursor.SetMode(cursor.CursorStatic)
	if secret {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '•'
	}
	return field{name: name, label: label, input: ti}
}

// setFocus moves focus to index i, wrapping around.
func (m *Model) setFocus(i int) {
	if len(m.fields) == 0 {
		return
	}
	n := len(m.fields)
	m.focus = ((i % n) + n) % n
	for j := range m.fields {
		if j == m.focus {
			m.fields[j].input.Focus()
		} else {
			m.fields[j].input.Blur()
		}
	}
}

func (m Model) value(name string) string {
	for _, f := range m.fields {
		if f.name == name {
			return f.input.Value()
		}
	}
	return ""
}

func (m Model) inForm() bool {
	return len(m.fields) > 0
}

func (m Model) View() string {
	var b strings.Builder

	title := "Auth Demo"
	if s, ok := screens.Lookup(m.route); ok && m.route != models.RouteHome {
		title += " · " + s.Title
	}
	b.WriteString(m.styles.title.Render(title))
	b.WriteString("\n\n")

	switch m.route {
	case models.RouteHome:
		m.viewHome(&b)
	case models.RouteLogin, models.RouteRegister:
		m.viewForm(&b)
	case models.RouteDashboard:
		m.viewDashboard(&b)
	}

	if m.notice != "" {
		b.WriteString("\n" + m.styles.notice.Render(m.notice) + "\n")
	}
	if m.banner != "" {
		b.WriteString("\n" + m.styles.err.Render("Error: "+m.banner) + "\n")
	}

	b.WriteString("\n" + m.styles.faint.Render(m.statusLine()) + "\n")
	b.WriteString(m.styles.help.Render(m.helpLine()))

	box := m.styles.box
	if m.width > 4 {
		box = box.MaxWidth(m.width)
	}
	return box.Render(b.String())
}

func (m Model) viewHome(b *strings.Builder) {
	if m.busy {
		b.WriteString(m.styles.faint.Render("Restoring session..."))
		b.WriteString("\n")
		return
	}
	v := m.screens.Home.View()
	b.WriteString(m.styles.label.Render(v.Greeting))
	b.WriteString("\n")
	for _, r := range v.Links {
		if s, ok := screens.Lookup(r); ok {
			fmt.Fprintf(b, "  • %s\n", s.Title)
		}
	}
}

func (m Model) viewForm(b *strings.Builder) {
	for _, f := range m.fields {
		b.WriteString(m.styles.label.Render(f.label))
		b.WriteString("\n")
		b.WriteString(f.input.View())
		b.WriteString("\n")
		if msg, ok := m.errors[f.name]; ok {
			b.WriteString(m.styles.err.Render(msg))
			b.WriteString("\n")
		}
	}
	if m.busy {
		b.WriteString(m.styles.faint.Render("Submitting..."))
		b.WriteString("\n")
	}
}

func (m Model) viewDashboard(b *strings.Builder) {
	v := m.dashboard
	switch v.State {
	case screens.DashboardLoading:
		b.WriteString(m.styles.faint.Render("Loading..."))
		b.WriteString("\n")
	case screens.DashboardError:
		b.WriteString(m.styles.err.Render("Error: " + v.Error))
		b.WriteString("\n")
	case screens.DashboardLoaded:
		fmt.Fprintf(b, "%s %s\n", m.styles.faint.Render("Email:"), v.Email)
		fmt.Fprintf(b, "%s %s\n", m.styles.faint.Render("Message:"), v.Message)
	}
}

func (m Model) statusLine() string {
	st := m.session.State()
	if st.Identity != nil {
		return fmt.Sprintf("%s as %s", st.Status, st.Identity.Email)
	}
	return string(st.Status)
}

func (m Model) helpLine() string {
	var bindings []key.Binding
	switch {
	case m.inForm():
		bindings = []key.Binding{m.keys.Next, m.keys.Submit, m.keys.Back}
	case m.route == models.RouteDashboard:
		bindings = []key.Binding{m.keys.Reload, m.keys.Logout, m.keys.Home, m.keys.Quit}
	case m.session.IsAuthenticated():
		bindings = []key.Binding{m.keys.Dashboard, m.keys.Logout, m.keys.Quit}
	default:
		bindings = []key.Binding{m.keys.Login, m.keys.Register, m.keys.Dashboard, m.keys.Quit}
	}

	parts := make([]string, 0, len(bindings))
	for _, kb := range bindings {
		h := kb.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " · ")
}
