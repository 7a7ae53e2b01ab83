package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dmitrijs2005/authdemo/internal/client/screens"
	"github.com/dmitrijs2005/authdemo/internal/client/services"
)

// Run starts the full-screen UI and blocks until the user quits or ctx ends.
func Run(ctx context.Context, session services.SessionStore, ctrls *screens.Controllers) error {
	program := tea.NewProgram(New(ctx, session, ctrls), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}
