package tui

import "github.com/charmbracelet/lipgloss"

// Theme holds the colors of the UI. Values are ANSI 256-color codes.
type Theme struct {
	NormalText lipgloss.Color
	FaintText  lipgloss.Color
	Accent     lipgloss.Color
	ErrorText  lipgloss.Color
	NoticeText lipgloss.Color
	HelpText   lipgloss.Color
	Border     lipgloss.Color
}

// DefaultTheme targets dark terminals.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),
	Accent:     lipgloss.Color("75"),
	ErrorText:  lipgloss.Color("196"),
	NoticeText: lipgloss.Color("114"),
	HelpText:   lipgloss.Color("241"),
	Border:     lipgloss.Color("240"),
}

type styles struct {
	title  lipgloss.Style
	label  lipgloss.Style
	faint  lipgloss.Style
	err    lipgloss.Style
	notice lipgloss.Style
	help   lipgloss.Style
	box    lipgloss.Style
}

func newStyles(theme Theme) styles {
	return styles{
		title:  lipgloss.NewStyle().Bold(true).Foreground(theme.Accent),
		label:  lipgloss.NewStyle().Foreground(theme.NormalText),
		faint:  lipgloss.NewStyle().Foreground(theme.FaintText),
		err:    lipgloss.NewStyle().Foreground(theme.ErrorText),
		notice: lipgloss.NewStyle().Foreground(theme.NoticeText),
		help:   lipgloss.NewStyle().Foreground(theme.HelpText),
		box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(1, 2),
	}
}
