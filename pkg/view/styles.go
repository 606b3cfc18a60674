package view

import "github.com/charmbracelet/lipgloss"

var (
	colorAccent  = lipgloss.Color("#89b4fa")
	colorGreen   = lipgloss.Color("#a6e3a1")
	colorYellow  = lipgloss.Color("#f9e2af")
	colorRed     = lipgloss.Color("#f38ba8")
	colorSubtext = lipgloss.Color("#6c7086")

	logoStyle      = lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Padding(0, 1)
	headlineStyle  = lipgloss.NewStyle().Bold(true)
	labelStyle     = lipgloss.NewStyle().Foreground(colorSubtext).Width(10)
	focusStyle     = lipgloss.NewStyle().Foreground(colorAccent)
	okStyle        = lipgloss.NewStyle().Foreground(colorGreen)
	warnStyle      = lipgloss.NewStyle().Foreground(colorYellow)
	errStyle       = lipgloss.NewStyle().Foreground(colorRed)
	hintStyle      = lipgloss.NewStyle().Foreground(colorSubtext)
	dialogStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorAccent).Padding(1, 2)
	pendingTheme   = lipgloss.NewStyle().Faint(true)
	connectingLogo = logoStyle.Reverse(true)
)
