package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243")).
			Italic(true)

	spinnerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205"))

	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	doneMark    = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Render("✓")
	failMark    = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render("✗")
	pendingMark = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Render("·")
)

// viewHeader renders the title bar.
func (a *App) viewHeader() string {
	title := titleStyle.Render("triad")
	subtitle := subtitleStyle.Render("complexity-driven task decomposition")
	return lipgloss.JoinHorizontal(lipgloss.Bottom, title, "  ", subtitle)
}
