package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("12")).
			Bold(true).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("7")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10")).
			Bold(true)

	spinnerHint = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8")).
			Italic(true)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("12"))

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 2).
			Margin(0, 1)

	statusHot  = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	statusWarm = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	statusCold = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
)

// leadStatusStyle picks a style for a lead status.
func leadStatusStyle(status string) lipgloss.Style {
	switch status {
	case "hot":
		return statusHot
	case "warm":
		return statusWarm
	default:
		return statusCold
	}
}
