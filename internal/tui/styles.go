package tui

import "github.com/charmbracelet/lipgloss"

// Theme colors.
const (
	colorCritical  = "#EF4444"
	colorNormal    = "#38BDF8"
	colorFloat     = "#475569"
	colorTitle     = "#E6EAF2"
	colorSecondary = "#B1B8C7"
	colorHealthy   = "#22C55E"
	colorWarning   = "#F59E0B"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(colorTitle))

	summaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorSecondary))

	criticalBarStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(colorCritical))

	normalBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorNormal))

	floatBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorFloat))

	selectedRowStyle = lipgloss.NewStyle().
				Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	healthyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorHealthy))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorWarning))

	unhealthyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorCritical))
)

// healthStyle picks a style for the health score band.
func healthStyle(score float64) lipgloss.Style {
	switch {
	case score >= 70:
		return healthyStyle
	case score >= 40:
		return warningStyle
	default:
		return unhealthyStyle
	}
}
