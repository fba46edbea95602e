package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/tasktracker/internal/task"
)

// Color palette
var (
	colorPrimary   = lipgloss.Color("#6C63FF")
	colorMuted     = lipgloss.Color("#666666")
	colorSuccess   = lipgloss.Color("#2ECC71")
	colorWarning   = lipgloss.Color("#F39C12")
	colorError     = lipgloss.Color("#E74C3C")
	colorFg        = lipgloss.Color("#C0CAF5")
	colorSubtle    = lipgloss.Color("#414868")
	colorHighlight = lipgloss.Color("#7AA2F7")
)

// Status colours follow the chart: red, yellow, green.
var statusColors = map[task.Status]lipgloss.Color{
	task.YetToStart: lipgloss.Color("#E74C3C"),
	task.InProgress: lipgloss.Color("#F1C40F"),
	task.Completed:  lipgloss.Color("#2ECC71"),
}

func statusStyle(s task.Status) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(statusColors[s])
}

func urgencyStyle(u task.Urgency) lipgloss.Style {
	switch u {
	case task.Overdue:
		return errorStyle.Bold(true)
	case task.DueSoon:
		return warningStyle.Bold(true)
	default:
		return successStyle.Bold(true)
	}
}

var (
	// Panels
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSubtle).
			Padding(1, 2)

	activePanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorPrimary).
				Padding(1, 2)

	// Text
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorFg)

	bigTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorHighlight)

	labelStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Width(13)

	successStyle = lipgloss.NewStyle().
			Foreground(colorSuccess)

	warningStyle = lipgloss.NewStyle().
			Foreground(colorWarning)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorError)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	highlightStyle = lipgloss.NewStyle().
			Foreground(colorHighlight)

	// Header/footer
	headerStyle = lipgloss.NewStyle().
			Padding(0, 1)

	footerStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Padding(0, 1)

	// List items
	selectedItemStyle = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true)

	normalItemStyle = lipgloss.NewStyle().
			Foreground(colorFg)
)
