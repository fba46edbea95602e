package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/tasktracker/internal/task"
)

func (a App) renderDetail(width int) string {
	if !a.session.Configured() {
		return panelStyle.Width(width - 2).Render(mutedStyle.Render("Select a task to view details"))
	}

	t := a.session.Draft()
	now := a.now()

	var rows []string
	rows = append(rows, bigTitleStyle.Render(t.Title))

	countdown := urgencyStyle(task.UrgencyOf(t, now, a.loc)).Render(task.Remaining(t, now, a.loc))
	rows = append(rows, countdown, "")

	switch {
	case a.session.SaveAcknowledged():
		rows = append(rows, successStyle.Render("Task saved successfully!"), "")
	case a.session.IsDirty():
		rows = append(rows, warningStyle.Render("● unsaved changes (s: save, u: discard)"), "")
	}

	field := func(label, value string) string {
		return lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(label), value)
	}
	rows = append(rows,
		field("Due", formatDue(t, a.loc)),
		field("Status", statusStyle(t.Status).Render(t.Status.Icon()+" "+t.Status.String())),
		"",
		field("Description", orDash(t.Description)),
		field("Remarks", orDash(t.Remarks)),
		field("Quick notes", orDash(t.QuickNotes)),
	)

	style := panelStyle
	if a.session.IsDirty() {
		style = activePanelStyle
	}
	return style.Width(width - 2).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
