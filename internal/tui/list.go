package tui

import (
	"fmt"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/tasktracker/internal/task"
)

func (a App) renderList(width int) string {
	var rows []string
	rows = append(rows, titleStyle.Render(fmt.Sprintf("Tasks (%d)", len(a.list))), "")

	if len(a.list) == 0 {
		rows = append(rows, mutedStyle.Render("No tasks yet. Press n to add one."))
		return panelStyle.Width(width - 2).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
	}

	selected := a.session.Configured()
	selectedID := a.session.Draft().ID
	inner := width - 8

	for i, t := range a.list {
		cursor := "  "
		style := normalItemStyle
		if i == a.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		marker := " "
		if selected && t.ID == selectedID {
			marker = highlightStyle.Render("●")
		}

		due := mutedStyle.Render(formatDue(t, a.loc))
		status := statusStyle(t.Status).Render(t.Status.Icon() + " " + statusShort[t.Status])
		titleWidth := inner - lipgloss.Width(due) - lipgloss.Width(status) - 6
		line := fmt.Sprintf("%s%s %s  %s  %s",
			cursor, marker, style.Render(truncate(t.Title, titleWidth)), status, due)
		rows = append(rows, line)
	}

	return panelStyle.Width(width - 2).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// renderSummary draws the per-status bar chart with its legend.
func (a App) renderSummary(width int) string {
	sum := task.Summarize(a.list)

	rows := []string{titleStyle.Render("Summary"), ""}
	if sum.Total == 0 {
		rows = append(rows, mutedStyle.Render("No Tasks"))
		return panelStyle.Width(width - 2).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
	}

	chartWidth := width - 10
	if chartWidth < 12 {
		chartWidth = 12
	}
	chart := barchart.New(chartWidth, 8)

	var bars []barchart.BarData
	var legend []string
	for _, c := range sum.Counts {
		style := statusStyle(c.Status)
		bars = append(bars, barchart.BarData{
			Label: statusShort[c.Status],
			Values: []barchart.BarValue{{
				Name:  c.Status.String(),
				Value: float64(c.Count),
				Style: style,
			}},
		})
		legend = append(legend, style.Render("■")+" "+fmt.Sprintf("%s: %d", c.Status, c.Count))
	}
	chart.PushAll(bars)
	chart.Draw()

	rows = append(rows, chart.View(), "")
	rows = append(rows, legend...)
	rows = append(rows, "", titleStyle.Render(fmt.Sprintf("Total Tasks: %d", sum.Total)))
	return panelStyle.Width(width - 2).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
