package tui

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/sadopc/tasktracker/internal/config"
	"github.com/sadopc/tasktracker/internal/export"
	"github.com/sadopc/tasktracker/internal/task"
)

// App is the root Bubble Tea model: the task list and summary on the left,
// the edit session for the selected task on the right.
type App struct {
	tasks   *task.Store
	session *task.Session
	cfg     *config.Config
	log     *slog.Logger
	loc     *time.Location
	now     func() time.Time

	width  int
	height int

	mode   viewMode
	list   []task.Task
	cursor int

	changes     chan struct{}
	unsubscribe func()

	form   *huh.Form
	fields *formFields

	exportCursor int

	help      help.Model
	showHelp  bool
	status    string
	statusErr bool
}

func NewApp(tasks *task.Store, cfg *config.Config, logger *slog.Logger) App {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = slog.Default()
	}
	h := help.New()
	h.ShowAll = false

	a := App{
		tasks:   tasks,
		session: task.NewSession(tasks, cfg.SaveAckDelay),
		cfg:     cfg,
		log:     logger,
		loc:     time.Local,
		now:     time.Now,
		list:    tasks.Tasks(),
		changes: make(chan struct{}, 1),
		fields:  &formFields{},
		help:    h,
	}

	changes := a.changes
	a.unsubscribe = tasks.Subscribe(func([]task.Task) {
		select {
		case changes <- struct{}{}:
		default:
		}
	})
	return a
}

func (a App) Init() tea.Cmd {
	return tea.Batch(
		waitForChange(a.changes),
		clockCmd(a.cfg.ClockTick),
	)
}

func waitForChange(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		<-ch
		return tasksChangedMsg{}
	}
}

func clockCmd(every time.Duration) tea.Cmd {
	return tea.Tick(every, func(t time.Time) tea.Msg {
		return clockMsg(t)
	})
}

func ackCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ackExpiredMsg{}
	})
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		return a, nil

	case tasksChangedMsg:
		a.refresh()
		return a, waitForChange(a.changes)

	case clockMsg:
		return a, clockCmd(a.cfg.ClockTick)

	case ackExpiredMsg:
		// Re-render only; the session decides whether the notice is still up.
		return a, nil

	case statusMsg:
		a.setStatus(msg.text, msg.isError)
		return a, nil

	case exportDoneMsg:
		a.setStatus("Exported to "+msg.path, false)
		return a, nil
	}

	if a.isFormActive() {
		return a.updateForm(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		if a.mode == modeExport {
			return a.updateExportPicker(msg)
		}
		return a.updateBrowse(msg)
	}
	return a, nil
}

func (a App) isFormActive() bool {
	return a.form != nil && a.mode != modeBrowse && a.mode != modeExport
}

func (a App) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		a.unsubscribe()
		return a, tea.Quit
	case key.Matches(msg, keys.Help):
		a.showHelp = !a.showHelp
		a.help.ShowAll = a.showHelp
	case key.Matches(msg, keys.Up):
		if a.cursor > 0 {
			a.cursor--
		}
	case key.Matches(msg, keys.Down):
		if a.cursor < len(a.list)-1 {
			a.cursor++
		}
	case key.Matches(msg, keys.Select):
		return a.selectCurrent()
	case key.Matches(msg, keys.New):
		a.fields.resetForAdd(a.now().In(a.loc))
		return a.openForm(modeAdd, newAddForm(a.fields))
	case key.Matches(msg, keys.Edit):
		if !a.session.Configured() {
			return a, nil
		}
		a.fields.loadTask(a.session.Draft(), a.loc)
		a.session.SetEditing(true)
		return a.openForm(modeEdit, newEditForm(a.fields))
	case key.Matches(msg, keys.Save):
		return a.save()
	case key.Matches(msg, keys.Discard):
		if a.session.Configured() && a.session.IsDirty() {
			a.session.Discard()
			a.setStatus("Changes discarded", false)
		}
	case key.Matches(msg, keys.Delete):
		if !a.session.Configured() {
			return a, nil
		}
		return a.openForm(modeConfirmDelete, newDeletePrompt(a.fields))
	case key.Matches(msg, keys.Export):
		a.mode = modeExport
		a.exportCursor = 0
	}
	return a, nil
}

// selectCurrent moves the edit session to the task under the cursor. Picking
// the task already being edited is a no-op.
func (a App) selectCurrent() (tea.Model, tea.Cmd) {
	if len(a.list) == 0 {
		return a, nil
	}
	next := a.list[a.cursor]
	if a.session.Configured() && a.session.Draft().ID == next.ID {
		return a, nil
	}
	if a.session.RequestSwitch(next, a.deleteFunc()) {
		return a, nil
	}
	return a.openForm(modeConfirmSwitch, newSwitchPrompt(a.fields))
}

// deleteFunc removes a task from the store and clears the session. It closes
// over pointers only, so it stays valid across model copies.
func (a App) deleteFunc() func(uuid.UUID) {
	tasks, session, log := a.tasks, a.session, a.log
	return func(id uuid.UUID) {
		tasks.DeleteByID(id)
		session.Reset()
		log.Info("task deleted", "id", id)
	}
}

func (a App) save() (tea.Model, tea.Cmd) {
	if !a.session.Configured() {
		return a, nil
	}
	if err := a.session.Save(true); err != nil {
		a.log.Error("failed to save task", "err", err)
		a.setStatus(fmt.Sprintf("Save error: %v", err), true)
		return a, nil
	}
	a.refresh()
	return a, ackCmd(a.session.AckDelay())
}

func (a App) openForm(mode viewMode, form *huh.Form) (tea.Model, tea.Cmd) {
	a.mode = mode
	a.form = form
	return a, a.form.Init()
}

func (a *App) closeForm() {
	a.mode = modeBrowse
	a.form = nil
}

func (a App) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, keys.Back) {
		a.cancelForm()
		return a, nil
	}

	form, cmd := a.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.form = f
	}

	switch a.form.State {
	case huh.StateAborted:
		a.cancelForm()
		return a, nil
	case huh.StateCompleted:
		return a.completeForm()
	}
	return a, cmd
}

func (a *App) cancelForm() {
	switch a.mode {
	case modeEdit:
		a.session.SetEditing(false)
	case modeConfirmSwitch:
		a.session.CancelSwitch()
	}
	a.closeForm()
}

func (a App) completeForm() (tea.Model, tea.Cmd) {
	mode := a.mode
	a.closeForm()

	switch mode {
	case modeAdd:
		t, err := a.fields.newTask(a.loc)
		if err != nil {
			a.setStatus(err.Error(), true)
			return a, nil
		}
		a.tasks.Add(t)
		a.refresh()
		a.cursor = 0
		a.setStatus("Task added", false)

	case modeEdit:
		var err error
		a.session.Edit(func(t *task.Task) {
			err = a.fields.applyTo(t, a.loc)
		})
		a.session.SetEditing(false)
		if err != nil {
			a.setStatus(err.Error(), true)
		}

	case modeConfirmSwitch:
		switch a.fields.switchChoice {
		case choiceSave:
			if err := a.session.ConfirmSaveAndSwitch(); err != nil {
				a.log.Error("failed to save task", "err", err)
				a.setStatus(fmt.Sprintf("Save error: %v", err), true)
				a.session.CancelSwitch()
			}
			a.refresh()
		case choiceDiscard:
			a.session.ConfirmDiscardAndSwitch()
		default:
			a.session.CancelSwitch()
		}

	case modeConfirmDelete:
		if a.fields.confirmDelete {
			a.session.DeleteCurrent()
			a.refresh()
			a.setStatus("Task deleted", false)
		}
	}
	return a, nil
}

func (a *App) refresh() {
	a.list = a.tasks.Tasks()
	if a.cursor >= len(a.list) {
		a.cursor = max(0, len(a.list)-1)
	}
}

func (a *App) setStatus(text string, isError bool) {
	a.status = text
	a.statusErr = isError
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < len(export.Formats)-1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Select):
		a.mode = modeBrowse
		return a, a.doExport(export.Formats[a.exportCursor])
	case key.Matches(msg, keys.Back):
		a.mode = modeBrowse
	}
	return a, nil
}

func (a App) doExport(format string) tea.Cmd {
	tasks := a.tasks.Tasks()
	path := export.DefaultPath(a.cfg.ExportDir, format, a.now())
	loc, log := a.loc, a.log
	return func() tea.Msg {
		if err := export.Write(format, tasks, path, loc); err != nil {
			log.Error("export failed", "format", format, "err", err)
			return statusMsg{text: fmt.Sprintf("Export error: %v", err), isError: true}
		}
		return exportDoneMsg{path: path}
	}
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	contentHeight := a.height - lipgloss.Height(header) - lipgloss.Height(footer)
	if contentHeight < 1 {
		contentHeight = 1
	}

	var content string
	switch {
	case a.isFormActive():
		content = a.renderForm()
	case a.mode == modeExport:
		content = a.renderExportPicker()
	default:
		leftWidth := a.width * 2 / 5
		left := lipgloss.JoinVertical(lipgloss.Left,
			a.renderList(leftWidth),
			a.renderSummary(leftWidth),
		)
		right := a.renderDetail(a.width - leftWidth)
		content = lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("Task Tracker")
	clock := mutedStyle.Render(a.now().In(a.loc).Format("Mon Jan 02 15:04"))

	gap := a.width - lipgloss.Width(title) - lipgloss.Width(clock) - 4
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")
	return headerStyle.Render(lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, clock))
}

func (a App) renderFooter() string {
	left := footerStyle.Render(a.help.View(keys))

	right := ""
	if a.status != "" {
		style := mutedStyle
		if a.statusErr {
			style = errorStyle
		}
		right = style.Render(" " + a.status)
	}

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")
	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}

func (a App) renderForm() string {
	var title string
	switch a.mode {
	case modeAdd:
		title = "New Task"
	case modeEdit:
		title = "Edit Task"
	case modeConfirmSwitch:
		title = "Switch Task"
	case modeConfirmDelete:
		title = "Delete Task"
	}
	content := lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render(title), "", a.form.View())
	return activePanelStyle.Width(a.width - 4).Render(content)
}

func (a App) renderExportPicker() string {
	rows := []string{titleStyle.Render("Export Format"), ""}
	for i, f := range export.Formats {
		cursor := "  "
		style := normalItemStyle
		if i == a.exportCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+formatLabel(f)))
	}
	rows = append(rows, "", mutedStyle.Render("  enter: export  esc: cancel"))
	return activePanelStyle.Width(a.width - 4).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func formatLabel(f string) string {
	switch f {
	case "csv":
		return "CSV"
	case "json":
		return "JSON"
	}
	return f
}
