package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/sadopc/tasktracker/internal/task"
)

const (
	choiceSave    = "save"
	choiceDiscard = "discard"
	choiceCancel  = "cancel"
)

// formFields backs every huh form. Pointers survive the value copies
// Bubble Tea makes of the model.
type formFields struct {
	title       string
	dueDate     string
	dueTime     string
	status      task.Status
	description string
	remarks     string
	quickNotes  string

	switchChoice  string
	confirmDelete bool
}

func (f *formFields) resetForAdd(now time.Time) {
	*f = formFields{
		dueDate: now.Format(dateLayout),
		dueTime: now.Format(timeLayout),
	}
}

func (f *formFields) loadTask(t task.Task, loc *time.Location) {
	dl := t.Deadline(loc)
	f.title = t.Title
	f.dueDate = dl.Format(dateLayout)
	f.dueTime = dl.Format(timeLayout)
	f.status = t.Status
	f.description = t.Description
	f.remarks = t.Remarks
	f.quickNotes = t.QuickNotes
}

// applyTo copies the form onto t. Due date and time are only replaced when
// the calendar day or the hour/minute actually changed, so submitting an
// untouched form leaves t equal to what it was.
func (f *formFields) applyTo(t *task.Task, loc *time.Location) error {
	day, err := parseDate(f.dueDate, loc)
	if err != nil {
		return err
	}
	hour, minute, err := parseClock(f.dueTime)
	if err != nil {
		return err
	}

	cur := t.Deadline(loc)
	if cur.Year() != day.Year() || cur.Month() != day.Month() || cur.Day() != day.Day() {
		t.DueDate = day
	}
	if cur.Hour() != hour || cur.Minute() != minute {
		t.DueTime = time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, loc)
	}

	t.Title = strings.TrimSpace(f.title)
	t.Status = f.status
	t.Description = f.description
	t.Remarks = f.remarks
	t.QuickNotes = f.quickNotes
	return nil
}

// newTask builds the task the add form describes.
func (f *formFields) newTask(loc *time.Location) (task.Task, error) {
	day, err := parseDate(f.dueDate, loc)
	if err != nil {
		return task.Task{}, err
	}
	hour, minute, err := parseClock(f.dueTime)
	if err != nil {
		return task.Task{}, err
	}
	at := time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, loc)
	return task.New(f.title, day, at, f.description), nil
}

func statusOptions() []huh.Option[task.Status] {
	opts := make([]huh.Option[task.Status], len(task.Statuses))
	for i, s := range task.Statuses {
		opts[i] = huh.NewOption(s.Icon()+" "+s.String(), s)
	}
	return opts
}

func newAddForm(f *formFields) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Title").Placeholder("Enter task title...").
				Validate(validateTitle).Value(&f.title),
			huh.NewInput().Title("Due date (YYYY-MM-DD)").Validate(validateDate).Value(&f.dueDate),
			huh.NewInput().Title("Time (HH:MM)").Validate(validateClock).Value(&f.dueTime),
			huh.NewText().Title("Description").Placeholder("Add description...").Value(&f.description),
		),
	).WithShowHelp(true).WithShowErrors(true)
}

func newEditForm(f *formFields) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Title").Validate(validateTitle).Value(&f.title),
			huh.NewInput().Title("Due date (YYYY-MM-DD)").Validate(validateDate).Value(&f.dueDate),
			huh.NewInput().Title("Time (HH:MM)").Validate(validateClock).Value(&f.dueTime),
			huh.NewSelect[task.Status]().Title("Status").Options(statusOptions()...).Value(&f.status),
		).Title("Task"),
		huh.NewGroup(
			huh.NewText().Title("Description").Value(&f.description),
			huh.NewText().Title("Remarks").Value(&f.remarks),
			huh.NewText().Title("Quick notes").Value(&f.quickNotes),
		).Title("Notes"),
	).WithShowHelp(true).WithShowErrors(true)
}

func newSwitchPrompt(f *formFields) *huh.Form {
	f.switchChoice = choiceSave
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Unsaved Changes").
				Description("You have unsaved edits. Save before switching tasks?").
				Options(
					huh.NewOption("Save Changes", choiceSave),
					huh.NewOption("Discard", choiceDiscard),
					huh.NewOption("Cancel", choiceCancel),
				).
				Value(&f.switchChoice),
		),
	).WithShowHelp(true)
}

func newDeletePrompt(f *formFields) *huh.Form {
	f.confirmDelete = false
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Delete Task?").
				Description("Are you sure you want to delete this task?").
				Affirmative("Delete").
				Negative("Cancel").
				Value(&f.confirmDelete),
		),
	).WithShowHelp(true)
}
