package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/sadopc/tasktracker/internal/task"
)

// viewMode is what currently owns the keyboard.
type viewMode int

const (
	modeBrowse viewMode = iota
	modeAdd
	modeEdit
	modeConfirmSwitch
	modeConfirmDelete
	modeExport
)

// --- Messages ---

type tasksChangedMsg struct{}

type statusMsg struct {
	text    string
	isError bool
}

type clockMsg time.Time

type ackExpiredMsg struct{}

type exportDoneMsg struct {
	path string
}

// --- Helpers ---

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

var statusShort = map[task.Status]string{
	task.YetToStart: "To Do",
	task.InProgress: "Doing",
	task.Completed:  "Done",
}

func formatDue(t task.Task, loc *time.Location) string {
	return t.Deadline(loc).Format("Jan 02 2006 15:04")
}

func parseDate(s string, loc *time.Location) (time.Time, error) {
	d, err := time.ParseInLocation(dateLayout, strings.TrimSpace(s), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("date must look like %s", dateLayout)
	}
	return d, nil
}

func parseClock(s string) (hour, minute int, err error) {
	tm, err := time.Parse(timeLayout, strings.TrimSpace(s))
	if err != nil {
		return 0, 0, fmt.Errorf("time must look like %s", timeLayout)
	}
	return tm.Hour(), tm.Minute(), nil
}

func validateDate(s string) error {
	_, err := parseDate(s, time.UTC)
	return err
}

func validateClock(s string) error {
	_, _, err := parseClock(s)
	return err
}

func validateTitle(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("title is required")
	}
	return nil
}

// truncate cuts s to n runes, marking the cut with an ellipsis.
func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 {
		return ""
	}
	if len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "—"
	}
	return s
}
