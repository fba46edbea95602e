package task

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Status is the progress state of a task.
type Status int

const (
	YetToStart Status = iota
	InProgress
	Completed
)

// Statuses lists every status in display order.
var Statuses = []Status{YetToStart, InProgress, Completed}

var statusTokens = map[Status]string{
	YetToStart: "Yet to Start",
	InProgress: "In Progress",
	Completed:  "Completed",
}

// String returns the persisted token, e.g. "In Progress".
func (s Status) String() string {
	if tok, ok := statusTokens[s]; ok {
		return tok
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Icon is a one-glyph marker for list rows.
func (s Status) Icon() string {
	switch s {
	case InProgress:
		return "◐"
	case Completed:
		return "✓"
	default:
		return "○"
	}
}

// MarshalText encodes s as its token; unknown values are an error.
func (s Status) MarshalText() ([]byte, error) {
	tok, ok := statusTokens[s]
	if !ok {
		return nil, fmt.Errorf("unknown status %d", int(s))
	}
	return []byte(tok), nil
}

func (s *Status) UnmarshalText(b []byte) error {
	v, err := ParseStatus(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// ParseStatus maps a persisted token back to its Status.
func ParseStatus(tok string) (Status, error) {
	for s, t := range statusTokens {
		if t == tok {
			return s, nil
		}
	}
	return YetToStart, fmt.Errorf("unknown status %q", tok)
}

// Task is a single tracked item. Tasks are values: the store replaces them
// by ID, nothing holds a reference into the list.
type Task struct {
	ID      uuid.UUID `json:"id"`
	Title   string    `json:"title"`
	DueDate time.Time `json:"dueDate"`
	// DueTime only contributes its hour and minute.
	DueTime time.Time `json:"dueTime"`
	// IsDone is kept for compatibility with stored data; nothing sets it.
	IsDone      bool   `json:"isDone"`
	Status      Status `json:"status"`
	Description string `json:"description"`
	Remarks     string `json:"remarks"`
	QuickNotes  string `json:"quickNotes"`
}

// record is the persisted shape. Every key is required and may not be null;
// pointers tell an absent key from a zero value.
type record struct {
	ID          *uuid.UUID `json:"id"`
	Title       *string    `json:"title"`
	DueDate     *time.Time `json:"dueDate"`
	DueTime     *time.Time `json:"dueTime"`
	IsDone      *bool      `json:"isDone"`
	Status      *Status    `json:"status"`
	Description *string    `json:"description"`
	Remarks     *string    `json:"remarks"`
	QuickNotes  *string    `json:"quickNotes"`
}

func (r record) missing() []string {
	var out []string
	check := func(name string, present bool) {
		if !present {
			out = append(out, name)
		}
	}
	check("id", r.ID != nil)
	check("title", r.Title != nil)
	check("dueDate", r.DueDate != nil)
	check("dueTime", r.DueTime != nil)
	check("isDone", r.IsDone != nil)
	check("status", r.Status != nil)
	check("description", r.Description != nil)
	check("remarks", r.Remarks != nil)
	check("quickNotes", r.QuickNotes != nil)
	return out
}

// UnmarshalJSON rejects records with a missing or null key, or a nil id.
func (t *Task) UnmarshalJSON(b []byte) error {
	var r record
	if err := json.Unmarshal(b, &r); err != nil {
		return err
	}
	if missing := r.missing(); len(missing) > 0 {
		return fmt.Errorf("task record missing %s", strings.Join(missing, ", "))
	}
	if *r.ID == uuid.Nil {
		return errors.New("task record has a nil id")
	}

	*t = Task{
		ID:          *r.ID,
		Title:       *r.Title,
		DueDate:     *r.DueDate,
		DueTime:     *r.DueTime,
		IsDone:      *r.IsDone,
		Status:      *r.Status,
		Description: *r.Description,
		Remarks:     *r.Remarks,
		QuickNotes:  *r.QuickNotes,
	}
	return nil
}

// New builds a task with a fresh ID. Title and description are trimmed.
func New(title string, dueDate, dueTime time.Time, description string) Task {
	return Task{
		ID:          uuid.New(),
		Title:       strings.TrimSpace(title),
		DueDate:     dueDate.Round(0),
		DueTime:     dueTime.Round(0),
		Status:      YetToStart,
		Description: strings.TrimSpace(description),
	}
}

// Equal reports whether every field of t and o matches.
func (t Task) Equal(o Task) bool {
	return t.ID == o.ID &&
		t.Title == o.Title &&
		t.DueDate.Equal(o.DueDate) &&
		t.DueTime.Equal(o.DueTime) &&
		t.IsDone == o.IsDone &&
		t.Status == o.Status &&
		t.Description == o.Description &&
		t.Remarks == o.Remarks &&
		t.QuickNotes == o.QuickNotes
}

// Deadline combines the calendar date of DueDate with the hour and minute of
// DueTime, both read in loc. A nil loc means time.Local.
func (t Task) Deadline(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	d := t.DueDate.In(loc)
	tm := t.DueTime.In(loc)
	return time.Date(d.Year(), d.Month(), d.Day(), tm.Hour(), tm.Minute(), 0, 0, loc)
}
