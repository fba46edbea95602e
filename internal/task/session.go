package task

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// DefaultAckDelay is how long the "saved" acknowledgment stays up.
const DefaultAckDelay = 1500 * time.Millisecond

// ErrNoStore is returned by Save when the session was built without a store.
var ErrNoStore = errors.New("edit session has no task store")

// Updater receives committed drafts. *Store satisfies it.
type Updater interface {
	Update(t Task)
}

// Session edits one task at a time. It keeps a draft the UI mutates and a
// snapshot of the last committed value; the two differ exactly when there
// are unsaved changes.
type Session struct {
	store    Updater
	onDelete func(uuid.UUID)

	draft    Task
	snapshot Task

	// pendingDelete is bound when the pending switch is applied.
	pending       *Task
	pendingDelete func(uuid.UUID)

	configured bool
	editing    bool

	ackDelay time.Duration
	ackUntil time.Time
	now      func() time.Time
}

// NewSession returns an unconfigured session that commits into store.
// A zero ackDelay means DefaultAckDelay.
func NewSession(store Updater, ackDelay time.Duration) *Session {
	if ackDelay <= 0 {
		ackDelay = DefaultAckDelay
	}
	return &Session{
		store:    store,
		ackDelay: ackDelay,
		now:      time.Now,
	}
}

// Configure starts editing t. Draft and snapshot both become copies of t,
// onDelete is bound for DeleteCurrent, and any pending switch is dropped.
func (s *Session) Configure(t Task, onDelete func(uuid.UUID)) {
	s.draft = t
	s.snapshot = t
	s.onDelete = onDelete
	s.pending = nil
	s.pendingDelete = nil
	s.configured = true
	s.editing = false
	s.ackUntil = time.Time{}
}

// Reset returns the session to its unconfigured state, e.g. after the task
// being edited was deleted.
func (s *Session) Reset() {
	s.draft = Task{}
	s.snapshot = Task{}
	s.onDelete = nil
	s.pending = nil
	s.pendingDelete = nil
	s.configured = false
	s.editing = false
	s.ackUntil = time.Time{}
}

// Configured reports whether a task is being edited.
func (s *Session) Configured() bool { return s.configured }

// Draft is the working copy; Snapshot is the last committed value.
func (s *Session) Draft() Task    { return s.draft }
func (s *Session) Snapshot() Task { return s.snapshot }

// Edit applies fn to the draft. The stored task is untouched until Save.
func (s *Session) Edit(fn func(*Task)) {
	fn(&s.draft)
}

// Editing reports whether an edit form is open over the draft.
func (s *Session) Editing() bool     { return s.editing }
func (s *Session) SetEditing(v bool) { s.editing = v }

// IsDirty reports whether the draft differs from the snapshot in any field.
func (s *Session) IsDirty() bool {
	return !s.draft.Equal(s.snapshot)
}

// Save commits the draft to the store and makes it the new snapshot. With
// announce set, SaveAcknowledged reports true for the acknowledgment delay.
func (s *Session) Save(announce bool) error {
	if s.store == nil {
		return ErrNoStore
	}
	s.store.Update(s.draft)
	s.snapshot = s.draft
	s.editing = false

	if announce {
		s.ackUntil = s.now().Add(s.ackDelay)
	}
	return nil
}

// SaveAcknowledged reports whether a "saved" acknowledgment is showing. It
// only reads state, so views may call it freely.
func (s *Session) SaveAcknowledged() bool {
	return !s.ackUntil.IsZero() && s.now().Before(s.ackUntil)
}

// AckDelay is how long SaveAcknowledged stays true after a save.
func (s *Session) AckDelay() time.Duration { return s.ackDelay }

// Discard throws away the draft's changes.
func (s *Session) Discard() {
	s.draft = s.snapshot
	s.editing = false
}

// DeleteCurrent hands the draft's ID to the bound delete callback. Removing
// the task from the store is the callback's job.
func (s *Session) DeleteCurrent() {
	if s.onDelete != nil {
		s.onDelete(s.draft.ID)
	}
}

// RequestSwitch moves the session to next. With unsaved changes it parks
// next as pending and returns false; the caller must then resolve it with
// ConfirmSaveAndSwitch, ConfirmDiscardAndSwitch or CancelSwitch.
func (s *Session) RequestSwitch(next Task, onDelete func(uuid.UUID)) bool {
	if s.IsDirty() {
		p := next
		s.pending = &p
		s.pendingDelete = onDelete
		return false
	}
	s.Configure(next, onDelete)
	return true
}

// NeedsConfirmation reports whether a switch is waiting on the user.
func (s *Session) NeedsConfirmation() bool { return s.pending != nil }

// Pending returns the task waiting to be switched to.
func (s *Session) Pending() (Task, bool) {
	if s.pending == nil {
		return Task{}, false
	}
	return *s.pending, true
}

// ConfirmSaveAndSwitch saves the draft without an acknowledgment, then
// switches to the pending task.
func (s *Session) ConfirmSaveAndSwitch() error {
	if s.pending == nil {
		return nil
	}
	if err := s.Save(false); err != nil {
		return err
	}
	s.applyPending()
	return nil
}

// ConfirmDiscardAndSwitch drops the draft's changes, then switches to the
// pending task.
func (s *Session) ConfirmDiscardAndSwitch() {
	if s.pending == nil {
		return
	}
	s.Discard()
	s.applyPending()
}

// CancelSwitch abandons the pending switch and keeps editing the draft.
func (s *Session) CancelSwitch() {
	s.pending = nil
	s.pendingDelete = nil
}

func (s *Session) applyPending() {
	next, onDelete := *s.pending, s.pendingDelete
	s.Configure(next, onDelete)
}
