package task

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestSession(t *testing.T) (*Session, *Store, *fakeClock) {
	t.Helper()
	st := NewStore(newMemPrefs(), nil)
	clock := &fakeClock{t: time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)}
	s := NewSession(st, 0)
	s.now = clock.Now
	return s, st, clock
}

func noDelete(uuid.UUID) {}

func TestConfigureIsClean(t *testing.T) {
	s, _, _ := newTestSession(t)
	assert.False(t, s.Configured())

	tk := mkTask("X")
	s.Configure(tk, noDelete)

	assert.True(t, s.Configured())
	assert.False(t, s.IsDirty())
	assert.True(t, s.Draft().Equal(tk))
	assert.True(t, s.Snapshot().Equal(tk))
}

func TestEveryFieldMakesDirty(t *testing.T) {
	edits := map[string]func(*Task){
		"title":       func(t *Task) { t.Title = "changed" },
		"dueDate":     func(t *Task) { t.DueDate = t.DueDate.AddDate(0, 0, 1) },
		"dueTime":     func(t *Task) { t.DueTime = t.DueTime.Add(time.Minute) },
		"isDone":      func(t *Task) { t.IsDone = true },
		"status":      func(t *Task) { t.Status = Completed },
		"description": func(t *Task) { t.Description = "d" },
		"remarks":     func(t *Task) { t.Remarks = "r" },
		"quickNotes":  func(t *Task) { t.QuickNotes = "q" },
		"id":          func(t *Task) { t.ID = uuid.New() },
	}
	for name, edit := range edits {
		t.Run(name, func(t *testing.T) {
			s, _, _ := newTestSession(t)
			s.Configure(mkTask("X"), noDelete)
			s.Edit(edit)
			assert.True(t, s.IsDirty())
		})
	}
}

func TestEditBackToOriginalIsClean(t *testing.T) {
	s, _, _ := newTestSession(t)
	tk := mkTask("X")
	s.Configure(tk, noDelete)

	s.Edit(func(t *Task) { t.Title = "Y" })
	require.True(t, s.IsDirty())
	s.Edit(func(t *Task) { t.Title = "X" })
	assert.False(t, s.IsDirty())

	// Same instant in another zone is the same value.
	s.Edit(func(t *Task) { t.DueDate = t.DueDate.In(time.FixedZone("X", 3600)) })
	assert.False(t, s.IsDirty())
}

func TestEditDoesNotTouchStore(t *testing.T) {
	s, st, _ := newTestSession(t)
	tk := mkTask("X")
	st.Add(tk)
	s.Configure(tk, noDelete)

	s.Edit(func(t *Task) { t.Title = "Y" })

	got, _ := st.Get(tk.ID)
	assert.Equal(t, "X", got.Title)
}

func TestDiscardRestoresSnapshot(t *testing.T) {
	s, _, _ := newTestSession(t)
	tk := mkTask("X")
	s.Configure(tk, noDelete)
	s.SetEditing(true)

	s.Edit(func(t *Task) {
		t.Title = "Y"
		t.Status = InProgress
		t.Remarks = "r"
		t.DueDate = t.DueDate.AddDate(0, 1, 0)
	})
	s.Discard()

	assert.False(t, s.IsDirty())
	assert.True(t, s.Draft().Equal(tk))
	assert.False(t, s.Editing())
}

func TestSaveCommitsDraft(t *testing.T) {
	s, st, clock := newTestSession(t)
	tk := Task{ID: uuid.New(), Title: "X"}
	st.Add(tk)
	s.Configure(tk, noDelete)

	s.Edit(func(t *Task) { t.Title = "Y" })
	require.True(t, s.IsDirty())

	require.NoError(t, s.Save(true))

	got, ok := st.Get(tk.ID)
	require.True(t, ok)
	assert.Equal(t, "Y", got.Title)
	assert.False(t, s.IsDirty())
	assert.True(t, s.Snapshot().Equal(s.Draft()))

	assert.True(t, s.SaveAcknowledged())
	clock.Advance(time.Second)
	assert.True(t, s.SaveAcknowledged())
	clock.Advance(600 * time.Millisecond)
	assert.False(t, s.SaveAcknowledged())
}

func TestSaveWithoutAnnounce(t *testing.T) {
	s, st, _ := newTestSession(t)
	tk := mkTask("X")
	st.Add(tk)
	s.Configure(tk, noDelete)
	s.Edit(func(t *Task) { t.Status = Completed })

	require.NoError(t, s.Save(false))

	got, _ := st.Get(tk.ID)
	assert.Equal(t, Completed, got.Status)
	assert.False(t, s.IsDirty())
	assert.False(t, s.SaveAcknowledged())
}

func TestSaveWithoutStore(t *testing.T) {
	s := NewSession(nil, 0)
	s.Configure(mkTask("X"), noDelete)
	s.Edit(func(t *Task) { t.Title = "Y" })

	assert.ErrorIs(t, s.Save(true), ErrNoStore)
	assert.True(t, s.IsDirty(), "failed save keeps the snapshot")
}

func TestSaveOfDeletedTaskIsSilent(t *testing.T) {
	s, st, _ := newTestSession(t)
	tk := mkTask("X")
	s.Configure(tk, noDelete)
	s.Edit(func(t *Task) { t.Title = "Y" })

	require.NoError(t, s.Save(false))
	assert.Equal(t, 0, st.Len())
	assert.False(t, s.IsDirty())
}

func TestAckDelayDefault(t *testing.T) {
	assert.Equal(t, DefaultAckDelay, NewSession(nil, 0).AckDelay())
	assert.Equal(t, time.Second, NewSession(nil, time.Second).AckDelay())
}

func TestDeleteCurrentUsesCallback(t *testing.T) {
	s, st, _ := newTestSession(t)
	tk := mkTask("X")
	st.Add(tk)
	st.Add(mkTask("other"))

	var deleted uuid.UUID
	s.Configure(tk, func(id uuid.UUID) {
		deleted = id
		st.DeleteByID(id)
	})
	s.DeleteCurrent()

	assert.Equal(t, tk.ID, deleted)
	assert.Equal(t, []string{"other"}, titles(st.Tasks()))
}

func TestDeleteCurrentWithoutCallback(t *testing.T) {
	s, st, _ := newTestSession(t)
	tk := mkTask("X")
	st.Add(tk)
	s.Configure(tk, nil)

	s.DeleteCurrent()
	assert.Equal(t, 1, st.Len(), "session never deletes by itself")
}

func TestRequestSwitchClean(t *testing.T) {
	s, _, _ := newTestSession(t)
	a, b := mkTask("A"), mkTask("B")
	s.Configure(a, noDelete)

	assert.True(t, s.RequestSwitch(b, noDelete))
	assert.True(t, s.Draft().Equal(b))
	assert.False(t, s.NeedsConfirmation())
}

func TestRequestSwitchDirtyParks(t *testing.T) {
	s, _, _ := newTestSession(t)
	a, b := mkTask("A"), mkTask("B")
	s.Configure(a, noDelete)
	s.Edit(func(t *Task) { t.Title = "A2" })
	draft, snap := s.Draft(), s.Snapshot()

	assert.False(t, s.RequestSwitch(b, noDelete))

	assert.True(t, s.NeedsConfirmation())
	p, ok := s.Pending()
	require.True(t, ok)
	assert.True(t, p.Equal(b))
	assert.True(t, s.Draft().Equal(draft))
	assert.True(t, s.Snapshot().Equal(snap))
}

func TestRequestSwitchSameIDStillParks(t *testing.T) {
	s, _, _ := newTestSession(t)
	a := mkTask("A")
	s.Configure(a, noDelete)
	s.Edit(func(t *Task) { t.Title = "A2" })

	assert.False(t, s.RequestSwitch(a, noDelete))
	assert.True(t, s.NeedsConfirmation())
}

func TestConfirmDiscardAndSwitch(t *testing.T) {
	s, st, _ := newTestSession(t)
	a, b := mkTask("A"), mkTask("B")
	st.Add(a)
	st.Add(b)
	s.Configure(a, noDelete)
	s.Edit(func(t *Task) { t.Title = "A2" })
	s.RequestSwitch(b, noDelete)

	s.ConfirmDiscardAndSwitch()

	assert.True(t, s.Draft().Equal(b))
	assert.True(t, s.Snapshot().Equal(b))
	assert.False(t, s.NeedsConfirmation())
	got, _ := st.Get(a.ID)
	assert.Equal(t, "A", got.Title, "discarded edits never reach the store")
}

func TestConfirmSaveAndSwitch(t *testing.T) {
	s, st, _ := newTestSession(t)
	a, b := mkTask("A"), mkTask("B")
	st.Add(a)
	st.Add(b)
	s.Configure(a, noDelete)
	s.Edit(func(t *Task) { t.Title = "A2" })
	s.RequestSwitch(b, noDelete)

	require.NoError(t, s.ConfirmSaveAndSwitch())

	got, _ := st.Get(a.ID)
	assert.Equal(t, "A2", got.Title)
	assert.True(t, s.Draft().Equal(b))
	assert.False(t, s.IsDirty())
	assert.False(t, s.NeedsConfirmation())
	assert.False(t, s.SaveAcknowledged(), "switch saves are not announced")
}

func TestConfirmBindsPendingDeleteCallback(t *testing.T) {
	s, _, _ := newTestSession(t)
	a, b := mkTask("A"), mkTask("B")

	var calls []string
	s.Configure(a, func(uuid.UUID) { calls = append(calls, "a") })
	s.Edit(func(t *Task) { t.Title = "A2" })
	s.RequestSwitch(b, func(uuid.UUID) { calls = append(calls, "b") })

	s.DeleteCurrent()
	s.ConfirmDiscardAndSwitch()
	s.DeleteCurrent()

	assert.Equal(t, []string{"a", "b"}, calls)
}

func TestConfirmWithoutPendingIsNoop(t *testing.T) {
	s, st, _ := newTestSession(t)
	a := mkTask("A")
	st.Add(a)
	s.Configure(a, noDelete)
	s.Edit(func(t *Task) { t.Title = "A2" })

	require.NoError(t, s.ConfirmSaveAndSwitch())
	s.ConfirmDiscardAndSwitch()

	assert.True(t, s.IsDirty())
	got, _ := st.Get(a.ID)
	assert.Equal(t, "A", got.Title)
}

func TestCancelSwitchKeepsDraft(t *testing.T) {
	s, _, _ := newTestSession(t)
	a, b := mkTask("A"), mkTask("B")
	s.Configure(a, noDelete)
	s.Edit(func(t *Task) { t.Title = "A2" })
	s.RequestSwitch(b, noDelete)

	s.CancelSwitch()

	assert.False(t, s.NeedsConfirmation())
	assert.Equal(t, "A2", s.Draft().Title)
	assert.True(t, s.IsDirty())
}

func TestConfigureClearsPending(t *testing.T) {
	s, _, _ := newTestSession(t)
	a, b, c := mkTask("A"), mkTask("B"), mkTask("C")
	s.Configure(a, noDelete)
	s.Edit(func(t *Task) { t.Title = "A2" })
	s.RequestSwitch(b, noDelete)

	s.Configure(c, noDelete)

	assert.False(t, s.NeedsConfirmation())
	assert.False(t, s.IsDirty())
}

func TestSessionScenario(t *testing.T) {
	s, st, clock := newTestSession(t)
	tk := Task{ID: uuid.New(), Title: "X"}
	st.Add(tk)
	s.Configure(tk, noDelete)

	s.Edit(func(t *Task) { t.Title = "Y" })
	assert.True(t, s.IsDirty())

	require.NoError(t, s.Save(true))
	got, _ := st.Get(tk.ID)
	assert.Equal(t, "Y", got.Title)
	assert.False(t, s.IsDirty())
	assert.True(t, s.SaveAcknowledged())

	clock.Advance(s.AckDelay())
	assert.False(t, s.SaveAcknowledged())
}

func TestReset(t *testing.T) {
	s, _, _ := newTestSession(t)
	called := false
	s.Configure(mkTask("A"), func(uuid.UUID) { called = true })
	s.Edit(func(t *Task) { t.Title = "A2" })
	s.RequestSwitch(mkTask("B"), noDelete)

	s.Reset()

	assert.False(t, s.Configured())
	assert.False(t, s.IsDirty())
	assert.False(t, s.NeedsConfirmation())
	s.DeleteCurrent()
	assert.False(t, called, "reset unbinds the delete callback")
}

func TestSwitchClearsSaveAcknowledgment(t *testing.T) {
	s, st, _ := newTestSession(t)
	a, b := mkTask("A"), mkTask("B")
	st.Add(a)
	st.Add(b)
	s.Configure(a, noDelete)
	s.Edit(func(t *Task) { t.Title = "A2" })
	require.NoError(t, s.Save(true))
	require.True(t, s.SaveAcknowledged())

	require.True(t, s.RequestSwitch(b, noDelete))
	assert.False(t, s.SaveAcknowledged(), "notice belongs to the task that was saved")
}

func TestSaveAcknowledgedDoesNotMutate(t *testing.T) {
	s, st, clock := newTestSession(t)
	tk := mkTask("A")
	st.Add(tk)
	s.Configure(tk, noDelete)
	require.NoError(t, s.Save(true))

	until := s.ackUntil
	clock.Advance(2 * s.AckDelay())
	assert.False(t, s.SaveAcknowledged())
	assert.Equal(t, until, s.ackUntil)
}
