package task

import (
	"encoding/json"
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/sadopc/tasktracker/internal/store"
)

// StorageKey is the preference key holding the encoded task list.
const StorageKey = "TaskTracker.Tasks.v1"

// Prefs is the persistence boundary the task store writes through.
// *store.Store satisfies it.
type Prefs interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
}

// Store owns the ordered task list and writes the whole list to Prefs after
// every mutation. Persistence failures are logged and never undo the
// in-memory change.
type Store struct {
	mu    sync.Mutex
	prefs Prefs
	log   *slog.Logger
	tasks []Task

	observers map[int]func([]Task)
	nextObs   int
}

// NewStore creates a store over prefs and loads whatever is persisted.
func NewStore(prefs Prefs, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{
		prefs:     prefs,
		log:       logger,
		observers: map[int]func([]Task){},
	}
	s.LoadAll()
	return s
}

// Tasks returns a copy of the list in display order.
func (s *Store) Tasks() []Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// Get returns the stored task with the given id.
func (s *Store) Get(id uuid.UUID) (Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return Task{}, false
}

// Add inserts t at the front of the list. IDs are not checked for
// uniqueness; New always generates a fresh one.
func (s *Store) Add(t Task) {
	s.mu.Lock()
	s.tasks = append([]Task{t}, s.tasks...)
	s.persistLocked()
	list := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(list)
}

// Update replaces the task with t.ID in place. An unknown ID is ignored.
func (s *Store) Update(t Task) {
	s.mu.Lock()
	idx := -1
	for i := range s.tasks {
		if s.tasks[i].ID == t.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return
	}
	s.tasks[idx] = t
	s.persistLocked()
	list := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(list)
}

// DeleteByID removes every task with the given id. Nothing matching is not an
// error, and the list is written back either way.
func (s *Store) DeleteByID(id uuid.UUID) {
	s.mu.Lock()
	kept := s.tasks[:0:0]
	for _, t := range s.tasks {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	s.tasks = kept
	s.persistLocked()
	list := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(list)
}

// LoadAll replaces the in-memory list with the persisted one. A missing key
// leaves the list as it is; so does undecodable data, which is logged.
func (s *Store) LoadAll() {
	data, err := s.prefs.Get(StorageKey)
	if errors.Is(err, store.ErrNotFound) {
		return
	}
	if err != nil {
		s.log.Error("failed to load tasks", "key", StorageKey, "err", err)
		return
	}

	var loaded []Task
	if err := json.Unmarshal(data, &loaded); err != nil {
		s.log.Error("failed to decode tasks", "key", StorageKey, "bytes", len(data), "err", err)
		return
	}

	s.mu.Lock()
	s.tasks = loaded
	list := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(list)
}

// Persist writes the full list to Prefs.
func (s *Store) Persist() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.persistLocked()
}

func (s *Store) persistLocked() {
	list := s.tasks
	if list == nil {
		list = []Task{}
	}
	data, err := json.Marshal(list)
	if err != nil {
		s.log.Error("failed to encode tasks", "count", len(list), "err", err)
		return
	}
	if err := s.prefs.Set(StorageKey, data); err != nil {
		s.log.Error("failed to save tasks", "key", StorageKey, "count", len(list), "err", err)
	}
}

func (s *Store) snapshotLocked() []Task {
	out := make([]Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Subscribe registers fn to be called with a copy of the list after every
// applied change. The returned func removes the subscription.
func (s *Store) Subscribe(fn func([]Task)) (cancel func()) {
	s.mu.Lock()
	id := s.nextObs
	s.nextObs++
	s.observers[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.observers, id)
		s.mu.Unlock()
	}
}

func (s *Store) notify(list []Task) {
	s.mu.Lock()
	fns := make([]func([]Task), 0, len(s.observers))
	for _, fn := range s.observers {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	// Copies are taken up front so no observer sees another's edits.
	copies := make([][]Task, len(fns))
	for i := range fns {
		copies[i] = append([]Task(nil), list...)
	}
	for i, fn := range fns {
		fn(copies[i])
	}
}
