// Package todolist owns the todo list and its inline edit session.
//
// A Store applies user intents (add, toggle, edit, delete), writes the list
// to a store.Backend after every list mutation and notifies observers after
// every state change. Invalid input never produces an error: unknown ids
// and blank text degrade to no-ops, reported only through boolean results.
//
// A Store is not safe for concurrent use.
package todolist

import (
	"errors"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/store"
)

// DefaultKey is the backend key the list is stored under.
const DefaultKey = "todos"

// EditSession is the transient state of an inline edit. It is never
// persisted.
type EditSession struct {
	ID   int64
	Text string
}

// Store holds the list, the optional edit session and the observers.
type Store struct {
	backend store.Backend
	key     string
	ids     IDGenerator
	log     *log.Logger

	items []model.Item
	edit  *EditSession

	observers []subscriber
	nextObs   int
	err       error
}

// Option configures a Store.
type Option func(*Store)

// WithKey overrides DefaultKey.
func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// WithIDs overrides the clock-based id generator.
func WithIDs(g IDGenerator) Option {
	return func(s *Store) { s.ids = g }
}

// WithLogger sets the logger; the default discards everything.
func WithLogger(l *log.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// New returns an empty Store writing to backend. Call Load to read the
// persisted list.
func New(backend store.Backend, opts ...Option) *Store {
	s := &Store{
		backend: backend,
		key:     DefaultKey,
		ids:     NewClockIDs(nil),
		log:     log.New(io.Discard),
		items:   []model.Item{},
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Load replaces the in-memory list with the persisted one. A missing key,
// a read failure or an unusable snapshot all leave an empty list.
func (s *Store) Load() {
	s.items = []model.Item{}
	s.edit = nil

	data, err := s.backend.Get(s.key)
	switch {
	case errors.Is(err, store.ErrNotFound):
		s.log.Debug("no saved list", "key", s.key)
	case err != nil:
		s.log.Warn("load failed, starting empty", "key", s.key, "err", err)
	default:
		items, dropped, err := DecodeSnapshot(data)
		if err != nil {
			s.log.Warn("unreadable saved list, starting empty", "key", s.key, "err", err)
			break
		}
		if dropped > 0 {
			s.log.Warn("dropped items with duplicate ids", "count", dropped)
		}
		s.items = items
		s.log.Debug("loaded", "key", s.key, "items", len(items))
	}
	s.notify(Event{Kind: EventLoaded})
}

// Add appends a new item when the trimmed text is non-empty.
func (s *Store) Add(text string) (model.Item, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return model.Item{}, false
	}
	it := model.Item{ID: s.freshID(), Text: text}
	s.items = append(s.items, it)
	s.log.Debug("added", "id", it.ID)
	s.mutated(Event{Kind: EventAdded, ID: it.ID})
	return it, true
}

// Remove deletes the item with id. Removing the item under edit also ends
// the edit session.
func (s *Store) Remove(id int64) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	if s.edit != nil && s.edit.ID == id {
		s.edit = nil
	}
	s.log.Debug("removed", "id", id)
	s.mutated(Event{Kind: EventRemoved, ID: id})
	return true
}

// ToggleComplete flips the completed flag of the item with id.
func (s *Store) ToggleComplete(id int64) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.items[i].Completed = !s.items[i].Completed
	s.log.Debug("toggled", "id", id, "completed", s.items[i].Completed)
	s.mutated(Event{Kind: EventToggled, ID: id})
	return true
}

// BeginEdit opens an edit session on the item with id, replacing any
// session already open.
func (s *Store) BeginEdit(id int64) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.edit = &EditSession{ID: id, Text: s.items[i].Text}
	s.notify(Event{Kind: EventEditBegan, ID: id})
	return true
}

// UpdateEditText replaces the working text of the open session.
func (s *Store) UpdateEditText(text string) bool {
	if s.edit == nil {
		return false
	}
	s.edit.Text = text
	s.notify(Event{Kind: EventEditChanged, ID: s.edit.ID})
	return true
}

// CommitEdit writes the trimmed working text into the edited item and
// closes the session. Blank text closes the session like CancelEdit and
// leaves the item unchanged.
func (s *Store) CommitEdit() bool {
	if s.edit == nil {
		return false
	}
	ed := *s.edit
	s.edit = nil

	text := strings.TrimSpace(ed.Text)
	i := s.index(ed.ID)
	if text == "" || i < 0 {
		s.log.Debug("edit discarded", "id", ed.ID)
		s.notify(Event{Kind: EventEditCancelled, ID: ed.ID})
		return false
	}
	s.items[i].Text = text
	s.log.Debug("edited", "id", ed.ID)
	s.mutated(Event{Kind: EventEditCommitted, ID: ed.ID})
	return true
}

// CancelEdit closes the edit session without touching the list.
func (s *Store) CancelEdit() {
	if s.edit == nil {
		return
	}
	id := s.edit.ID
	s.edit = nil
	s.notify(Event{Kind: EventEditCancelled, ID: id})
}

// Persist writes the list under the store key, overwriting prior contents.
func (s *Store) Persist() error {
	data, err := EncodeSnapshot(s.items)
	if err != nil {
		return err
	}
	return s.backend.Set(s.key, data)
}

// Err reports the outcome of the most recent write; nil after a success.
func (s *Store) Err() error { return s.err }

// Items returns a copy of the list in insertion order.
func (s *Store) Items() []model.Item {
	out := make([]model.Item, len(s.items))
	copy(out, s.items)
	return out
}

// Len is the number of items.
func (s *Store) Len() int { return len(s.items) }

// Find returns the item with id.
func (s *Store) Find(id int64) (model.Item, bool) {
	if i := s.index(id); i >= 0 {
		return s.items[i], true
	}
	return model.Item{}, false
}

// Edit returns the open edit session, if any.
func (s *Store) Edit() (EditSession, bool) {
	if s.edit == nil {
		return EditSession{}, false
	}
	return *s.edit, true
}

// Stats counts completed and pending items.
func (s *Store) Stats() (done, pending int) {
	return model.Stats(s.items)
}

func (s *Store) index(id int64) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) freshID() int64 {
	id := s.ids.Next()
	for s.index(id) >= 0 {
		id = s.ids.Next()
	}
	return id
}

func (s *Store) mutated(ev Event) {
	s.err = s.Persist()
	if s.err != nil {
		s.log.Error("save failed", "key", s.key, "err", s.err)
	}
	ev.Err = s.err
	s.notify(ev)
}
