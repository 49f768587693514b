package todolist

import "slices"

// EventKind names the state change an Event reports.
type EventKind int

const (
	EventLoaded EventKind = iota
	EventAdded
	EventRemoved
	EventToggled
	EventEditBegan
	EventEditChanged
	EventEditCommitted
	EventEditCancelled
)

var eventNames = [...]string{
	EventLoaded:        "loaded",
	EventAdded:         "added",
	EventRemoved:       "removed",
	EventToggled:       "toggled",
	EventEditBegan:     "edit-began",
	EventEditChanged:   "edit-changed",
	EventEditCommitted: "edit-committed",
	EventEditCancelled: "edit-cancelled",
}

func (k EventKind) String() string {
	if k >= 0 && int(k) < len(eventNames) {
		return eventNames[k]
	}
	return "unknown"
}

// Event is delivered to observers after each state change. Err carries the
// persistence error of a list mutation, if the write failed.
type Event struct {
	Kind EventKind
	ID   int64
	Err  error
}

// Observer receives events synchronously, after the change is applied.
type Observer func(Event)

type subscriber struct {
	id int
	fn Observer
}

// Subscribe registers fn and returns a function that removes it. Observers
// are called in subscription order.
func (s *Store) Subscribe(fn Observer) (unsubscribe func()) {
	id := s.nextObs
	s.nextObs++
	s.observers = append(s.observers, subscriber{id: id, fn: fn})
	return func() {
		s.observers = slices.DeleteFunc(s.observers, func(o subscriber) bool { return o.id == id })
	}
}

func (s *Store) notify(ev Event) {
	for _, o := range s.observers {
		o.fn(ev)
	}
}
