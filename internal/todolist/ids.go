package todolist

import "time"

// IDGenerator hands out item identifiers.
type IDGenerator interface {
	Next() int64
}

// ClockIDs derives ids from the wall clock in milliseconds. Calls within
// the same millisecond (or a clock stepping backwards) get last+1, so the
// sequence is strictly increasing.
type ClockIDs struct {
	now  func() time.Time
	last int64
}

// NewClockIDs returns a generator reading now; nil means time.Now.
func NewClockIDs(now func() time.Time) *ClockIDs {
	if now == nil {
		now = time.Now
	}
	return &ClockIDs{now: now}
}

func (g *ClockIDs) Next() int64 {
	id := g.now().UnixMilli()
	if id <= g.last {
		id = g.last + 1
	}
	g.last = id
	return id
}
