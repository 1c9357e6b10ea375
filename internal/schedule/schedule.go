// Package schedule is a timer queue on a virtual clock. Nothing fires on its
// own: the owner advances the clock from its frame callback and due timers
// run synchronously, in due order, on the caller's goroutine.
package schedule

import (
	"sort"
	"time"
)

// ID identifies a pending timer. The zero ID never refers to a timer.
type ID uint64

type timer struct {
	id  ID
	due time.Time
	fn  func()
}

// Scheduler is not safe for concurrent use.
type Scheduler struct {
	now    time.Time
	nextID ID
	timers []timer // sorted by due, ties in insertion order
}

// New returns a scheduler whose clock starts at start.
func New(start time.Time) *Scheduler {
	return &Scheduler{now: start}
}

// Now returns the current virtual time.
func (s *Scheduler) Now() time.Time {
	return s.now
}

// After registers fn to run once the clock reaches Now()+d.
func (s *Scheduler) After(d time.Duration, fn func()) ID {
	s.nextID++
	t := timer{id: s.nextID, due: s.now.Add(d), fn: fn}
	i := sort.Search(len(s.timers), func(i int) bool {
		return s.timers[i].due.After(t.due)
	})
	s.timers = append(s.timers, timer{})
	copy(s.timers[i+1:], s.timers[i:])
	s.timers[i] = t
	return t.id
}

// Cancel drops a pending timer. It reports whether the timer was pending.
func (s *Scheduler) Cancel(id ID) bool {
	if id == 0 {
		return false
	}
	for i, t := range s.timers {
		if t.id == id {
			s.timers = append(s.timers[:i], s.timers[i+1:]...)
			return true
		}
	}
	return false
}

// Pending reports whether id is still waiting to fire.
func (s *Scheduler) Pending(id ID) bool {
	for _, t := range s.timers {
		if t.id == id {
			return true
		}
	}
	return false
}

// Len returns the number of pending timers.
func (s *Scheduler) Len() int {
	return len(s.timers)
}

// Advance moves the clock to now and runs every timer that has come due,
// including timers registered by callbacks during the advance. While a
// callback runs the clock reads the callback's due time, so timers it
// registers are relative to when it was supposed to fire. It returns the
// number of callbacks run. A now before the current clock is ignored.
func (s *Scheduler) Advance(now time.Time) int {
	fired := 0
	for len(s.timers) > 0 && !s.timers[0].due.After(now) {
		t := s.timers[0]
		s.timers = s.timers[1:]
		if t.due.After(s.now) {
			s.now = t.due
		}
		t.fn()
		fired++
	}
	if now.After(s.now) {
		s.now = now
	}
	return fired
}

// Reset cancels every pending timer and restarts the clock at start.
func (s *Scheduler) Reset(start time.Time) {
	s.timers = nil
	s.now = start
}
