// Package clock abstracts wall time and deferred callbacks.
package clock

import (
	"sort"
	"sync"
	"time"
)

type Clock interface {
	Now() time.Time
	// AfterFunc runs f once after d has elapsed.
	AfterFunc(d time.Duration, f func())
}

type Real struct{}

func (Real) Now() time.Time { return time.Now() }

func (Real) AfterFunc(d time.Duration, f func()) { time.AfterFunc(d, f) }

// Manual only moves when Advance is called. Due callbacks run on the caller's
// goroutine in deadline order.
type Manual struct {
	mu      sync.Mutex
	now     time.Time
	pending []timer
	seq     int
}

type timer struct {
	at  time.Time
	seq int
	fn  func()
}

func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

func (m *Manual) AfterFunc(d time.Duration, f func()) {
	m.mu.Lock()
	m.seq++
	m.pending = append(m.pending, timer{at: m.now.Add(d), seq: m.seq, fn: f})
	m.mu.Unlock()
}

func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	m.now = m.now.Add(d)
	now := m.now
	var due, rest []timer
	for _, t := range m.pending {
		if !t.at.After(now) {
			due = append(due, t)
		} else {
			rest = append(rest, t)
		}
	}
	m.pending = rest
	m.mu.Unlock()

	sort.Slice(due, func(i, j int) bool {
		if due[i].at.Equal(due[j].at) {
			return due[i].seq < due[j].seq
		}
		return due[i].at.Before(due[j].at)
	})
	for _, t := range due {
		t.fn()
	}
}

// Pending reports how many callbacks have not fired yet.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pending)
}
