// Package observable provides a replaying publish/subscribe value holder.
package observable

import "sync"

// Subject holds the last published value and the registered listeners.
// Subscribe replays the last value immediately; Next calls every listener in
// registration order on the publishing goroutine.
type Subject[T any] struct {
	mu        sync.Mutex
	value     T
	listeners []*listener[T]
}

type listener[T any] struct {
	fn func(T)
}

func NewSubject[T any](initial T) *Subject[T] {
	return &Subject[T]{value: initial}
}

func (s *Subject[T]) Value() T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

// Subscribe registers fn and returns the function that unregisters it.
func (s *Subject[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	l := &listener[T]{fn: fn}

	s.mu.Lock()
	current := s.value
	s.listeners = append(s.listeners, l)
	s.mu.Unlock()

	fn(current)

	var once sync.Once
	return func() {
		once.Do(func() { s.remove(l) })
	}
}

func (s *Subject[T]) Next(value T) {
	s.mu.Lock()
	s.value = value
	listeners := make([]*listener[T], len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	for _, l := range listeners {
		l.fn(value)
	}
}

// Len reports how many listeners are registered.
func (s *Subject[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.listeners)
}

func (s *Subject[T]) remove(target *listener[T]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, l := range s.listeners {
		if l == target {
			s.listeners = append(s.listeners[:i], s.listeners[i+1:]...)
			return
		}
	}
}
