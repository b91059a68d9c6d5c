package viewmodel

import (
	"sync"
)

// Store holds a value and notifies subscribers when it changes.
// Subscribers only ever see the latest value; intermediate values are
// dropped when a subscriber falls behind.
type Store[T any] struct {
	mu     sync.Mutex
	value  T
	nextID int
	subs   map[int]chan T
}

// NewStore creates a store holding initial
func NewStore[T any](initial T) *Store[T] {
	return &Store[T]{
		value: initial,
		subs:  make(map[int]chan T),
	}
}

// Get returns the current value
func (s *Store[T]) Get() T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

// Set replaces the value and notifies subscribers
func (s *Store[T]) Set(v T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.value = v
	for _, ch := range s.subs {
		publish(ch, v)
	}
}

// Subscribe returns a channel primed with the current value. The
// returned func unsubscribes and closes the channel.
func (s *Store[T]) Subscribe() (<-chan T, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++

	ch := make(chan T, 1)
	ch <- s.value
	s.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			if _, ok := s.subs[id]; ok {
				delete(s.subs, id)
				close(ch)
			}
		})
	}
}

// closeAll unsubscribes everyone
func (s *Store[T]) closeAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, ch := range s.subs {
		delete(s.subs, id)
		close(ch)
	}
}

// publish replaces any unread value in ch with v. Callers hold the store
// lock so there is a single sender.
func publish[T any](ch chan T, v T) {
	select {
	case ch <- v:
		return
	default:
	}

	select {
	case <-ch:
	default:
	}
	ch <- v
}
