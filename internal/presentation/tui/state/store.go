package state

import "sync"

// Store is an observable holder of an immutable view state snapshot.
//
// Writers replace the snapshot through Update; readers never observe a
// partially applied change. Subscribers receive the latest snapshot on a
// channel of capacity one, so a slow subscriber only ever sees the newest
// value and never blocks a writer.
type Store[S any] struct {
	mu   sync.RWMutex
	cur  S
	subs map[int]chan S
	next int
}

// NewStore creates a store holding initial.
func NewStore[S any](initial S) *Store[S] {
	return &Store[S]{cur: initial, subs: map[int]chan S{}}
}

// Get returns the current snapshot.
func (s *Store[S]) Get() S {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur
}

// Update applies fn to the current snapshot and publishes the result.
// fn must return a new value instead of mutating shared slices or maps.
func (s *Store[S]) Update(fn func(S) S) S {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cur = fn(s.cur)
	for _, ch := range s.subs {
		offer(ch, s.cur)
	}
	return s.cur
}

// Subscribe returns a channel primed with the current snapshot and a
// function that ends the subscription and closes the channel.
func (s *Store[S]) Subscribe() (<-chan S, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan S, 1)
	ch <- s.cur
	id := s.next
	s.next++
	s.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.subs, id)
			close(ch)
		})
	}
}

// offer replaces any undelivered value with v.
func offer[S any](ch chan S, v S) {
	for {
		select {
		case ch <- v:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}
