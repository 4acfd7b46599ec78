// Package scope runs view-model work in the background for as long as the
// owning screen lives.
package scope

import (
	"context"
	"sync"
)

// Scope owns a context that is cancelled on Close. Work started through it
// stops receiving a live context once the scope is closed.
type Scope struct {
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu      sync.Mutex
	closed  bool
	queue   []func(context.Context)
	running bool
	pending sync.WaitGroup
}

// New creates a scope derived from parent.
func New(parent context.Context) *Scope {
	ctx, cancel := context.WithCancel(parent)
	return &Scope{ctx: ctx, cancel: cancel}
}

// Context returns the scope context.
func (s *Scope) Context() context.Context { return s.ctx }

// Launch runs fn on its own goroutine. It reports false when the scope is
// already closed.
func (s *Scope) Launch(fn func(ctx context.Context)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		fn(s.ctx)
	}()
	return true
}

// Enqueue runs fn after every previously enqueued function has finished.
// Functions still queued when the scope closes are dropped.
func (s *Scope) Enqueue(fn func(ctx context.Context)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	s.pending.Add(1)
	s.queue = append(s.queue, fn)
	if !s.running {
		s.running = true
		s.wg.Add(1)
		go s.drain()
	}
	return true
}

func (s *Scope) drain() {
	defer s.wg.Done()
	for {
		s.mu.Lock()
		if len(s.queue) == 0 {
			s.running = false
			s.mu.Unlock()
			return
		}
		fn := s.queue[0]
		s.queue = s.queue[1:]
		s.mu.Unlock()

		if s.ctx.Err() == nil {
			fn(s.ctx)
		}
		s.pending.Done()
	}
}

// Wait blocks until the enqueued functions have finished. Goroutines
// started with Launch are not waited for.
func (s *Scope) Wait() {
	s.pending.Wait()
}

// Close cancels the scope and waits for its goroutines to return.
func (s *Scope) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.cancel()
	s.wg.Wait()
}
