package store

import (
	"context"
	"sync"

	"github.com/tesso57/subsy/internal/application/usecase"
)

// notifier wakes every waiter after a write by closing the current channel.
type notifier struct {
	mu sync.Mutex
	ch chan struct{}
}

func newNotifier() *notifier {
	return &notifier{ch: make(chan struct{})}
}

func (n *notifier) wait() <-chan struct{} {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.ch
}

func (n *notifier) notify() {
	n.mu.Lock()
	defer n.mu.Unlock()
	close(n.ch)
	n.ch = make(chan struct{})
}

// watch emits query results now and after every write until ctx is done or
// the query fails.
func watch[T any](ctx context.Context, n *notifier, query func(context.Context) (T, error)) <-chan usecase.Update[T] {
	out := make(chan usecase.Update[T])
	go func() {
		defer close(out)
		for {
			changed := n.wait()
			v, err := query(ctx)
			if ctx.Err() != nil {
				return
			}
			select {
			case out <- usecase.Update[T]{Value: v, Err: err}:
			case <-ctx.Done():
				return
			}
			if err != nil {
				return
			}
			select {
			case <-changed:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}
