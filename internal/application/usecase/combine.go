package usecase

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// CombineLatest joins two live sequences. Once both have produced a value,
// every emission of either source yields combine(latestA, latestB).
//
// The first source error stops both pumps and is sent as the final update.
// Cancelling ctx closes the output without an error. The output is
// unbuffered; a slow reader blocks the pumps rather than queueing results.
func CombineLatest[A, B, R any](ctx context.Context, a <-chan Update[A], b <-chan Update[B], combine func(A, B) R) <-chan Update[R] {
	out := make(chan Update[R])

	go func() {
		defer close(out)

		g, gctx := errgroup.WithContext(ctx)
		var (
			mu         sync.Mutex
			latestA    A
			latestB    B
			haveA      bool
			haveB      bool
			sendLatest = func() error {
				// Held across the send so emissions stay ordered.
				if !haveA || !haveB {
					return nil
				}
				select {
				case out <- Update[R]{Value: combine(latestA, latestB)}:
					return nil
				case <-gctx.Done():
					return nil
				}
			}
		)

		g.Go(func() error {
			return pump(gctx, a, func(v A) error {
				mu.Lock()
				defer mu.Unlock()
				latestA, haveA = v, true
				return sendLatest()
			})
		})
		g.Go(func() error {
			return pump(gctx, b, func(v B) error {
				mu.Lock()
				defer mu.Unlock()
				latestB, haveB = v, true
				return sendLatest()
			})
		})

		if err := g.Wait(); err != nil && ctx.Err() == nil {
			select {
			case out <- Update[R]{Err: err}:
			case <-ctx.Done():
			}
		}
	}()

	return out
}

func pump[T any](ctx context.Context, in <-chan Update[T], handle func(T) error) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case u, ok := <-in:
			if !ok {
				return nil
			}
			if u.Err != nil {
				return u.Err
			}
			if err := handle(u.Value); err != nil {
				return err
			}
		}
	}
}
