package scope

import "context"

// Poster hands callbacks to the UI thread.
type Poster interface {
	// Post delivers fn unless ctx ends first.
	Post(ctx context.Context, fn func())
}

// Inline runs callbacks on the calling goroutine. Used by the CLI and tests.
type Inline struct{}

// Post runs fn immediately.
func (Inline) Post(_ context.Context, fn func()) { fn() }

// Mailbox queues callbacks until the UI loop receives them from C.
type Mailbox struct {
	ch chan func()
}

// NewMailbox creates a mailbox with the given buffer size.
func NewMailbox(size int) *Mailbox {
	return &Mailbox{ch: make(chan func(), size)}
}

// Post queues fn. It blocks while the buffer is full and drops fn once ctx
// is done.
func (m *Mailbox) Post(ctx context.Context, fn func()) {
	select {
	case m.ch <- fn:
	case <-ctx.Done():
	}
}

// C returns the channel the UI loop reads callbacks from.
func (m *Mailbox) C() <-chan func() { return m.ch }
