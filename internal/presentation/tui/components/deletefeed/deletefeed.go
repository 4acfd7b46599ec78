// Package deletefeed binds the unsubscribe confirmation to the feed options
// view-model.
package deletefeed

import (
	"sync"

	"github.com/tesso57/subsy/internal/presentation/tui/components/modal"
	"github.com/tesso57/subsy/internal/presentation/tui/feedoption"
	"github.com/tesso57/subsy/internal/presentation/tui/i18n"
)

// Options is the part of feedoption.ViewModel the dialog drives.
type Options interface {
	Dispatch(action feedoption.Action)
	State() feedoption.ViewState
}

// Dialog confirms unsubscribing from the bound feed. Each opening accepts
// exactly one of Confirm or Cancel.
type Dialog struct {
	options  Options
	messages i18n.Messages
	notify   func(string)

	mu    sync.Mutex
	armed bool
}

// New creates a dialog. notify shows a transient message to the user.
func New(options Options, messages i18n.Messages, notify func(string)) *Dialog {
	if notify == nil {
		notify = func(string) {}
	}
	return &Dialog{options: options, messages: messages, notify: notify}
}

// Visible reports whether the view-model shows the dialog.
func (d *Dialog) Visible() bool {
	return d.options.State().DeleteDialogVisible
}

// Open shows the dialog and arms it for one terminal action.
func (d *Dialog) Open() {
	d.mu.Lock()
	d.armed = true
	d.mu.Unlock()
	d.options.Dispatch(feedoption.ShowDeleteDialog{})
}

// Confirm deletes the feed, then closes the dialog and the options surface
// and notifies the user. It reports false when the dialog already fired.
func (d *Dialog) Confirm(feedName string) bool {
	if !d.fire() {
		return false
	}
	d.options.Dispatch(feedoption.Delete{OnComplete: func() {
		d.options.Dispatch(feedoption.HideDeleteDialog{})
		d.options.Dispatch(feedoption.Hide{})
		d.notify(d.messages.DeleteToast(feedName))
	}})
	return true
}

// Cancel closes the dialog without deleting. It reports false when the
// dialog already fired.
func (d *Dialog) Cancel() bool {
	if !d.fire() {
		return false
	}
	d.options.Dispatch(feedoption.HideDeleteDialog{})
	return true
}

func (d *Dialog) fire() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.armed {
		return false
	}
	d.armed = false
	return true
}

// Props renders the dialog into modal props.
func (d *Dialog) Props(width, height int) modal.Props {
	if !d.Visible() {
		return modal.Props{}
	}
	name := ""
	if feed := d.options.State().Feed; feed != nil {
		name = feed.Name
	}
	return modal.Props{
		Visible: true,
		Kind:    modal.Confirm,
		Title:   d.messages.Unsubscribe(),
		Body:    d.messages.UnsubscribeTip(name) + "\n\n(y/n)",
		Width:   width,
		Height:  height,
	}
}
