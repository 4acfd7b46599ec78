package state

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/tesso57/subsy/internal/domain/subscription"
)

// ModelState holds the presentation state for the TUI. View-model snapshots
// are not stored here; they are read from the view-models when rendering.
type ModelState struct {
	Session   Session
	Previous  Session
	FeedList  list.Model
	TextInput textinput.Model
	Help      help.Model
	Keys      KeyMap
	Width     int
	Height    int
	// Busy is set while waiting for the first snapshot of WantFilter.
	Busy          bool
	WantFilter    subscription.FilterKind
	StatusMessage string
	// LastScroll is the sequence of the last applied scroll request.
	LastScroll int
	Err        error
}
