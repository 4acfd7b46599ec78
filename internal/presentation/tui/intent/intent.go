// Package intent parses user input into UI intents.
package intent

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/tesso57/subsy/internal/presentation/tui/state"
)

// Type represents a user intent.
type Type int

const (
	None Type = iota
	Quit
	ToggleHelp
	Open
	Back
	Top
	Bottom
	Filter
	ToggleGroup
	DeleteFeed
	Rename
	MoveGroup
	NewGroup
	ToggleNotify
	ToggleFull
	Export
)

// Intent represents a parsed user intent.
type Intent struct {
	Type Type
}

// FromKeyMsg maps a key message to an intent. Bindings are checked in
// declaration order, so Quit wins over any binding sharing its key.
func FromKeyMsg(msg tea.KeyMsg, keys state.KeyMap) Intent {
	bindings := []struct {
		binding key.Binding
		typ     Type
	}{
		{keys.Quit, Quit},
		{keys.Help, ToggleHelp},
		{keys.Open, Open},
		{keys.Back, Back},
		{keys.Top, Top},
		{keys.Bottom, Bottom},
		{keys.Filter, Filter},
		{keys.ToggleGroup, ToggleGroup},
		{keys.DeleteFeed, DeleteFeed},
		{keys.Rename, Rename},
		{keys.MoveGroup, MoveGroup},
		{keys.NewGroup, NewGroup},
		{keys.ToggleNotify, ToggleNotify},
		{keys.ToggleFull, ToggleFull},
		{keys.Export, Export},
	}
	for _, b := range bindings {
		if key.Matches(msg, b.binding) {
			return Intent{Type: b.typ}
		}
	}
	return Intent{Type: None}
}
