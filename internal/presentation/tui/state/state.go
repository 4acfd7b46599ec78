// Package state holds UI state types for the TUI.
package state

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/tesso57/subsy/internal/application/settings"
)

// Session represents the current view state.
type Session int

const (
	FeedView Session = iota
	OptionsView
	RenameView
	NewGroupView
	DeleteFeedView
	QuitView
)

// KeyMap defines the keybindings for the application.
type KeyMap struct {
	Up           key.Binding
	Down         key.Binding
	Top          key.Binding
	Bottom       key.Binding
	Open         key.Binding
	Back         key.Binding
	Quit         key.Binding
	Filter       key.Binding
	ToggleGroup  key.Binding
	DeleteFeed   key.Binding
	Rename       key.Binding
	MoveGroup    key.Binding
	NewGroup     key.Binding
	ToggleNotify key.Binding
	ToggleFull   key.Binding
	Export       key.Binding
	Help         key.Binding
}

// ShortHelp returns a subset of keybindings for the help view.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit, k.Open, k.Filter}
}

// FullHelp returns all keybindings for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Top, k.Bottom},
		{k.Open, k.Back, k.Quit, k.Help},
		{k.Filter, k.ToggleGroup, k.Export},
		{k.Rename, k.MoveGroup, k.NewGroup, k.DeleteFeed},
		{k.ToggleNotify, k.ToggleFull},
	}
}

// NewKeyMap creates a new KeyMap from the configuration.
func NewKeyMap(cfg settings.KeyMapConfig) KeyMap {
	bind := func(keys, help string) key.Binding {
		return key.NewBinding(
			key.WithKeys(splitKeys(keys)...),
			key.WithHelp(keys, help),
		)
	}
	return KeyMap{
		Up:           bind(cfg.Up, "up"),
		Down:         bind(cfg.Down, "down"),
		Top:          bind(cfg.Top, "top"),
		Bottom:       bind(cfg.Bottom, "bottom"),
		Open:         bind(cfg.Open, "options"),
		Back:         bind(cfg.Back, "back"),
		Quit:         bind(cfg.Quit, "quit"),
		Filter:       bind(cfg.Filter, "filter"),
		ToggleGroup:  bind(cfg.ToggleGroup, "fold group"),
		DeleteFeed:   bind(cfg.DeleteFeed, "unsubscribe"),
		Rename:       bind(cfg.Rename, "rename"),
		MoveGroup:    bind(cfg.MoveGroup, "move group"),
		NewGroup:     bind(cfg.NewGroup, "new group"),
		ToggleNotify: bind(cfg.ToggleNotify, "notify"),
		ToggleFull:   bind(cfg.ToggleFull, "full content"),
		Export:       bind(cfg.Export, "export opml"),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
	}
}

func splitKeys(keys string) []string {
	parts := strings.Split(keys, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		keyName := strings.TrimSpace(part)
		if keyName == "" {
			continue
		}
		switch keyName {
		case "space":
			// bubbletea reports the space bar as " "
			out = append(out, " ")
			continue
		case "pgdn":
			out = append(out, "pgdown")
		case "pgdown":
			out = append(out, "pgdn")
		}
		out = append(out, keyName)
	}
	return out
}
