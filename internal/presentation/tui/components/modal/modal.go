// Package modal provides modal dialog components.
package modal

import (
	"github.com/charmbracelet/lipgloss"
)

// Kind represents the type of modal.
type Kind int

const (
	// None indicates no modal.
	None Kind = iota
	// Options shows the per-feed options surface.
	Options
	// Input shows a single line text prompt.
	Input
	// Confirm asks a yes/no question.
	Confirm
	// Help shows the help dialog.
	Help
)

// Props defines the properties for the modal component.
type Props struct {
	Visible bool
	Kind    Kind
	Title   string
	Body    string
	Width   int
	Height  int
}

// Render renders the modal component centered in Width x Height.
func Render(p Props) string {
	if !p.Visible {
		return ""
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor(p.Kind)).
		Padding(1, 2)
	if p.Kind == Input || p.Kind == Confirm {
		box = box.Width(48)
	}

	content := p.Body
	if p.Title != "" {
		title := lipgloss.NewStyle().Bold(true).Foreground(borderColor(p.Kind)).Render(p.Title)
		content = title + "\n\n" + p.Body
	}

	return lipgloss.Place(p.Width, p.Height, lipgloss.Center, lipgloss.Center, box.Render(content))
}

func borderColor(kind Kind) lipgloss.Color {
	switch kind {
	case Confirm:
		return lipgloss.Color("196")
	case Input, Options:
		return lipgloss.Color("205")
	default:
		return lipgloss.Color("63")
	}
}
