// Package mainview provides the main content area component.
package mainview

import (
	"github.com/charmbracelet/lipgloss"
)

// Props defines the properties for the main view component.
type Props struct {
	Width  int
	Height int
	Header string
	Body   string
	// Placeholder is shown dimmed when Body is empty.
	Placeholder string
}

// Render renders the main view component.
func Render(p Props) string {
	mainStyle := lipgloss.NewStyle().
		Width(p.Width).
		Height(p.Height).
		PaddingLeft(1)

	body := p.Body
	if body == "" && p.Placeholder != "" {
		body = lipgloss.NewStyle().Faint(true).Render(p.Placeholder)
	}

	content := body
	if p.Header != "" {
		if body != "" {
			content = p.Header + "\n\n" + body
		} else {
			content = p.Header
		}
	}
	return mainStyle.Render(content)
}
