// Package layout arranges the banner, sidebar, main pane and footer.
package layout

import (
	"github.com/charmbracelet/lipgloss"
)

// Props defines the properties for the layout component.
type Props struct {
	Banner  string
	Sidebar string
	Main    string
	Footer  string
}

// Render stacks the banner above the sidebar and main pane, with the footer
// at the bottom.
func Render(p Props) string {
	content := lipgloss.JoinHorizontal(lipgloss.Top, p.Sidebar, p.Main)
	if p.Banner == "" {
		return lipgloss.JoinVertical(lipgloss.Left, content, p.Footer)
	}
	return lipgloss.JoinVertical(lipgloss.Left, p.Banner, content, p.Footer)
}
