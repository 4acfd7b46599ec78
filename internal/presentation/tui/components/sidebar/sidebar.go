// Package sidebar renders the subscription tree pane.
package sidebar

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/tesso57/subsy/internal/presentation/tui/textutil"
)

// Props defines the properties for the sidebar component.
type Props struct {
	View   string
	Width  int
	Height int
	Title  string
	// Caption is a dim note after the title, such as the active filter.
	Caption string
	Active  bool
}

// Render renders the sidebar component.
func Render(p Props) string {
	sidebarStyle := lipgloss.NewStyle().
		Width(p.Width).
		Height(p.Height).
		Border(lipgloss.NormalBorder(), false, true, false, false).
		BorderForeground(lipgloss.Color("63"))

	if p.Active {
		sidebarStyle = sidebarStyle.BorderForeground(lipgloss.Color("205"))
	}

	titleStyle := lipgloss.NewStyle().
		PaddingLeft(2).
		PaddingBottom(1).
		Bold(true).
		Foreground(lipgloss.Color("205"))

	title := titleStyle.Render(p.Title)
	if room := p.Width - lipgloss.Width(title) - 1; p.Caption != "" && room >= 4 {
		caption := lipgloss.NewStyle().Faint(true).PaddingBottom(1).
			Render(" " + textutil.Truncate(p.Caption, room))
		title = lipgloss.JoinHorizontal(lipgloss.Top, title, caption)
	}

	return sidebarStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, p.View))
}
