// Package header provides the selected row header.
package header

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/tesso57/subsy/internal/presentation/tui/metrics"
)

// Props defines the properties for the header component.
type Props struct {
	Visible bool
	Title   string
	// Link is the feed URL, empty for groups.
	Link string
}

// Render renders the header component. It is always metrics.HeaderLines
// tall when visible.
func Render(p Props) string {
	if !p.Visible {
		return ""
	}
	link := ""
	if p.Link != "" {
		link = "🔗 " + p.Link
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Height(metrics.HeaderLines).
		Render("🏷️  " + p.Title + "\n" + link)
}
