// Package banner provides a fixed height clickable strip.
package banner

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/tesso57/subsy/internal/presentation/tui/textutil"
)

// ContentLines is the number of lines inside the border.
const ContentLines = 2

// Props defines the properties for the banner component.
type Props struct {
	Title string
	// Desc is a single dimmed line under the title. Empty means none.
	Desc   string
	Icon   string
	Action string
	Width  int
	Color  lipgloss.Color
	// OnClick is invoked by Click.
	OnClick func()
}

// Render renders the banner. The title may wrap to two lines when there is
// no description and is cut to one line otherwise.
func Render(p Props) string {
	if p.Width <= 0 {
		return ""
	}
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Color).
		Padding(0, 1)

	inner := p.Width - border.GetHorizontalFrameSize()
	if inner < 1 {
		inner = 1
	}

	lead := ""
	if p.Icon != "" {
		lead = p.Icon + " "
	}
	trail := ""
	if p.Action != "" {
		trail = " " + lipgloss.NewStyle().Bold(true).Render(p.Action)
	}
	textWidth := inner - lipgloss.Width(lead) - lipgloss.Width(trail)

	lines := titleLines(p.Title, textWidth, p.Desc == "")
	if p.Desc != "" {
		desc := textutil.Truncate(textutil.SingleLine(p.Desc), textWidth)
		lines = append(lines, lipgloss.NewStyle().Faint(true).Render(desc))
	}
	for len(lines) < ContentLines {
		lines = append(lines, "")
	}

	rows := make([]string, len(lines))
	for i, line := range lines {
		prefix := strings.Repeat(" ", lipgloss.Width(lead))
		if i == 0 {
			prefix = lead
		}
		row := prefix + line
		if i == 0 && trail != "" {
			gap := inner - lipgloss.Width(row) - lipgloss.Width(trail)
			if gap > 0 {
				row += strings.Repeat(" ", gap)
			}
			row += trail
		}
		rows[i] = row
	}

	return border.Width(inner + 2).Render(strings.Join(rows, "\n"))
}

// Click invokes OnClick when set.
func Click(p Props) {
	if p.OnClick != nil {
		p.OnClick()
	}
}

func titleLines(title string, width int, allowWrap bool) []string {
	title = textutil.SingleLine(title)
	if width <= 0 {
		return []string{""}
	}
	if !allowWrap || lipgloss.Width(title) <= width {
		return []string{textutil.Truncate(title, width)}
	}
	wrapped := strings.Split(lipgloss.NewStyle().Width(width).Render(title), "\n")
	first := strings.TrimRight(wrapped[0], " ")
	rest := strings.TrimSpace(strings.Join(wrapped[1:], " "))
	return []string{first, textutil.Truncate(rest, width)}
}
