package listview

import (
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/lipgloss"
	"github.com/tesso57/subsy/internal/presentation/tui/metrics"
	"github.com/tesso57/subsy/internal/presentation/tui/textutil"
)

func withItemPadding(styles list.DefaultItemStyles) list.DefaultItemStyles {
	styles.NormalTitle = styles.NormalTitle.PaddingRight(metrics.ItemRightPadding)
	styles.SelectedTitle = styles.SelectedTitle.PaddingRight(metrics.ItemRightPadding)
	styles.DimmedTitle = styles.DimmedTitle.PaddingRight(metrics.ItemRightPadding)
	return styles
}

func itemStyle(styles list.DefaultItemStyles, m list.Model, index int) lipgloss.Style {
	if index == m.Index() {
		return styles.SelectedTitle
	}
	return styles.NormalTitle
}

func itemWidth(m list.Model, style lipgloss.Style) int {
	return m.Width() - style.GetHorizontalFrameSize() - metrics.ItemSafetyPadding
}

// alignCount truncates text and right-aligns count within width.
func alignCount(text, count string, width int) string {
	if count == "" {
		return textutil.Truncate(text, width)
	}
	countWidth := lipgloss.Width(count)
	text = textutil.Truncate(text, width-countWidth-1)
	gap := max(width-lipgloss.Width(text)-countWidth, 1)
	return text + strings.Repeat(" ", gap) + count
}

func renderItemText(w io.Writer, style lipgloss.Style, text string) {
	_, _ = io.WriteString(w, style.Render(text))
}
