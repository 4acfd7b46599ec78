package listview

import (
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tesso57/subsy/internal/presentation/tui/metrics"
)

// FeedItem interface for items that can be rendered by FeedDelegate.
type FeedItem interface {
	list.Item
	Title() string
	Count() string
	IsGroup() bool
}

// FeedDelegate renders group headers and the feeds below them.
type FeedDelegate struct {
	Styles list.DefaultItemStyles
	Theme  lipgloss.Color
}

// NewFeedDelegate creates a new FeedDelegate. themeColor tints feed names.
func NewFeedDelegate(themeColor lipgloss.Color) *FeedDelegate {
	return &FeedDelegate{
		Styles: withItemPadding(list.NewDefaultItemStyles()),
		Theme:  themeColor,
	}
}

// Height returns the height of the item.
func (d FeedDelegate) Height() int {
	return 1
}

// Spacing returns the spacing between items.
func (d FeedDelegate) Spacing() int {
	return 0
}

// Update handles messages for the delegate.
func (d FeedDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render renders the item.
func (d FeedDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	i, ok := item.(FeedItem)
	if !ok {
		return
	}

	style := itemStyle(d.Styles, m, index)
	title := i.Title()
	if i.IsGroup() {
		style = style.Bold(true)
	} else {
		title = strings.Repeat(" ", metrics.FeedIndent) + title
		if index != m.Index() {
			style = style.Foreground(d.Theme)
		}
	}

	renderItemText(w, style, alignCount(title, i.Count(), itemWidth(m, style)))
}
