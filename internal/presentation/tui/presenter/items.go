// Package presenter builds list rows for the TUI.
package presenter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/samber/lo"
	"github.com/tesso57/subsy/internal/domain/subscription"
	"github.com/tesso57/subsy/internal/presentation/tui/textutil"
)

// Item is one row of the feed list: a group header or a feed.
type Item struct {
	GroupIndex int
	Group      subscription.Group
	// Feed is nil for group rows.
	Feed      *subscription.Feed
	FeedCount int
	Expanded  bool
}

// FilterValue implements list.Item.
func (i *Item) FilterValue() string { return i.Title() }

// IsGroup reports whether the row is a group header.
func (i *Item) IsGroup() bool { return i.Feed == nil }

// Title returns the row label.
func (i *Item) Title() string {
	if i.IsGroup() {
		arrow := "▸"
		if i.Expanded {
			arrow = "▾"
		}
		return arrow + " " + i.Group.Name
	}
	return i.Feed.Name
}

// Count returns the important count label or "" when there is none.
func (i *Item) Count() string {
	if i.IsGroup() {
		return CountLabel(i.Group.Important)
	}
	return CountLabel(i.Feed.Important)
}

// Description implements list.DefaultItem.
func (i *Item) Description() string {
	if i.IsGroup() {
		return textutil.Count(i.FeedCount, "feed", "feeds")
	}
	return i.Feed.URL
}

func (i *Item) key() string {
	if i.IsGroup() {
		return "g:" + i.Group.ID
	}
	return "f:" + i.Feed.ID
}

// CountLabel formats a count. Nil and zero counts render as "".
func CountLabel(n *int) string {
	if n == nil || *n == 0 {
		return ""
	}
	return strconv.Itoa(*n)
}

// BuildFeedListItems flattens the tree into rows. Feeds of collapsed groups
// are left out; visible has one entry per group and missing entries count
// as expanded.
func BuildFeedListItems(tree []subscription.GroupWithFeed, visible []bool) []list.Item {
	return lo.FlatMap(tree, func(g subscription.GroupWithFeed, idx int) []list.Item {
		expanded := idx >= len(visible) || visible[idx]
		rows := []list.Item{&Item{GroupIndex: idx, Group: g.Group, FeedCount: len(g.Feeds), Expanded: expanded}}
		if !expanded {
			return rows
		}
		for _, f := range g.Feeds {
			rows = append(rows, &Item{GroupIndex: idx, Group: g.Group, Feed: &f, Expanded: true})
		}
		return rows
	})
}

// ApplyFeedList replaces the rows of model and keeps the selected group or
// feed selected when it is still listed.
func ApplyFeedList(model *list.Model, tree []subscription.GroupWithFeed, visible []bool) {
	prev, _ := model.SelectedItem().(*Item)
	prevIdx := model.Index()

	items := BuildFeedListItems(tree, visible)
	model.SetItems(items)
	if len(items) == 0 {
		return
	}

	if prev != nil {
		_, idx, found := lo.FindIndexOf(items, func(it list.Item) bool {
			row, ok := it.(*Item)
			return ok && row.key() == prev.key()
		})
		if found {
			model.Select(idx)
			return
		}
	}
	model.Select(min(prevIdx, len(items)-1))
}

// Detail describes the selected row for the main pane.
func Detail(item *Item) string {
	if item == nil {
		return ""
	}
	var b strings.Builder
	if item.IsGroup() {
		fmt.Fprintf(&b, "Group:     %s\n", item.Group.Name)
		fmt.Fprintf(&b, "Feeds:     %d\n", item.FeedCount)
		fmt.Fprintf(&b, "Important: %d\n", subscription.CountValue(item.Group.Important))
		return b.String()
	}
	f := item.Feed
	fmt.Fprintf(&b, "Group:         %s\n", item.Group.Name)
	fmt.Fprintf(&b, "Important:     %d\n", subscription.CountValue(f.Important))
	fmt.Fprintf(&b, "Notifications: %s\n", onOff(f.IsNotification))
	fmt.Fprintf(&b, "Full content:  %s\n", onOff(f.IsFullContent))
	return b.String()
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
