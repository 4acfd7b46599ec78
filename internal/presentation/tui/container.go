// Package tui provides the main user interface model and view components.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/samber/lo"
	"github.com/tesso57/subsy/internal/domain/subscription"
	"github.com/tesso57/subsy/internal/presentation/tui/components/header"
	mainview "github.com/tesso57/subsy/internal/presentation/tui/components/main"
	"github.com/tesso57/subsy/internal/presentation/tui/components/modal"
	"github.com/tesso57/subsy/internal/presentation/tui/components/sidebar"
	"github.com/tesso57/subsy/internal/presentation/tui/feedoption"
	"github.com/tesso57/subsy/internal/presentation/tui/feeds"
	"github.com/tesso57/subsy/internal/presentation/tui/metrics"
	"github.com/tesso57/subsy/internal/presentation/tui/presenter"
	"github.com/tesso57/subsy/internal/presentation/tui/state"
	"github.com/tesso57/subsy/internal/presentation/tui/textutil"
	"github.com/tesso57/subsy/internal/presentation/tui/update"
	"github.com/tesso57/subsy/internal/presentation/tui/view"
)

const emptyPlaceholder = "Nothing to show. Press the filter key to see every feed, or add one with `subsy import-feed`."

func (m *Model) buildProps() view.Props {
	layout := update.BuildLayout(m.state)
	return view.Props{
		Banner:  update.AccountBanner(m.state, m.deps),
		Sidebar: m.buildSidebarProps(),
		Header:  m.buildHeaderProps(layout),
		Main:    m.buildMainProps(layout),
		Modal:   m.buildModalProps(),
		Footer:  m.buildFooterProps(),
	}
}

func (m *Model) buildSidebarProps() sidebar.Props {
	return sidebar.Props{
		View:    m.state.FeedList.View(),
		Width:   m.state.FeedList.Width(),
		Height:  m.state.FeedList.Height() + metrics.SidebarTitleLines,
		Active:  m.state.Session == state.FeedView,
		Title:   m.state.FeedList.Title,
		Caption: sidebarCaption(m.deps.Feeds.State()),
	}
}

func sidebarCaption(fs feeds.ViewState) string {
	if fs.GroupWithFeedList == nil {
		return ""
	}
	n := lo.SumBy(fs.GroupWithFeedList, func(g subscription.GroupWithFeed) int { return len(g.Feeds) })
	return fmt.Sprintf("%s · %d", fs.Filter.Kind, n)
}

func (m *Model) buildHeaderProps(layout update.Layout) header.Props {
	item := update.SelectedItem(m.state)
	if item == nil {
		return header.Props{}
	}
	width := layout.MainWidth - metrics.HeaderWidthPadding
	if item.IsGroup() {
		return header.Props{Visible: true, Title: headerLine(item.Group.Name, width)}
	}
	return header.Props{
		Visible: true,
		Title:   headerLine(item.Feed.Name, width),
		Link:    headerLine(item.Feed.URL, width),
	}
}

func (m *Model) buildMainProps(layout update.Layout) mainview.Props {
	var body string
	switch {
	case m.state.Busy:
		body = fmt.Sprintf("\n   Loading %s feeds...", strings.ToLower(m.state.WantFilter.String()))
	default:
		body = presenter.Detail(update.SelectedItem(m.state))
	}
	if m.state.Err != nil {
		body = fmt.Sprintf("Error: %v\n\n%s", m.state.Err, body)
	}

	return mainview.Props{
		Width:       layout.MainWidth,
		Height:      layout.MainHeight,
		Body:        body,
		Placeholder: emptyPlaceholder,
	}
}

func (m *Model) buildModalProps() modal.Props {
	s := m.state
	switch s.Session {
	case state.QuitView:
		return modal.Props{
			Visible: true,
			Kind:    modal.Confirm,
			Body:    "Are you sure you want to quit?\n\n(y/n)",
			Width:   s.Width,
			Height:  s.Height,
		}
	case state.DeleteFeedView:
		return m.deps.Delete.Props(s.Width, s.Height)
	case state.RenameView:
		return m.inputModal(m.deps.Messages.RenameTitle())
	case state.NewGroupView:
		return m.inputModal(m.deps.Messages.NewGroupTitle())
	case state.OptionsView:
		opts := m.deps.Options.State()
		title := ""
		if opts.Feed != nil {
			title = opts.Feed.Name
		}
		return modal.Props{
			Visible: true,
			Kind:    modal.Options,
			Title:   title,
			Body:    optionsBody(opts, s.Keys),
			Width:   s.Width,
			Height:  s.Height,
		}
	}
	if s.Help.ShowAll {
		return modal.Props{
			Visible: true,
			Kind:    modal.Help,
			Body:    s.Help.View(&s.Keys),
			Width:   s.Width,
			Height:  s.Height,
		}
	}
	return modal.Props{Visible: false}
}

func (m *Model) inputModal(title string) modal.Props {
	return modal.Props{
		Visible: true,
		Kind:    modal.Input,
		Title:   title,
		Body:    m.state.TextInput.View() + "\n\n(enter to save, esc to cancel)",
		Width:   m.state.Width,
		Height:  m.state.Height,
	}
}

func optionsBody(opts feedoption.ViewState, keys state.KeyMap) string {
	if opts.Feed == nil {
		return "Loading..."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", opts.Feed.URL)
	fmt.Fprintf(&b, "Group          %-16s [%s] next  [%s] new\n", opts.GroupName(), helpKey(keys.MoveGroup), helpKey(keys.NewGroup))
	fmt.Fprintf(&b, "Notifications  %-16s [%s]\n", onOff(opts.Feed.IsNotification), helpKey(keys.ToggleNotify))
	fmt.Fprintf(&b, "Full content   %-16s [%s]\n\n", onOff(opts.Feed.IsFullContent), helpKey(keys.ToggleFull))
	fmt.Fprintf(&b, "[%s] rename  [%s] unsubscribe  [%s] close", helpKey(keys.Rename), helpKey(keys.DeleteFeed), helpKey(keys.Back))
	return b.String()
}

func (m *Model) buildFooterProps() string {
	helpText := m.state.Help.View(&m.state.Keys)
	return state.FooterText(m.state.Session, m.state.Busy, m.state.StatusMessage, helpText)
}

func headerLine(text string, width int) string {
	return textutil.Truncate(textutil.SingleLine(text), width)
}

func helpKey(b key.Binding) string {
	return b.Help().Key
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
