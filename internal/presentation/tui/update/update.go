// Package update holds UI update logic for the TUI.
package update

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tesso57/subsy/internal/domain/subscription"
	"github.com/tesso57/subsy/internal/presentation/tui/components/banner"
	"github.com/tesso57/subsy/internal/presentation/tui/components/deletefeed"
	"github.com/tesso57/subsy/internal/presentation/tui/feedoption"
	"github.com/tesso57/subsy/internal/presentation/tui/feeds"
	"github.com/tesso57/subsy/internal/presentation/tui/i18n"
	"github.com/tesso57/subsy/internal/presentation/tui/intent"
	"github.com/tesso57/subsy/internal/presentation/tui/presenter"
	"github.com/tesso57/subsy/internal/presentation/tui/state"
)

// FeedsViewModel is the part of feeds.ViewModel the UI drives.
type FeedsViewModel interface {
	Dispatch(action feeds.Action)
	State() feeds.ViewState
}

// OptionsViewModel is the part of feedoption.ViewModel the UI drives.
type OptionsViewModel interface {
	Dispatch(action feedoption.Action)
	State() feedoption.ViewState
}

// Deps groups external dependencies for updates.
type Deps struct {
	Feeds       FeedsViewModel
	Options     OptionsViewModel
	Delete      *deletefeed.Dialog
	Messages    i18n.Messages
	ExportFile  string
	WriteFile   func(path string, data []byte) error
	BannerColor string
}

// FeedsStateMsg carries a feeds snapshot into the update loop.
type FeedsStateMsg struct {
	State feeds.ViewState
}

// OptionsStateMsg carries a feed options snapshot into the update loop.
type OptionsStateMsg struct {
	State feedoption.ViewState
}

// PostedMsg carries a callback a view-model posted to the UI thread.
type PostedMsg struct {
	Fn func()
}

// WaitFeeds receives the next snapshot from ch. It yields no message once
// ch is closed.
func WaitFeeds(ch <-chan feeds.ViewState) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		st, ok := <-ch
		if !ok {
			return nil
		}
		return FeedsStateMsg{State: st}
	}
}

// WaitOptions receives the next snapshot from ch.
func WaitOptions(ch <-chan feedoption.ViewState) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		st, ok := <-ch
		if !ok {
			return nil
		}
		return OptionsStateMsg{State: st}
	}
}

// WaitPosted receives the next posted callback from ch.
func WaitPosted(ch <-chan func()) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		fn, ok := <-ch
		if !ok {
			return nil
		}
		return PostedMsg{Fn: fn}
	}
}

// StartFetch requests the live tree for kind and marks the screen busy
// until it arrives.
func StartFetch(s *state.ModelState, deps Deps, kind subscription.FilterKind) {
	s.Busy = true
	s.WantFilter = kind
	deps.Feeds.Dispatch(feeds.FetchData{Filter: subscription.Filter{Kind: kind}})
}

// HandleKeyMsg routes a key press by session. It reports whether the key
// was consumed.
func HandleKeyMsg(s *state.ModelState, msg tea.KeyMsg, deps Deps) (tea.Cmd, bool) {
	if msg.Type == tea.KeyCtrlC {
		return tea.Quit, true
	}
	switch s.Session {
	case state.QuitView:
		return handleQuitView(s, msg)
	case state.DeleteFeedView:
		return handleDeleteFeedView(msg, deps)
	case state.RenameView:
		return handleInputView(s, msg, deps, feedoption.Rename{}, feedoption.HideRenameDialog{},
			func(v string) feedoption.Action { return feedoption.InputNewName{Content: v} })
	case state.NewGroupView:
		return handleInputView(s, msg, deps, feedoption.AddNewGroup{}, feedoption.HideNewGroupDialog{},
			func(v string) feedoption.Action { return feedoption.InputNewGroup{Content: v} })
	}

	parsed := intent.FromKeyMsg(msg, s.Keys)
	switch parsed.Type {
	case intent.Quit:
		s.Previous = s.Session
		s.Session = state.QuitView
		return nil, true
	case intent.ToggleHelp:
		s.Help.ShowAll = !s.Help.ShowAll
		return nil, true
	}

	switch s.Session {
	case state.FeedView:
		return handleFeedViewIntent(s, parsed, deps)
	case state.OptionsView:
		return handleOptionsViewIntent(parsed, deps)
	default:
		return nil, false
	}
}

func handleQuitView(s *state.ModelState, msg tea.KeyMsg) (tea.Cmd, bool) {
	switch msg.String() {
	case "y", "Y":
		return tea.Quit, true
	case "n", "N", "esc", "q", "Q":
		s.Session = s.Previous
		return nil, true
	}
	return nil, true
}

func handleDeleteFeedView(msg tea.KeyMsg, deps Deps) (tea.Cmd, bool) {
	switch msg.String() {
	case "y", "Y", "enter":
		name := ""
		if feed := deps.Options.State().Feed; feed != nil {
			name = feed.Name
		}
		deps.Delete.Confirm(name)
	case "n", "N", "esc":
		deps.Delete.Cancel()
	}
	return nil, true
}

// handleInputView edits the dialog buffer. Every edit is mirrored into the
// view-model so submit persists what is on screen.
func handleInputView(s *state.ModelState, msg tea.KeyMsg, deps Deps, submit, cancel feedoption.Action, input func(string) feedoption.Action) (tea.Cmd, bool) {
	switch msg.Type {
	case tea.KeyEnter:
		deps.Options.Dispatch(submit)
		return nil, true
	case tea.KeyEsc:
		deps.Options.Dispatch(cancel)
		return nil, true
	}
	before := s.TextInput.Value()
	var cmd tea.Cmd
	s.TextInput, cmd = s.TextInput.Update(msg)
	if after := s.TextInput.Value(); after != before {
		deps.Options.Dispatch(input(after))
	}
	return cmd, true
}

func handleFeedViewIntent(s *state.ModelState, in intent.Intent, deps Deps) (tea.Cmd, bool) {
	switch in.Type {
	case intent.Open:
		item := SelectedItem(s)
		if item == nil {
			return nil, true
		}
		if item.IsGroup() {
			deps.Feeds.Dispatch(feeds.ToggleGroupVisible{Index: item.GroupIndex})
		} else {
			deps.Options.Dispatch(feedoption.Show{FeedID: item.Feed.ID})
		}
		return nil, true
	case intent.ToggleGroup:
		if item := SelectedItem(s); item != nil {
			deps.Feeds.Dispatch(feeds.ToggleGroupVisible{Index: item.GroupIndex})
		}
		return nil, true
	case intent.Back:
		s.StatusMessage = ""
		s.Err = nil
		return nil, true
	case intent.Top:
		deps.Feeds.Dispatch(feeds.ScrollToItem{Index: 0})
		return nil, true
	case intent.Bottom:
		deps.Feeds.Dispatch(feeds.ScrollToItem{Index: max(len(s.FeedList.Items())-1, 0)})
		return nil, true
	case intent.Filter:
		banner.Click(AccountBanner(s, deps))
		return nil, true
	case intent.Export:
		startExport(s, deps)
		return nil, true
	case intent.Rename, intent.DeleteFeed:
		item := SelectedItem(s)
		if item == nil || item.IsGroup() {
			return nil, true
		}
		deps.Options.Dispatch(feedoption.Show{FeedID: item.Feed.ID})
		if in.Type == intent.Rename {
			deps.Options.Dispatch(feedoption.ShowRenameDialog{})
		} else {
			deps.Delete.Open()
		}
		return nil, true
	}
	return nil, false
}

func handleOptionsViewIntent(in intent.Intent, deps Deps) (tea.Cmd, bool) {
	switch in.Type {
	case intent.Back:
		deps.Options.Dispatch(feedoption.Hide{})
	case intent.Rename:
		deps.Options.Dispatch(feedoption.ShowRenameDialog{})
	case intent.MoveGroup:
		if next := deps.Options.State().NextGroupID(); next != "" {
			deps.Options.Dispatch(feedoption.SelectedGroup{GroupID: next})
		}
	case intent.NewGroup:
		deps.Options.Dispatch(feedoption.ShowNewGroupDialog{})
	case intent.ToggleNotify:
		deps.Options.Dispatch(feedoption.ChangeAllowNotificationPreset{})
	case intent.ToggleFull:
		deps.Options.Dispatch(feedoption.ChangeParseFullContentPreset{})
	case intent.DeleteFeed:
		deps.Delete.Open()
	}
	// The options surface is modal; nothing reaches the list behind it.
	return nil, true
}

func startExport(s *state.ModelState, deps Deps) {
	path := deps.ExportFile
	s.StatusMessage = ""
	deps.Feeds.Dispatch(feeds.ExportAsString{Callback: func(doc string) {
		if err := deps.WriteFile(path, []byte(doc)); err != nil {
			s.Err = fmt.Errorf("export: %w", err)
			return
		}
		s.Err = nil
		s.StatusMessage = deps.Messages.ExportToast(path)
	}})
}

// AccountBanner builds the banner shown above the list. Clicking it cycles
// the filter.
func AccountBanner(s *state.ModelState, deps Deps) banner.Props {
	st := deps.Feeds.State()
	title := "Subscriptions"
	if st.Account != nil && st.Account.Name != "" {
		title = st.Account.Name
	}
	kind := st.Filter.Kind
	if s.Busy {
		kind = s.WantFilter
	}
	desc := kind.String()
	if !s.Busy && st.Filter.Important > 0 {
		desc = fmt.Sprintf("%d %s", st.Filter.Important, strings.ToLower(kind.String()))
	}
	return banner.Props{
		Title:  title,
		Desc:   desc,
		Icon:   "◉",
		Action: "[" + helpKey(s.Keys.Filter) + "] " + kind.Next().String(),
		Width:  s.Width,
		Color:  bannerColor(deps.BannerColor),
		OnClick: func() {
			StartFetch(s, deps, kind.Next())
		},
	}
}

// HandleFeedsState applies a feeds snapshot to the list.
func HandleFeedsState(s *state.ModelState, st feeds.ViewState) {
	presenter.ApplyFeedList(&s.FeedList, st.GroupWithFeedList, st.FeedsVisible)
	if s.Busy && st.Filter.Kind == s.WantFilter && st.GroupWithFeedList != nil {
		s.Busy = false
	}
	if st.Scroll.Seq > s.LastScroll {
		s.LastScroll = st.Scroll.Seq
		if n := len(s.FeedList.Items()); n > 0 {
			s.FeedList.Select(min(max(st.Scroll.Index, 0), n-1))
		}
	}
	UpdateListSizes(s)
}

// HandleOptionsState derives the session from a feed options snapshot.
func HandleOptionsState(s *state.ModelState, st feedoption.ViewState) tea.Cmd {
	next := SessionFor(st)
	if s.Session == state.QuitView {
		s.Previous = next
		return nil
	}
	if next == s.Session {
		return nil
	}
	s.Session = next
	switch next {
	case state.RenameView:
		return seedInput(s, st.NewName, "feed name")
	case state.NewGroupView:
		return seedInput(s, st.NewGroupContent, "group name")
	}
	s.TextInput.Blur()
	return nil
}

// SessionFor maps the options state to the session that shows it. Dialogs
// take precedence over the options surface.
func SessionFor(st feedoption.ViewState) state.Session {
	switch {
	case st.DeleteDialogVisible:
		return state.DeleteFeedView
	case !st.Visible:
		return state.FeedView
	case st.RenameDialogVisible:
		return state.RenameView
	case st.NewGroupDialogVisible:
		return state.NewGroupView
	default:
		return state.OptionsView
	}
}

func seedInput(s *state.ModelState, value, placeholder string) tea.Cmd {
	s.TextInput.Reset()
	s.TextInput.SetValue(value)
	s.TextInput.CursorEnd()
	s.TextInput.Placeholder = placeholder
	return s.TextInput.Focus()
}

// HandleWindowSize records the terminal size and resizes the list.
func HandleWindowSize(s *state.ModelState, msg tea.WindowSizeMsg) {
	s.Width = msg.Width
	s.Height = msg.Height

	UpdateListSizes(s)
}

// SelectedItem returns the highlighted row, or nil.
func SelectedItem(s *state.ModelState) *presenter.Item {
	item, _ := s.FeedList.SelectedItem().(*presenter.Item)
	return item
}

func helpKey(b key.Binding) string {
	return b.Help().Key
}

func bannerColor(c string) lipgloss.Color {
	if c == "" {
		return lipgloss.Color("62")
	}
	return lipgloss.Color(c)
}
