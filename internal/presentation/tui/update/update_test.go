package update

import (
	"errors"
	"testing"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tesso57/subsy/internal/application/settings"
	"github.com/tesso57/subsy/internal/domain/subscription"
	"github.com/tesso57/subsy/internal/presentation/tui/components/deletefeed"
	"github.com/tesso57/subsy/internal/presentation/tui/feedoption"
	"github.com/tesso57/subsy/internal/presentation/tui/feeds"
	"github.com/tesso57/subsy/internal/presentation/tui/i18n"
	"github.com/tesso57/subsy/internal/presentation/tui/presenter"
	"github.com/tesso57/subsy/internal/presentation/tui/state"
)

type fakeFeeds struct {
	state   feeds.ViewState
	actions []feeds.Action
}

func (f *fakeFeeds) Dispatch(a feeds.Action) { f.actions = append(f.actions, a) }
func (f *fakeFeeds) State() feeds.ViewState { return f.state }

type fakeOptions struct {
	state   feedoption.ViewState
	actions []feedoption.Action
}

func (f *fakeOptions) Dispatch(a feedoption.Action) { f.actions = append(f.actions, a) }
func (f *fakeOptions) State() feedoption.ViewState { return f.state }

type fileWriter struct {
	mock.Mock
}

func (w *fileWriter) WriteFile(path string, data []byte) error {
	return w.Called(path, string(data)).Error(0)
}

func testKeys() state.KeyMap {
	return state.NewKeyMap(settings.KeyMapConfig{
		Up: "k", Down: "j", Open: "enter", Back: "esc", Quit: "q",
		Filter: "f", ToggleGroup: "space", DeleteFeed: "x", Rename: "r",
		MoveGroup: "m", NewGroup: "n", ToggleNotify: "N", ToggleFull: "F",
		Export: "e", Top: "g", Bottom: "G",
	})
}

type fixture struct {
	s       *state.ModelState
	feeds   *fakeFeeds
	options *fakeOptions
	writer  *fileWriter
	toasts  []string
	deps    Deps
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		s: &state.ModelState{
			Session:   state.FeedView,
			FeedList:  list.New(nil, list.NewDefaultDelegate(), 40, 20),
			TextInput: textinput.New(),
			Help:      help.New(),
			Keys:      testKeys(),
			Width:     80,
			Height:    24,
		},
		feeds:   &fakeFeeds{},
		options: &fakeOptions{},
		writer:  &fileWriter{},
	}
	f.deps = Deps{
		Feeds:      f.feeds,
		Options:    f.options,
		Delete:     deletefeed.New(f.options, i18n.New("en"), func(msg string) { f.toasts = append(f.toasts, msg) }),
		Messages:   i18n.New("en"),
		ExportFile: "/tmp/subs.opml",
		WriteFile:  f.writer.WriteFile,
	}
	return f
}

func (f *fixture) press(keys ...tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		cmd, _ = HandleKeyMsg(f.s, k, f.deps)
	}
	return cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
)

func tree() []subscription.GroupWithFeed {
	return []subscription.GroupWithFeed{
		{
			Group: subscription.Group{ID: "g1", Name: "Tech", Important: subscription.Count(3)},
			Feeds: []subscription.Feed{{ID: "f1", Name: "Go Blog", GroupID: "g1", Important: subscription.Count(3)}},
		},
		{
			Group: subscription.Group{ID: "g2", Name: "News"},
			Feeds: []subscription.Feed{{ID: "f2", Name: "Daily", GroupID: "g2"}},
		},
	}
}

func (f *fixture) loadTree() {
	f.feeds.state = feeds.ViewState{
		Filter:            subscription.Filter{Kind: subscription.Unread, Important: 3},
		GroupWithFeedList: tree(),
		FeedsVisible:      []bool{true, true},
	}
	HandleFeedsState(f.s, f.feeds.state)
}

func TestOpenOnGroupTogglesVisibility(t *testing.T) {
	f := newFixture(t)
	f.loadTree()

	f.press(enter)
	require.Len(t, f.feeds.actions, 1)
	assert.Equal(t, feeds.ToggleGroupVisible{Index: 0}, f.feeds.actions[0])

	f.s.FeedList.Select(3)
	f.press(runes(" "))
	assert.Equal(t, feeds.ToggleGroupVisible{Index: 1}, f.feeds.actions[1])
}

func TestOpenOnFeedShowsOptions(t *testing.T) {
	f := newFixture(t)
	f.loadTree()
	f.s.FeedList.Select(1)

	f.press(enter)
	require.Len(t, f.options.actions, 1)
	assert.Equal(t, feedoption.Show{FeedID: "f1"}, f.options.actions[0])
	assert.Empty(t, f.feeds.actions)
}

func TestTopAndBottomRequestScroll(t *testing.T) {
	f := newFixture(t)
	f.loadTree()

	f.press(runes("G"), runes("g"))
	assert.Equal(t, []feeds.Action{feeds.ScrollToItem{Index: 3}, feeds.ScrollToItem{Index: 0}}, f.feeds.actions)
}

func TestScrollRequestAppliedOnce(t *testing.T) {
	f := newFixture(t)
	f.loadTree()

	st := f.feeds.state
	st.Scroll = feeds.ScrollRequest{Index: 3, Seq: 1}
	HandleFeedsState(f.s, st)
	assert.Equal(t, 3, f.s.FeedList.Index())

	f.s.FeedList.Select(0)
	HandleFeedsState(f.s, st)
	assert.Equal(t, 0, f.s.FeedList.Index(), "same request is not replayed")

	st.Scroll = feeds.ScrollRequest{Index: 99, Seq: 2}
	HandleFeedsState(f.s, st)
	assert.Equal(t, 3, f.s.FeedList.Index(), "clamped to the last row")
}

func TestFilterKeyClicksBanner(t *testing.T) {
	f := newFixture(t)
	f.loadTree()

	f.press(runes("f"))
	require.Len(t, f.feeds.actions, 1)
	assert.Equal(t, feeds.FetchData{Filter: subscription.Filter{Kind: subscription.Starred}}, f.feeds.actions[0])
	assert.True(t, f.s.Busy)
	assert.Equal(t, subscription.Starred, f.s.WantFilter)

	HandleFeedsState(f.s, f.feeds.state)
	assert.True(t, f.s.Busy, "stale filter keeps waiting")

	f.feeds.state.Filter = subscription.Filter{Kind: subscription.Starred}
	HandleFeedsState(f.s, f.feeds.state)
	assert.False(t, f.s.Busy)
}

func TestAccountBanner(t *testing.T) {
	f := newFixture(t)
	f.loadTree()
	f.feeds.state.Account = &subscription.Account{Name: "Local"}

	p := AccountBanner(f.s, f.deps)
	assert.Equal(t, "Local", p.Title)
	assert.Equal(t, "3 unread", p.Desc)
	assert.Equal(t, "[f] Starred", p.Action)
	assert.Equal(t, 80, p.Width)

	f.s.Busy = true
	f.s.WantFilter = subscription.All
	p = AccountBanner(f.s, f.deps)
	assert.Equal(t, "All", p.Desc)
}

func TestExportWritesFileAndShowsToast(t *testing.T) {
	f := newFixture(t)
	f.writer.On("WriteFile", "/tmp/subs.opml", "<opml/>").Return(nil).Once()

	f.press(runes("e"))
	require.Len(t, f.feeds.actions, 1)
	export, ok := f.feeds.actions[0].(feeds.ExportAsString)
	require.True(t, ok)

	export.Callback("<opml/>")
	assert.Equal(t, "Exported subscriptions to /tmp/subs.opml", f.s.StatusMessage)
	assert.NoError(t, f.s.Err)
	f.writer.AssertExpectations(t)
}

func TestExportWriteFailure(t *testing.T) {
	f := newFixture(t)
	f.writer.On("WriteFile", mock.Anything, mock.Anything).Return(errors.New("read-only")).Once()

	f.press(runes("e"))
	f.feeds.actions[0].(feeds.ExportAsString).Callback("<opml/>")
	assert.ErrorContains(t, f.s.Err, "read-only")
	assert.Empty(t, f.s.StatusMessage)
}

func TestOptionsViewKeys(t *testing.T) {
	f := newFixture(t)
	f.options.state = feedoption.ViewState{
		Visible:         true,
		Feed:            &subscription.Feed{ID: "f1", Name: "Go Blog", GroupID: "g1"},
		SelectedGroupID: "g1",
		Groups:          []subscription.Group{{ID: "g1"}, {ID: "g2"}},
	}
	HandleOptionsState(f.s, f.options.state)
	require.Equal(t, state.OptionsView, f.s.Session)

	f.press(runes("m"), runes("N"), runes("F"), runes("n"), runes("r"), runes("z"), esc)
	assert.Equal(t, []feedoption.Action{
		feedoption.SelectedGroup{GroupID: "g2"},
		feedoption.ChangeAllowNotificationPreset{},
		feedoption.ChangeParseFullContentPreset{},
		feedoption.ShowNewGroupDialog{},
		feedoption.ShowRenameDialog{},
		feedoption.Hide{},
	}, f.options.actions)
	assert.Empty(t, f.feeds.actions, "options keys never reach the list")
}

func TestRenameDialogMirrorsInput(t *testing.T) {
	f := newFixture(t)
	f.options.state = feedoption.ViewState{
		Visible:             true,
		Feed:                &subscription.Feed{ID: "f1", Name: "Go"},
		RenameDialogVisible: true,
		NewName:             "Go",
	}
	HandleOptionsState(f.s, f.options.state)
	require.Equal(t, state.RenameView, f.s.Session)
	assert.Equal(t, "Go", f.s.TextInput.Value())
	assert.True(t, f.s.TextInput.Focused())

	f.press(runes("!"), enter)
	assert.Equal(t, []feedoption.Action{
		feedoption.InputNewName{Content: "Go!"},
		feedoption.Rename{},
	}, f.options.actions)

	f.press(esc)
	assert.Equal(t, feedoption.HideRenameDialog{}, f.options.actions[2])
}

func TestNewGroupDialog(t *testing.T) {
	f := newFixture(t)
	f.s.Session = state.OptionsView
	HandleOptionsState(f.s, feedoption.ViewState{Visible: true, NewGroupDialogVisible: true})
	require.Equal(t, state.NewGroupView, f.s.Session)
	assert.Empty(t, f.s.TextInput.Value())

	f.press(runes("A"), runes("I"), enter)
	assert.Equal(t, []feedoption.Action{
		feedoption.InputNewGroup{Content: "A"},
		feedoption.InputNewGroup{Content: "AI"},
		feedoption.AddNewGroup{},
	}, f.options.actions)
}

func TestDeleteFromFeedList(t *testing.T) {
	f := newFixture(t)
	f.loadTree()
	f.s.FeedList.Select(1)

	f.press(runes("x"))
	assert.Equal(t, []feedoption.Action{feedoption.Show{FeedID: "f1"}, feedoption.ShowDeleteDialog{}}, f.options.actions)

	f.options.state = feedoption.ViewState{Visible: true, DeleteDialogVisible: true, Feed: &subscription.Feed{ID: "f1", Name: "Go Blog"}}
	HandleOptionsState(f.s, f.options.state)
	require.Equal(t, state.DeleteFeedView, f.s.Session)

	f.press(runes("y"), runes("y"))
	require.Len(t, f.options.actions, 3, "second confirm is ignored")
	del := f.options.actions[2].(feedoption.Delete)
	del.OnComplete()
	assert.Equal(t, []string{"Unsubscribed from Go Blog"}, f.toasts)

	HandleOptionsState(f.s, feedoption.ViewState{})
	assert.Equal(t, state.FeedView, f.s.Session)
}

func TestDeleteCancel(t *testing.T) {
	f := newFixture(t)
	f.s.Session = state.OptionsView
	f.press(runes("x"))
	f.s.Session = state.DeleteFeedView

	f.press(runes("n"))
	assert.Equal(t, []feedoption.Action{feedoption.ShowDeleteDialog{}, feedoption.HideDeleteDialog{}}, f.options.actions)
}

func TestQuitDialog(t *testing.T) {
	f := newFixture(t)

	f.press(runes("q"))
	require.Equal(t, state.QuitView, f.s.Session)
	assert.Equal(t, state.FeedView, f.s.Previous)

	HandleOptionsState(f.s, feedoption.ViewState{Visible: true})
	assert.Equal(t, state.QuitView, f.s.Session, "snapshots do not close the quit dialog")

	f.press(runes("n"))
	assert.Equal(t, state.OptionsView, f.s.Session)

	f.press(runes("q"))
	cmd := f.press(runes("y"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestHelpToggle(t *testing.T) {
	f := newFixture(t)
	f.press(runes("?"))
	assert.True(t, f.s.Help.ShowAll)
	f.press(runes("?"))
	assert.False(t, f.s.Help.ShowAll)
}

func TestSessionFor(t *testing.T) {
	tests := []struct {
		name string
		st   feedoption.ViewState
		want state.Session
	}{
		{"hidden", feedoption.ViewState{}, state.FeedView},
		{"options", feedoption.ViewState{Visible: true}, state.OptionsView},
		{"rename", feedoption.ViewState{Visible: true, RenameDialogVisible: true}, state.RenameView},
		{"new group", feedoption.ViewState{Visible: true, NewGroupDialogVisible: true}, state.NewGroupView},
		{"delete wins", feedoption.ViewState{Visible: true, RenameDialogVisible: true, DeleteDialogVisible: true}, state.DeleteFeedView},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SessionFor(tt.st))
		})
	}
}

func TestWaitCommands(t *testing.T) {
	ch := make(chan feeds.ViewState, 1)
	ch <- feeds.ViewState{Filter: subscription.Filter{Kind: subscription.Starred}}
	msg := WaitFeeds(ch)()
	assert.Equal(t, FeedsStateMsg{State: feeds.ViewState{Filter: subscription.Filter{Kind: subscription.Starred}}}, msg)

	close(ch)
	assert.Nil(t, WaitFeeds(ch)())
	assert.Nil(t, WaitFeeds(nil))
	assert.Nil(t, WaitOptions(nil))
	assert.Nil(t, WaitPosted(nil))

	posted := make(chan func(), 1)
	called := false
	posted <- func() { called = true }
	WaitPosted(posted)().(PostedMsg).Fn()
	assert.True(t, called)
}

func TestSelectedItem(t *testing.T) {
	f := newFixture(t)
	assert.Nil(t, SelectedItem(f.s))
	f.loadTree()
	item := SelectedItem(f.s)
	require.NotNil(t, item)
	assert.IsType(t, &presenter.Item{}, item)
	assert.True(t, item.IsGroup())
}

func TestCtrlCQuitsFromAnySession(t *testing.T) {
	for _, session := range []state.Session{state.FeedView, state.RenameView, state.DeleteFeedView} {
		f := newFixture(t)
		f.s.Session = session
		cmd := f.press(tea.KeyMsg{Type: tea.KeyCtrlC})
		require.NotNil(t, cmd)
		assert.Equal(t, tea.QuitMsg{}, cmd())
	}
}
