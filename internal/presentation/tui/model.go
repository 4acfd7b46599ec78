package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tesso57/subsy/internal/application/settings"
	"github.com/tesso57/subsy/internal/domain/subscription"
	"github.com/tesso57/subsy/internal/presentation/tui/components/deletefeed"
	"github.com/tesso57/subsy/internal/presentation/tui/feedoption"
	"github.com/tesso57/subsy/internal/presentation/tui/feeds"
	"github.com/tesso57/subsy/internal/presentation/tui/i18n"
	"github.com/tesso57/subsy/internal/presentation/tui/scope"
	"github.com/tesso57/subsy/internal/presentation/tui/state"
	"github.com/tesso57/subsy/internal/presentation/tui/update"
	"github.com/tesso57/subsy/internal/presentation/tui/view"
	listview "github.com/tesso57/subsy/internal/presentation/tui/view/list"
)

// ViewModels are the view-models the screen binds to.
type ViewModels struct {
	Feeds   *feeds.ViewModel
	Options *feedoption.ViewModel
	// Mailbox carries callbacks the view-models post to the UI thread.
	Mailbox *scope.Mailbox
}

// Model represents the main application state.
type Model struct {
	settings settings.Settings
	deps     update.Deps
	state    *state.ModelState

	feedsCh     <-chan feeds.ViewState
	optionsCh   <-chan feedoption.ViewState
	posted      <-chan func()
	unsubscribe []func()
}

// NewModel creates the application model and subscribes to the view-models.
// Call Close when the program exits.
func NewModel(cfg settings.Settings, vms ViewModels) *Model {
	messages := i18n.New(cfg.Locale)
	m := &Model{
		settings: cfg,
		state:    newModelState(cfg),
	}
	m.deps = update.Deps{
		Feeds:       vms.Feeds,
		Options:     vms.Options,
		Delete:      deletefeed.New(vms.Options, messages, m.notify),
		Messages:    messages,
		ExportFile:  cfg.ExportFile,
		WriteFile:   writeFile,
		BannerColor: cfg.Theme.Banner,
	}

	var stopFeeds, stopOptions func()
	m.feedsCh, stopFeeds = vms.Feeds.Subscribe()
	m.optionsCh, stopOptions = vms.Options.Subscribe()
	m.unsubscribe = []func(){stopFeeds, stopOptions}
	if vms.Mailbox != nil {
		m.posted = vms.Mailbox.C()
	}
	return m
}

// Init loads the account and the unread tree and starts listening for
// view-model snapshots.
func (m *Model) Init() tea.Cmd {
	m.deps.Feeds.Dispatch(feeds.FetchAccount{})
	update.StartFetch(m.state, m.deps, subscription.Unread)
	return tea.Batch(
		update.WaitFeeds(m.feedsCh),
		update.WaitOptions(m.optionsCh),
		update.WaitPosted(m.posted),
	)
}

// Close stops the snapshot subscriptions.
func (m *Model) Close() {
	for _, stop := range m.unsubscribe {
		stop()
	}
}

// Update handles messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmd, handled := update.HandleKeyMsg(m.state, msg, m.deps)
		if handled {
			update.UpdateListSizes(m.state)
			return m, cmd
		}
	case tea.WindowSizeMsg:
		update.HandleWindowSize(m.state, msg)
	case update.FeedsStateMsg:
		update.HandleFeedsState(m.state, msg.State)
		return m, update.WaitFeeds(m.feedsCh)
	case update.OptionsStateMsg:
		cmd := update.HandleOptionsState(m.state, msg.State)
		return m, tea.Batch(cmd, update.WaitOptions(m.optionsCh))
	case update.PostedMsg:
		msg.Fn()
		update.UpdateListSizes(m.state)
		return m, update.WaitPosted(m.posted)
	}

	var cmd tea.Cmd
	switch m.state.Session {
	case state.FeedView:
		m.state.FeedList, cmd = m.state.FeedList.Update(msg)
	case state.RenameView, state.NewGroupView:
		m.state.TextInput, cmd = m.state.TextInput.Update(msg)
	}
	return m, cmd
}

// View renders the application view.
func (m *Model) View() string {
	return view.Render(m.buildProps())
}

// notify shows a transient message in the footer. It runs on the UI thread.
func (m *Model) notify(msg string) {
	m.state.StatusMessage = msg
	m.state.Err = nil
}

func newModelState(cfg settings.Settings) *state.ModelState {
	st := &state.ModelState{
		Session:   state.FeedView,
		FeedList:  newFeedList(cfg),
		TextInput: newTextInput(),
		Help:      help.New(),
		Keys:      state.NewKeyMap(cfg.KeyMap),
	}

	st.FeedList.KeyMap.CursorUp = st.Keys.Up
	st.FeedList.KeyMap.CursorDown = st.Keys.Down
	return st
}

func newFeedList(cfg settings.Settings) list.Model {
	l := list.New([]list.Item{}, listview.NewFeedDelegate(lipgloss.Color(cfg.Theme.FeedName)), 0, 0)
	l.Title = "Subscriptions"
	l.SetShowHelp(false)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()
	return l
}

func newTextInput() textinput.Model {
	ti := textinput.New()
	ti.CharLimit = 156
	ti.Width = 40
	return ti
}
