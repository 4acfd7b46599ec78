package tui

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
	"github.com/tesso57/subsy/internal/application/settings"
	"github.com/tesso57/subsy/internal/domain/subscription"
	"github.com/tesso57/subsy/internal/infrastructure/opml"
	"github.com/tesso57/subsy/internal/infrastructure/store"
	"github.com/tesso57/subsy/internal/presentation/tui/feedoption"
	"github.com/tesso57/subsy/internal/presentation/tui/feeds"
	"github.com/tesso57/subsy/internal/presentation/tui/scope"
	"github.com/tesso57/subsy/internal/presentation/tui/update"
)

type harness struct {
	t       *testing.T
	model   *Model
	store   *store.Store
	feeds   *feeds.ViewModel
	options *feedoption.ViewModel
	goBlog  subscription.Feed
	daily   subscription.Feed
}

func testSettings(t *testing.T) settings.Settings {
	return settings.Settings{
		Account:    "Local",
		Locale:     "en",
		ExportFile: filepath.Join(t.TempDir(), "out", "subscriptions.opml"),
		KeyMap: settings.KeyMapConfig{
			Up: "k", Down: "j", Open: "enter", Back: "esc", Quit: "q",
			Filter: "f", ToggleGroup: "space", DeleteFeed: "x", Rename: "r",
			MoveGroup: "m", NewGroup: "n", ToggleNotify: "N", ToggleFull: "F",
			Export: "e", Top: "g", Bottom: "G",
		},
		Theme: settings.ThemeConfig{FeedName: "244", Banner: "62"},
	}
}

// newHarness seeds a Tech group with Go Blog (one unread article) and
// Daily (read only) and starts the model.
func newHarness(t *testing.T) *harness {
	t.Helper()
	ctx := context.Background()
	cfg := testSettings(t)

	st, err := store.Open(ctx, store.Config{Path: filepath.Join(t.TempDir(), "subsy.db"), Account: cfg.Account})
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	tech, err := st.AddGroup(ctx, "Tech")
	require.NoError(t, err)
	goBlog, err := st.AddFeed(ctx, subscription.Feed{Name: "Go Blog", URL: "https://go.dev/blog/feed.atom", GroupID: tech})
	require.NoError(t, err)
	daily, err := st.AddFeed(ctx, subscription.Feed{Name: "Daily", URL: "https://daily.example.com/rss", GroupID: tech})
	require.NoError(t, err)
	require.NoError(t, st.AddArticles(ctx, []subscription.Article{
		{ID: goBlog.ID + "$1", FeedID: goBlog.ID, Title: "Go 1.26", Date: time.Now(), IsUnread: true},
		{ID: daily.ID + "$1", FeedID: daily.ID, Title: "Old news", Date: time.Now()},
	}))

	mailbox := scope.NewMailbox(16)
	feedsVM := feeds.New(ctx, feeds.Config{Repo: st, Accounts: st, Opml: opml.NewExporter(st), Poster: mailbox})
	optionsVM := feedoption.New(ctx, feedoption.Config{Repo: st, Poster: mailbox})
	t.Cleanup(feedsVM.Close)
	t.Cleanup(optionsVM.Close)

	m := NewModel(cfg, ViewModels{Feeds: feedsVM, Options: optionsVM, Mailbox: mailbox})
	t.Cleanup(m.Close)
	m.Init()
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	return &harness{t: t, model: m, store: st, feeds: feedsVM, options: optionsVM, goBlog: goBlog, daily: daily}
}

// pump delivers every pending snapshot and posted callback to the model,
// the way the bubbletea loop would.
func (h *harness) pump() {
	h.options.Wait()
	h.feeds.Wait()
	for {
		select {
		case st, ok := <-h.model.feedsCh:
			if !ok {
				return
			}
			h.model.Update(update.FeedsStateMsg{State: st})
		case st, ok := <-h.model.optionsCh:
			if !ok {
				return
			}
			h.model.Update(update.OptionsStateMsg{State: st})
		case fn := <-h.model.posted:
			h.model.Update(update.PostedMsg{Fn: fn})
		default:
			return
		}
	}
}

// eventually pumps until cond holds.
func (h *harness) eventually(cond func() bool, msg string) {
	h.t.Helper()
	require.Eventually(h.t, func() bool {
		h.pump()
		return cond()
	}, 3*time.Second, 10*time.Millisecond, msg)
}

func (h *harness) press(keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = h.model.Update(keyMsg(k))
	}
	return cmd
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func (h *harness) rows() []string {
	items := h.model.state.FeedList.Items()
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.(interface{ Title() string }).Title()
	}
	return out
}

func (h *harness) selectRow(title string) {
	h.t.Helper()
	for i, row := range h.rows() {
		if row == title {
			h.model.state.FeedList.Select(i)
			return
		}
	}
	h.t.Fatalf("row %q not found in %v", title, h.rows())
}
