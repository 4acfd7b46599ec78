package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/tesso57/subsy/internal/application/settings"
	"github.com/tesso57/subsy/internal/application/usecase"
	"github.com/tesso57/subsy/internal/infrastructure/config"
	"github.com/tesso57/subsy/internal/infrastructure/feed"
	"github.com/tesso57/subsy/internal/infrastructure/opml"
	"github.com/tesso57/subsy/internal/infrastructure/store"
	"github.com/tesso57/subsy/internal/presentation/tui"
	"github.com/tesso57/subsy/internal/presentation/tui/feedoption"
	"github.com/tesso57/subsy/internal/presentation/tui/feeds"
	"github.com/tesso57/subsy/internal/presentation/tui/scope"
)

var revision = "unknown"

// CLI with all commands and global options.
type CLI struct {
	Config  string `help:"Config file path." type:"path"`
	DB      string `name:"db" help:"SQLite database path, overrides the config file." type:"path"`
	Debug   bool   `help:"Debug logging." env:"DEBUG"`
	LogFile string `name:"log-file" help:"Write logs to this file." type:"path"`
	NoColor bool   `name:"no-color" help:"Disable colored log output." env:"NO_COLOR"`

	TUI        TUICmd           `cmd:"" name:"tui" default:"1" help:"Browse subscriptions (default)."`
	Export     ExportCmd        `cmd:"" help:"Print subscriptions as OPML."`
	ImportFeed ImportFeedCmd    `cmd:"" name:"import-feed" help:"Import a local RSS/Atom file."`
	AddGroup   AddGroupCmd      `cmd:"" name:"add-group" help:"Create a group."`
	Mark       MarkCmd          `cmd:"" help:"Set the read and starred state of an article."`
	Version    kong.VersionFlag `help:"Show version."`
}

// App is what every command runs against.
type App struct {
	Settings settings.Settings
	Logger   lgr.L
	Out      io.Writer
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("subsy"),
		kong.Description("Browse and manage feed subscriptions in the terminal."),
		kong.UsageOnError(),
		kong.Vars{"version": revision},
	)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, kctx, &cli); err != nil {
		cancel()
		fmt.Fprintf(os.Stderr, "subsy: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, kctx *kong.Context, cli *CLI) error {
	cfg, err := config.Load(cli.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cli.DB != "" {
		cfg.Settings.DBFile = cli.DB
	}

	interactive := kctx.Command() == "tui"
	logOut, closeLog, err := logWriter(cli, cfg.Settings, interactive)
	if err != nil {
		return err
	}
	defer closeLog()
	setupLog(cli.Debug, cli.NoColor || interactive, logOut)

	app := &App{Settings: cfg.Settings, Logger: lgr.Default(), Out: os.Stdout}
	kctx.BindTo(ctx, (*context.Context)(nil))
	return kctx.Run(app)
}

// TUICmd runs the interactive screen.
type TUICmd struct{}

// Run starts the bubbletea program and blocks until the user quits.
func (c *TUICmd) Run(ctx context.Context, app *App) error {
	st, err := openStore(ctx, app)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	mailbox := scope.NewMailbox(64)
	feedsVM := feeds.New(ctx, feeds.Config{
		Repo:     st,
		Accounts: st,
		Opml:     opml.NewExporter(st),
		Poster:   mailbox,
		Logger:   app.Logger,
	})
	defer feedsVM.Close()
	optionsVM := feedoption.New(ctx, feedoption.Config{Repo: st, Poster: mailbox, Logger: app.Logger})
	defer optionsVM.Close()

	model := tui.NewModel(app.Settings, tui.ViewModels{Feeds: feedsVM, Options: optionsVM, Mailbox: mailbox})
	defer model.Close()

	app.Logger.Logf("[INFO] starting subsy %s, db %s", revision, app.Settings.DBFile)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}

// ExportCmd prints OPML to stdout.
type ExportCmd struct {
	Title string `help:"OPML document title." default:"Subsy Subscriptions"`
}

// Run renders every group and feed as OPML.
func (c *ExportCmd) Run(ctx context.Context, app *App) error {
	st, err := openStore(ctx, app)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	exporter := opml.NewExporter(st)
	exporter.Title = c.Title
	var repo usecase.OpmlRepository = exporter
	doc, err := repo.SaveToString(ctx)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(app.Out, doc)
	return err
}

// ImportFeedCmd seeds a feed and its entries from a local file.
type ImportFeedCmd struct {
	File  string `arg:"" type:"existingfile" help:"RSS or Atom file."`
	Group string `help:"Target group name, created when missing."`
	URL   string `name:"url" help:"Feed URL to record instead of the document's own link."`
}

// Run imports the file.
func (c *ImportFeedCmd) Run(ctx context.Context, app *App) error {
	st, err := openStore(ctx, app)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	res, err := feed.ImportFile(ctx, st, c.File, feed.Options{Group: c.Group, URL: c.URL})
	if err != nil {
		return fmt.Errorf("import %s: %w", c.File, err)
	}
	_, err = fmt.Fprintf(app.Out, "imported %q (%s) with %d articles\n", res.Feed.Name, res.Feed.URL, res.Articles)
	return err
}

// AddGroupCmd creates a group.
type AddGroupCmd struct {
	Name string `arg:"" help:"Group name."`
}

// Run creates the group through the subscription service.
func (c *AddGroupCmd) Run(ctx context.Context, app *App) error {
	st, err := openStore(ctx, app)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	id, err := usecase.NewSubscriptionService(st).AddGroup(ctx, c.Name)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(app.Out, "created group %s\n", id)
	return err
}

// MarkCmd flags a single article so it shows up under the Unread or Starred
// filters.
type MarkCmd struct {
	Article string `arg:"" help:"Article id or link."`
	Read    bool   `help:"Mark as read instead of unread."`
	Starred bool   `help:"Star the article."`
}

// Run updates the article flags.
func (c *MarkCmd) Run(ctx context.Context, app *App) error {
	st, err := openStore(ctx, app)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	if err := st.SetArticleFlags(ctx, c.Article, !c.Read, c.Starred); err != nil {
		return fmt.Errorf("mark %s: %w", c.Article, err)
	}
	_, err = fmt.Fprintf(app.Out, "marked %s read=%t starred=%t\n", c.Article, c.Read, c.Starred)
	return err
}

func openStore(ctx context.Context, app *App) (*store.Store, error) {
	st, err := store.Open(ctx, store.Config{
		Path:    app.Settings.DBFile,
		Account: app.Settings.Account,
		Logger:  app.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}

// logWriter picks the log destination. The screen belongs to bubbletea in
// interactive mode, so logs go to a file there or nowhere.
func logWriter(cli *CLI, cfg settings.Settings, interactive bool) (io.Writer, func(), error) {
	path := cli.LogFile
	if path == "" && cli.Debug && interactive {
		path = filepath.Join(filepath.Dir(cfg.DBFile), "subsy.log")
	}
	if path == "" {
		if interactive || !cli.Debug {
			return io.Discard, func() {}, nil
		}
		return os.Stderr, func() {}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}

func setupLog(dbg, noColor bool, out io.Writer) {
	logOpts := []lgr.Option{lgr.Out(out), lgr.Err(out)}
	if dbg {
		logOpts = append(logOpts, lgr.Debug, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError)
	}

	if !noColor {
		colorizer := lgr.Mapper{
			ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
			WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
			InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
			DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
			CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
			TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
		}
		logOpts = append(logOpts, lgr.Map(colorizer))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
