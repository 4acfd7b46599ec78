// Package store persists accounts, groups, feeds and articles in SQLite.
package store

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/repeater/v2"
	"github.com/jmoiron/sqlx"
	"github.com/tesso57/subsy/internal/domain/subscription"
	_ "modernc.org/sqlite" // pure Go SQLite driver
)

//go:embed schema.sql
var schemaFS embed.FS

// DefaultGroupName is the name of the group every account starts with.
const DefaultGroupName = "Default"

// Config configures the store.
type Config struct {
	// Path is the SQLite file. ":memory:" keeps everything in memory.
	Path    string
	Account string
	Logger  lgr.L
}

// Store implements the repository capabilities on top of SQLite.
type Store struct {
	db      *sqlx.DB
	account subscription.Account
	log     lgr.L
	changes *notifier
}

// Open opens (creating if needed) the database and resolves the account.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.Logger == nil {
		cfg.Logger = lgr.NoOp
	}
	if cfg.Account == "" {
		cfg.Account = "Local"
	}

	dsn := cfg.Path
	if dsn == "" {
		dsn = ":memory:"
	}
	if dsn != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dsn), 0750); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
		dsn = "file:" + dsn + "?_txlock=immediate"
	}

	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// one connection serializes writers and keeps in-memory databases alive
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("execute %s: %w", pragma, err)
		}
	}

	if err := initSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	s := &Store{db: db, log: cfg.Logger, changes: newNotifier()}
	if err := s.ensureAccount(ctx, cfg.Account); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Account returns the account the store is bound to.
func (s *Store) Account() subscription.Account {
	return s.account
}

// CurrentAccount implements usecase.AccountRepository.
func (s *Store) CurrentAccount(ctx context.Context) (*subscription.Account, error) {
	var row accountRow
	err := s.db.GetContext(ctx, &row, "SELECT id, name FROM accounts WHERE id = ?", s.account.ID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get account: %w", err)
	}
	return new(row.toDomain()), nil
}

// DefaultGroupID returns the id of the account's default group.
func (s *Store) DefaultGroupID() string {
	return fmt.Sprintf("%d$%s", s.account.ID, "default")
}

func (s *Store) ensureAccount(ctx context.Context, name string) error {
	if _, err := s.db.ExecContext(ctx, "INSERT OR IGNORE INTO accounts (name) VALUES (?)", name); err != nil {
		return fmt.Errorf("create account: %w", err)
	}
	var row accountRow
	if err := s.db.GetContext(ctx, &row, "SELECT id, name FROM accounts WHERE name = ?", name); err != nil {
		return fmt.Errorf("load account: %w", err)
	}
	s.account = row.toDomain()

	_, err := s.db.ExecContext(ctx,
		"INSERT OR IGNORE INTO feed_groups (id, account_id, name) VALUES (?, ?, ?)",
		s.DefaultGroupID(), s.account.ID, DefaultGroupName)
	if err != nil {
		return fmt.Errorf("create default group: %w", err)
	}
	return nil
}

// write runs fn with retries on SQLite lock errors and wakes live sequences
// on success.
func (s *Store) write(ctx context.Context, op string, fn func() error) error {
	retrier := repeater.NewBackoff(5, 50*time.Millisecond, repeater.WithMaxDelay(2*time.Second))

	var critical error
	err := retrier.Do(ctx, func() error {
		err := fn()
		if err == nil || isLockError(err) {
			return err
		}
		critical = err
		return nil
	})
	if critical != nil {
		return fmt.Errorf("%s: %w", op, critical)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.log.Logf("[DEBUG] store: %s", op)
	s.changes.notify()
	return nil
}

func initSchema(ctx context.Context, db *sqlx.DB) error {
	schema, err := schemaFS.ReadFile("schema.sql")
	if err != nil {
		return fmt.Errorf("read schema: %w", err)
	}
	if _, err := db.ExecContext(ctx, string(schema)); err != nil {
		return fmt.Errorf("execute schema: %w", err)
	}
	return nil
}
