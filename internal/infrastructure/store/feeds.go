package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/tesso57/subsy/internal/application/usecase"
	"github.com/tesso57/subsy/internal/domain/subscription"
)

// NewID returns a new account-scoped id.
func (s *Store) NewID() string {
	return fmt.Sprintf("%d$%s", s.account.ID, uuid.NewString())
}

// FindFeedByID returns the feed or nil when it does not exist.
func (s *Store) FindFeedByID(ctx context.Context, id string) (*subscription.Feed, error) {
	var row feedRow
	err := s.db.GetContext(ctx, &row, "SELECT * FROM feeds WHERE id = ? AND account_id = ?", id, s.account.ID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get feed: %w", err)
	}
	return new(row.toDomain()), nil
}

// UpdateFeed persists every mutable field of feed.
func (s *Store) UpdateFeed(ctx context.Context, feed subscription.Feed) error {
	row := fromDomainFeed(feed)
	return s.write(ctx, "update feed "+feed.ID, func() error {
		query := `
			UPDATE feeds
			SET group_id = :group_id,
			    name = :name,
			    url = :url,
			    is_full_content = :is_full_content,
			    is_notification = :is_notification
			WHERE id = :id
		`
		res, err := s.db.NamedExecContext(ctx, query, row)
		if err != nil {
			return err
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return usecase.ErrNotFound
		}
		return nil
	})
}

// DeleteFeed removes a feed and its articles.
func (s *Store) DeleteFeed(ctx context.Context, feed subscription.Feed) error {
	return s.write(ctx, "delete feed "+feed.ID, func() error {
		tx, err := s.db.BeginTxx(ctx, nil)
		if err != nil {
			return err
		}
		defer func() { _ = tx.Rollback() }()

		if _, err := tx.ExecContext(ctx, "DELETE FROM articles WHERE feed_id = ?", feed.ID); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM feeds WHERE id = ?", feed.ID); err != nil {
			return err
		}
		return tx.Commit()
	})
}

// AddGroup creates a group in the current account and returns its id.
func (s *Store) AddGroup(ctx context.Context, name string) (string, error) {
	id := s.NewID()
	err := s.write(ctx, "add group "+name, func() error {
		_, err := s.db.ExecContext(ctx,
			"INSERT INTO feed_groups (id, account_id, name) VALUES (?, ?, ?)",
			id, s.account.ID, name)
		return err
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

// AddFeed inserts a feed, or returns the existing one with the same URL.
func (s *Store) AddFeed(ctx context.Context, feed subscription.Feed) (subscription.Feed, error) {
	var existing feedRow
	err := s.db.GetContext(ctx, &existing, "SELECT * FROM feeds WHERE account_id = ? AND url = ?", s.account.ID, feed.URL)
	if err == nil {
		return existing.toDomain(), nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return subscription.Feed{}, fmt.Errorf("find feed by url: %w", err)
	}

	if feed.ID == "" {
		feed.ID = s.NewID()
	}
	if feed.GroupID == "" {
		feed.GroupID = s.DefaultGroupID()
	}
	feed.AccountID = s.account.ID
	row := fromDomainFeed(feed)

	err = s.write(ctx, "add feed "+feed.URL, func() error {
		query := `
			INSERT INTO feeds (id, account_id, group_id, name, url, is_full_content, is_notification)
			VALUES (:id, :account_id, :group_id, :name, :url, :is_full_content, :is_notification)
		`
		_, err := s.db.NamedExecContext(ctx, query, row)
		return err
	})
	if err != nil {
		return subscription.Feed{}, err
	}
	return feed, nil
}

// AddArticles inserts articles, skipping ids that already exist.
func (s *Store) AddArticles(ctx context.Context, articles []subscription.Article) error {
	if len(articles) == 0 {
		return nil
	}
	return s.write(ctx, fmt.Sprintf("add %d articles", len(articles)), func() error {
		tx, err := s.db.BeginTxx(ctx, nil)
		if err != nil {
			return err
		}
		defer func() { _ = tx.Rollback() }()

		query := `
			INSERT OR IGNORE INTO articles (id, feed_id, account_id, title, link, date, is_unread, is_starred)
			VALUES (:id, :feed_id, :account_id, :title, :link, :date, :is_unread, :is_starred)
		`
		for _, a := range articles {
			a.AccountID = s.account.ID
			if _, err := tx.NamedExecContext(ctx, query, fromDomainArticle(a)); err != nil {
				return err
			}
		}
		return tx.Commit()
	})
}

// Groups returns the account's groups in creation order.
func (s *Store) Groups(ctx context.Context) ([]subscription.Group, error) {
	var rows []groupRow
	err := s.db.SelectContext(ctx, &rows,
		"SELECT id, account_id, name FROM feed_groups WHERE account_id = ? ORDER BY rowid", s.account.ID)
	if err != nil {
		return nil, fmt.Errorf("get groups: %w", err)
	}
	groups := make([]subscription.Group, len(rows))
	for i, r := range rows {
		groups[i] = r.toDomain()
	}
	return groups, nil
}

// GroupsWithFeeds returns every group joined with its feeds.
func (s *Store) GroupsWithFeeds(ctx context.Context) ([]subscription.GroupWithFeed, error) {
	groups, err := s.Groups(ctx)
	if err != nil {
		return nil, err
	}

	var rows []feedRow
	err = s.db.SelectContext(ctx, &rows,
		"SELECT * FROM feeds WHERE account_id = ? ORDER BY name COLLATE NOCASE, rowid", s.account.ID)
	if err != nil {
		return nil, fmt.Errorf("get feeds: %w", err)
	}

	byGroup := make(map[string][]subscription.Feed, len(groups))
	for _, r := range rows {
		byGroup[r.GroupID] = append(byGroup[r.GroupID], r.toDomain())
	}

	tree := make([]subscription.GroupWithFeed, len(groups))
	for i, g := range groups {
		tree[i] = subscription.GroupWithFeed{Group: g, Feeds: byGroup[g.ID]}
	}
	return tree, nil
}

// ImportantCounts counts articles per feed. With both flags false every
// article counts.
func (s *Store) ImportantCounts(ctx context.Context, isStarred, isUnread bool) ([]subscription.ImportantCount, error) {
	query := `
		SELECT a.feed_id AS feed_id, f.group_id AS group_id, COUNT(*) AS important
		FROM articles a
		JOIN feeds f ON f.id = a.feed_id
		WHERE a.account_id = ?
	`
	if isStarred {
		query += " AND a.is_starred = 1"
	}
	if isUnread {
		query += " AND a.is_unread = 1"
	}
	query += " GROUP BY a.feed_id, f.group_id"

	var counts []subscription.ImportantCount
	if err := s.db.SelectContext(ctx, &counts, query, s.account.ID); err != nil {
		return nil, fmt.Errorf("count important: %w", err)
	}
	return counts, nil
}

// PullGroups streams the account's groups.
func (s *Store) PullGroups(ctx context.Context) <-chan usecase.Update[[]subscription.Group] {
	return watch(ctx, s.changes, s.Groups)
}

// PullFeeds streams the group/feed tree.
func (s *Store) PullFeeds(ctx context.Context) <-chan usecase.Update[[]subscription.GroupWithFeed] {
	return watch(ctx, s.changes, s.GroupsWithFeeds)
}

// PullImportant streams per-feed important counts for the given filter.
func (s *Store) PullImportant(ctx context.Context, isStarred, isUnread bool) <-chan usecase.Update[[]subscription.ImportantCount] {
	return watch(ctx, s.changes, func(ctx context.Context) ([]subscription.ImportantCount, error) {
		return s.ImportantCounts(ctx, isStarred, isUnread)
	})
}

// SetArticleFlags sets the unread and starred flags of the article whose id
// or link is ref.
func (s *Store) SetArticleFlags(ctx context.Context, ref string, isUnread, isStarred bool) error {
	return s.write(ctx, "set article flags "+ref, func() error {
		res, err := s.db.ExecContext(ctx,
			"UPDATE articles SET is_unread = ?, is_starred = ? WHERE account_id = ? AND (id = ? OR link = ?)",
			isUnread, isStarred, s.account.ID, ref, ref)
		if err != nil {
			return err
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return usecase.ErrNotFound
		}
		return nil
	})
}
