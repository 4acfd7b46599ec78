package store

import (
	"database/sql"
	"strings"

	"github.com/tesso57/subsy/internal/domain/subscription"
)

type accountRow struct {
	ID   int64  `db:"id"`
	Name string `db:"name"`
}

func (r accountRow) toDomain() subscription.Account {
	return subscription.Account{ID: r.ID, Name: r.Name}
}

type groupRow struct {
	ID        string `db:"id"`
	AccountID int64  `db:"account_id"`
	Name      string `db:"name"`
}

func (r groupRow) toDomain() subscription.Group {
	return subscription.Group{ID: r.ID, AccountID: r.AccountID, Name: r.Name}
}

type feedRow struct {
	ID             string `db:"id"`
	AccountID      int64  `db:"account_id"`
	GroupID        string `db:"group_id"`
	Name           string `db:"name"`
	URL            string `db:"url"`
	IsFullContent  bool   `db:"is_full_content"`
	IsNotification bool   `db:"is_notification"`
}

func (r feedRow) toDomain() subscription.Feed {
	return subscription.Feed{
		ID:             r.ID,
		AccountID:      r.AccountID,
		GroupID:        r.GroupID,
		Name:           r.Name,
		URL:            r.URL,
		IsFullContent:  r.IsFullContent,
		IsNotification: r.IsNotification,
	}
}

func fromDomainFeed(f subscription.Feed) feedRow {
	return feedRow{
		ID:             f.ID,
		AccountID:      f.AccountID,
		GroupID:        f.GroupID,
		Name:           f.Name,
		URL:            f.URL,
		IsFullContent:  f.IsFullContent,
		IsNotification: f.IsNotification,
	}
}

type articleRow struct {
	ID        string       `db:"id"`
	FeedID    string       `db:"feed_id"`
	AccountID int64        `db:"account_id"`
	Title     string       `db:"title"`
	Link      string       `db:"link"`
	Date      sql.NullTime `db:"date"`
	IsUnread  bool         `db:"is_unread"`
	IsStarred bool         `db:"is_starred"`
}

func fromDomainArticle(a subscription.Article) articleRow {
	return articleRow{
		ID:        a.ID,
		FeedID:    a.FeedID,
		AccountID: a.AccountID,
		Title:     a.Title,
		Link:      a.Link,
		Date:      sql.NullTime{Time: a.Date, Valid: !a.Date.IsZero()},
		IsUnread:  a.IsUnread,
		IsStarred: a.IsStarred,
	}
}

// isLockError checks if an error is a SQLite lock/busy error.
func isLockError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "SQLITE_BUSY") ||
		strings.Contains(errStr, "database is locked") ||
		strings.Contains(errStr, "database table is locked")
}
