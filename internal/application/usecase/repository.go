// Package usecase contains application-level services.
package usecase

import (
	"context"
	"errors"

	"github.com/tesso57/subsy/internal/domain/subscription"
)

var (
	// ErrNotFound is returned when an entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrBlankName is returned for empty or whitespace-only names.
	ErrBlankName = errors.New("name is blank")
)

// Update is one emission of a live sequence: a value or a terminal error.
type Update[T any] struct {
	Value T
	Err   error
}

// RssRepository abstracts feed and group persistence.
type RssRepository interface {
	// FindFeedByID returns nil without error when the feed does not exist.
	FindFeedByID(ctx context.Context, id string) (*subscription.Feed, error)
	UpdateFeed(ctx context.Context, feed subscription.Feed) error
	DeleteFeed(ctx context.Context, feed subscription.Feed) error
	AddGroup(ctx context.Context, name string) (string, error)
	PullGroups(ctx context.Context) <-chan Update[[]subscription.Group]
	PullFeeds(ctx context.Context) <-chan Update[[]subscription.GroupWithFeed]
	PullImportant(ctx context.Context, isStarred, isUnread bool) <-chan Update[[]subscription.ImportantCount]
}

// AccountRepository resolves the active account.
type AccountRepository interface {
	CurrentAccount(ctx context.Context) (*subscription.Account, error)
}

// OpmlRepository serializes subscriptions.
type OpmlRepository interface {
	SaveToString(ctx context.Context) (string, error)
}
