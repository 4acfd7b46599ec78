// Package subscription defines feed subscription models.
package subscription

import (
	"slices"
	"time"
)

// Account owns a set of groups and feeds.
type Account struct {
	ID   int64
	Name string
}

// Group is a named container of feeds.
type Group struct {
	ID        string
	Name      string
	AccountID int64
	// Important is the sum of the group's feed counts. Nil until aggregated.
	Important *int
}

// Feed represents a single feed subscription.
type Feed struct {
	ID             string
	Name           string
	URL            string
	GroupID        string
	AccountID      int64
	IsFullContent  bool
	IsNotification bool
	// Important is the unread or starred count for the active filter.
	Important *int
}

// GroupWithFeed pairs a group with its ordered feeds.
type GroupWithFeed struct {
	Group Group
	Feeds []Feed
}

// ImportantCount is the number of important articles of one feed.
type ImportantCount struct {
	FeedID    string `db:"feed_id"`
	GroupID   string `db:"group_id"`
	Important int    `db:"important"`
}

// Clone returns a deep copy of the group and its feeds.
func (g GroupWithFeed) Clone() GroupWithFeed {
	out := GroupWithFeed{Group: g.Group, Feeds: slices.Clone(g.Feeds)}
	out.Group.Important = cloneCount(g.Group.Important)
	for i := range out.Feeds {
		out.Feeds[i].Important = cloneCount(g.Feeds[i].Important)
	}
	return out
}

// Count returns a pointer to n.
func Count(n int) *int {
	return new(n)
}

// CountValue returns the count or zero when it is nil.
func CountValue(n *int) int {
	if n == nil {
		return 0
	}
	return *n
}

func cloneCount(n *int) *int {
	if n == nil {
		return nil
	}
	return new(*n)
}

// Article is a stored entry of a feed. Only its flags matter for counting.
type Article struct {
	ID        string
	FeedID    string
	AccountID int64
	Title     string
	Link      string
	Date      time.Time
	IsUnread  bool
	IsStarred bool
}
