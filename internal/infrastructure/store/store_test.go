package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tesso57/subsy/internal/application/usecase"
	"github.com/tesso57/subsy/internal/domain/subscription"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), Config{Path: filepath.Join(t.TempDir(), "subsy.db"), Account: "Local"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func next[T any](t *testing.T, ch <-chan usecase.Update[T]) T {
	t.Helper()
	select {
	case u, ok := <-ch:
		require.True(t, ok, "stream closed")
		require.NoError(t, u.Err)
		return u.Value
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for stream")
	}
	var zero T
	return zero
}

func TestOpenCreatesAccountAndDefaultGroup(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	acc, err := s.CurrentAccount(ctx)
	require.NoError(t, err)
	require.NotNil(t, acc)
	assert.Equal(t, "Local", acc.Name)

	groups, err := s.Groups(ctx)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, DefaultGroupName, groups[0].Name)
	assert.Equal(t, s.DefaultGroupID(), groups[0].ID)
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "subsy.db")
	ctx := context.Background()

	s1, err := Open(ctx, Config{Path: path})
	require.NoError(t, err)
	id := s1.Account().ID
	require.NoError(t, s1.Close())

	s2, err := Open(ctx, Config{Path: path})
	require.NoError(t, err)
	defer func() { _ = s2.Close() }()
	assert.Equal(t, id, s2.Account().ID)

	groups, err := s2.Groups(ctx)
	require.NoError(t, err)
	assert.Len(t, groups, 1)
}

func TestFeedCRUD(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	missing, err := s.FindFeedByID(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)

	feed, err := s.AddFeed(ctx, subscription.Feed{Name: "Go Blog", URL: "https://go.dev/blog/feed.atom"})
	require.NoError(t, err)
	assert.NotEmpty(t, feed.ID)
	assert.Equal(t, s.DefaultGroupID(), feed.GroupID)

	again, err := s.AddFeed(ctx, subscription.Feed{Name: "dup", URL: "https://go.dev/blog/feed.atom"})
	require.NoError(t, err)
	assert.Equal(t, feed.ID, again.ID)

	groupID, err := s.AddGroup(ctx, "Tech")
	require.NoError(t, err)

	feed.Name = "Tech News"
	feed.GroupID = groupID
	feed.IsNotification = true
	require.NoError(t, s.UpdateFeed(ctx, feed))

	got, err := s.FindFeedByID(ctx, feed.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Tech News", got.Name)
	assert.Equal(t, groupID, got.GroupID)
	assert.True(t, got.IsNotification)
	assert.False(t, got.IsFullContent)

	require.NoError(t, s.DeleteFeed(ctx, *got))
	got, err = s.FindFeedByID(ctx, feed.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestUpdateMissingFeed(t *testing.T) {
	s := newTestStore(t)
	err := s.UpdateFeed(context.Background(), subscription.Feed{ID: "missing", GroupID: s.DefaultGroupID()})
	require.ErrorIs(t, err, usecase.ErrNotFound)
}

func TestImportantCounts(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	a, err := s.AddFeed(ctx, subscription.Feed{Name: "A", URL: "https://a.example/rss"})
	require.NoError(t, err)
	b, err := s.AddFeed(ctx, subscription.Feed{Name: "B", URL: "https://b.example/rss"})
	require.NoError(t, err)

	require.NoError(t, s.AddArticles(ctx, []subscription.Article{
		{ID: "1", FeedID: a.ID, IsUnread: true},
		{ID: "2", FeedID: a.ID, IsUnread: true, IsStarred: true},
		{ID: "3", FeedID: a.ID},
		{ID: "4", FeedID: b.ID, IsStarred: true},
	}))

	byFeed := func(counts []subscription.ImportantCount) map[string]int {
		out := map[string]int{}
		for _, c := range counts {
			out[c.FeedID] = c.Important
			assert.Equal(t, s.DefaultGroupID(), c.GroupID)
		}
		return out
	}

	all, err := s.ImportantCounts(ctx, false, false)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{a.ID: 3, b.ID: 1}, byFeed(all))

	unread, err := s.ImportantCounts(ctx, false, true)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{a.ID: 2}, byFeed(unread))

	starred, err := s.ImportantCounts(ctx, true, false)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{a.ID: 1, b.ID: 1}, byFeed(starred))
}

func TestPullFeedsEmitsAfterWrites(t *testing.T) {
	s := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stream := s.PullFeeds(ctx)
	tree := next(t, stream)
	require.Len(t, tree, 1)
	assert.Empty(t, tree[0].Feeds)

	_, err := s.AddFeed(context.Background(), subscription.Feed{Name: "A", URL: "https://a.example/rss"})
	require.NoError(t, err)

	tree = next(t, stream)
	require.Len(t, tree, 1)
	require.Len(t, tree[0].Feeds, 1)
	assert.Equal(t, "A", tree[0].Feeds[0].Name)

	cancel()
	for range stream {
	}
}

func TestPullImportantReflectsFlagChanges(t *testing.T) {
	s := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	feed, err := s.AddFeed(ctx, subscription.Feed{Name: "A", URL: "https://a.example/rss"})
	require.NoError(t, err)
	require.NoError(t, s.AddArticles(ctx, []subscription.Article{{ID: "1", FeedID: feed.ID, IsUnread: true}}))

	stream := s.PullImportant(ctx, false, true)
	counts := next(t, stream)
	require.Len(t, counts, 1)
	assert.Equal(t, 1, counts[0].Important)

	require.NoError(t, s.SetArticleFlags(ctx, "1", false, false))
	counts = next(t, stream)
	assert.Empty(t, counts)
}

func TestSetArticleFlagsByLink(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	feed, err := s.AddFeed(ctx, subscription.Feed{Name: "A", URL: "https://a.example/rss"})
	require.NoError(t, err)
	require.NoError(t, s.AddArticles(ctx, []subscription.Article{
		{ID: "1", FeedID: feed.ID, Link: "https://a.example/1", IsUnread: true},
	}))

	require.NoError(t, s.SetArticleFlags(ctx, "https://a.example/1", true, true))
	starred, err := s.ImportantCounts(ctx, true, false)
	require.NoError(t, err)
	require.Len(t, starred, 1)
	assert.Equal(t, 1, starred[0].Important)

	err = s.SetArticleFlags(ctx, "https://a.example/missing", false, false)
	require.ErrorIs(t, err, usecase.ErrNotFound)
}
