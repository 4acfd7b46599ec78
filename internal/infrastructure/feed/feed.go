// Package feed imports RSS/Atom documents from local files into the store.
package feed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/tesso57/subsy/internal/domain/subscription"
)

// Sink receives imported subscriptions.
type Sink interface {
	Groups(ctx context.Context) ([]subscription.Group, error)
	AddGroup(ctx context.Context, name string) (string, error)
	AddFeed(ctx context.Context, feed subscription.Feed) (subscription.Feed, error)
	AddArticles(ctx context.Context, articles []subscription.Article) error
}

// Options controls an import.
type Options struct {
	// Group is the target group name. Empty means the default group.
	Group string
	// URL overrides the feed link found in the document.
	URL string
}

// Result summarizes an import.
type Result struct {
	Feed     subscription.Feed
	Articles int
}

// ParserFunc is exposed for testing.
// It allows mocking the feed parsing logic.
var ParserFunc = defaultParser

func defaultParser(r io.Reader) (*gofeed.Feed, error) {
	return gofeed.NewParser().Parse(r)
}

// ImportFile parses the RSS/Atom file at path and stores it.
func ImportFile(ctx context.Context, sink Sink, path string, opt Options) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return Result{}, err
	}
	defer func() { _ = f.Close() }()

	if opt.URL == "" {
		opt.URL = "file://" + path
	}
	return Import(ctx, sink, f, opt)
}

// Import parses an RSS/Atom document and stores the feed with its entries as
// unread articles.
func Import(ctx context.Context, sink Sink, r io.Reader, opt Options) (Result, error) {
	parsed, err := ParserFunc(r)
	if err != nil {
		return Result{}, fmt.Errorf("parse feed: %w", err)
	}

	url := strings.TrimSpace(parsed.FeedLink)
	if opt.URL != "" && (url == "" || strings.HasPrefix(opt.URL, "http")) {
		url = opt.URL
	}
	if url == "" {
		return Result{}, errors.New("feed url is empty")
	}

	groupID, err := resolveGroup(ctx, sink, opt.Group)
	if err != nil {
		return Result{}, err
	}

	name := strings.TrimSpace(parsed.Title)
	if name == "" {
		name = url
	}
	feed, err := sink.AddFeed(ctx, subscription.Feed{Name: name, URL: url, GroupID: groupID})
	if err != nil {
		return Result{}, err
	}

	articles := make([]subscription.Article, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		key := item.GUID
		if key == "" {
			key = item.Link
		}
		if key == "" {
			continue
		}
		var date time.Time
		if item.PublishedParsed != nil {
			date = *item.PublishedParsed
		} else if item.UpdatedParsed != nil {
			date = *item.UpdatedParsed
		}
		articles = append(articles, subscription.Article{
			ID:       feed.ID + "$" + key,
			FeedID:   feed.ID,
			Title:    item.Title,
			Link:     item.Link,
			Date:     date,
			IsUnread: true,
		})
	}
	if err := sink.AddArticles(ctx, articles); err != nil {
		return Result{}, err
	}

	return Result{Feed: feed, Articles: len(articles)}, nil
}

func resolveGroup(ctx context.Context, sink Sink, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", nil
	}
	groups, err := sink.Groups(ctx)
	if err != nil {
		return "", err
	}
	for _, g := range groups {
		if strings.EqualFold(g.Name, name) {
			return g.ID, nil
		}
	}
	return sink.AddGroup(ctx, name)
}
