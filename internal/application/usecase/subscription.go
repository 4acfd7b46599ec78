package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/tesso57/subsy/internal/domain/subscription"
)

// SubscriptionService provides subscription-related operations.
type SubscriptionService struct {
	Repo RssRepository
}

// NewSubscriptionService constructs a SubscriptionService.
func NewSubscriptionService(repo RssRepository) SubscriptionService {
	return SubscriptionService{Repo: repo}
}

// Feed returns the feed with the given id or nil when it does not exist.
func (s SubscriptionService) Feed(ctx context.Context, id string) (*subscription.Feed, error) {
	return s.Repo.FindFeedByID(ctx, id)
}

// AddGroup creates a group and returns its id.
func (s SubscriptionService) AddGroup(ctx context.Context, name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", ErrBlankName
	}
	id, err := s.Repo.AddGroup(ctx, trimmed)
	if err != nil {
		return "", fmt.Errorf("add group %q: %w", trimmed, err)
	}
	return id, nil
}

// MoveToGroup assigns feed to groupID.
func (s SubscriptionService) MoveToGroup(ctx context.Context, feed subscription.Feed, groupID string) error {
	feed.GroupID = groupID
	return s.update(ctx, feed)
}

// Rename changes the display name of a feed.
func (s SubscriptionService) Rename(ctx context.Context, feed subscription.Feed, name string) error {
	feed.Name = name
	return s.update(ctx, feed)
}

// ToggleNotification flips the notification preset of a feed.
func (s SubscriptionService) ToggleNotification(ctx context.Context, feed subscription.Feed) error {
	feed.IsNotification = !feed.IsNotification
	return s.update(ctx, feed)
}

// ToggleFullContent flips the full content parsing preset of a feed.
func (s SubscriptionService) ToggleFullContent(ctx context.Context, feed subscription.Feed) error {
	feed.IsFullContent = !feed.IsFullContent
	return s.update(ctx, feed)
}

// Delete removes a feed.
func (s SubscriptionService) Delete(ctx context.Context, feed subscription.Feed) error {
	if err := s.Repo.DeleteFeed(ctx, feed); err != nil {
		return fmt.Errorf("delete feed %s: %w", feed.ID, err)
	}
	return nil
}

func (s SubscriptionService) update(ctx context.Context, feed subscription.Feed) error {
	if err := s.Repo.UpdateFeed(ctx, feed); err != nil {
		return fmt.Errorf("update feed %s: %w", feed.ID, err)
	}
	return nil
}
