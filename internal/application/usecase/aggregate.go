package usecase

import (
	"github.com/samber/lo"
	"github.com/tesso57/subsy/internal/domain/subscription"
)

// Aggregate attaches important counts to a group/feed tree.
//
// Under the All filter every node survives and nodes without a count keep a
// nil Important. Under Unread or Starred a node survives only when it has an
// entry in counts. Groups and feeds are checked independently, so a group
// with a count survives even when all of its feeds are dropped.
// The input tree is never modified.
func Aggregate(tree []subscription.GroupWithFeed, counts []subscription.ImportantCount, kind subscription.FilterKind) (subscription.Filter, []subscription.GroupWithFeed) {
	filtered := kind != subscription.All

	groupImportant := make(map[string]int)
	feedImportant := make(map[string]int, len(counts))
	for groupID, entries := range lo.GroupBy(counts, func(c subscription.ImportantCount) string { return c.GroupID }) {
		sum := 0
		for _, entry := range entries {
			feedImportant[entry.FeedID] = entry.Important
			sum += entry.Important
		}
		groupImportant[groupID] = sum
	}

	out := make([]subscription.GroupWithFeed, 0, len(tree))
	for _, src := range tree {
		important, ok := groupImportant[src.Group.ID]
		if !ok && filtered {
			continue
		}

		group := src.Clone()
		group.Group.Important = countOrNil(important, ok)
		group.Feeds = group.Feeds[:0]
		for _, feed := range src.Feeds {
			feedCount, ok := feedImportant[feed.ID]
			if !ok && filtered {
				continue
			}
			feed.Important = countOrNil(feedCount, ok)
			group.Feeds = append(group.Feeds, feed)
		}
		out = append(out, group)
	}

	total := lo.SumBy(out, func(g subscription.GroupWithFeed) int {
		return subscription.CountValue(g.Group.Important)
	})
	return subscription.Filter{Kind: kind, Important: total}, out
}

func countOrNil(n int, ok bool) *int {
	if !ok {
		return nil
	}
	return subscription.Count(n)
}
