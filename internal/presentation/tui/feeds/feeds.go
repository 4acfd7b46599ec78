// Package feeds holds the feed list screen state: the group/feed tree with
// important counts for the active filter, the account and OPML export.
package feeds

import (
	"context"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/go-pkgz/lgr"
	"github.com/tesso57/subsy/internal/application/usecase"
	"github.com/tesso57/subsy/internal/domain/subscription"
	"github.com/tesso57/subsy/internal/presentation/tui/scope"
	"github.com/tesso57/subsy/internal/presentation/tui/state"
)

// ScrollRequest asks the list to show row Index. Seq grows with every
// request so the same index can be requested twice.
type ScrollRequest struct {
	Index int
	Seq   int
}

// ViewState is an immutable snapshot of the feed list screen.
type ViewState struct {
	Account           *subscription.Account
	Filter            subscription.Filter
	GroupWithFeedList []subscription.GroupWithFeed
	// FeedsVisible has one entry per group in GroupWithFeedList.
	FeedsVisible []bool
	Scroll       ScrollRequest
}

// Config holds the view-model collaborators.
type Config struct {
	Repo     usecase.RssRepository
	Accounts usecase.AccountRepository
	Opml     usecase.OpmlRepository
	Poster   scope.Poster
	Logger   lgr.L
}

// ViewModel owns the live subscription behind the feed list.
type ViewModel struct {
	repo     usecase.RssRepository
	accounts usecase.AccountRepository
	opml     usecase.OpmlRepository
	poster   scope.Poster
	log      lgr.L
	scope    *scope.Scope
	state    *state.Store[ViewState]

	mu         sync.Mutex
	cancelData context.CancelFunc
	generation atomic.Int64
}

type aggregated struct {
	filter subscription.Filter
	tree   []subscription.GroupWithFeed
}

// New creates the view-model. Nothing is loaded until FetchData.
func New(ctx context.Context, cfg Config) *ViewModel {
	if cfg.Logger == nil {
		cfg.Logger = lgr.NoOp
	}
	if cfg.Poster == nil {
		cfg.Poster = scope.Inline{}
	}
	return &ViewModel{
		repo:     cfg.Repo,
		accounts: cfg.Accounts,
		opml:     cfg.Opml,
		poster:   cfg.Poster,
		log:      cfg.Logger,
		scope:    scope.New(ctx),
		state:    state.NewStore(ViewState{}),
	}
}

// State returns the current snapshot.
func (vm *ViewModel) State() ViewState { return vm.state.Get() }

// Subscribe streams snapshots, see state.Store.Subscribe.
func (vm *ViewModel) Subscribe() (<-chan ViewState, func()) { return vm.state.Subscribe() }

// Wait blocks until queued account and export work has finished.
func (vm *ViewModel) Wait() { vm.scope.Wait() }

// Close cancels the live subscription and pending work.
func (vm *ViewModel) Close() { vm.scope.Close() }

// Dispatch handles an action without blocking the caller.
func (vm *ViewModel) Dispatch(action Action) {
	switch a := action.(type) {
	case FetchAccount:
		vm.scope.Enqueue(vm.fetchAccount)
	case FetchData:
		vm.fetchData(a.Filter)
	case ExportAsString:
		vm.scope.Enqueue(func(ctx context.Context) { vm.export(ctx, a.Callback) })
	case ScrollToItem:
		vm.state.Update(func(s ViewState) ViewState {
			s.Scroll = ScrollRequest{Index: a.Index, Seq: s.Scroll.Seq + 1}
			return s
		})
	case ToggleGroupVisible:
		vm.state.Update(func(s ViewState) ViewState {
			if a.Index < 0 || a.Index >= len(s.FeedsVisible) {
				return s
			}
			s.FeedsVisible = slices.Clone(s.FeedsVisible)
			s.FeedsVisible[a.Index] = !s.FeedsVisible[a.Index]
			return s
		})
	default:
		vm.log.Logf("[WARN] feeds: unknown action %T", action)
	}
}

func (vm *ViewModel) fetchAccount(ctx context.Context) {
	account, err := vm.accounts.CurrentAccount(ctx)
	if err != nil {
		vm.log.Logf("[WARN] feeds: current account: %v", err)
		return
	}
	vm.state.Update(func(s ViewState) ViewState {
		s.Account = account
		return s
	})
}

// fetchData cancels the running subscription and starts a new one. Results
// of a replaced subscription are never published.
func (vm *ViewModel) fetchData(filter subscription.Filter) {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	if vm.cancelData != nil {
		vm.cancelData()
	}
	ctx, cancel := context.WithCancel(vm.scope.Context())
	vm.cancelData = cancel
	gen := vm.generation.Add(1)

	if !vm.scope.Launch(func(context.Context) { vm.collect(ctx, cancel, gen, filter) }) {
		cancel()
	}
}

// collect publishes aggregated snapshots until ctx ends or a source fails.
// Its sources are released on return.
func (vm *ViewModel) collect(ctx context.Context, cancel context.CancelFunc, gen int64, filter subscription.Filter) {
	defer cancel()
	isStarred, isUnread := filter.IsStarred(), filter.IsUnread()
	kind := subscription.FilterFor(isStarred, isUnread)

	joined := usecase.CombineLatest(ctx,
		vm.repo.PullFeeds(ctx),
		vm.repo.PullImportant(ctx, isStarred, isUnread),
		func(tree []subscription.GroupWithFeed, counts []subscription.ImportantCount) aggregated {
			f, out := usecase.Aggregate(tree, counts, kind)
			return aggregated{filter: f, tree: out}
		},
	)

	for u := range joined {
		if u.Err != nil {
			vm.log.Logf("[ERROR] feeds: %s subscription stopped: %v", kind, u.Err)
			return
		}
		vm.state.Update(func(s ViewState) ViewState {
			if vm.generation.Load() != gen {
				return s
			}
			s.FeedsVisible = carryVisibility(s.GroupWithFeedList, s.FeedsVisible, u.Value.tree)
			s.GroupWithFeedList = u.Value.tree
			s.Filter = u.Value.filter
			return s
		})
	}
}

// carryVisibility sizes the visibility list to next. Groups seen before keep
// their state, new groups start expanded.
func carryVisibility(prev []subscription.GroupWithFeed, visible []bool, next []subscription.GroupWithFeed) []bool {
	known := make(map[string]bool, len(prev))
	for i, g := range prev {
		if i < len(visible) {
			known[g.Group.ID] = visible[i]
		}
	}
	out := make([]bool, len(next))
	for i, g := range next {
		v, ok := known[g.Group.ID]
		out[i] = v || !ok
	}
	return out
}

func (vm *ViewModel) export(ctx context.Context, callback func(string)) {
	doc, err := vm.opml.SaveToString(ctx)
	if err != nil {
		vm.log.Logf("[WARN] feeds: export opml: %v", err)
		return
	}
	if callback != nil {
		vm.poster.Post(ctx, func() { callback(doc) })
	}
}
