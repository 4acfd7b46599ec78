// Package feedoption holds the state machine behind the per-feed options
// surface: group assignment, rename, presets and unsubscribe.
package feedoption

import (
	"context"
	"slices"
	"strings"

	"github.com/go-pkgz/lgr"
	"github.com/tesso57/subsy/internal/application/usecase"
	"github.com/tesso57/subsy/internal/domain/subscription"
	"github.com/tesso57/subsy/internal/presentation/tui/scope"
	"github.com/tesso57/subsy/internal/presentation/tui/state"
)

// ViewState is an immutable snapshot of the options surface.
type ViewState struct {
	Visible         bool
	Feed            *subscription.Feed
	SelectedGroupID string
	Groups          []subscription.Group

	NewGroupContent       string
	NewGroupDialogVisible bool

	NewName             string
	RenameDialogVisible bool

	DeleteDialogVisible bool
}

// Config holds the view-model collaborators.
type Config struct {
	Repo   usecase.RssRepository
	Poster scope.Poster
	Logger lgr.L
}

// ViewModel serializes dispatched actions on a background queue and
// publishes the resulting ViewState.
type ViewModel struct {
	svc    usecase.SubscriptionService
	repo   usecase.RssRepository
	poster scope.Poster
	log    lgr.L
	scope  *scope.Scope
	state  *state.Store[ViewState]
}

// New creates the view-model and starts mirroring groups into its state.
func New(ctx context.Context, cfg Config) *ViewModel {
	if cfg.Logger == nil {
		cfg.Logger = lgr.NoOp
	}
	if cfg.Poster == nil {
		cfg.Poster = scope.Inline{}
	}
	vm := &ViewModel{
		svc:    usecase.NewSubscriptionService(cfg.Repo),
		repo:   cfg.Repo,
		poster: cfg.Poster,
		log:    cfg.Logger,
		scope:  scope.New(ctx),
		state:  state.NewStore(ViewState{}),
	}
	vm.scope.Launch(vm.pullGroups)
	return vm
}

// State returns the current snapshot.
func (vm *ViewModel) State() ViewState { return vm.state.Get() }

// Subscribe streams snapshots, see state.Store.Subscribe.
func (vm *ViewModel) Subscribe() (<-chan ViewState, func()) { return vm.state.Subscribe() }

// Wait blocks until every dispatched action has been applied.
func (vm *ViewModel) Wait() { vm.scope.Wait() }

// Close stops background work. Later dispatches are dropped.
func (vm *ViewModel) Close() { vm.scope.Close() }

// Dispatch queues an action. Actions run one at a time in dispatch order.
func (vm *ViewModel) Dispatch(action Action) {
	switch a := action.(type) {
	case Show:
		vm.enqueue(func(ctx context.Context) { vm.show(ctx, a.FeedID) })
	case Hide:
		vm.set(func(s ViewState) ViewState {
			s.Visible = false
			return s
		})
	case SelectedGroup:
		vm.enqueue(func(ctx context.Context) { vm.selectGroup(ctx, a.GroupID) })
	case InputNewGroup:
		vm.set(func(s ViewState) ViewState {
			s.NewGroupContent = a.Content
			return s
		})
	case AddNewGroup:
		vm.enqueue(vm.addNewGroup)
	case ShowNewGroupDialog:
		vm.set(func(s ViewState) ViewState {
			s.NewGroupDialogVisible = true
			s.NewGroupContent = ""
			return s
		})
	case HideNewGroupDialog:
		vm.set(func(s ViewState) ViewState {
			s.NewGroupDialogVisible = false
			s.NewGroupContent = ""
			return s
		})
	case ChangeAllowNotificationPreset:
		vm.enqueue(func(ctx context.Context) { vm.mutateFeed(ctx, "toggle notification", vm.svc.ToggleNotification) })
	case ChangeParseFullContentPreset:
		vm.enqueue(func(ctx context.Context) { vm.mutateFeed(ctx, "toggle full content", vm.svc.ToggleFullContent) })
	case ShowDeleteDialog:
		vm.set(func(s ViewState) ViewState {
			s.DeleteDialogVisible = true
			return s
		})
	case HideDeleteDialog:
		vm.set(func(s ViewState) ViewState {
			s.DeleteDialogVisible = false
			return s
		})
	case Delete:
		vm.enqueue(func(ctx context.Context) { vm.delete(ctx, a.OnComplete) })
	case ShowRenameDialog:
		vm.set(func(s ViewState) ViewState {
			s.RenameDialogVisible = true
			s.NewName = ""
			if s.Feed != nil {
				s.NewName = s.Feed.Name
			}
			return s
		})
	case HideRenameDialog:
		vm.set(func(s ViewState) ViewState {
			s.RenameDialogVisible = false
			s.NewName = ""
			return s
		})
	case InputNewName:
		vm.set(func(s ViewState) ViewState {
			s.NewName = a.Content
			return s
		})
	case Rename:
		vm.enqueue(vm.rename)
	default:
		vm.log.Logf("[WARN] feedoption: unknown action %T", action)
	}
}

func (vm *ViewModel) enqueue(fn func(ctx context.Context)) {
	if !vm.scope.Enqueue(fn) {
		vm.log.Logf("[DEBUG] feedoption: dropped action after close")
	}
}

// set queues a pure state change so it stays ordered with persistence work.
func (vm *ViewModel) set(fn func(ViewState) ViewState) {
	vm.enqueue(func(context.Context) { vm.state.Update(fn) })
}

func (vm *ViewModel) show(ctx context.Context, id string) {
	feed, err := vm.svc.Feed(ctx, id)
	if err != nil {
		vm.log.Logf("[WARN] feedoption: load feed %s: %v", id, err)
		return
	}
	vm.state.Update(func(s ViewState) ViewState {
		next := ViewState{Visible: true, Feed: feed, Groups: s.Groups}
		if feed != nil {
			next.SelectedGroupID = feed.GroupID
		}
		return next
	})
}

func (vm *ViewModel) selectGroup(ctx context.Context, groupID string) {
	feed := vm.state.Get().Feed
	if feed == nil {
		return
	}
	if err := vm.svc.MoveToGroup(ctx, *feed, groupID); err != nil {
		vm.log.Logf("[WARN] feedoption: %v", err)
		return
	}
	vm.reload(ctx, feed.ID)
}

func (vm *ViewModel) addNewGroup(ctx context.Context) {
	cur := vm.state.Get()
	name := strings.TrimSpace(cur.NewGroupContent)
	if name == "" {
		return
	}
	groupID, err := vm.svc.AddGroup(ctx, name)
	if err != nil {
		vm.log.Logf("[WARN] feedoption: %v", err)
		return
	}
	if cur.Feed != nil {
		if err := vm.svc.MoveToGroup(ctx, *cur.Feed, groupID); err != nil {
			vm.log.Logf("[WARN] feedoption: %v", err)
			return
		}
		vm.reload(ctx, cur.Feed.ID)
	}
	vm.state.Update(func(s ViewState) ViewState {
		s.SelectedGroupID = groupID
		s.NewGroupDialogVisible = false
		s.NewGroupContent = ""
		return s
	})
}

func (vm *ViewModel) mutateFeed(ctx context.Context, op string, fn func(context.Context, subscription.Feed) error) {
	feed := vm.state.Get().Feed
	if feed == nil {
		return
	}
	if err := fn(ctx, *feed); err != nil {
		vm.log.Logf("[WARN] feedoption: %s: %v", op, err)
		return
	}
	vm.reload(ctx, feed.ID)
}

func (vm *ViewModel) delete(ctx context.Context, onComplete func()) {
	feed := vm.state.Get().Feed
	deleted := feed != nil
	if feed != nil {
		if err := vm.svc.Delete(ctx, *feed); err != nil {
			vm.log.Logf("[WARN] feedoption: %v", err)
			deleted = false
		}
	}
	vm.state.Update(func(s ViewState) ViewState {
		s.DeleteDialogVisible = false
		if deleted {
			s.Feed = nil
		}
		return s
	})
	if deleted && onComplete != nil {
		vm.poster.Post(ctx, onComplete)
	}
}

func (vm *ViewModel) rename(ctx context.Context) {
	cur := vm.state.Get()
	if cur.Feed == nil {
		return
	}
	if err := vm.svc.Rename(ctx, *cur.Feed, cur.NewName); err != nil {
		vm.log.Logf("[WARN] feedoption: %v", err)
		return
	}
	vm.reload(ctx, cur.Feed.ID)
	vm.state.Update(func(s ViewState) ViewState {
		s.RenameDialogVisible = false
		s.NewName = ""
		return s
	})
}

// reload re-reads the bound feed so derived fields follow the store.
func (vm *ViewModel) reload(ctx context.Context, id string) {
	feed, err := vm.svc.Feed(ctx, id)
	if err != nil {
		vm.log.Logf("[WARN] feedoption: reload feed %s: %v", id, err)
		return
	}
	vm.state.Update(func(s ViewState) ViewState {
		s.Feed = feed
		if feed != nil {
			s.SelectedGroupID = feed.GroupID
		}
		return s
	})
}

func (vm *ViewModel) pullGroups(ctx context.Context) {
	updates := vm.repo.PullGroups(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case u, ok := <-updates:
			if !ok {
				return
			}
			if u.Err != nil {
				vm.log.Logf("[WARN] feedoption: pull groups: %v", u.Err)
				return
			}
			groups := slices.Clone(u.Value)
			vm.state.Update(func(s ViewState) ViewState {
				s.Groups = groups
				return s
			})
		}
	}
}

// NextGroupID returns the group after the selected one, wrapping around.
func (s ViewState) NextGroupID() string {
	if len(s.Groups) == 0 {
		return ""
	}
	idx := slices.IndexFunc(s.Groups, func(g subscription.Group) bool { return g.ID == s.SelectedGroupID })
	return s.Groups[(idx+1)%len(s.Groups)].ID
}

// GroupName returns the name of the selected group.
func (s ViewState) GroupName() string {
	for _, g := range s.Groups {
		if g.ID == s.SelectedGroupID {
			return g.Name
		}
	}
	return ""
}
