package feeds

import "github.com/tesso57/subsy/internal/domain/subscription"

// Action is a command consumed by ViewModel.Dispatch.
type Action interface {
	feedsAction()
}

type (
	// FetchAccount refreshes the active account.
	FetchAccount struct{}

	// FetchData replaces the live subscription with one for Filter.
	FetchData struct{ Filter subscription.Filter }

	// ExportAsString renders OPML and hands it to Callback on success.
	ExportAsString struct{ Callback func(string) }

	// ScrollToItem asks the list to bring row Index into view.
	ScrollToItem struct{ Index int }

	// ToggleGroupVisible expands or collapses the group at Index.
	ToggleGroupVisible struct{ Index int }
)

func (FetchAccount) feedsAction() {}

func (FetchData) feedsAction() {}

func (ExportAsString) feedsAction() {}

func (ScrollToItem) feedsAction() {}

func (ToggleGroupVisible) feedsAction() {}
