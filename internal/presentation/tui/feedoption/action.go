package feedoption

// Action is a command consumed by ViewModel.Dispatch.
type Action interface {
	feedOptionAction()
}

type (
	// Show loads the feed and opens the options surface.
	Show struct{ FeedID string }

	// Hide closes the options surface.
	Hide struct{}

	// SelectedGroup moves the bound feed to GroupID.
	SelectedGroup struct{ GroupID string }

	// InputNewGroup buffers the name typed into the new group dialog.
	InputNewGroup struct{ Content string }

	// AddNewGroup creates the buffered group and moves the feed into it.
	AddNewGroup struct{}

	ShowNewGroupDialog struct{}

	HideNewGroupDialog struct{}

	ChangeAllowNotificationPreset struct{}

	ChangeParseFullContentPreset struct{}

	ShowDeleteDialog struct{}

	HideDeleteDialog struct{}

	// Delete unsubscribes the bound feed and posts OnComplete to the UI.
	Delete struct{ OnComplete func() }

	// ShowRenameDialog seeds the rename buffer with the current name.
	ShowRenameDialog struct{}

	HideRenameDialog struct{}

	// InputNewName buffers the name typed into the rename dialog.
	InputNewName struct{ Content string }

	// Rename persists the buffered name.
	Rename struct{}
)

func (Show) feedOptionAction() {}

func (Hide) feedOptionAction() {}

func (SelectedGroup) feedOptionAction() {}

func (InputNewGroup) feedOptionAction() {}

func (AddNewGroup) feedOptionAction() {}

func (ShowNewGroupDialog) feedOptionAction() {}

func (HideNewGroupDialog) feedOptionAction() {}

func (ChangeAllowNotificationPreset) feedOptionAction() {}

func (ChangeParseFullContentPreset) feedOptionAction() {}

func (ShowDeleteDialog) feedOptionAction() {}

func (HideDeleteDialog) feedOptionAction() {}

func (Delete) feedOptionAction() {}

func (ShowRenameDialog) feedOptionAction() {}

func (HideRenameDialog) feedOptionAction() {}

func (InputNewName) feedOptionAction() {}

func (Rename) feedOptionAction() {}
