package update

import (
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/lipgloss"
	"github.com/tesso57/subsy/internal/presentation/tui/metrics"
	"github.com/tesso57/subsy/internal/presentation/tui/state"
)

// Layout is the size of each pane for the current terminal size.
type Layout struct {
	SidebarWidth      int
	MainWidth         int
	SidebarListHeight int
	MainHeight        int
}

// UpdateListSizes resizes the feed list to the sidebar.
func UpdateListSizes(s *state.ModelState) {
	if s.Width <= 0 || s.Height <= 0 {
		return
	}

	layout := BuildLayout(s)
	s.FeedList.SetSize(layout.SidebarWidth, layout.SidebarListHeight)
	s.TextInput.Width = clampMin(min(s.Width-metrics.HeaderWidthPadding, 40), 1)
}

// BuildLayout computes pane sizes below the banner and above the footer.
func BuildLayout(s *state.ModelState) Layout {
	footerHeight := footerHeight(s)
	availableHeight := clampMin(s.Height-footerHeight-metrics.BannerLines, 1)

	sidebarListHeight := clampMin(availableHeight-metrics.SidebarTitleLines, 1)

	sidebarWidth := s.Width / 3
	mainWidth := clampMin(s.Width-sidebarWidth-metrics.SidebarRightBorderWidth, 1)

	sidebarListHeight = reservePaginationSpace(s.FeedList, sidebarListHeight)

	return Layout{
		SidebarWidth:      sidebarWidth,
		MainWidth:         mainWidth,
		SidebarListHeight: sidebarListHeight,
		MainHeight:        availableHeight,
	}
}

func footerHeight(s *state.ModelState) int {
	s.Help.Width = s.Width
	return lipgloss.Height(state.FooterText(s.Session, s.Busy, s.StatusMessage, s.Help.View(&s.Keys)))
}

func reservePaginationSpace(m list.Model, height int) int {
	if height < 1 || !m.ShowPagination() {
		return height
	}
	if height <= 1 {
		return height
	}

	statusHeight := 0
	if m.ShowStatusBar() {
		statusHeight = 1
	}

	availHeight := height - statusHeight
	if availHeight < 1 {
		return height
	}

	if len(m.VisibleItems()) > availHeight {
		return height - 1
	}
	return height
}

func clampMin(value, min int) int {
	if value < min {
		return min
	}
	return value
}
