// Package metrics centralizes layout constants for the TUI.
package metrics

const (
	HeaderLines             = 2
	SidebarTitleLines       = 2
	HeaderWidthPadding      = 7
	SidebarRightBorderWidth = 1
	// BannerLines is the rendered banner height including its border.
	BannerLines = 4

	ItemRightPadding  = 1
	ItemSafetyPadding = 1
	FeedIndent        = 2
)
