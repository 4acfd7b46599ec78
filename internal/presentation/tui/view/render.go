// Package view orchestrates the composition of UI components.
package view

import (
	"github.com/tesso57/subsy/internal/presentation/tui/components/banner"
	"github.com/tesso57/subsy/internal/presentation/tui/components/header"
	"github.com/tesso57/subsy/internal/presentation/tui/components/layout"
	mainview "github.com/tesso57/subsy/internal/presentation/tui/components/main"
	"github.com/tesso57/subsy/internal/presentation/tui/components/modal"
	"github.com/tesso57/subsy/internal/presentation/tui/components/sidebar"
)

// Props aggregates properties for all UI components.
type Props struct {
	Banner  banner.Props
	Sidebar sidebar.Props
	Header  header.Props
	Main    mainview.Props
	Modal   modal.Props
	Footer  string
}

// Render renders the complete UI view based on the provided props. A
// visible modal replaces the screen.
func Render(p Props) string {
	if p.Modal.Visible {
		return modal.Render(p.Modal)
	}

	p.Main.Header = header.Render(p.Header)

	return layout.Render(layout.Props{
		Banner:  banner.Render(p.Banner),
		Sidebar: sidebar.Render(p.Sidebar),
		Main:    mainview.Render(p.Main),
		Footer:  p.Footer,
	})
}
