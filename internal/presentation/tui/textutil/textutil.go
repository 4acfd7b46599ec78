// Package textutil provides small formatting helpers for TUI text.
package textutil

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// SingleLine collapses whitespace into single spaces.
func SingleLine(text string) string {
	if text == "" {
		return ""
	}
	return strings.Join(strings.Fields(text), " ")
}

// Truncate trims a string to the given width with an ellipsis.
func Truncate(text string, width int) string {
	if width <= 0 {
		return ""
	}
	return ansi.Truncate(text, width, "...")
}

// Count formats n with the singular or plural noun, e.g. "1 feed", "3 feeds".
func Count(n int, singular, plural string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, singular)
	}
	return fmt.Sprintf("%d %s", n, plural)
}
