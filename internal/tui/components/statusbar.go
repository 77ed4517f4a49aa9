package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/pablasso/gantitt/internal/tui/styles"
)

// StatusBar renders the bottom line: a short state on the left and key
// hints on the right.
type StatusBar struct{}

// NewStatusBar creates a new StatusBar instance.
func NewStatusBar() StatusBar {
	return StatusBar{}
}

// Render returns the status bar string for the given width. Items are
// joined with " • ". When both parts do not fit, the hints are dropped.
func (s StatusBar) Render(width int, state string, items []string) string {
	hints := strings.Join(items, " • ")

	if state == "" {
		return styles.StatusBarStyle.Width(width).Render(hints)
	}

	gap := width - lipgloss.Width(state) - lipgloss.Width(hints)
	if gap < 1 {
		return styles.StatusBarStyle.Width(width).Render(state)
	}
	return styles.StatusBarStyle.Width(width).Render(state + strings.Repeat(" ", gap) + hints)
}
