package tui

import "github.com/pablasso/gantitt/internal/chart"

// Options configures TUI startup behavior.
type Options struct {
	// Builder renders the editor text on ctrl+r.
	Builder *chart.Builder

	// Path is opened on startup when set. A missing file starts an empty
	// plan that will be saved there.
	Path string

	// Dir is where the open and save dialogs start. Defaults to the
	// working directory.
	Dir string
}
