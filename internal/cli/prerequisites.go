package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pablasso/gantitt/internal/render"
)

// PrerequisiteError represents a failed prerequisite check with helpful remediation info.
type PrerequisiteError struct {
	Check   string
	Message string
	Help    string
}

func (e *PrerequisiteError) Error() string {
	return fmt.Sprintf("%s: %s\n\n%s", e.Check, e.Message, e.Help)
}

// checkAssets verifies the chart library files are present before any
// render starts, so a missing download is reported once with a fix.
func checkAssets(dir string) error {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return &PrerequisiteError{
			Check:   "Assets directory",
			Message: fmt.Sprintf("%s is not a directory", dir),
			Help:    "Create it and add the frappe-gantt files, or point assets_dir / --assets at an existing directory.",
		}
	}

	for _, name := range []string{render.ScriptAsset, render.StylesheetAsset} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			return &PrerequisiteError{
				Check:   "Chart library",
				Message: fmt.Sprintf("%s not found in %s", name, dir),
				Help:    "Download frappe-gantt.min.js and frappe-gantt.min.css from the frappe-gantt release into the assets directory.",
			}
		}
	}

	return nil
}
