package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pablasso/gantitt/internal/artifact"
	"github.com/pablasso/gantitt/internal/config"
	"github.com/pablasso/gantitt/internal/gantt"
)

const (
	samplePlanFile = "plan.txt"
	configFile     = "gantitt.toml"
)

const defaultConfigTOML = `# gantitt configuration

# Directory holding frappe-gantt.min.js and frappe-gantt.min.css.
# template.html, chart.css and logo.svg placed here override the built-in ones.
assets_dir = "assets"

# Write every chart into this directory instead of next to its plan.
# output_dir = "charts"

# Require title, state and goals in every plan.
strict = false

# state_label = "Current state"
# goals_label = "Goals"

log_level = "info"
log_format = "text"
watch_debounce = "300ms"
`

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create a sample plan and a gantitt.toml",
		Long:  "Writes plan.txt with an example plan, gantitt.toml with the default settings, and the assets directory.",
		Args:  cobra.NoArgs,
		RunE:  runInit,
	}
}

func runInit(cmd *cobra.Command, args []string) error {
	for _, name := range []string{samplePlanFile, configFile} {
		if _, err := os.Stat(name); err == nil {
			return fmt.Errorf("%s already exists", name)
		}
	}

	if err := os.MkdirAll(config.DefaultAssetsDir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", config.DefaultAssetsDir, err)
	}
	if err := artifact.Write(samplePlanFile, []byte(gantt.Sample)); err != nil {
		return err
	}
	if err := artifact.Write(configFile, []byte(defaultConfigTOML)); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Created", samplePlanFile, "and", configFile)
	fmt.Fprintln(out, "\nNext steps:")
	fmt.Fprintf(out, "  1. Put frappe-gantt.min.js and frappe-gantt.min.css in %s/\n", config.DefaultAssetsDir)
	fmt.Fprintf(out, "  2. Run: gantitt render %s\n", samplePlanFile)
	return nil
}
