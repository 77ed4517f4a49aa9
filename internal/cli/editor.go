package cli

import (
	"github.com/spf13/cobra"

	"github.com/pablasso/gantitt/internal/chart"
	"github.com/pablasso/gantitt/internal/logging"
	"github.com/pablasso/gantitt/internal/tui"
)

func newEditCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "edit [file]",
		Short: "Open the plan editor",
		Long:  `Edit opens the terminal editor, optionally on a plan file. ctrl+r renders the chart, ctrl+s saves, ctrl+o opens another plan.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) == 1 {
				path = args[0]
			}
			return runEditor(cmd, flags, path)
		},
	}
}

func runEditor(cmd *cobra.Command, flags *globalFlags, path string) error {
	cfg, _, err := loadRuntime(cmd, flags)
	if err != nil {
		return err
	}

	// Log lines would corrupt the alternate screen; render results are
	// reported in the editor's message line instead.
	builder := chart.NewBuilder(cfg, logging.Discard())

	return tui.Run(tui.Options{Builder: builder, Path: path})
}

// RunEditor opens the editor with default flags. It is what gantitt does
// when started without arguments.
func RunEditor() error {
	rootCmd := newRootCmd()
	rootCmd.SetArgs([]string{"edit"})
	return rootCmd.Execute()
}
