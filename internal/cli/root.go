package cli

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/pablasso/gantitt/internal/config"
	"github.com/pablasso/gantitt/internal/logging"
	"github.com/pablasso/gantitt/internal/version"
)

// globalFlags are shared by every subcommand.
type globalFlags struct {
	assetsDir string
	strict    bool
	logLevel  string
	logFormat string
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:           "gantitt",
		Short:         "Turn plain-text plans into gantt charts",
		Long:          `Gantitt reads a small plain-text plan and renders it into a standalone HTML gantt chart. Run without arguments to open the editor.`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.assetsDir, "assets", "", "Directory holding the frappe-gantt files")
	pf.BoolVar(&flags.strict, "strict", false, "Require title, state and goals")
	pf.StringVar(&flags.logLevel, "log-level", "", "Log level: debug|info|warn|error")
	pf.StringVar(&flags.logFormat, "log-format", "", "Log format: text|json|logfmt")

	rootCmd.AddCommand(
		newRenderCmd(flags),
		newCheckCmd(flags),
		newEditCmd(flags),
		newInitCmd(),
		newVersionCmd(),
	)
	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		rootCmd.PrintErrln("Error:", err)
		return err
	}
	return nil
}

// loadRuntime loads configuration for the working directory, applies any
// flags the user set, and builds the logger.
func loadRuntime(cmd *cobra.Command, flags *globalFlags) (*config.Config, *log.Logger, error) {
	cfg, err := config.Load(".")
	if err != nil {
		return nil, nil, err
	}

	fs := cmd.Flags()
	if fs.Changed("assets") {
		cfg.AssetsDir = config.ResolvePath(flags.assetsDir)
	}
	if fs.Changed("strict") {
		cfg.Strict = flags.strict
	}
	if fs.Changed("log-level") {
		cfg.LogLevel = flags.logLevel
	}
	if fs.Changed("log-format") {
		cfg.LogFormat = flags.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	logger := logging.NewFromConfig(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)
	for _, f := range cfg.Files {
		logger.Debug("loaded config", "file", f)
	}
	return cfg, logger, nil
}
