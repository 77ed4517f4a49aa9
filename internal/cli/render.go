package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"github.com/pablasso/gantitt/internal/chart"
	"github.com/pablasso/gantitt/internal/watch"
)

const stdinArg = "-"

// RenderOptions holds the options for the render command.
type RenderOptions struct {
	Inputs []string
	Output string
	Watch  bool
}

func newRenderCmd(flags *globalFlags) *cobra.Command {
	opts := RenderOptions{}

	cmd := &cobra.Command{
		Use:   "render <file|glob>...",
		Short: "Render plan files into HTML charts",
		Long: `Render parses each plan and writes a standalone HTML chart next to it, or into output_dir when configured.
Patterns may use ** to match nested directories. Use - to read a plan from stdin.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Inputs = args
			return runRender(cmd, flags, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "Output file (single input only)")
	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "Re-render when input files change")
	return cmd
}

func runRender(cmd *cobra.Command, flags *globalFlags, opts RenderOptions) error {
	inputs, err := expandInputs(opts.Inputs)
	if err != nil {
		return err
	}
	if opts.Output != "" && len(inputs) > 1 {
		return fmt.Errorf("--output requires a single input, got %d", len(inputs))
	}
	if opts.Watch && containsStdin(inputs) {
		return errors.New("--watch cannot be used with stdin")
	}

	cfg, logger, err := loadRuntime(cmd, flags)
	if err != nil {
		return err
	}
	if err := checkAssets(cfg.AssetsDir); err != nil {
		return err
	}

	builder := chart.NewBuilder(cfg, logger)
	out := cmd.OutOrStdout()

	var errs []error
	for _, input := range inputs {
		if err := renderOne(builder, cmd.InOrStdin(), out, input, opts.Output); err != nil {
			if opts.Watch {
				logger.Error("render failed", "input", input, "err", err)
				continue
			}
			errs = append(errs, err)
		}
	}
	if !opts.Watch {
		return errors.Join(errs...)
	}

	w, err := watch.New(inputs, cfg.Debounce(), func(path string) error {
		return renderOne(builder, nil, out, path, opts.Output)
	}, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(out, "Watching %d file(s). Press Ctrl+C to stop.\n", len(inputs))
	return w.Run(ctx)
}

func renderOne(builder *chart.Builder, stdin io.Reader, out io.Writer, input, output string) error {
	var (
		res *chart.Result
		err error
	)
	if input == stdinArg {
		data, readErr := io.ReadAll(stdin)
		if readErr != nil {
			return fmt.Errorf("failed to read stdin: %w", readErr)
		}
		res, err = builder.Build(string(data), "", output)
	} else {
		res, err = builder.BuildFile(input, output)
	}
	if err != nil {
		if input == stdinArg {
			return fmt.Errorf("stdin: %w", err)
		}
		return fmt.Errorf("%s: %w", input, err)
	}

	fmt.Fprintf(out, "Rendered %s\n", res.Output)
	return nil
}

// expandInputs resolves glob patterns and drops duplicates while keeping
// argument order.
func expandInputs(args []string) ([]string, error) {
	seen := make(map[string]bool)
	var inputs []string
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			inputs = append(inputs, p)
		}
	}

	for _, arg := range args {
		if arg == stdinArg || !strings.ContainsAny(arg, "*?[{") {
			add(arg)
			continue
		}
		matches, err := doublestar.FilepathGlob(arg, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("failed to expand %s: %w", arg, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no files match %s", arg)
		}
		for _, m := range matches {
			add(m)
		}
	}
	return inputs, nil
}

func containsStdin(inputs []string) bool {
	for _, in := range inputs {
		if in == stdinArg {
			return true
		}
	}
	return false
}
