package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/pablasso/gantitt/internal/gantt"
	"github.com/pablasso/gantitt/internal/tui/styles"
)

func newCheckCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "check <file>",
		Short: "Parse and validate a plan without rendering it",
		Long:  `Check parses a plan, validates it and prints a summary of its tasks, classes and any lines that were not recognized. Use - to read from stdin.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, flags, args[0])
		},
	}
}

func runCheck(cmd *cobra.Command, flags *globalFlags, input string) error {
	cfg, _, err := loadRuntime(cmd, flags)
	if err != nil {
		return err
	}

	var data []byte
	if input == stdinArg {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(input)
	}
	if err != nil {
		return fmt.Errorf("failed to read plan: %w", err)
	}

	doc, err := gantt.Parse(string(data), gantt.Options{
		Strict:     cfg.Strict,
		StateLabel: cfg.StateLabel,
		GoalsLabel: cfg.GoalsLabel,
	})
	if err != nil {
		return err
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}
	summary, err := renderer.Render(summaryMarkdown(doc))
	if err != nil {
		return fmt.Errorf("failed to render summary: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprint(out, summary)
	fmt.Fprintln(out, statusLine(input, doc))
	return nil
}

// summaryMarkdown describes a parsed document as Markdown.
func summaryMarkdown(doc *gantt.Document) string {
	var b strings.Builder
	p := doc.Plan

	title := p.Title
	if title == "" {
		title = "(untitled plan)"
	}
	fmt.Fprintf(&b, "# %s\n\n", title)

	if p.State != "" {
		fmt.Fprintf(&b, "**%s:** %s\n\n", p.StateLabel, p.State)
	}
	if p.Goals != "" {
		fmt.Fprintf(&b, "**%s:** %s\n\n", p.GoalsLabel, p.Goals)
	}

	b.WriteString("## Tasks\n\n")
	b.WriteString("| # | Task | Start | End | Class | ID | Progress | Depends on |\n")
	b.WriteString("|---|---|---|---|---|---|---|---|\n")
	for i, t := range p.Tasks {
		fmt.Fprintf(&b, "| %d | %s | %s | %s | %s | %s | %d%% | %s |\n",
			i+1,
			cell(t.Name),
			t.Start.Format(gantt.DateLayout),
			t.End.Format(gantt.DateLayout),
			cell(t.CustomClass),
			cell(t.ID),
			t.Progress,
			cell(t.Dependencies),
		)
	}

	if len(doc.Classes) > 0 {
		b.WriteString("\n## Classes\n\n")
		for _, c := range doc.Classes {
			fmt.Fprintf(&b, "- `%s`: todo `%s`, done `%s`\n", c.Name, c.TodoColor, c.DoneColor)
		}
	}

	if len(doc.Unparsed) > 0 {
		b.WriteString("\n## Unparsed lines\n\n")
		for _, d := range doc.Unparsed {
			fmt.Fprintf(&b, "- line %d: `%s`\n", d.Line, strings.ReplaceAll(d.Text, "`", "'"))
		}
	}

	return b.String()
}

func cell(s string) string {
	if s == "" {
		return "-"
	}
	return strings.ReplaceAll(s, "|", `\|`)
}

func statusLine(input string, doc *gantt.Document) string {
	name := input
	if name == stdinArg {
		name = "stdin"
	}
	msg := fmt.Sprintf("✓ %s is valid: %s, %s",
		name,
		plural(len(doc.Plan.Tasks), "task"),
		plural(len(doc.Classes), "class"),
	)
	if n := len(doc.Unparsed); n > 0 {
		return lipgloss.JoinHorizontal(lipgloss.Top,
			styles.SuccessStyle.Render(msg),
			styles.WarningStyle.Render(fmt.Sprintf(" (%s ignored)", plural(n, "line"))),
		)
	}
	return styles.SuccessStyle.Render(msg)
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	if strings.HasSuffix(noun, "s") {
		return strconv.Itoa(n) + " " + noun + "es"
	}
	return strconv.Itoa(n) + " " + noun + "s"
}
