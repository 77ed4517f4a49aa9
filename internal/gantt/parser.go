package gantt

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// Options controls parsing and validation.
type Options struct {
	// Strict also requires a nonempty title, state and goals.
	Strict bool

	// StateLabel and GoalsLabel replace the built-in label defaults. A label
	// directive in the document still wins.
	StateLabel string
	GoalsLabel string

	// DefaultDate, when set, is used for tasks that never get a date line.
	// Without it such tasks are a missing-data error.
	DefaultDate *time.Time
}

// taskDraft is the task currently being assembled.
type taskDraft struct {
	line         int
	name         string
	start        *time.Time
	end          *time.Time
	customClass  string
	id           string
	progress     int
	dependencies string
}

type builder struct {
	opts     Options
	plan     Plan
	classes  []ClassStyle
	current  *taskDraft
	unparsed []Diagnostic
	line     int
}

type handler func(b *builder, value string) error

// handlers maps each directive to the transition it drives.
var handlers = map[Directive]handler{
	DirectiveTitle:        func(b *builder, v string) error { b.plan.Title = v; return nil },
	DirectiveState:        func(b *builder, v string) error { b.plan.State = v; return nil },
	DirectiveGoals:        func(b *builder, v string) error { b.plan.Goals = v; return nil },
	DirectiveStateLabel:   func(b *builder, v string) error { b.plan.StateLabel = v; return nil },
	DirectiveGoalsLabel:   func(b *builder, v string) error { b.plan.GoalsLabel = v; return nil },
	DirectiveDefineClass:  (*builder).defineClass,
	DirectiveTask:         (*builder).openTask,
	DirectiveDate:         (*builder).setDate,
	DirectiveClass:        (*builder).setClass,
	DirectiveID:           (*builder).setID,
	DirectiveProgress:     (*builder).setProgress,
	DirectiveDependencies: (*builder).setDependencies,
}

// ParseFile reads path as UTF-8 text and parses it.
func ParseFile(path string, opts Options) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read plan: %w", err)
	}
	return Parse(string(data), opts)
}

// Parse builds and validates a document from plan text. Any fatal condition
// aborts the parse; no partial document is returned.
func Parse(text string, opts Options) (*Document, error) {
	doc, err := Build(text, opts)
	if err != nil {
		return nil, err
	}
	if err := Validate(doc, opts.Strict); err != nil {
		return nil, err
	}
	return doc, nil
}

// Build runs the line pass without the final validation.
func Build(text string, opts Options) (*Document, error) {
	b := &builder{opts: opts}
	b.plan.StateLabel = firstNonEmpty(opts.StateLabel, DefaultStateLabel)
	b.plan.GoalsLabel = firstNonEmpty(opts.GoalsLabel, DefaultGoalsLabel)

	for i, raw := range splitLines(text) {
		b.line = i + 1
		line := NormalizeLine(raw)
		if line == "" {
			continue
		}

		directive, value, ok := Classify(line)
		if !ok {
			b.unparsed = append(b.unparsed, Diagnostic{Line: b.line, Text: line})
			continue
		}
		if err := handlers[directive](b, value); err != nil {
			return nil, attachLine(err, b.line, line)
		}
	}

	if err := b.closeTask(); err != nil {
		return nil, err
	}

	return &Document{
		Plan:     b.plan,
		Classes:  b.classes,
		Unparsed: b.unparsed,
	}, nil
}

func (b *builder) defineClass(value string) error {
	fields := strings.Fields(value)
	name, colors := fields[0], fields[1:]
	switch len(colors) {
	case 0:
		return &ParseError{Message: fmt.Sprintf("no colors defined for class %q", name)}
	case 1:
		colors = append(colors, colors[0])
	case 2:
	default:
		return &ParseError{Message: fmt.Sprintf("too many colors for class %q: want 1 or 2, got %d", name, len(colors))}
	}
	b.classes = append(b.classes, ClassStyle{
		Name:      strings.ToLower(name),
		TodoColor: colors[0],
		DoneColor: colors[1],
	})
	return nil
}

func (b *builder) openTask(value string) error {
	if err := b.closeTask(); err != nil {
		return err
	}
	b.current = &taskDraft{line: b.line, name: value}
	return nil
}

// closeTask finalizes the open task, if any, and appends it.
func (b *builder) closeTask() error {
	if b.current == nil {
		return nil
	}
	d := b.current
	b.current = nil

	if d.start == nil {
		if b.opts.DefaultDate == nil {
			return &MissingDataError{
				Line:    d.line,
				Message: fmt.Sprintf("task %q has no date", d.name),
			}
		}
		d.start, d.end = b.opts.DefaultDate, b.opts.DefaultDate
	}

	task, err := NewTask(d.name, *d.start)
	if err != nil {
		var mde *MissingDataError
		if errors.As(err, &mde) {
			mde.Line = d.line
		}
		return err
	}
	task.End = *d.end
	task.CustomClass = d.customClass
	task.ID = d.id
	task.Progress = d.progress
	task.Dependencies = d.dependencies
	b.plan.Tasks = append(b.plan.Tasks, task)
	return nil
}

// requireTask returns the open task or an error naming the stray directive.
func (b *builder) requireTask(d Directive) (*taskDraft, error) {
	if b.current == nil {
		return nil, &ParseError{
			Message: fmt.Sprintf("%q line outside of a task; add a \"task:\" line first", d.String()),
		}
	}
	return b.current, nil
}

func (b *builder) setDate(value string) error {
	t, err := b.requireTask(DirectiveDate)
	if err != nil {
		return err
	}

	tokens := strings.Fields(value)
	var startStr, endStr string
	switch len(tokens) {
	case 1:
		startStr, endStr = tokens[0], tokens[0]
	case 2:
		startStr, endStr = tokens[0], tokens[1]
	default:
		return &ParseError{Message: fmt.Sprintf("want a start and an optional end date, got %d values", len(tokens))}
	}

	start, err := ResolveDate(startStr, false)
	if err != nil {
		return err
	}
	end, err := ResolveDate(endStr, true)
	if err != nil {
		return err
	}
	t.start, t.end = &start, &end
	return nil
}

func (b *builder) setClass(value string) error {
	t, err := b.requireTask(DirectiveClass)
	if err != nil {
		return err
	}
	if strings.ContainsFunc(value, unicode.IsSpace) {
		return &ParseError{Message: fmt.Sprintf("class name %q must not contain whitespace", value)}
	}
	t.customClass = strings.ToLower(value)
	return nil
}

func (b *builder) setID(value string) error {
	t, err := b.requireTask(DirectiveID)
	if err != nil {
		return err
	}
	t.id = value
	return nil
}

func (b *builder) setProgress(value string) error {
	t, err := b.requireTask(DirectiveProgress)
	if err != nil {
		return err
	}
	n, err := strconv.Atoi(strings.TrimSpace(strings.TrimSuffix(value, "%")))
	if err != nil {
		return &ParseError{Message: fmt.Sprintf("progress %q is not a whole number", value)}
	}
	if n < 0 || n > 100 {
		return &ParseError{Message: fmt.Sprintf("progress %d is outside 0-100", n)}
	}
	t.progress = n
	return nil
}

func (b *builder) setDependencies(value string) error {
	t, err := b.requireTask(DirectiveDependencies)
	if err != nil {
		return err
	}
	t.dependencies = value
	return nil
}

// attachLine fills in source position on errors raised by a handler.
func attachLine(err error, line int, text string) error {
	var pe *ParseError
	if errors.As(err, &pe) && pe.Line == 0 {
		pe.Line, pe.Text = line, text
	}
	var de *DateError
	if errors.As(err, &de) && de.Line == 0 {
		de.Line, de.Text = line, text
	}
	var mde *MissingDataError
	if errors.As(err, &mde) && mde.Line == 0 {
		mde.Line = line
	}
	return err
}

// splitLines splits on \n, \r\n and \r.
func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.Split(text, "\n")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
