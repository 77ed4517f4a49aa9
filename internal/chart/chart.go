// Package chart runs the full text-to-artifact pipeline: parse, validate,
// render and write.
package chart

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/pablasso/gantitt/internal/artifact"
	"github.com/pablasso/gantitt/internal/config"
	"github.com/pablasso/gantitt/internal/gantt"
	"github.com/pablasso/gantitt/internal/render"
	"github.com/pablasso/gantitt/internal/util"
)

// DefaultOutputName is used when neither an input path nor a title names
// the artifact.
const DefaultOutputName = "chart.html"

// Builder turns plan text into artifacts on disk.
type Builder struct {
	Options   gantt.Options
	Renderer  *render.Renderer
	Logger    *log.Logger
	OutputDir string
}

// Result describes one written artifact.
type Result struct {
	Document *gantt.Document
	Output   string
}

// NewBuilder wires a builder from configuration.
func NewBuilder(cfg *config.Config, logger *log.Logger) *Builder {
	return &Builder{
		Options: gantt.Options{
			Strict:     cfg.Strict,
			StateLabel: cfg.StateLabel,
			GoalsLabel: cfg.GoalsLabel,
		},
		Renderer:  render.New(os.DirFS(cfg.AssetsDir)),
		Logger:    logger,
		OutputDir: cfg.OutputDir,
	}
}

// Parse parses text and logs any unrecognized lines. name identifies the
// source in log output.
func (b *Builder) Parse(name, text string) (*gantt.Document, error) {
	doc, err := gantt.Parse(text, b.Options)
	if err != nil {
		return nil, err
	}
	for _, d := range doc.Unparsed {
		b.Logger.Warn("unparsed line", "input", name, "line", d.Line, "text", d.Text)
	}
	return doc, nil
}

// Artifact returns the rendered artifact for text without writing it.
func (b *Builder) Artifact(name, text string) (string, *gantt.Document, error) {
	doc, err := b.Parse(name, text)
	if err != nil {
		return "", nil, err
	}
	out, err := b.Renderer.Render(doc)
	if err != nil {
		return "", nil, err
	}
	return out, doc, nil
}

// Build renders text and writes the artifact. input is the source path, or
// "" for text that has no file; output overrides the derived artifact path.
func (b *Builder) Build(text, input, output string) (*Result, error) {
	return b.build(text, input, output, b.OutputDir)
}

// BuildText builds text that has no source file. The artifact is named after
// the plan title and goes to the configured output directory, or to dir when
// none is configured.
func (b *Builder) BuildText(text, dir string) (*Result, error) {
	if b.OutputDir != "" {
		dir = b.OutputDir
	}
	return b.build(text, "", "", dir)
}

func (b *Builder) build(text, input, output, dir string) (*Result, error) {
	name := input
	if name == "" {
		name = "<text>"
	}

	doc, err := b.Parse(name, text)
	if err != nil {
		return nil, err
	}
	if output == "" {
		output = OutputPath(input, doc, dir)
	}

	lock := artifact.NewRenderLock(filepath.Dir(output))
	if err := lock.Acquire(); err != nil {
		return nil, err
	}
	defer lock.Release()

	html, err := b.Renderer.Render(doc)
	if err != nil {
		return nil, err
	}
	if err := artifact.Write(output, []byte(html)); err != nil {
		return nil, err
	}

	b.Logger.Info("rendered chart", "input", name, "output", output, "tasks", len(doc.Plan.Tasks))
	return &Result{Document: doc, Output: output}, nil
}

// BuildFile reads input and builds it.
func (b *Builder) BuildFile(input, output string) (*Result, error) {
	data, err := os.ReadFile(input)
	if err != nil {
		return nil, fmt.Errorf("failed to read plan: %w", err)
	}
	return b.Build(string(data), input, output)
}

// OutputPath derives the artifact path. A named input becomes the same name
// with .html; text without a file is named after the plan title.
func OutputPath(input string, doc *gantt.Document, dir string) string {
	var name string
	switch {
	case input != "":
		base := filepath.Base(input)
		name = strings.TrimSuffix(base, filepath.Ext(base)) + ".html"
		if dir == "" {
			dir = filepath.Dir(input)
		}
	case doc != nil && util.ToKebabCase(doc.Plan.Title) != "":
		name = util.ToKebabCase(doc.Plan.Title) + ".html"
	default:
		name = DefaultOutputName
	}
	if dir == "" {
		return name
	}
	return filepath.Join(dir, name)
}
