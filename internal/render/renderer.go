// Package render turns a parsed plan into a standalone HTML chart.
package render

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"io/fs"

	"github.com/pablasso/gantitt/internal/gantt"
)

// Asset file names looked up in the asset directory.
const (
	ScriptAsset     = "frappe-gantt.min.js"
	StylesheetAsset = "frappe-gantt.min.css"
	TemplateAsset   = "template.html"
	ChartCSSAsset   = "chart.css"
	LogoAsset       = "logo.svg"
)

//go:embed templates/template.html templates/chart.css
var builtin embed.FS

// AssetError reports a template or library asset that could not be read.
type AssetError struct {
	Name string
	Err  error
}

func (e *AssetError) Error() string {
	return fmt.Sprintf("failed to read asset %s: %v", e.Name, e.Err)
}

func (e *AssetError) Unwrap() error {
	return e.Err
}

// Renderer produces artifacts from documents. Assets holds the frappe-gantt
// files and optional overrides for the template, base stylesheet and logo.
type Renderer struct {
	assets fs.FS
}

// New returns a renderer reading assets from fsys. A nil fsys means no asset
// directory, which fails on the first render.
func New(fsys fs.FS) *Renderer {
	return &Renderer{assets: fsys}
}

// Render returns the artifact text for doc.
func (r *Renderer) Render(doc *gantt.Document) (string, error) {
	tmpl, err := r.Template()
	if err != nil {
		return "", err
	}
	values, err := r.Values(doc)
	if err != nil {
		return "", err
	}
	return tmpl.Execute(values), nil
}

// Template returns the asset directory's template, or the built-in one.
func (r *Renderer) Template() (Template, error) {
	text, err := r.readOverride(TemplateAsset)
	if err != nil {
		return Template{}, err
	}
	return NewTemplate(TemplateAsset, text), nil
}

// Values computes every template variable for doc.
func (r *Renderer) Values(doc *gantt.Document) (Values, error) {
	tasks, err := doc.TasksJSON()
	if err != nil {
		return nil, err
	}

	script, err := r.readRequired(ScriptAsset)
	if err != nil {
		return nil, err
	}
	libCSS, err := r.readRequired(StylesheetAsset)
	if err != nil {
		return nil, err
	}
	baseCSS, err := r.readOverride(ChartCSSAsset)
	if err != nil {
		return nil, err
	}
	logo, err := r.readOptional(LogoAsset)
	if err != nil {
		return nil, err
	}

	plan := doc.Plan
	pageTitle := plan.Title
	if pageTitle == "" {
		pageTitle = "Gantt chart"
	}

	return Values{
		"page_title":  html.EscapeString(pageTitle),
		"title":       jsString(plan.Title),
		"state":       jsString(plan.State),
		"goals":       jsString(plan.Goals),
		"state_label": jsString(plan.StateLabel),
		"goals_label": jsString(plan.GoalsLabel),
		"tasks":       string(tasks),
		"css":         MergeStylesheet(baseCSS, doc.Classes),
		"legend":      Legend(doc.Classes),
		"logo":        logo,
		"frappe_js":   script,
		"frappe_css":  libCSS,
	}, nil
}

// jsString encodes s as a script-safe string literal. json.Marshal escapes
// <, > and & so values cannot close the surrounding script element.
func jsString(s string) string {
	data, _ := json.Marshal(s)
	return string(data)
}

func (r *Renderer) readRequired(name string) (string, error) {
	if r.assets == nil {
		return "", &AssetError{Name: name, Err: errors.New("no asset directory configured")}
	}
	data, err := fs.ReadFile(r.assets, name)
	if err != nil {
		return "", &AssetError{Name: name, Err: err}
	}
	return string(data), nil
}

// readOptional returns "" when the asset does not exist.
func (r *Renderer) readOptional(name string) (string, error) {
	if r.assets == nil {
		return "", nil
	}
	data, err := fs.ReadFile(r.assets, name)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", &AssetError{Name: name, Err: err}
	}
	return string(data), nil
}

// readOverride prefers the asset directory and falls back to the built-in
// copy only when the file is absent. An empty override is used as is.
func (r *Renderer) readOverride(name string) (string, error) {
	if r.assets != nil {
		data, err := fs.ReadFile(r.assets, name)
		if err == nil {
			return string(data), nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", &AssetError{Name: name, Err: err}
		}
	}
	data, err := builtin.ReadFile("templates/" + name)
	if err != nil {
		return "", &AssetError{Name: name, Err: err}
	}
	return string(data), nil
}
