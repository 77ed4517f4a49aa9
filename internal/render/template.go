package render

import (
	"strings"
)

// TemplateVersion is bumped whenever the set of template variables changes.
const TemplateVersion = 2

// Template is the artifact skeleton. Variables are written as
// LeftDelim + name + RightDelim; only names present in Values are replaced,
// everything else, including ordinary comments, is copied through.
type Template struct {
	Version    int
	Name       string
	Text       string
	LeftDelim  string
	RightDelim string
}

// Values are the named substitutions for one render.
type Values map[string]string

// NewTemplate returns a template using the /* and */ delimiters.
func NewTemplate(name, text string) Template {
	return Template{
		Version:    TemplateVersion,
		Name:       name,
		Text:       text,
		LeftDelim:  "/*",
		RightDelim: "*/",
	}
}

// Execute substitutes values in a single pass. Substituted text is never
// scanned again, so values may themselves contain the delimiters.
func (t Template) Execute(values Values) string {
	var b strings.Builder
	b.Grow(len(t.Text))

	rest := t.Text
	for {
		start := strings.Index(rest, t.LeftDelim)
		if start < 0 {
			b.WriteString(rest)
			break
		}
		inner := rest[start+len(t.LeftDelim):]
		end := strings.Index(inner, t.RightDelim)
		if end < 0 {
			b.WriteString(rest)
			break
		}

		name := strings.TrimSpace(inner[:end])
		value, ok := values[name]
		if !ok || !isIdentifier(name) {
			// Not a variable: emit the left delimiter and keep scanning after it.
			b.WriteString(rest[:start+len(t.LeftDelim)])
			rest = inner
			continue
		}

		b.WriteString(rest[:start])
		b.WriteString(value)
		rest = inner[end+len(t.RightDelim):]
	}
	return b.String()
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}
