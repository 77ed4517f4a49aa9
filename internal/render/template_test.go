package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTemplate_Execute(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		values Values
		want   string
	}{
		{
			name:   "simple substitution",
			text:   "a /*x*/ b",
			values: Values{"x": "1"},
			want:   "a 1 b",
		},
		{
			name:   "whitespace inside delimiters",
			text:   "/* x */",
			values: Values{"x": "1"},
			want:   "1",
		},
		{
			name:   "unknown variable left alone",
			text:   "/*y*/ and /*x*/",
			values: Values{"x": "1"},
			want:   "/*y*/ and 1",
		},
		{
			name:   "ordinary comment left alone",
			text:   "/* a note about x */ /*x*/",
			values: Values{"x": "1"},
			want:   "/* a note about x */ 1",
		},
		{
			name:   "substituted values are not rescanned",
			text:   "/*x*/",
			values: Values{"x": "/*y*/", "y": "nope"},
			want:   "/*y*/",
		},
		{
			name:   "unterminated delimiter",
			text:   "a /*x",
			values: Values{"x": "1"},
			want:   "a /*x",
		},
		{
			name:   "repeated variable",
			text:   "/*x*//*x*/",
			values: Values{"x": "ab"},
			want:   "abab",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tmpl := NewTemplate("test", tc.text)
			assert.Equal(t, tc.want, tmpl.Execute(tc.values))
		})
	}
}

func TestNewTemplate(t *testing.T) {
	tmpl := NewTemplate("page", "x")
	assert.Equal(t, TemplateVersion, tmpl.Version)
	assert.Equal(t, "/*", tmpl.LeftDelim)
	assert.Equal(t, "*/", tmpl.RightDelim)
}
