package render

import (
	"fmt"
	"html"
	"strings"

	"github.com/pablasso/gantitt/internal/gantt"
)

// ClassRules returns the four generated rules for each class, in definition
// order: bar fill, progress fill, and the two legend swatches.
func ClassRules(classes []gantt.ClassStyle) string {
	var b strings.Builder
	for _, c := range classes {
		name, todo, done := cssEscaper.Replace(c.Name), cssEscaper.Replace(c.TodoColor), cssEscaper.Replace(c.DoneColor)
		fmt.Fprintf(&b, ".gantt .bar-wrapper.%s .bar { fill: %s; }\n", name, todo)
		fmt.Fprintf(&b, ".gantt .bar-wrapper.%s .bar-progress { fill: %s; }\n", name, done)
		fmt.Fprintf(&b, ".legend .%s.todo { background-color: %s; }\n", name, todo)
		fmt.Fprintf(&b, ".legend .%s.done { background-color: %s; }\n", name, done)
	}
	return b.String()
}

// cssEscaper turns characters that could end a rule or the surrounding
// style element into CSS hex escapes.
var cssEscaper = strings.NewReplacer(
	`\`, `\5c `,
	"<", `\3c `,
	">", `\3e `,
	"{", `\7b `,
	"}", `\7d `,
	";", `\3b `,
)

// MergeStylesheet appends the generated class rules to base.
func MergeStylesheet(base string, classes []gantt.ClassStyle) string {
	rules := ClassRules(classes)
	if rules == "" {
		return base
	}
	if base != "" && !strings.HasSuffix(base, "\n") {
		base += "\n"
	}
	return base + "\n/* classes */\n" + rules
}

// Legend returns one swatch row per class.
func Legend(classes []gantt.ClassStyle) string {
	var b strings.Builder
	for _, c := range classes {
		name := html.EscapeString(c.Name)
		fmt.Fprintf(&b, `<li><span class="swatch %[1]s todo"></span><span class="swatch %[1]s done"></span>%[1]s</li>`+"\n", name)
	}
	return b.String()
}
