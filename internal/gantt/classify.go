package gantt

import (
	"regexp"
	"strings"
)

// Directive identifies one recognized line type of the plan format.
type Directive int

const (
	DirectiveNone Directive = iota
	DirectiveTitle
	DirectiveState
	DirectiveGoals
	DirectiveStateLabel
	DirectiveGoalsLabel
	DirectiveDefineClass
	DirectiveTask
	DirectiveDate
	DirectiveClass
	DirectiveID
	DirectiveProgress
	DirectiveDependencies
)

var directiveKeywords = map[Directive]string{
	DirectiveTitle:        "title",
	DirectiveState:        "state",
	DirectiveGoals:        "goals",
	DirectiveStateLabel:   "state label",
	DirectiveGoalsLabel:   "goals label",
	DirectiveDefineClass:  "define class",
	DirectiveTask:         "task",
	DirectiveDate:         "date",
	DirectiveClass:        "class",
	DirectiveID:           "id",
	DirectiveProgress:     "progress",
	DirectiveDependencies: "dependencies",
}

func (d Directive) String() string {
	if kw, ok := directiveKeywords[d]; ok {
		return kw
	}
	return "none"
}

type matcher struct {
	directive Directive
	pattern   *regexp.Regexp
}

// matchers is tried in order; the first match wins.
var matchers = []matcher{
	compileDirective(DirectiveTitle),
	compileDirective(DirectiveState),
	compileDirective(DirectiveGoals),
	compileDirective(DirectiveStateLabel),
	compileDirective(DirectiveGoalsLabel),
	compileDirective(DirectiveDefineClass),
	compileDirective(DirectiveTask),
	compileDirective(DirectiveDate),
	compileDirective(DirectiveClass),
	compileDirective(DirectiveID),
	compileDirective(DirectiveProgress),
	compileDirective(DirectiveDependencies),
}

// compileDirective builds "keyword, optional whitespace, ASCII or fullwidth
// colon, value", anchored at line start and case-insensitive.
func compileDirective(d Directive) matcher {
	keyword := strings.ReplaceAll(regexp.QuoteMeta(directiveKeywords[d]), " ", `\s+`)
	return matcher{
		directive: d,
		pattern:   regexp.MustCompile(`(?i)^\s*` + keyword + `\s*[:：](.*)$`),
	}
}

// NormalizeLine collapses whitespace runs to a single space and trims the ends.
func NormalizeLine(line string) string {
	return strings.Join(strings.Fields(line), " ")
}

// Classify matches an already-normalized line against the directive table.
// A directive with an empty value does not count as a match, so "title:" on
// its own is reported as unparsed.
func Classify(line string) (Directive, string, bool) {
	for _, m := range matchers {
		sub := m.pattern.FindStringSubmatch(line)
		if sub == nil {
			continue
		}
		if value := strings.TrimSpace(sub[1]); value != "" {
			return m.directive, value, true
		}
	}
	return DirectiveNone, "", false
}
