// Package gantt parses the plain-text plan format into a validated document.
package gantt

import (
	"time"
)

// Default display labels for the state and goals sections.
const (
	DefaultStateLabel = "Current state"
	DefaultGoalsLabel = "Goals"
)

// Task is one chart bar.
type Task struct {
	Name         string
	Start        time.Time
	End          time.Time
	CustomClass  string
	ID           string
	Progress     int
	Dependencies string
}

// NewTask returns a task named name whose start and end are both fallback.
// Parsed tasks overwrite the dates; fallback is only used when a task never
// gets a date line.
func NewTask(name string, fallback time.Time) (Task, error) {
	if name == "" {
		return Task{}, &MissingDataError{Message: "task needs a nonempty name"}
	}
	return Task{Name: name, Start: fallback, End: fallback}, nil
}

// ClassStyle is a named pair of colors for one custom task class.
type ClassStyle struct {
	Name      string
	TodoColor string
	DoneColor string
}

// Plan holds the document metadata and the tasks in source order.
type Plan struct {
	Title      string
	State      string
	Goals      string
	StateLabel string
	GoalsLabel string
	Tasks      []Task
}

// Document is the result of one parse: the plan, the class styles in
// definition order, and the lines that were not recognized.
type Document struct {
	Plan     Plan
	Classes  []ClassStyle
	Unparsed []Diagnostic
}
