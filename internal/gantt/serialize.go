package gantt

import (
	"encoding/json"
	"fmt"
)

// taskJSON is the embedded form of a Task. Field order is the serialized
// order; absent optional fields are null.
type taskJSON struct {
	Name         string  `json:"name"`
	Start        string  `json:"start"`
	End          string  `json:"end"`
	CustomClass  *string `json:"custom_class"`
	ID           *string `json:"id"`
	Progress     int     `json:"progress"`
	Dependencies string  `json:"dependencies"`
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func projectTasks(tasks []Task) []taskJSON {
	out := make([]taskJSON, len(tasks))
	for i, t := range tasks {
		out[i] = taskJSON{
			Name:         t.Name,
			Start:        t.Start.Format(DateLayout),
			End:          t.End.Format(DateLayout),
			CustomClass:  optional(t.CustomClass),
			ID:           optional(t.ID),
			Progress:     t.Progress,
			Dependencies: t.Dependencies,
		}
	}
	return out
}

// TasksJSON returns the task list as indented JSON, checked against the task
// schema. The document itself is not modified.
func (d *Document) TasksJSON() ([]byte, error) {
	data, err := json.MarshalIndent(projectTasks(d.Plan.Tasks), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal tasks: %w", err)
	}
	if err := CheckTasksJSON(data); err != nil {
		return nil, err
	}
	return data, nil
}
