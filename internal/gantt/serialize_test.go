package gantt

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDocument_TasksJSON(t *testing.T) {
	doc := &Document{Plan: Plan{Tasks: []Task{
		{Name: "Design", Start: day("2024-01-01"), End: day("2024-01-31"), CustomClass: "alpha", ID: "d", Progress: 50},
		{Name: "Build", Start: day("2024-02-05"), End: day("2024-02-20"), Dependencies: "d"},
	}}}

	data, err := doc.TasksJSON()
	if err != nil {
		t.Fatalf("TasksJSON failed: %v", err)
	}

	var got []map[string]interface{}
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	want := []map[string]interface{}{
		{"name": "Design", "start": "2024-01-01", "end": "2024-01-31", "custom_class": "alpha", "id": "d", "progress": float64(50), "dependencies": ""},
		{"name": "Build", "start": "2024-02-05", "end": "2024-02-20", "custom_class": nil, "id": nil, "progress": float64(0), "dependencies": "d"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("serialized tasks mismatch (-want +got):\n%s", diff)
	}

	// Field order is stable.
	text := string(data)
	order := []string{`"name"`, `"start"`, `"end"`, `"custom_class"`, `"id"`, `"progress"`, `"dependencies"`}
	last := -1
	for _, key := range order {
		idx := strings.Index(text, key)
		if idx <= last {
			t.Fatalf("key %s out of order in:\n%s", key, text)
		}
		last = idx
	}
}

func TestDocument_TasksJSON_EscapesMarkup(t *testing.T) {
	doc := &Document{Plan: Plan{Tasks: []Task{
		{Name: "</script><b>", Start: day("2024-01-01"), End: day("2024-01-01")},
	}}}

	data, err := doc.TasksJSON()
	if err != nil {
		t.Fatalf("TasksJSON failed: %v", err)
	}
	if strings.Contains(string(data), "</script>") {
		t.Errorf("expected markup to be escaped, got %s", data)
	}
}

func TestCheckTasksJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid", `[{"name":"A","start":"2024-01-01","end":"2024-01-02","custom_class":null,"id":null,"progress":0,"dependencies":""}]`, false},
		{"empty list", `[]`, true},
		{"empty name", `[{"name":"","start":"2024-01-01","end":"2024-01-02","progress":0,"dependencies":""}]`, true},
		{"bad date", `[{"name":"A","start":"2024-13-01","end":"2024-01-02","progress":0,"dependencies":""}]`, true},
		{"progress too big", `[{"name":"A","start":"2024-01-01","end":"2024-01-02","progress":101,"dependencies":""}]`, true},
		{"class with space", `[{"name":"A","start":"2024-01-01","end":"2024-01-02","custom_class":"a b","progress":0,"dependencies":""}]`, true},
		{"unknown field", `[{"name":"A","start":"2024-01-01","end":"2024-01-02","progress":0,"dependencies":"","who":"s"}]`, true},
		{"not json", `{`, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := CheckTasksJSON([]byte(tc.input))
			if tc.wantErr && err == nil {
				t.Error("expected error, got nil")
			}
			if !tc.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestDocument_TasksJSON_DoesNotMutate(t *testing.T) {
	doc := &Document{Plan: Plan{Tasks: []Task{
		{Name: "A", Start: day("2024-01-01"), End: day("2024-01-01")},
	}}}
	before := doc.Plan.Tasks[0]

	if _, err := doc.TasksJSON(); err != nil {
		t.Fatalf("TasksJSON failed: %v", err)
	}
	if diff := cmp.Diff(before, doc.Plan.Tasks[0]); diff != "" {
		t.Errorf("task changed (-before +after):\n%s", diff)
	}
}
