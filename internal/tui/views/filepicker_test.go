package views

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pablasso/gantitt/internal/tui/msgs"
)

func TestNewFilePickerModel(t *testing.T) {
	tmpDir := t.TempDir()

	m := NewFilePickerModel(tmpDir)

	if m.StartDir() != tmpDir {
		t.Errorf("expected startDir to be %s, got %s", tmpDir, m.StartDir())
	}
	if m.CurrentDirectory() != tmpDir {
		t.Errorf("expected CurrentDirectory to be %s, got %s", tmpDir, m.CurrentDirectory())
	}
	if m.Err() != nil {
		t.Errorf("expected no error, got %v", m.Err())
	}
}

func TestFilePickerModel_AllowedTypes(t *testing.T) {
	m := NewFilePickerModel(t.TempDir())

	if len(m.picker.AllowedTypes) != 1 || m.picker.AllowedTypes[0] != ".txt" {
		t.Errorf("expected only .txt files, got %v", m.picker.AllowedTypes)
	}
	if m.picker.DirAllowed {
		t.Error("directories should not be selectable")
	}
	if !m.picker.FileAllowed {
		t.Error("files should be selectable")
	}
}

func TestFilePickerModel_Init(t *testing.T) {
	m := NewFilePickerModel(t.TempDir())

	if cmd := m.Init(); cmd == nil {
		t.Error("expected Init() to return a command")
	}
}

func TestFilePickerModel_Update_WindowSizeMsg(t *testing.T) {
	m := NewFilePickerModel(t.TempDir())

	newM, cmd := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	if cmd != nil {
		t.Error("expected no command from WindowSizeMsg")
	}
	if newM.width != 80 || newM.height != 24 {
		t.Errorf("expected 80x24, got %dx%d", newM.width, newM.height)
	}
	if newM.picker.Height != 19 {
		t.Errorf("expected picker height 19, got %d", newM.picker.Height)
	}
}

func TestFilePickerModel_SetSize_ClampsHeight(t *testing.T) {
	m := NewFilePickerModel(t.TempDir())
	m.SetSize(40, 3)

	if m.picker.Height != 1 {
		t.Errorf("expected picker height to clamp to 1, got %d", m.picker.Height)
	}
}

func TestFilePickerModel_Update_EscapeReturnsToEditor(t *testing.T) {
	m := NewFilePickerModel(t.TempDir())

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})

	if cmd == nil {
		t.Fatal("expected command from Escape key")
	}
	if _, ok := cmd().(msgs.GoToEditorMsg); !ok {
		t.Error("expected msgs.GoToEditorMsg")
	}
}

func TestFilePickerModel_Update_CtrlCQuits(t *testing.T) {
	m := NewFilePickerModel(t.TempDir())

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})

	if cmd == nil {
		t.Fatal("expected command from Ctrl+C")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestFilePickerModel_View(t *testing.T) {
	tmpDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(tmpDir, "plan.txt"), []byte("title: A\n"), 0644); err != nil {
		t.Fatalf("failed to write plan: %v", err)
	}

	m := NewFilePickerModel(tmpDir)
	if view := m.View(); view != "" {
		t.Errorf("expected empty view when dimensions are 0, got: %s", view)
	}

	m.SetSize(80, 24)
	m, _ = m.Update(m.Init()())
	view := m.View()

	for _, want := range []string{"Open Plan", tmpDir, "plan.txt", "Esc Back"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q", want)
		}
	}
}
