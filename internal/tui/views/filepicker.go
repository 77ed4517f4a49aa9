package views

import (
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pablasso/gantitt/internal/tui/components"
	"github.com/pablasso/gantitt/internal/tui/msgs"
	"github.com/pablasso/gantitt/internal/tui/styles"
)

// PlanExtension is the only file type the open dialog offers.
const PlanExtension = ".txt"

// FilePickerModel is the model for the open-plan view.
type FilePickerModel struct {
	picker   filepicker.Model
	startDir string
	width    int
	height   int
	err      error
}

// NewFilePickerModel creates a picker showing plan files in startDir.
func NewFilePickerModel(startDir string) FilePickerModel {
	fp := filepicker.New()
	fp.CurrentDirectory = startDir
	fp.AllowedTypes = []string{PlanExtension}
	fp.ShowHidden = false
	fp.ShowPermissions = false
	fp.ShowSize = true
	fp.DirAllowed = false
	fp.FileAllowed = true

	return FilePickerModel{
		picker:   fp,
		startDir: startDir,
	}
}

// Init implements tea.Model.
func (m FilePickerModel) Init() tea.Cmd {
	return m.picker.Init()
}

// Update implements tea.Model.
func (m FilePickerModel) Update(msg tea.Msg) (FilePickerModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, func() tea.Msg { return msgs.GoToEditorMsg{} }
		case "ctrl+c":
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)

	if didSelect, path := m.picker.DidSelectFile(msg); didSelect {
		absPath, err := filepath.Abs(path)
		if err != nil {
			m.err = err
			return m, nil
		}
		return m, func() tea.Msg { return msgs.FileSelectedMsg{Path: absPath} }
	}

	return m, cmd
}

// View implements tea.Model.
func (m FilePickerModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	var b strings.Builder

	title := styles.TitleStyle.Render("Open Plan")
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, title))
	b.WriteString("\n")
	b.WriteString(styles.SubtleStyle.Render(m.picker.CurrentDirectory))
	b.WriteString("\n\n")

	b.WriteString(m.picker.View())

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(styles.ErrorStyle.Render(m.err.Error()))
	}

	lines := strings.Count(b.String(), "\n") + 1
	if remaining := m.height - lines - 1; remaining > 0 {
		b.WriteString(strings.Repeat("\n", remaining))
	}

	statusItems := []string{"↑↓ Navigate", "Enter Open", "← Up", "Esc Back"}
	b.WriteString(components.NewStatusBar().Render(m.width, "", statusItems))

	return b.String()
}

// SetSize updates the model dimensions.
func (m *FilePickerModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	// Title, directory line, blank line and status bar
	m.picker.Height = height - 5
	if m.picker.Height < 1 {
		m.picker.Height = 1
	}
}

// CurrentDirectory returns the current directory being displayed.
func (m FilePickerModel) CurrentDirectory() string {
	return m.picker.CurrentDirectory
}

// StartDir returns the directory the picker opened in.
func (m FilePickerModel) StartDir() string {
	return m.startDir
}

// Err returns any error that occurred.
func (m FilePickerModel) Err() error {
	return m.err
}
