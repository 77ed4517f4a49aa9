package views

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pablasso/gantitt/internal/tui/components"
	"github.com/pablasso/gantitt/internal/tui/styles"
)

// SaveAsState represents the current state of the save-as view.
type SaveAsState int

const (
	// StateEdit allows editing the filename.
	StateEdit SaveAsState = iota
	// StateOverwriteConfirm shows when file exists and requires overwrite confirmation.
	StateOverwriteConfirm
)

// SaveAsResult represents the outcome of the save-as interaction.
type SaveAsResult int

const (
	// ResultPending means no decision has been made yet.
	ResultPending SaveAsResult = iota
	// ResultSave means the file should be saved.
	ResultSave
	// ResultCancel means the operation was cancelled.
	ResultCancel
)

// FileExistsChecker abstracts file existence checks for testing.
type FileExistsChecker interface {
	Exists(path string) bool
}

// DefaultFileChecker uses os.Stat to check file existence.
type DefaultFileChecker struct{}

// Exists checks if a file exists.
func (d DefaultFileChecker) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// SaveAsModel asks for a file name for a plan that has none yet.
type SaveAsModel struct {
	dir         string
	input       textinput.Model
	state       SaveAsState
	result      SaveAsResult
	path        string
	width       int
	height      int
	fileChecker FileExistsChecker
}

// NewSaveAsModel creates a prompt pre-filled with suggested. Relative names
// are resolved against dir.
func NewSaveAsModel(dir, suggested string) SaveAsModel {
	ti := textinput.New()
	ti.Placeholder = "plan" + PlanExtension
	ti.CharLimit = 256
	ti.Width = 60
	ti.SetValue(suggested)
	ti.Focus()

	return SaveAsModel{
		dir:         dir,
		input:       ti,
		state:       StateEdit,
		result:      ResultPending,
		fileChecker: DefaultFileChecker{},
	}
}

// SetFileChecker sets a custom file existence checker (for testing).
func (m *SaveAsModel) SetFileChecker(fc FileExistsChecker) {
	m.fileChecker = fc
}

// Init implements tea.Model.
func (m SaveAsModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m SaveAsModel) Update(msg tea.Msg) (SaveAsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if m.state == StateOverwriteConfirm {
			return m.handleOverwriteKeys(msg)
		}
		return m.handleEditKeys(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleEditKeys handles keys while the name is being typed.
func (m SaveAsModel) handleEditKeys(msg tea.KeyMsg) (SaveAsModel, tea.Cmd) {
	switch msg.String() {
	case "enter":
		name := strings.TrimSpace(m.input.Value())
		if name == "" {
			return m, nil
		}
		m.path = m.resolve(name)
		if m.fileChecker != nil && m.fileChecker.Exists(m.path) {
			m.state = StateOverwriteConfirm
			m.input.Blur()
			return m, nil
		}
		m.result = ResultSave
		return m, nil

	case "esc":
		m.result = ResultCancel
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleOverwriteKeys handles keys in the overwrite confirmation state.
func (m SaveAsModel) handleOverwriteKeys(msg tea.KeyMsg) (SaveAsModel, tea.Cmd) {
	switch msg.String() {
	case "o", "y":
		m.result = ResultSave
		return m, nil

	case "e", "n":
		m.state = StateEdit
		m.input.Focus()
		return m, textinput.Blink

	case "c", "esc":
		m.result = ResultCancel
		return m, nil
	}
	return m, nil
}

// resolve adds the plan extension when missing and makes name absolute.
func (m SaveAsModel) resolve(name string) string {
	if filepath.Ext(name) == "" {
		name += PlanExtension
	}
	if !filepath.IsAbs(name) {
		name = filepath.Join(m.dir, name)
	}
	return filepath.Clean(name)
}

// View implements tea.Model.
func (m SaveAsModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	var b strings.Builder

	title := styles.TitleStyle.Render("Save Plan")
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, title))
	b.WriteString("\n\n")

	switch m.state {
	case StateEdit:
		b.WriteString("File name:\n\n  ")
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
		b.WriteString(styles.SubtleStyle.Render("  in " + m.dir))
		b.WriteString("\n")
	case StateOverwriteConfirm:
		b.WriteString("File already exists:\n\n  ")
		b.WriteString(styles.SelectedStyle.Render(m.path))
		b.WriteString("\n\n")
		b.WriteString(styles.ErrorStyle.Render("⚠ This will overwrite the existing file!"))
		b.WriteString("\n")
	}

	lines := strings.Count(b.String(), "\n") + 1
	if remaining := m.height - lines - 1; remaining > 0 {
		b.WriteString(strings.Repeat("\n", remaining))
	}

	b.WriteString(m.renderActionBar())
	return b.String()
}

// renderActionBar renders the bottom action bar.
func (m SaveAsModel) renderActionBar() string {
	var items []string
	switch m.state {
	case StateEdit:
		items = []string{"Enter Save", "Esc Cancel"}
	case StateOverwriteConfirm:
		items = []string{"[o] Overwrite", "[e] Edit name", "[c] Cancel"}
	}
	return components.NewStatusBar().Render(m.width, "", items)
}

// SetSize updates the model dimensions.
func (m *SaveAsModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = width - 10
	if m.input.Width < 20 {
		m.input.Width = 20
	}
}

// Path returns the resolved path chosen by the user.
func (m SaveAsModel) Path() string {
	return m.path
}

// State returns the current state.
func (m SaveAsModel) State() SaveAsState {
	return m.state
}

// Result returns the result of the interaction.
func (m SaveAsModel) Result() SaveAsResult {
	return m.result
}
