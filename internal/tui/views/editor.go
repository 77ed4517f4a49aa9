package views

import (
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pablasso/gantitt/internal/tui/components"
	"github.com/pablasso/gantitt/internal/tui/styles"
)

// AppName is shown in the window title.
const AppName = "gantitt"

// MessageKind selects the style of the editor's message line.
type MessageKind int

const (
	MessageInfo MessageKind = iota
	MessageSuccess
	MessageWarning
	MessageError
)

// EditorModel is the plan text editor. It remembers the text as last
// loaded or saved so it can report unsaved changes.
type EditorModel struct {
	textarea  textarea.Model
	path      string
	savedText string

	message     string
	messageKind MessageKind

	width  int
	height int
}

// NewEditorModel creates an empty, focused editor.
func NewEditorModel() EditorModel {
	ta := textarea.New()
	ta.Placeholder = "title: My plan\ntask: First task\ndate: 2024-1"
	ta.ShowLineNumbers = true
	ta.Prompt = ""
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.Focus()

	return EditorModel{textarea: ta}
}

// Init implements tea.Model.
func (m EditorModel) Init() tea.Cmd {
	return textarea.Blink
}

// Update implements tea.Model.
func (m EditorModel) Update(msg tea.Msg) (EditorModel, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.SetSize(msg.Width, msg.Height)
		return m, nil
	}

	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m EditorModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.textarea.View())
	b.WriteString("\n")
	b.WriteString(m.renderMessage())
	b.WriteString("\n")

	items := []string{"^R Render", "^S Save", "M-s Save As", "^O Open", "^N New", "^L Sample", "^C Quit"}
	b.WriteString(components.NewStatusBar().Render(m.width, m.stateLabel(), items))
	return b.String()
}

func (m EditorModel) renderMessage() string {
	if m.message == "" {
		return ""
	}
	style := styles.SubtleStyle
	switch m.messageKind {
	case MessageSuccess:
		style = styles.SuccessStyle
	case MessageWarning:
		style = styles.WarningStyle
	case MessageError:
		style = styles.ErrorStyle
	}
	// Multi-line errors are flattened to keep the layout fixed.
	msg := strings.Join(strings.Fields(m.message), " ")
	return style.MaxWidth(m.width).Render(msg)
}

func (m EditorModel) stateLabel() string {
	label := m.DisplayName()
	if m.Modified() {
		return label + styles.ModifiedStyle.Render("*")
	}
	return label
}

// SetSize updates the model dimensions.
func (m *EditorModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.textarea.SetWidth(width)
	// Message line and status bar
	if h := height - 2; h > 0 {
		m.textarea.SetHeight(h)
	}
}

// Load replaces the text and records it as saved at path.
func (m *EditorModel) Load(path, text string) {
	m.path = path
	m.savedText = text
	m.textarea.SetValue(text)
}

// LoadUnsaved replaces the text without a backing file, so it starts out
// modified.
func (m *EditorModel) LoadUnsaved(text string) {
	m.path = ""
	m.savedText = ""
	m.textarea.SetValue(text)
}

// Reset clears the editor and forgets the current file.
func (m *EditorModel) Reset() {
	m.path = ""
	m.savedText = ""
	m.textarea.Reset()
}

// MarkSaved records that text was written to path.
func (m *EditorModel) MarkSaved(path, text string) {
	m.path = path
	m.savedText = text
}

// SetMessage shows msg above the status bar.
func (m *EditorModel) SetMessage(msg string, kind MessageKind) {
	m.message = msg
	m.messageKind = kind
}

// Text returns the current editor contents.
func (m EditorModel) Text() string {
	return m.textarea.Value()
}

// Path returns the file backing the editor, or "" for a new plan.
func (m EditorModel) Path() string {
	return m.path
}

// Modified reports whether the text differs from the last load or save.
func (m EditorModel) Modified() bool {
	return m.textarea.Value() != m.savedText
}

// Message returns the current message line text.
func (m EditorModel) Message() string {
	return m.message
}

// DisplayName is the file name without its extension, or "untitled".
func (m EditorModel) DisplayName() string {
	if m.path == "" {
		return "untitled"
	}
	base := filepath.Base(m.path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// WindowTitle is "name* - gantitt" with the marker only when modified. A
// fresh untouched editor is titled just "gantitt".
func (m EditorModel) WindowTitle() string {
	if m.path == "" && !m.Modified() {
		return AppName
	}
	name := m.DisplayName()
	if m.Modified() {
		name += "*"
	}
	return name + " - " + AppName
}
