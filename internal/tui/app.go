// Package tui is the interactive plan editor.
package tui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pablasso/gantitt/internal/artifact"
	"github.com/pablasso/gantitt/internal/chart"
	"github.com/pablasso/gantitt/internal/gantt"
	"github.com/pablasso/gantitt/internal/tui/msgs"
	"github.com/pablasso/gantitt/internal/tui/styles"
	"github.com/pablasso/gantitt/internal/tui/views"
	"github.com/pablasso/gantitt/internal/util"
)

// Minimum terminal size for a usable editor.
const (
	MinTerminalWidth  = 40
	MinTerminalHeight = 8
)

// View represents the different screens in the TUI.
type View int

const (
	ViewEditor View = iota
	ViewFilePicker
	ViewSaveAs
)

// Model is the main Bubble Tea model that orchestrates all views.
type Model struct {
	currentView View
	width       int
	height      int

	editor views.EditorModel
	picker views.FilePickerModel
	saveAs views.SaveAsModel

	builder *chart.Builder
	dir     string

	// rendering is set while a render command is in flight; a second
	// ctrl+r is refused until it reports back.
	rendering bool
	title     string
}

// Run starts the TUI application.
func Run(opts Options) error {
	m, err := initialModel(opts)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func initialModel(opts Options) (Model, error) {
	if opts.Builder == nil {
		return Model{}, errors.New("tui: no chart builder")
	}

	dir := opts.Dir
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return Model{}, err
		}
		dir = cwd
	}

	m := Model{
		currentView: ViewEditor,
		editor:      views.NewEditorModel(),
		builder:     opts.Builder,
		dir:         dir,
	}

	if opts.Path != "" {
		path, err := filepath.Abs(opts.Path)
		if err != nil {
			return Model{}, err
		}
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			m.editor.Load(path, string(data))
		case os.IsNotExist(err):
			m.editor.MarkSaved(path, "")
			m.editor.SetMessage("New file: "+path, views.MessageInfo)
		default:
			return Model{}, fmt.Errorf("failed to read plan: %w", err)
		}
	}

	m.title = m.editor.WindowTitle()
	return m, nil
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.editor.Init(), tea.SetWindowTitle(m.title))
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.editor.SetSize(msg.Width, msg.Height)
		m.picker.SetSize(msg.Width, msg.Height)
		m.saveAs.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case msgs.GoToEditorMsg:
		m.currentView = ViewEditor
		return m, nil

	case msgs.FileSelectedMsg:
		m.currentView = ViewEditor
		return m, loadFile(msg.Path)

	case msgs.FileLoadedMsg:
		if msg.Err != nil {
			m.editor.SetMessage(msg.Err.Error(), views.MessageError)
			return m, nil
		}
		m.editor.Load(msg.Path, msg.Text)
		m.dir = filepath.Dir(msg.Path)
		m.editor.SetMessage("Opened "+msg.Path, views.MessageInfo)
		cmd := m.syncTitle()
		return m, cmd

	case msgs.FileSavedMsg:
		if msg.Err != nil {
			m.editor.SetMessage(msg.Err.Error(), views.MessageError)
			return m, nil
		}
		m.editor.MarkSaved(msg.Path, msg.Text)
		m.dir = filepath.Dir(msg.Path)
		m.editor.SetMessage("Saved "+msg.Path, views.MessageSuccess)
		cmd := m.syncTitle()
		return m, cmd

	case msgs.RenderDoneMsg:
		m.rendering = false
		switch {
		case msg.Err != nil:
			m.editor.SetMessage(msg.Err.Error(), views.MessageError)
		case msg.Unparsed > 0:
			m.editor.SetMessage(fmt.Sprintf("Rendered %s (%d tasks, %d lines ignored)", msg.Output, msg.Tasks, msg.Unparsed), views.MessageWarning)
		default:
			m.editor.SetMessage(fmt.Sprintf("Rendered %s (%d tasks)", msg.Output, msg.Tasks), views.MessageSuccess)
		}
		return m, nil
	}

	switch m.currentView {
	case ViewFilePicker:
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		return m, cmd
	case ViewSaveAs:
		return m.updateSaveAs(msg)
	default:
		return m.updateEditor(msg)
	}
}

func (m Model) updateEditor(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+o":
			m.picker = views.NewFilePickerModel(m.dir)
			m.picker.SetSize(m.width, m.height)
			m.currentView = ViewFilePicker
			return m, m.picker.Init()

		case "ctrl+s":
			if path := m.editor.Path(); path != "" {
				return m, saveFile(path, m.editor.Text())
			}
			return m.openSaveAs()

		case "alt+s":
			return m.openSaveAs()

		case "ctrl+r":
			if m.rendering {
				m.editor.SetMessage("render already in progress", views.MessageWarning)
				return m, nil
			}
			m.rendering = true
			m.editor.SetMessage("Rendering...", views.MessageInfo)
			return m, renderChart(m.builder, m.editor.Text(), m.editor.Path(), m.dir)

		case "ctrl+n":
			m.editor.Reset()
			m.editor.SetMessage("", views.MessageInfo)
			cmd := m.syncTitle()
			return m, cmd

		case "ctrl+l":
			m.editor.LoadUnsaved(gantt.Sample)
			m.editor.SetMessage("Loaded the sample plan", views.MessageInfo)
			cmd := m.syncTitle()
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	titleCmd := m.syncTitle()
	return m, tea.Batch(cmd, titleCmd)
}

// openSaveAs prompts for a file name, starting from the current one.
func (m Model) openSaveAs() (tea.Model, tea.Cmd) {
	dir, name := m.dir, suggestFilename(m.editor.Text())
	if path := m.editor.Path(); path != "" {
		dir, name = filepath.Dir(path), filepath.Base(path)
	}
	m.saveAs = views.NewSaveAsModel(dir, name)
	m.saveAs.SetSize(m.width, m.height)
	m.currentView = ViewSaveAs
	return m, m.saveAs.Init()
}

func (m Model) updateSaveAs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.saveAs, cmd = m.saveAs.Update(msg)

	switch m.saveAs.Result() {
	case views.ResultSave:
		m.currentView = ViewEditor
		return m, saveFile(m.saveAs.Path(), m.editor.Text())
	case views.ResultCancel:
		m.currentView = ViewEditor
		return m, nil
	}
	return m, cmd
}

// syncTitle returns a command updating the terminal title when it changed.
// Callers must keep the returned model, since m is a value receiver.
func (m *Model) syncTitle() tea.Cmd {
	title := m.editor.WindowTitle()
	if title == m.title {
		return nil
	}
	m.title = title
	return tea.SetWindowTitle(title)
}

// View implements tea.Model.
func (m Model) View() string {
	if m.width > 0 && (m.width < MinTerminalWidth || m.height < MinTerminalHeight) {
		return m.renderTerminalTooSmall()
	}

	switch m.currentView {
	case ViewFilePicker:
		return m.picker.View()
	case ViewSaveAs:
		return m.saveAs.View()
	default:
		return m.editor.View()
	}
}

func (m Model) renderTerminalTooSmall() string {
	msg := fmt.Sprintf("Terminal too small\n\nMinimum: %dx%d\nCurrent: %dx%d",
		MinTerminalWidth, MinTerminalHeight, m.width, m.height)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, styles.ErrorStyle.Render(msg))
}

func loadFile(path string) tea.Cmd {
	return func() tea.Msg {
		data, err := os.ReadFile(path)
		if err != nil {
			return msgs.FileLoadedMsg{Path: path, Err: fmt.Errorf("failed to read plan: %w", err)}
		}
		return msgs.FileLoadedMsg{Path: path, Text: string(data)}
	}
}

func saveFile(path, text string) tea.Cmd {
	return func() tea.Msg {
		if err := artifact.Write(path, []byte(text)); err != nil {
			return msgs.FileSavedMsg{Path: path, Err: err}
		}
		return msgs.FileSavedMsg{Path: path, Text: text}
	}
}

// renderChart builds the buffer. Unsaved text renders into dir.
func renderChart(b *chart.Builder, text, path, dir string) tea.Cmd {
	return func() tea.Msg {
		var res *chart.Result
		var err error
		if path == "" {
			res, err = b.BuildText(text, dir)
		} else {
			res, err = b.Build(text, path, "")
		}
		if err != nil {
			return msgs.RenderDoneMsg{Err: err}
		}
		return msgs.RenderDoneMsg{
			Output:   res.Output,
			Tasks:    len(res.Document.Plan.Tasks),
			Unparsed: len(res.Document.Unparsed),
		}
	}
}

// suggestFilename names an unsaved plan after its title line.
func suggestFilename(text string) string {
	for _, line := range strings.Split(text, "\n") {
		if d, value, ok := gantt.Classify(gantt.NormalizeLine(line)); ok && d == gantt.DirectiveTitle {
			if name := util.ToKebabCase(value); name != "" {
				return name + views.PlanExtension
			}
		}
	}
	return "plan" + views.PlanExtension
}
