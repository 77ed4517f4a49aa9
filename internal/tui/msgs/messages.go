// Package msgs defines message types shared by the editor views.
package msgs

// GoToEditorMsg signals a return to the editor view.
type GoToEditorMsg struct{}

// FileSelectedMsg is sent when a file is selected in the file picker.
type FileSelectedMsg struct {
	Path string
}

// FileLoadedMsg carries the result of reading a plan from disk.
type FileLoadedMsg struct {
	Path string
	Text string
	Err  error
}

// FileSavedMsg carries the result of writing the editor text to disk.
// Text is what was written, so the editor can tell if it changed since.
type FileSavedMsg struct {
	Path string
	Text string
	Err  error
}

// RenderDoneMsg signals that a chart render finished.
type RenderDoneMsg struct {
	Output   string
	Tasks    int
	Unparsed int
	Err      error
}
