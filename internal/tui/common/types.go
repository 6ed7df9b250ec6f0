package common

// Mode identifies the interaction state of the TUI.
type Mode int

const (
	// Browse is the file browser: navigate, mark files, open views.
	Browse Mode = iota
	// Picker is the command picker overlay.
	Picker
	// Prompt is a single-line text input (path, line count, delimiter).
	Prompt
	// Pager displays a generated view's content.
	Pager
)

// FileEntry is one row of the file browser.
type FileEntry struct {
	Name  string
	Path  string
	IsDir bool
}
