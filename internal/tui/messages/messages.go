// Package messages defines the tea.Msg types exchanged inside the TUI.
package messages

// ErrorMsg carries an operation error to the status bar.
type ErrorMsg struct {
	Err error
}

// StatusMsg replaces the status bar text.
type StatusMsg struct {
	Text string
}

// FileChangedMsg reports that a file backing one or more views changed
// on disk. Emitted by the watch subscription.
type FileChangedMsg struct {
	Path string
}

// WatchStoppedMsg reports that the watch subscription ended.
type WatchStoppedMsg struct{}
