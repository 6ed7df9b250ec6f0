package components

import (
	"peekd/internal/tui/styles"
)

// StatusBar shows the outcome of the last operation.
type StatusBar struct {
	text  string
	isErr bool
}

// NewStatusBar creates an empty status bar.
func NewStatusBar() *StatusBar {
	return &StatusBar{}
}

// SetText replaces the status text.
func (s *StatusBar) SetText(text string) {
	s.text = text
	s.isErr = false
}

// SetError shows an error in the status bar.
func (s *StatusBar) SetError(err error) {
	if err == nil {
		return
	}
	s.text = err.Error()
	s.isErr = true
}

// Clear empties the status bar.
func (s *StatusBar) Clear() {
	s.text = ""
	s.isErr = false
}

// View renders the status bar.
func (s *StatusBar) View() string {
	if s.text == "" {
		return ""
	}
	if s.isErr {
		return styles.Theme.Error.Render(s.text)
	}
	return styles.Theme.Status.Render(s.text)
}
