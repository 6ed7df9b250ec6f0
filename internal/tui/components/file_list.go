package components

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"

	"peekd/internal/tui/common"
	"peekd/internal/tui/styles"
)

// FileList is the file browser: a directory listing with a cursor and a
// mark set. Marked files form the selection context view creation
// resolves against.
type FileList struct {
	files      []common.FileEntry
	marked     map[string]bool
	cursor     int
	currentDir string

	visualMode  bool
	visualStart int
}

// NewFileList creates an empty file list.
func NewFileList() *FileList {
	return &FileList{
		marked: make(map[string]bool),
	}
}

// Scan reads the directory and replaces the listing. Marks on paths that
// vanished are dropped.
func (fl *FileList) Scan(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	fl.currentDir = dir
	fl.files = fl.files[:0]
	for _, entry := range entries {
		fl.files = append(fl.files, common.FileEntry{
			Name:  entry.Name(),
			Path:  dir + string(os.PathSeparator) + entry.Name(),
			IsDir: entry.IsDir(),
		})
	}

	sort.Slice(fl.files, func(i, j int) bool {
		if fl.files[i].IsDir != fl.files[j].IsDir {
			return fl.files[i].IsDir
		}
		return fl.files[i].Name < fl.files[j].Name
	})

	if fl.cursor >= len(fl.files) {
		fl.cursor = 0
	}

	live := make(map[string]bool)
	for _, f := range fl.files {
		if fl.marked[f.Path] {
			live[f.Path] = true
		}
	}
	fl.marked = live

	return nil
}

// MoveCursor moves the cursor by delta, clamped to the listing.
func (fl *FileList) MoveCursor(delta int) {
	if len(fl.files) == 0 {
		fl.cursor = 0
		return
	}
	pos := fl.cursor + delta
	if pos < 0 {
		pos = 0
	}
	if pos >= len(fl.files) {
		pos = len(fl.files) - 1
	}
	fl.cursor = pos
}

// GotoTop moves the cursor to the first entry.
func (fl *FileList) GotoTop() {
	fl.cursor = 0
}

// GotoBottom moves the cursor to the last entry.
func (fl *FileList) GotoBottom() {
	if len(fl.files) > 0 {
		fl.cursor = len(fl.files) - 1
	}
}

// ToggleMark marks or unmarks the entry under the cursor. In visual mode
// the whole range from the visual anchor is marked. Directories cannot
// be marked.
func (fl *FileList) ToggleMark() {
	if len(fl.files) == 0 {
		return
	}

	if fl.visualMode {
		start, end := fl.visualStart, fl.cursor
		if start > end {
			start, end = end, start
		}
		for i := start; i <= end; i++ {
			if !fl.files[i].IsDir {
				fl.marked[fl.files[i].Path] = true
			}
		}
		return
	}

	f := fl.files[fl.cursor]
	if f.IsDir {
		return
	}
	if fl.marked[f.Path] {
		delete(fl.marked, f.Path)
	} else {
		fl.marked[f.Path] = true
	}
}

// ToggleVisual starts or leaves visual range marking.
func (fl *FileList) ToggleVisual() {
	fl.visualMode = !fl.visualMode
	if fl.visualMode {
		fl.visualStart = fl.cursor
	}
}

// ClearMarks drops all marks and leaves visual mode.
func (fl *FileList) ClearMarks() {
	fl.marked = make(map[string]bool)
	fl.visualMode = false
}

// MarkedFiles returns the marked paths in listing order.
func (fl *FileList) MarkedFiles() []string {
	var paths []string
	for _, f := range fl.files {
		if fl.marked[f.Path] {
			paths = append(paths, f.Path)
		}
	}
	return paths
}

// FileAtCursor returns the path under the cursor, or "" when the cursor
// rests on a directory or the listing is empty.
func (fl *FileList) FileAtCursor() string {
	if fl.cursor < 0 || fl.cursor >= len(fl.files) {
		return ""
	}
	f := fl.files[fl.cursor]
	if f.IsDir {
		return ""
	}
	return f.Path
}

// EntryAtCursor returns the entry under the cursor.
func (fl *FileList) EntryAtCursor() (common.FileEntry, bool) {
	if fl.cursor < 0 || fl.cursor >= len(fl.files) {
		return common.FileEntry{}, false
	}
	return fl.files[fl.cursor], true
}

// Files returns the current listing.
func (fl *FileList) Files() []common.FileEntry {
	return fl.files
}

// IsMarked reports whether the path is marked.
func (fl *FileList) IsMarked(path string) bool {
	return fl.marked[path]
}

// Cursor returns the cursor index.
func (fl *FileList) Cursor() int {
	return fl.cursor
}

// CurrentDir returns the listed directory.
func (fl *FileList) CurrentDir() string {
	return fl.currentDir
}

// VisualMode reports whether visual range marking is active.
func (fl *FileList) VisualMode() bool {
	return fl.visualMode
}

// View renders the listing.
func (fl *FileList) View() string {
	var s strings.Builder

	s.WriteString(styles.Theme.Help.Render("Directory: "+fl.currentDir) + "\n\n")

	if len(fl.files) == 0 {
		s.WriteString("No files found\n")
		return s.String()
	}

	for i, file := range fl.files {
		style := styles.Theme.Unmarked
		mark := " "
		switch {
		case file.IsDir:
			style = styles.Theme.Dir
		case fl.marked[file.Path]:
			style = styles.Theme.Marked
			mark = "*"
		}

		cursor := " "
		if i == fl.cursor {
			cursor = ">"
		}

		name := file.Name
		if file.IsDir {
			name += "/"
		}

		details := ""
		if !file.IsDir {
			if info, err := os.Stat(file.Path); err == nil {
				details = fmt.Sprintf("  %8s  %s",
					humanize.Bytes(uint64(info.Size())),
					info.ModTime().Format("2006-01-02 15:04"))
			}
		}

		s.WriteString(fmt.Sprintf("%s%s %s%s\n",
			cursor, mark, style.Render(name), styles.Theme.Help.Render(details)))
	}

	return s.String()
}
