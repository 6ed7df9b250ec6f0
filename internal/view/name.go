package view

import (
	"fmt"
	"os"
	"strings"
)

// DeriveName derives the display name for a view produced from state.
// A single-file view is named "<program> <abbreviated path>", which is
// stable for a given (program, file) pair so re-creating the same view
// reuses the same name. A multi-file view is named "<program>, multiple
// files" with a numeric suffix appended when that name is already taken,
// so several multi-file views per program can coexist.
func DeriveName(s *State, exists func(name string) bool) string {
	if len(s.Files) == 1 {
		return fmt.Sprintf("%s %s", s.Program, AbbreviatePath(s.Files[0]))
	}

	base := fmt.Sprintf("%s, multiple files", s.Program)
	if !exists(base) {
		return base
	}
	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s<%d>", base, i)
		if !exists(candidate) {
			return candidate
		}
	}
}

// AbbreviatePath shortens a path under the user's home directory to the
// conventional ~ form.
func AbbreviatePath(path string) string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return path
	}
	return abbreviatePath(path, home)
}

func abbreviatePath(path, home string) string {
	if path == home {
		return "~"
	}
	home = strings.TrimSuffix(home, "/")
	if strings.HasPrefix(path, home+"/") {
		return "~" + path[len(home):]
	}
	return path
}
