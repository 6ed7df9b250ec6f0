package view

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"peekd/internal/errors"
)

// PromptFunc asks the user for a single file path. The second return is
// false when the prompt was cancelled.
type PromptFunc func() (string, bool)

// ResolveFiles determines the target file set for a view operation.
// Priority order, first non-empty source wins: explicitly marked files,
// then the file under the cursor (which must exist on disk and not be a
// directory), then an interactive prompt. A prompted path must exist on
// disk, failing with FileNotFound otherwise; the operation fails with
// NoFileSelected when all three sources come up empty.
func ResolveFiles(marked []string, cursorFile string, prompt PromptFunc) ([]string, error) {
	if len(marked) > 0 {
		return append([]string(nil), marked...), nil
	}

	if cursorFile != "" {
		if info, err := os.Stat(cursorFile); err == nil && !info.IsDir() {
			return []string{cursorFile}, nil
		}
	}

	if prompt != nil {
		path, ok := prompt()
		if !ok {
			return nil, errors.ErrCancelled
		}
		path = strings.TrimSpace(path)
		if path != "" {
			path = ExpandPath(path)
			if _, err := os.Stat(path); err != nil {
				return nil, errors.NewViewError(fmt.Sprintf("file not found: %s", path), errors.FileNotFound, err)
			}
			return []string{path}, nil
		}
	}

	return nil, errors.ErrNoFileSelected
}

// ExpandPath expands a leading ~ to the user's home directory and cleans
// the result.
func ExpandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil && home != "" {
			return filepath.Clean(filepath.Join(home, strings.TrimPrefix(path, "~")))
		}
	}
	return filepath.Clean(path)
}
