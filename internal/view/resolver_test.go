package view

import (
	"os"
	"path/filepath"
	"testing"

	"peekd/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveFiles(t *testing.T) {
	dir := t.TempDir()
	onDisk := filepath.Join(dir, "cursor.txt")
	require.NoError(t, os.WriteFile(onDisk, []byte("x\n"), 0644))

	t.Run("marked files win", func(t *testing.T) {
		files, err := ResolveFiles([]string{"/tmp/a.txt", "/tmp/b.txt"}, onDisk, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"/tmp/a.txt", "/tmp/b.txt"}, files)
	})

	t.Run("cursor file requires on-disk existence", func(t *testing.T) {
		files, err := ResolveFiles(nil, onDisk, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{onDisk}, files)

		_, err = ResolveFiles(nil, filepath.Join(dir, "ghost.txt"), nil)
		require.Error(t, err)
		assert.True(t, errors.IsNoFileSelected(err))
	})

	t.Run("directories are not files", func(t *testing.T) {
		_, err := ResolveFiles(nil, dir, nil)
		require.Error(t, err)
		assert.True(t, errors.IsNoFileSelected(err))
	})

	t.Run("prompt is the fallback", func(t *testing.T) {
		prompted := filepath.Join(dir, "prompted.txt")
		require.NoError(t, os.WriteFile(prompted, []byte("x\n"), 0644))

		files, err := ResolveFiles(nil, "", func() (string, bool) {
			return prompted, true
		})
		require.NoError(t, err)
		assert.Equal(t, []string{prompted}, files)
	})

	t.Run("prompted path must exist", func(t *testing.T) {
		_, err := ResolveFiles(nil, "", func() (string, bool) {
			return filepath.Join(dir, "ghost.txt"), true
		})
		require.Error(t, err)
		assert.True(t, errors.IsFileNotFound(err))
	})

	t.Run("empty prompt input means no file selected", func(t *testing.T) {
		_, err := ResolveFiles(nil, "", func() (string, bool) {
			return "   ", true
		})
		require.Error(t, err)
		assert.True(t, errors.IsNoFileSelected(err))
	})

	t.Run("cancelled prompt aborts", func(t *testing.T) {
		_, err := ResolveFiles(nil, "", func() (string, bool) {
			return "", false
		})
		require.Error(t, err)
		assert.True(t, errors.IsCancelled(err))
	})

	t.Run("nothing to resolve", func(t *testing.T) {
		_, err := ResolveFiles(nil, "", nil)
		require.Error(t, err)
		assert.True(t, errors.IsNoFileSelected(err))
	})
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "notes.txt"), ExpandPath("~/notes.txt"))
	assert.Equal(t, home, ExpandPath("~"))
	assert.Equal(t, "/tmp/a.txt", ExpandPath("/tmp/a.txt"))
	assert.Equal(t, "/tmp/a.txt", ExpandPath("/tmp//a.txt"))
}
