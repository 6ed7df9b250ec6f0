package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWatcher(t *testing.T) *Watcher {
	t.Helper()
	w, err := New(50 * time.Millisecond)
	require.NoError(t, err)
	t.Cleanup(w.Stop)
	return w
}

func TestWatcherDeliversChanges(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(path, []byte("one\n"), 0644))

	w := newTestWatcher(t)
	require.NoError(t, w.AddFile(path))
	require.NoError(t, w.Start())
	assert.True(t, w.IsRunning())

	require.NoError(t, os.WriteFile(path, []byte("one\ntwo\n"), 0644))

	select {
	case change := <-w.Changes():
		assert.Equal(t, path, change.Path)
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for file change")
	}
}

func TestWatcherDebouncesBursts(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "burst.txt")
	require.NoError(t, os.WriteFile(path, []byte("0\n"), 0644))

	w := newTestWatcher(t)
	require.NoError(t, w.AddFile(path))
	require.NoError(t, w.Start())

	// A burst of writes inside the quiet period collapses to one change
	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(path, []byte("burst\n"), 0644))
		time.Sleep(5 * time.Millisecond)
	}

	select {
	case change := <-w.Changes():
		assert.Equal(t, path, change.Path)
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for debounced change")
	}

	select {
	case change, ok := <-w.Changes():
		if ok {
			t.Fatalf("expected a single debounced change, got another for %s", change.Path)
		}
	case <-time.After(200 * time.Millisecond):
		// quiet, as expected
	}
}

func TestWatcherAddFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(path, []byte("x\n"), 0644))

	w := newTestWatcher(t)

	require.Error(t, w.AddFile(filepath.Join(dir, "ghost.txt")), "missing file")
	require.Error(t, w.AddFile(dir), "directories are rejected")

	require.NoError(t, w.AddFile(path))
	require.NoError(t, w.AddFile(path), "adding twice is harmless")
	assert.Equal(t, []string{path}, w.Files())

	w.RemoveFile(path)
	assert.Empty(t, w.Files())
}

func TestWatcherStop(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(path, []byte("x\n"), 0644))

	w, err := New(50 * time.Millisecond)
	require.NoError(t, err)
	require.NoError(t, w.AddFile(path))
	require.NoError(t, w.Start())

	w.Stop()
	assert.False(t, w.IsRunning())

	// Stopping twice must not panic
	w.Stop()

	_, ok := <-w.Changes()
	assert.False(t, ok, "change channel is closed after stop")
}

func TestWatcherStopDuringPendingDelivery(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(path, []byte("x\n"), 0644))

	for i := 0; i < 20; i++ {
		w, err := New(time.Millisecond)
		require.NoError(t, err)
		require.NoError(t, w.AddFile(path))
		require.NoError(t, w.Start())

		require.NoError(t, os.WriteFile(path, []byte("y\n"), 0644))
		time.Sleep(time.Millisecond) // land the stop near the debounce flush
		w.Stop()

		// A delivery may or may not have made it out first; either way the
		// channel must close cleanly.
		for range w.Changes() {
		}
	}
}
