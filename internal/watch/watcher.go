// Package watch refreshes generated views when the files backing them
// change on disk. It watches individual files through fsnotify and
// debounces bursts of writes into a single change notification. The
// notifications are consumed by the TUI's event loop, so refreshes stay
// serialized on the single interactive thread.
package watch

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"peekd/internal/log"
)

// FileChange reports that a watched file was written.
type FileChange struct {
	Path      string
	Timestamp time.Time
	Op        fsnotify.Op
}

// Watcher monitors the files backing live views using fsnotify.
type Watcher struct {
	// Files being watched
	files []string

	// Channel delivering debounced file changes
	changeChan chan FileChange

	// Channel to signal stop
	stopChan chan struct{}

	// fsnotify watcher instance
	fsWatcher *fsnotify.Watcher

	// Quiet period before a change is delivered
	debounce time.Duration

	// Lock for running state and the files list
	mutex sync.RWMutex

	// Whether the watcher is running
	running bool
}

// New creates a new file watcher. Changes are debounced by the given
// duration so rapid successive writes refresh a view once.
func New(debounce time.Duration) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &Watcher{
		files:      []string{},
		changeChan: make(chan FileChange, 10),
		stopChan:   make(chan struct{}),
		fsWatcher:  fsWatcher,
		debounce:   debounce,
	}, nil
}

// AddFile adds a file to watch.
func (w *Watcher) AddFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("error accessing file: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}

	if err := w.fsWatcher.Add(path); err != nil {
		return fmt.Errorf("failed to add file %s to watcher: %w", path, err)
	}

	w.mutex.Lock()
	found := false
	for _, existing := range w.files {
		if existing == path {
			found = true
			break
		}
	}
	if !found {
		w.files = append(w.files, path)
	}
	w.mutex.Unlock()
	log.LogWithFields(log.F("file", path)).Debug("watching file")
	return nil
}

// RemoveFile stops watching a file, typically when its view is closed.
func (w *Watcher) RemoveFile(path string) {
	// fsnotify drops the watch automatically for deleted files; an error
	// here only means the watch was already gone.
	_ = w.fsWatcher.Remove(path)

	w.mutex.Lock()
	for i, existing := range w.files {
		if existing == path {
			w.files = append(w.files[:i], w.files[i+1:]...)
			break
		}
	}
	w.mutex.Unlock()
}

// Changes returns the channel that delivers debounced file changes.
func (w *Watcher) Changes() <-chan FileChange {
	return w.changeChan
}

// Start begins delivering change events.
func (w *Watcher) Start() error {
	w.mutex.Lock()
	if w.running {
		w.mutex.Unlock()
		return fmt.Errorf("watcher already running")
	}
	w.running = true
	w.mutex.Unlock()

	w.stopChan = make(chan struct{})

	go func() {
		// The event goroutine owns changeChan: closing it here cannot
		// race a delivery still in flight in flush.
		defer close(w.changeChan)

		pending := make(map[string]fsnotify.Op)
		var timer *time.Timer
		var fire <-chan time.Time

		flush := func() {
			for path, op := range pending {
				change := FileChange{Path: path, Timestamp: time.Now(), Op: op}
				select {
				case w.changeChan <- change:
				default:
					log.LogWithFields(log.F("file", path)).Warn("change channel is full, dropped event")
				}
			}
			pending = make(map[string]fsnotify.Op)
			fire = nil
		}

		for {
			select {
			case event, ok := <-w.fsWatcher.Events:
				if !ok {
					return
				}

				if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) {
					continue
				}
				if info, err := os.Stat(event.Name); err != nil || info.IsDir() {
					continue
				}

				pending[event.Name] |= event.Op
				if timer == nil {
					timer = time.NewTimer(w.debounce)
				} else {
					timer.Reset(w.debounce)
				}
				fire = timer.C

			case <-fire:
				flush()

			case err, ok := <-w.fsWatcher.Errors:
				if !ok {
					return
				}
				log.LogWithFields(log.F("error", err)).Error("fsnotify watcher error")

			case <-w.stopChan:
				return
			}
		}
	}()

	log.Debug("watcher started")
	return nil
}

// Stop halts the file watching process.
func (w *Watcher) Stop() {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	if !w.running {
		return
	}

	close(w.stopChan)

	if err := w.fsWatcher.Close(); err != nil {
		log.LogWithFields(log.F("error", err)).Error("error closing fsnotify watcher")
	}

	w.running = false
}

// IsRunning returns whether the watcher is currently active.
func (w *Watcher) IsRunning() bool {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	return w.running
}

// Files returns the list of files being watched.
func (w *Watcher) Files() []string {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	filesCopy := make([]string, len(w.files))
	copy(filesCopy, w.files)
	return filesCopy
}
