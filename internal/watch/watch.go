// Package watch detects external changes to a document's backing file.
//
// Saves from this process also touch the file; callers are expected to
// compare modification times (Document.HasExternalChanges) before treating
// a notification as an external edit.
package watch

import (
	"errors"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ErrWatcherClosed is returned when operating on a closed watcher.
var ErrWatcherClosed = errors.New("watcher is closed")

// DefaultDebounce coalesces bursts of events (editors often write a file
// several times in quick succession, or replace it via rename).
const DefaultDebounce = 100 * time.Millisecond

// FileWatcher watches one file for writes, creates, renames, and removals.
// The parent directory is watched rather than the file itself so atomic
// replace-by-rename is still observed.
type FileWatcher struct {
	mu     sync.Mutex
	path   string
	fw     *fsnotify.Watcher
	events chan time.Time
	closed bool
	done   chan struct{}
}

// New starts watching the file at path.
func New(path string, debounce time.Duration) (*FileWatcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if err := fw.Add(filepath.Dir(path)); err != nil {
		fw.Close()
		return nil, err
	}

	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	w := &FileWatcher{
		path:   path,
		fw:     fw,
		events: make(chan time.Time, 1),
		done:   make(chan struct{}),
	}
	go w.loop(debounce)
	return w, nil
}

// Events delivers one debounced timestamp per burst of changes to the file.
// The channel is closed when the watcher is closed.
func (w *FileWatcher) Events() <-chan time.Time {
	return w.events
}

// Close stops the watcher. Idempotent.
func (w *FileWatcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true
	close(w.done)
	return w.fw.Close()
}

// loop filters directory events down to the watched file and debounces them.
func (w *FileWatcher) loop(debounce time.Duration) {
	defer close(w.events)

	var (
		timer   *time.Timer
		timerCh <-chan time.Time
	)

	for {
		select {
		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return

		case ev, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != filepath.Clean(w.path) {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounce)
				timerCh = timer.C
			} else {
				timer.Reset(debounce)
			}

		case <-w.fw.Errors:
			// Watch errors are not fatal for change detection; the caller
			// still has modification-time comparison as a fallback.

		case t := <-timerCh:
			timer = nil
			timerCh = nil
			select {
			case w.events <- t:
			default:
				// A pending notification already covers this burst.
			}
		}
	}
}
