package main

import (
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
)

// dataChangedMsg is sent when the index file changes on disk while the
// picker is open.
type dataChangedMsg struct{}

// watchDataFile creates a file system watcher for the index file and returns
// a command that delivers one dataChangedMsg per debounced burst of changes.
// The watch is on the parent directory: saves replace the file by rename, so
// a watch on the file itself would go stale after the first write. Returns
// nil if the directory doesn't exist or the watcher cannot start; the picker
// then shows a static snapshot.
func watchDataFile(path string) tea.Cmd {
	watcher := initWatcher(filepath.Dir(path))
	if watcher == nil {
		return nil
	}
	return runWatcher(watcher, filepath.Base(path))
}

// initWatcher creates and initializes a file system watcher for the given
// directory. Returns nil if initialization fails.
func initWatcher(dir string) *fsnotify.Watcher {
	if _, err := os.Stat(dir); err != nil {
		return nil
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil
	}
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return nil
	}
	return watcher
}

// runWatcher returns a tea.Cmd that blocks until the named file inside the
// watched directory changes, debounces the burst, and reports it. The
// watcher is closed before the message is delivered; the model re-arms by
// calling watchDataFile again.
func runWatcher(watcher *fsnotify.Watcher, name string) tea.Cmd {
	return func() tea.Msg {
		defer watcher.Close()

		debounceTimer := newDebounceTimer()
		defer debounceTimer.Stop()

		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				if filepath.Base(event.Name) != name {
					continue
				}
				resetDebounceTimer(debounceTimer)

			case <-debounceTimer.C:
				// Debounce period elapsed, report the change.
				return dataChangedMsg{}

			case _, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				// The picker draws on stderr, so there is nowhere to log;
				// give up on live reload and keep the current snapshot.
				return nil
			}
		}
	}
}

// newDebounceTimer creates a stopped timer for debouncing file system
// events. It never fires until the first reset.
func newDebounceTimer() *time.Timer {
	timer := time.NewTimer(0)
	if !timer.Stop() {
		<-timer.C
	}
	return timer
}

// resetDebounceTimer restarts the debounce window after each event.
func resetDebounceTimer(timer *time.Timer) {
	const debounceDuration = 100 * time.Millisecond
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
	timer.Reset(debounceDuration)
}
