package watcher

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/penwyp/go-allan-plot/internal/core/model"
	"github.com/penwyp/go-allan-plot/internal/util"
)

// relevantOps are the operations that can change a data file's content.
// Editors often save through a rename, so Rename and Create count too.
const relevantOps = fsnotify.Write | fsnotify.Create | fsnotify.Rename

// FileWatcher reports changes to a single data file.
//
// The parent directory is watched rather than the file itself so the watch
// survives editors that replace the file on save.
type FileWatcher struct {
	watcher *fsnotify.Watcher
	path    string
	events  chan model.FileEvent
	done    chan struct{}
}

// NewFileWatcher starts watching path.
func NewFileWatcher(path string) (*FileWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	dir := filepath.Dir(abs)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	fw := &FileWatcher{
		watcher: watcher,
		path:    filepath.Clean(abs),
		events:  make(chan model.FileEvent, 16),
		done:    make(chan struct{}),
	}

	go fw.processEvents()

	util.LogDebug("Watching input file", util.F("path", fw.path), util.F("dir", dir))
	return fw, nil
}

// Path returns the absolute path being watched.
func (fw *FileWatcher) Path() string {
	return fw.path
}

func (fw *FileWatcher) processEvents() {
	defer close(fw.events)

	for {
		select {
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			if !fw.matches(event) {
				continue
			}

			select {
			case fw.events <- model.FileEvent{Path: fw.path, Operation: event.Op.String()}:
			case <-fw.done:
				return
			}

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			// Log error but continue running
			util.LogError("File monitoring error", util.F("error", err.Error()))

		case <-fw.done:
			return
		}
	}
}

func (fw *FileWatcher) matches(event fsnotify.Event) bool {
	if event.Op&relevantOps == 0 {
		return false
	}
	name, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}
	return filepath.Clean(name) == fw.path
}

// Events delivers change notifications. The channel is closed after Close.
func (fw *FileWatcher) Events() <-chan model.FileEvent {
	return fw.events
}

// Close stops watching.
func (fw *FileWatcher) Close() error {
	select {
	case <-fw.done:
		return nil
	default:
		close(fw.done)
	}
	return fw.watcher.Close()
}
