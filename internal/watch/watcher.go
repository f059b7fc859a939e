// Package watch notifies when a single file is saved.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/rail44/gemrun/internal/log"
)

// DebounceDelay collapses the burst of events an editor emits on save
const DebounceDelay = 100 * time.Millisecond

type FileWatcher struct {
	watcher  *fsnotify.Watcher
	filePath string
	onChange func()
}

func NewFileWatcher(filePath string, onChange func()) (*FileWatcher, error) {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	// Watch the directory so editors that replace the file are still seen
	dir := filepath.Dir(absPath)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	return &FileWatcher{
		watcher:  watcher,
		filePath: absPath,
		onChange: onChange,
	}, nil
}

// Start delivers change notifications until ctx is done or the watcher is closed
func (fw *FileWatcher) Start(ctx context.Context) {
	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}

			if filepath.Clean(event.Name) != fw.filePath {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(DebounceDelay, fw.onChange)
		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			log.Warn("watcher error", slog.String("error", err.Error()))
		}
	}
}

func (fw *FileWatcher) Close() error {
	return fw.watcher.Close()
}
