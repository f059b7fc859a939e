package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/rail44/gemrun/internal/checksum"
	"github.com/rail44/gemrun/internal/watch"
)

// Watch runs the named command on the contents of path now and after every
// save, until ctx is done. Saves that leave the content unchanged are skipped.
// Failures of a single run are logged and watching continues; an unknown
// command stops immediately.
func (a *App) Watch(ctx context.Context, name, path string) error {
	if _, err := a.registry.Lookup(name); err != nil {
		return err
	}

	changed := make(chan struct{}, 1)
	notify := func() {
		select {
		case changed <- struct{}{}:
		default:
		}
	}

	watcher, err := watch.NewFileWatcher(path, notify)
	if err != nil {
		return err
	}
	defer watcher.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go watcher.Start(ctx)

	a.logger.Info("watching file", slog.String("file", path), slog.String("command", name))
	notify()

	var last string
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-changed:
			sum, err := a.runFile(ctx, name, path, last)
			if err != nil {
				a.logger.Error("run failed", slog.String("file", path), slog.String("error", err.Error()))
				continue
			}
			last = sum
		}
	}
}

// runFile runs the command on the file unless its checksum equals last, and
// returns the checksum of what was run
func (a *App) runFile(ctx context.Context, name, path, last string) (string, error) {
	cmd, err := a.registry.Lookup(name)
	if err != nil {
		return "", err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}

	sum := checksum.Calculate(cmd, string(data))
	if sum == last {
		a.logger.Debug("content unchanged, skipping", slog.String("file", path), slog.String("checksum", sum))
		return sum, nil
	}

	if err := a.Run(ctx, name, Input{Text: string(data)}); err != nil {
		return "", err
	}
	return sum, nil
}
