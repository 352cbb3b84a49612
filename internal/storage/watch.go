package storage

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"pomodoro/internal/ui/preferences"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads the settings file whenever it is written, created or
// replaced and passes the result to onChange. The parent directory is
// watched so editors that save through a rename are picked up. Watching
// stops when ctx is cancelled.
func Watch(ctx context.Context, path string, logger *slog.Logger, onChange func(preferences.Settings)) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve settings path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create settings watcher: %w", err)
	}
	dir := filepath.Dir(absPath)
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(evt.Name) != absPath {
					continue
				}
				if !evt.Has(fsnotify.Write) && !evt.Has(fsnotify.Create) && !evt.Has(fsnotify.Rename) {
					continue
				}
				settings, err := LoadSettings(absPath)
				if err != nil {
					logger.Warn("settings reload failed", "path", absPath, "error", err)
					continue
				}
				logger.Debug("settings reloaded", "path", absPath)
				onChange(settings)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("settings watcher error", "error", err)
			}
		}
	}()
	return nil
}
