package stories

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultWatchDebounce is how long Watch waits for more changes before reloading
const DefaultWatchDebounce = 100 * time.Millisecond

// Watch reloads the story file at path whenever it changes and passes the stories to onChange.
// Invalid files are logged and skipped, the previous stories stay in place.
// Watch blocks until ctx is done.
func Watch(ctx context.Context, path string, logger *slog.Logger, onChange func([]Story)) error {
	if logger == nil {
		logger = slog.Default()
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolving story file path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory, editors often replace files instead of writing them
	if err := watcher.Add(filepath.Dir(absPath)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(absPath), err)
	}

	logger.Debug("Watching story file", slog.String("path", absPath))

	var (
		timer  *time.Timer
		reload <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != absPath {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(DefaultWatchDebounce)
			reload = timer.C
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Story file watcher error", slog.Any("err", err))
		case <-reload:
			reload = nil
			loaded, err := LoadFile(absPath, logger)
			if err != nil {
				logger.Error("Failed to reload story file", slog.String("path", absPath), slog.Any("err", err))
				continue
			}
			logger.Info("Reloaded story file", slog.String("path", absPath), slog.Int("stories", len(loaded)))
			onChange(loaded)
		}
	}
}
