package auth

import (
	"context"
	"log/slog"
	"time"

	"github.com/fsnotify/fsnotify"
)

// WatchForChanges watches the Store's backing files and reloads on
// change, debouncing bursts of writes (an editor save often produces
// several filesystem events for one logical edit) into a single reload.
// It returns once ctx is canceled.
func (s *Store) WatchForChanges(ctx context.Context, logger *slog.Logger, debounce time.Duration) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	for _, path := range []string{s.usersPath, s.groupsPath} {
		if err := watcher.Add(path); err != nil {
			logger.Warn("auth: could not watch file for changes", "path", path, "error", err)
		}
	}

	var timer *time.Timer
	reload := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, func() {
				select {
				case reload <- struct{}{}:
				default:
				}
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("auth: watcher error", "error", err)
		case <-reload:
			if err := s.Load(); err != nil {
				logger.Error("auth: reload after external edit failed", "error", err)
				continue
			}
			logger.Info("auth: reloaded users/groups after external edit")
		}
	}
}
