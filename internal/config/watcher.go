package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Logger defines the logging interface needed by the config watcher.
type Logger interface {
	Infof(string, ...any)
	Errorf(string, ...any)
}

const reloadDebounce = 500 * time.Millisecond

// WatchFile watches a config file and reloads it into the Store on change.
// The parent directory is watched so editors that replace the file by
// rename are still seen. A failed reload keeps the previous config.
// onReload, if non-nil, is called after each successful swap.
func WatchFile(path string, store *Store, logger Logger, onReload func(*Config)) (stop func(), err error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		watcher.Close()
		return nil, fmt.Errorf("resolve path: %w", err)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch dir: %w", err)
	}

	done := make(chan struct{})

	go func() {
		defer watcher.Close()

		// Reload once writes have settled, so a truncate-then-write is
		// never read half way.
		timer := time.NewTimer(reloadDebounce)
		timer.Stop()
		defer timer.Stop()

		for {
			select {
			case <-done:
				return
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != abs {
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				logger.Infof("config file change detected: %s", ev.Name)
				timer.Reset(reloadDebounce)
			case <-timer.C:
				cfg, err := Load(abs)
				if err != nil {
					logger.Errorf("failed to reload config: %v", err)
					continue
				}
				store.Update(cfg)
				logger.Infof("config reloaded (log.dir=%s)", cfg.Log.Dir)
				if onReload != nil {
					onReload(cfg)
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Errorf("config watcher error: %v", err)
			}
		}
	}()

	return func() { close(done) }, nil
}
