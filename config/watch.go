package config

import (
	"context"
	"log"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watch monitors the value file at path and invokes apply with each new
// validated Config. Invalid or unreadable files are logged and skipped; the
// previous configuration stays in effect. Editors typically rename-then-write,
// so the watch is on the parent directory and events are debounced briefly.
func Watch(ctx context.Context, path string, apply func(Config)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if dir == "" {
		dir = "."
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return err
	}

	go func() {
		defer watcher.Close()
		var pending <-chan time.Time
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Base(ev.Name) != filepath.Base(path) {
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				pending = time.After(200 * time.Millisecond)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Printf("Config watcher error: %v", err)
			case <-pending:
				pending = nil
				cfg, err := ReadFile(path)
				if err != nil {
					log.Printf("Ignoring config change: %v", err)
					continue
				}
				apply(cfg)
			}
		}
	}()
	return nil
}
