package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloadDebounce coalesces the event bursts editors produce for one save
const reloadDebounce = 100 * time.Millisecond

// Watch reloads path on change and reports each attempt to onChange until ctx is done
// The directory is watched so atomic rename-on-save editors are picked up
// Setup errors are returned synchronously; onChange runs on the watcher goroutine
func Watch(ctx context.Context, path string, onChange func(Settings, error)) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("config watch: %w", err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("config watch: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return fmt.Errorf("config watch: %w", err)
	}

	go func() {
		defer w.Close()

		debounce := time.NewTimer(0)
		if !debounce.Stop() {
			select {
			case <-debounce.C:
			default:
			}
		}
		defer debounce.Stop()

		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != abs {
					continue
				}
				if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
					debounce.Reset(reloadDebounce)
				}

			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				onChange(Settings{}, fmt.Errorf("config watch: %w", err))

			case <-debounce.C:
				s, err := Load(abs)
				onChange(s, err)
			}
		}
	}()

	return nil
}
