package config

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads the config file whenever it changes on disk and passes the
// result to onChange. The directory is watched rather than the file so that
// editors which replace the file on save are handled. Watch returns once
// the watcher is running; it stops when ctx is done.
func Watch(ctx context.Context, path string, onChange func(AppConfig, error)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := w.Add(filepath.Dir(path)); err != nil {
		w.Close()
		return err
	}

	go func() {
		defer w.Close()
		target := filepath.Clean(path)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != target {
					continue
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
					continue
				}
				onChange(Load(path))
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				onChange(AppConfig{}, err)
			}
		}
	}()
	return nil
}
