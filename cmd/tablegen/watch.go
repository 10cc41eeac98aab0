package main

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watcher calls a function when a file changes. The directory of the file is
// watched, so editors that replace the file on save are noticed as well.
type watcher struct {
	fw       *fsnotify.Watcher
	file     string
	debounce time.Duration
	log      *slog.Logger
}

func newWatcher(file string, debounce time.Duration, log *slog.Logger) (*watcher, error) {
	abs, err := filepath.Abs(file)
	if err != nil {
		return nil, err
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	return &watcher{fw: fw, file: abs, debounce: debounce, log: log}, nil
}

// run calls fn after every burst of changes until ctx is done. Errors of fn
// are logged and do not stop the watcher.
func (w *watcher) run(ctx context.Context, fn func(context.Context) error) error {
	defer w.fw.Close()
	timer := time.NewTimer(w.debounce)
	timer.Stop()
	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case ev, ok := <-w.fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != w.file || !ev.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
				continue
			}
			w.log.Debug("project changed", "file", ev.Name, "op", ev.Op.String())
			timer.Reset(w.debounce)
		case err, ok := <-w.fw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watch error", "error", err)
		case <-timer.C:
			if err := fn(ctx); err != nil {
				w.log.Error("regeneration failed", "file", w.file, "error", err)
			}
		}
	}
}
