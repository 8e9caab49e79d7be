package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"chatapp/internal/logger"
)

const defaultDebounce = 200 * time.Millisecond

// Watcher reloads the config file when it changes on disk and swaps the
// result into the cell. Invalid edits are logged and ignored.
type Watcher struct {
	path     string
	cell     *Cell
	logger   logger.Logger
	debounce time.Duration
	onReload func(prev, next *AppConfig)
}

func NewWatcher(path string, cell *Cell, log logger.Logger) *Watcher {
	return &Watcher{
		path:     filepath.Clean(path),
		cell:     cell,
		logger:   log,
		debounce: defaultDebounce,
	}
}

// OnReload registers fn to run after each successful swap. It runs on the
// watcher goroutine.
func (w *Watcher) OnReload(fn func(prev, next *AppConfig)) {
	w.onReload = fn
}

// Run watches until ctx is done. The parent directory is watched so that
// editors replacing the file by rename are still seen.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(w.path), err)
	}

	w.logger.Info("ConfigWatcher", "watching config", map[string]interface{}{
		"path": w.path,
	})

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			timer.Reset(w.debounce)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warning("ConfigWatcher", "watch error", map[string]interface{}{
				"error": err.Error(),
			})

		case <-timer.C:
			w.reload()
		}
	}
}

func (w *Watcher) reload() {
	next, err := TryLoad(w.path)
	if err != nil {
		w.logger.Error("ConfigWatcher", err, map[string]interface{}{
			"path": w.path,
		})
		return
	}

	prev := w.cell.Replace(next)
	w.logger.Info("ConfigWatcher", "config reloaded", map[string]interface{}{
		"path": w.path,
	})

	if w.onReload != nil {
		w.onReload(prev, next)
	}
}
