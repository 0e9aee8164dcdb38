package main

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// inputWatcher re-renders when any input file changes. Bursts of events (an
// editor saving through a temp file, say) collapse into one render.
type inputWatcher struct {
	watcher  *fsnotify.Watcher
	files    map[string]struct{}
	debounce time.Duration
	render   func(context.Context) error
}

// newInputWatcher watches the parent directories of paths, so files that are
// replaced rather than written in place are still seen.
func newInputWatcher(paths []string, debounce time.Duration, render func(context.Context) error) (*inputWatcher, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("no input files to watch")
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}

	w := &inputWatcher{
		watcher:  watcher,
		files:    make(map[string]struct{}, len(paths)),
		debounce: debounce,
		render:   render,
	}
	dirs := make(map[string]struct{})
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			watcher.Close()
			return nil, fmt.Errorf("resolving '%s': %w", p, err)
		}
		w.files[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			watcher.Close()
			return nil, fmt.Errorf("watching '%s': %w", dir, err)
		}
	}
	return w, nil
}

// Run blocks until ctx is done. Render errors are logged and the watch goes on.
func (w *inputWatcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Debug("watch stopped", zap.Error(ctx.Err()))
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			logger.Debug("input changed", zap.String("path", event.Name), zap.Stringer("op", event.Op))
			timer.Reset(w.debounce)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("file watcher error", zap.Error(err))

		case <-timer.C:
			if err := w.render(ctx); err != nil {
				logger.Error("re-render failed", zap.Error(err))
				continue
			}
			logger.Info("re-rendered after input change")
		}
	}
}

func (w *inputWatcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return false
	}
	abs, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}
	_, ok := w.files[abs]
	return ok
}
