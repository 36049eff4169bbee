// Package watch applies wallpapers as they land in a directory.
package watch

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"github.com/chromash/chromash/pkg/errors"
	"github.com/chromash/chromash/pkg/wallpaper"
)

// DefaultDebounce is how long the directory must be quiet before the
// handler runs.
const DefaultDebounce = 500 * time.Millisecond

// Handler receives the most recently changed image.
type Handler func(ctx context.Context, path string) error

// Watcher calls a Handler for new or rewritten images in Dir. Images that
// leave the directory are ignored.
type Watcher struct {
	Dir      string
	Debounce time.Duration
	Logger   *log.Logger
}

// New returns a Watcher for dir with the default debounce.
func New(dir string, logger *log.Logger) *Watcher {
	return &Watcher{Dir: dir, Debounce: DefaultDebounce, Logger: logger}
}

// Run blocks until ctx is done. Handler errors are logged, not returned, so
// one unreadable image does not stop the watch.
func (w *Watcher) Run(ctx context.Context, h Handler) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()

	if err := fw.Add(w.Dir); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "watch %s", w.Dir)
	}

	logger := w.Logger
	if logger == nil {
		logger = log.Default()
	}
	debounce := w.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}
	var pending string

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !relevant(ev) {
				continue
			}
			logger.Debug("wallpaper event", "op", ev.Op.String(), "path", ev.Name)
			pending = filepath.Clean(ev.Name)
			timer.Reset(debounce)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", "err", err)

		case <-timer.C:
			if pending == "" {
				continue
			}
			path := pending
			pending = ""
			if info, err := os.Stat(path); err != nil || !info.Mode().IsRegular() {
				logger.Debug("wallpaper gone before apply", "path", path)
				continue
			}
			if err := h(ctx, path); err != nil {
				logger.Error("apply failed", "path", path, "err", err)
			}
		}
	}
}

// relevant reports whether ev may have brought a new image into the
// directory. Rename fires on the old name, and files moved in arrive as
// Create.
func relevant(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) {
		return false
	}
	return wallpaper.IsImage(ev.Name)
}
