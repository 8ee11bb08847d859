package data

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"

	applog "charapedia/app/internal/log"
)

// DefaultDebounce groups the burst of events editors emit when saving a file.
const DefaultDebounce = 250 * time.Millisecond

// Reloader is satisfied by *Store.
type Reloader interface {
	Reload(ctx context.Context) error
}

// Watcher reloads the catalog whenever a data file in a directory changes.
type Watcher struct {
	dir      string
	reloader Reloader
	logger   *logrus.Logger
	debounce time.Duration
	fs       *fsnotify.Watcher
}

// NewWatcher starts watching dir. Call Run to process events and Close when done.
func NewWatcher(dir string, reloader Reloader, logger *logrus.Logger, debounce time.Duration) (*Watcher, error) {
	if reloader == nil {
		return nil, eris.New("reloader is required")
	}
	if logger == nil {
		return nil, eris.New("logger is required")
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, eris.Wrap(err, "creating file watcher")
	}
	if err := fsw.Add(dir); err != nil {
		_ = fsw.Close()
		return nil, eris.Wrapf(err, "watching %s", dir)
	}

	return &Watcher{
		dir:      dir,
		reloader: reloader,
		logger:   logger,
		debounce: debounce,
		fs:       fsw,
	}, nil
}

// Run blocks until ctx is cancelled or the watcher is closed.
func (w *Watcher) Run(ctx context.Context) error {
	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	entry := applog.Component(w.logger, "data.watcher").WithField("dir", w.dir)
	entry.Info("watching data directory")

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if !relevant(event) {
				continue
			}
			entry.WithFields(logrus.Fields{"file": filepath.Base(event.Name), "op": event.Op.String()}).Debug("data file changed")
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			entry.WithError(err).Warn("file watcher error")
		case <-fire:
			fire = nil
			if err := w.reloader.Reload(ctx); err != nil {
				entry.WithError(err).Warn("reload after change failed, keeping previous catalog")
				continue
			}
			entry.Info("catalog reloaded after change")
		}
	}
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.fs.Close()
}

func relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	switch filepath.Ext(event.Name) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
