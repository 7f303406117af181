package config

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/odvcencio/prism/pkg/errors"
	"github.com/odvcencio/prism/pkg/logging"
)

const (
	watchDebounce = 100 * time.Millisecond
	relevantOps   = fsnotify.Write | fsnotify.Create | fsnotify.Remove | fsnotify.Rename
)

// Watch calls onChange after any of paths is written, created, removed or
// renamed, coalescing bursts of events. Paths need not exist yet, but their
// directories must. Watch blocks until ctx is done.
func Watch(ctx context.Context, paths []string, onChange func()) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeConfigLoad, "creating config watcher")
	}
	defer w.Close()

	log := logging.FromContext(ctx)

	// editors often replace files by rename, so watch directories
	want := make(map[string]bool, len(paths))
	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(expandHomeDir(p))
		if err != nil {
			continue
		}
		want[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	watched := 0
	for dir := range dirs {
		if err := w.Add(dir); err != nil {
			log.Debug("config directory not watched", "dir", dir, "error", err)
			continue
		}
		watched++
	}
	if watched == 0 {
		return errors.New(errors.ErrCodeConfigLoad, "no config directory to watch").
			WithRemediation("create ~/.prism or ./.prism first")
	}

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !want[filepath.Clean(ev.Name)] || ev.Op&relevantOps == 0 {
				continue
			}
			log.Debug("config changed", "path", ev.Name, "op", ev.Op.String())
			if timer == nil {
				timer = time.NewTimer(watchDebounce)
			} else {
				timer.Reset(watchDebounce)
			}
			fire = timer.C

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warn("config watcher error", "error", err)

		case <-fire:
			fire = nil
			onChange()
		}
	}
}
