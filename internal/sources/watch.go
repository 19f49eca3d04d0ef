package sources

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const watchDebounce = 250 * time.Millisecond

// Watch emits on the returned channel whenever a file-backed source
// changes on disk. Parent directories are watched rather than the files
// themselves so editors that save via rename are still seen. Events are
// debounced so a burst of writes triggers one reload.
//
// When no source is file-backed, Watch returns a nil channel, which
// blocks forever in a select.
func Watch(ctx context.Context, srcs []Source) (<-chan struct{}, error) {
	var paths []string
	for _, src := range srcs {
		if fs, ok := src.(*FileSource); ok {
			paths = append(paths, filepath.Clean(fs.Path()))
		}
	}
	if len(paths) == 0 {
		return nil, nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("starting file watcher: %w", err)
	}

	watchedDirs := make(map[string]bool, len(paths))
	for _, p := range paths {
		dir := filepath.Dir(p)
		if watchedDirs[dir] {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			watcher.Close()
			return nil, fmt.Errorf("watching %s: %w", dir, err)
		}
		watchedDirs[dir] = true
	}

	interesting := make(map[string]bool, len(paths))
	for _, p := range paths {
		interesting[p] = true
	}

	out := make(chan struct{}, 1)
	go func() {
		defer watcher.Close()
		defer close(out)

		var timer *time.Timer
		var timerC <-chan time.Time

		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !interesting[filepath.Clean(ev.Name)] {
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
					continue
				}
				if timer == nil {
					timer = time.NewTimer(watchDebounce)
					timerC = timer.C
				} else {
					timer.Reset(watchDebounce)
				}
			case <-timerC:
				timer = nil
				timerC = nil
				select {
				case out <- struct{}{}:
				default:
				}
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
			}
		}
	}()

	return out, nil
}
