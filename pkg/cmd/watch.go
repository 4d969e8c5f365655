package cmd

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
)

const watchDebounce = 100 * time.Millisecond

// watcher re-formats files in place when they change.
type watcher struct {
	f    *fileFormatter
	root string
	file bool // root is a single file

	mu      sync.Mutex
	written map[string][]byte
	timers  map[string]*time.Timer
	stopped bool
}

// watch formats path once and then keeps formatting changed files until ctx
// is cancelled.
func watch(ctx context.Context, path string, f *fileFormatter) error {
	info, err := os.Stat(path)
	if err != nil {
		return errors.Wrapf(err, "failed to access path: %s", path)
	}

	w := &watcher{
		f:       f,
		root:    filepath.Clean(path),
		file:    !info.IsDir(),
		written: make(map[string][]byte),
		timers:  make(map[string]*time.Timer),
	}
	f.onWrite = w.record

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "failed to create watcher")
	}
	defer func() { _ = fsw.Close() }()

	if w.file {
		err = fsw.Add(filepath.Dir(w.root))
	} else {
		err = w.watchDir(fsw, w.root)
	}
	if err != nil {
		return errors.Wrapf(err, "failed to watch path: %s", path)
	}

	// Initial pass
	if w.file {
		err = f.formatFile(w.root)
	} else {
		var files []string
		if files, err = f.collect(w.root); err == nil {
			for _, file := range files {
				if err = f.formatFile(file); err != nil {
					break
				}
			}
		}
	}
	if err != nil {
		return err
	}

	slog.Info("Watching for changes", "path", path)
	w.loop(ctx, fsw)
	w.stop()

	return nil
}

// watchDir recursively adds a directory to the watcher.
func (w *watcher) watchDir(fsw *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return fsw.Add(path)
		}
		return nil
	})
}

func (w *watcher) loop(ctx context.Context, fsw *fsnotify.Watcher) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-fsw.Events:
			if !ok {
				return
			}

			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}

			if event.Op&fsnotify.Create != 0 && !w.file {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.watchDir(fsw, event.Name); err != nil {
						slog.Error("Failed to watch directory", "path", event.Name, "err", err)
					}
					continue
				}
			}

			if !w.relevant(event.Name) {
				continue
			}

			w.schedule(event.Name)
		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			slog.Error("Watcher error", "err", err)
		}
	}
}

func (w *watcher) relevant(path string) bool {
	if w.file {
		return filepath.Clean(path) == w.root
	}
	return w.f.config.Matches(path)
}

// schedule debounces events per file.
func (w *watcher) schedule(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return
	}

	if t, ok := w.timers[path]; ok {
		t.Stop()
	}
	w.timers[path] = time.AfterFunc(watchDebounce, func() {
		w.handle(path)
	})
}

func (w *watcher) handle(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	delete(w.timers, path)
	if w.stopped {
		return
	}

	content, err := os.ReadFile(path)
	if err != nil {
		slog.Debug("Skipping unreadable file", "path", path, "err", err)
		return
	}

	if w.ownWrite(path, content) {
		return
	}

	slog.Info("Change detected", "path", path)
	if err := w.f.process(path, content); err != nil {
		slog.Error("Failed to format file", "path", path, "err", err)
	}
}

// record remembers content written by the formatter. Callers hold w.mu, except
// during the initial pass which runs before any event is handled.
func (w *watcher) record(path string, content []byte) {
	w.written[path] = content
}

// ownWrite reports whether content is exactly what the formatter last wrote to
// path.
func (w *watcher) ownWrite(path string, content []byte) bool {
	last, ok := w.written[path]
	return ok && bytes.Equal(last, content)
}

// stop cancels pending timers. A handle that is already waiting on w.mu sees
// stopped and returns without touching the file, and one that holds w.mu has
// finished by the time stop returns.
func (w *watcher) stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.stopped = true
	for path, t := range w.timers {
		t.Stop()
		delete(w.timers, path)
	}
}
