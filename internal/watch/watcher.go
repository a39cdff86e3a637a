// Package watch reruns an action when source files under a directory tree
// are created, removed or renamed.
package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
)

// ErrInvalidPattern indicates a malformed doublestar pattern in Config.
var ErrInvalidPattern = errors.New("invalid watch pattern")

// Watcher observes a directory tree recursively.
type Watcher struct {
	root      string
	config    Config
	fsWatcher *fsnotify.Watcher
	fsMu      sync.Mutex
	dirs      map[string]struct{}
	logger    *slog.Logger
}

// New creates a Watcher for root. Call Close when done.
func New(root string, config Config) (*Watcher, error) {
	for _, p := range append(append([]string{}, config.Patterns...), config.IgnorePatterns...) {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidPattern, p)
		}
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	w := &Watcher{
		root:      filepath.Clean(root),
		config:    config,
		fsWatcher: fsWatcher,
		dirs:      make(map[string]struct{}),
		logger:    slog.Default().With("module", "watch"),
	}
	if _, err := w.addTree(w.root); err != nil {
		_ = fsWatcher.Close()
		return nil, err
	}
	return w, nil
}

func (w *Watcher) add(dir string) error {
	w.fsMu.Lock()
	defer w.fsMu.Unlock()
	if err := w.fsWatcher.Add(dir); err != nil {
		return err
	}
	w.dirs[dir] = struct{}{}
	return nil
}

func (w *Watcher) watched(dir string) bool {
	w.fsMu.Lock()
	defer w.fsMu.Unlock()
	_, ok := w.dirs[dir]
	return ok
}

// forget drops dir and every watched directory below it.
func (w *Watcher) forget(dir string) {
	w.fsMu.Lock()
	defer w.fsMu.Unlock()
	prefix := dir + string(filepath.Separator)
	for d := range w.dirs {
		if d == dir || strings.HasPrefix(d, prefix) {
			delete(w.dirs, d)
			_ = w.fsWatcher.Remove(d)
		}
	}
}

// addTree watches dir and every non-ignored directory below it. It returns
// the matching files already present in the tree.
func (w *Watcher) addTree(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return err
			}
			w.logger.Debug("skipping unreadable directory", "path", path, "error", err)
			return filepath.SkipDir
		}
		if path != w.root && w.ignored(path) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.IsDir() {
			if w.matches(path) {
				files = append(files, path)
			}
			return nil
		}
		if err := w.add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		w.logger.Debug("watching directory", "path", path)
		return nil
	})
	return files, err
}

// Run blocks until ctx is cancelled, calling onChange with each debounced
// batch of relevant paths. Batches are delivered sequentially.
func (w *Watcher) Run(ctx context.Context, onChange func([]string)) error {
	batches := make(chan []string, 1)
	debouncer := NewDebouncer(w.config.DebounceWindow, func(paths []string) {
		select {
		case batches <- paths:
		case <-ctx.Done():
		}
	})
	defer debouncer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case batch := <-batches:
			onChange(batch)

		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return nil
			}
			w.logger.Debug("file event", "path", event.Name, "op", event.Op.String())

			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if w.ignored(event.Name) {
						continue
					}
					// A directory moved in arrives as one event; its sources are found by walking it.
					files, err := w.addTree(event.Name)
					if err != nil {
						w.logger.Warn("failed to watch new directory", "path", event.Name, "error", err)
					}
					for _, f := range files {
						debouncer.Add(f)
					}
					continue
				}
			}
			if w.Relevant(event) {
				debouncer.Add(event.Name)
			}
			if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				w.forget(event.Name)
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", "error", err)
		}
	}
}

// Relevant reports whether event changes the set of watched files. Content
// writes are not relevant since generated scripts only list file names.
// Removing or renaming a watched directory is relevant whatever its name.
func (w *Watcher) Relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	if w.ignored(event.Name) {
		return false
	}
	if (event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)) && w.watched(event.Name) {
		return true
	}
	return w.matches(event.Name)
}

func (w *Watcher) matches(path string) bool {
	rel, ok := w.rel(path)
	if !ok {
		return false
	}
	for _, pattern := range w.config.Patterns {
		if match, _ := doublestar.Match(pattern, rel); match {
			return true
		}
	}
	return false
}

func (w *Watcher) ignored(path string) bool {
	rel, ok := w.rel(path)
	if !ok {
		return true
	}
	for _, pattern := range w.config.IgnorePatterns {
		if match, _ := doublestar.Match(pattern, rel); match {
			return true
		}
		// Directory patterns of the form "**/x/**" also cover x itself.
		if dir, found := strings.CutSuffix(pattern, "/**"); found {
			if match, _ := doublestar.Match(dir, rel); match {
				return true
			}
		}
	}
	return false
}

func (w *Watcher) rel(path string) (string, bool) {
	rel, err := filepath.Rel(w.root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return filepath.ToSlash(rel), true
}

// Close releases the underlying watcher.
func (w *Watcher) Close() error {
	w.fsMu.Lock()
	defer w.fsMu.Unlock()
	return w.fsWatcher.Close()
}
