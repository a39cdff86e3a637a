package watch

import (
	"slices"
	"sync"
	"time"
)

// Debouncer collects changed paths and flushes them once no new path has
// arrived for the configured window.
type Debouncer struct {
	window  time.Duration
	paths   map[string]struct{}
	mu      sync.Mutex
	timer   *time.Timer
	onFlush func([]string)
	stopped bool
}

// NewDebouncer creates a Debouncer calling onFlush with the sorted batch.
func NewDebouncer(window time.Duration, onFlush func([]string)) *Debouncer {
	return &Debouncer{
		window:  window,
		paths:   make(map[string]struct{}),
		onFlush: onFlush,
	}
}

// Add records path and restarts the quiet window.
func (d *Debouncer) Add(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.paths[path] = struct{}{}
	d.timer = time.AfterFunc(d.window, d.flush)
}

func (d *Debouncer) flush() {
	d.mu.Lock()
	if d.stopped || len(d.paths) == 0 {
		d.mu.Unlock()
		return
	}
	batch := d.drainLocked()
	d.mu.Unlock()

	if d.onFlush != nil {
		d.onFlush(batch)
	}
}

func (d *Debouncer) drainLocked() []string {
	batch := make([]string, 0, len(d.paths))
	for p := range d.paths {
		batch = append(batch, p)
	}
	slices.Sort(batch)
	d.paths = make(map[string]struct{})
	d.timer = nil
	return batch
}

// Stop cancels the pending flush and discards queued paths.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.paths = make(map[string]struct{})
}
