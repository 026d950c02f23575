// Package watcher implements file system watching for re-indexing projects.
package watcher

import (
	"slices"
	"sync"
	"time"
)

// Debouncer collects changed paths and reports them as one sorted batch once
// no new path has arrived for the length of the window.
type Debouncer struct {
	mu      sync.Mutex
	changed map[string]struct{}
	timer   *time.Timer
	gen     uint64
	window  time.Duration
	flush   func(paths []string)
}

// NewDebouncer creates a debouncer calling flush with each batch.
func NewDebouncer(window time.Duration, flush func(paths []string)) *Debouncer {
	return &Debouncer{
		changed: make(map[string]struct{}),
		window:  window,
		flush:   flush,
	}
}

// Add records a changed path and restarts the quiet period.
func (d *Debouncer) Add(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.changed[path] = struct{}{}
	d.gen++
	gen := d.gen
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, func() { d.expire(gen) })
}

// Stop drops pending paths without reporting them.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.gen++
	clear(d.changed)
}

// expire reports the batch if no Add or Stop happened since generation gen.
func (d *Debouncer) expire(gen uint64) {
	d.mu.Lock()
	if gen != d.gen || len(d.changed) == 0 {
		d.mu.Unlock()
		return
	}
	batch := make([]string, 0, len(d.changed))
	for path := range d.changed {
		batch = append(batch, path)
	}
	clear(d.changed)
	d.timer = nil
	d.mu.Unlock()

	slices.Sort(batch)
	if d.flush != nil {
		d.flush(batch)
	}
}
