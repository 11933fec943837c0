package watcher

import (
	"sync"
	"time"
)

// DefaultDebounceDuration is how long a burst of file events must be quiet
// before handlers run. Editors typically write, rename and chmod in quick
// succession on save.
const DefaultDebounceDuration = 100 * time.Millisecond

// Debouncer runs the most recently triggered function once calls stop
// arriving for its duration.
type Debouncer struct {
	d time.Duration

	mu    sync.Mutex
	timer *time.Timer
	fn    func()
}

// NewDebouncer returns a debouncer with quiet period d. A non-positive d
// uses DefaultDebounceDuration.
func NewDebouncer(d time.Duration) *Debouncer {
	if d <= 0 {
		d = DefaultDebounceDuration
	}
	return &Debouncer{d: d}
}

// Duration returns the quiet period.
func (db *Debouncer) Duration() time.Duration { return db.d }

// Trigger schedules fn, replacing any pending function and restarting the
// quiet period.
func (db *Debouncer) Trigger(fn func()) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.fn = fn
	if db.timer != nil {
		db.timer.Stop()
	}
	db.timer = time.AfterFunc(db.d, db.fire)
}

func (db *Debouncer) fire() {
	db.mu.Lock()
	fn := db.fn
	db.fn = nil
	db.timer = nil
	db.mu.Unlock()

	if fn != nil {
		fn()
	}
}

// Cancel drops the pending function, if any.
func (db *Debouncer) Cancel() {
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.timer != nil {
		db.timer.Stop()
		db.timer = nil
	}
	db.fn = nil
}
