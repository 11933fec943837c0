// Package watcher reports changes to individual files using fsnotify,
// coalescing bursts of events.
package watcher

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/shahbajlive/mdskin/internal/events"
)

// ErrClosed is returned when operations are called on a closed Watcher.
var ErrClosed = errors.New("watcher: watcher is closed")

// EventType represents the type of file system event.
type EventType uint32

const (
	// Create is triggered when a file is created, including by the rename
	// an editor does when saving atomically.
	Create EventType = 1 << iota
	// Write is triggered when a file is modified.
	Write
	// Remove is triggered when a file is removed.
	Remove
	// Rename is triggered when a file is renamed away.
	Rename
	// Chmod is triggered when file permissions change.
	Chmod
	// All events.
	All = Create | Write | Remove | Rename | Chmod
	// Changes are the events after which a file's content may differ.
	Changes = Create | Write | Rename
)

// Event is one coalesced change to a watched file.
type Event struct {
	// Path is the absolute path of the watched file.
	Path string
	// Type is the union of the operations seen during the burst.
	Type EventType
}

func eventTypeFromFsnotify(op fsnotify.Op) EventType {
	var t EventType
	if op.Has(fsnotify.Create) {
		t |= Create
	}
	if op.Has(fsnotify.Write) {
		t |= Write
	}
	if op.Has(fsnotify.Remove) {
		t |= Remove
	}
	if op.Has(fsnotify.Rename) {
		t |= Rename
	}
	if op.Has(fsnotify.Chmod) {
		t |= Chmod
	}
	return t
}

// Handler receives the files that changed during one burst, sorted by path.
type Handler func(events []Event)

// ErrorHandler is called when a watch error occurs.
type ErrorHandler func(err error)

// Watcher watches files for changes. Each file is watched through its
// parent directory so saves that replace the file are still seen.
type Watcher struct {
	Logger *slog.Logger

	fsWatcher    *fsnotify.Watcher
	debouncer    *Debouncer
	handler      Handler
	errorHandler ErrorHandler
	eventFilter  EventType

	mu      sync.Mutex
	files   map[string]bool // watched files
	dirs    map[string]int  // watched directories and how many files need them
	pending map[string]EventType
	closed  bool
	done    chan struct{}
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet period used to coalesce events.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debouncer = NewDebouncer(d)
		}
	}
}

// WithEventFilter sets which event types are reported. The default is
// Changes.
func WithEventFilter(filter EventType) Option {
	return func(w *Watcher) {
		w.eventFilter = filter
	}
}

// WithErrorHandler sets the error handler.
func WithErrorHandler(handler ErrorHandler) Option {
	return func(w *Watcher) {
		w.errorHandler = handler
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(w *Watcher) {
		w.Logger = l
	}
}

// New creates a Watcher that calls handler after each burst of changes.
func New(handler Handler, opts ...Option) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}

	w := &Watcher{
		fsWatcher:   fsWatcher,
		debouncer:   NewDebouncer(DefaultDebounceDuration),
		handler:     handler,
		eventFilter: Changes,
		files:       make(map[string]bool),
		dirs:        make(map[string]int),
		pending:     make(map[string]EventType),
		done:        make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}

	go w.run()

	return w, nil
}

// ToQueue returns a handler that sends one events.Reload per changed file.
// Reloads that do not fit in the queue are dropped and logged.
func ToQueue(q *events.Queue, logger *slog.Logger) Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return func(evs []Event) {
		for _, ev := range evs {
			if err := q.SendErr(events.Reload{Path: ev.Path}); err != nil {
				logger.Warn("dropping file change", "path", ev.Path, "error", err)
			}
		}
	}
}

func (w *Watcher) loggerSafe() *slog.Logger {
	if w != nil && w.Logger != nil {
		return w.Logger
	}
	return slog.Default()
}

// Add starts watching the file at path. The file need not exist yet, but
// its directory must.
func (w *Watcher) Add(path string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrClosed
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if w.files[absPath] {
		return nil
	}

	dir := filepath.Dir(absPath)
	if w.dirs[dir] == 0 {
		if err := w.fsWatcher.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	}
	w.dirs[dir]++
	w.files[absPath] = true
	w.loggerSafe().Debug("watching file", "path", absPath)

	return nil
}

// Remove stops watching the file at path.
func (w *Watcher) Remove(path string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrClosed
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if !w.files[absPath] {
		return nil
	}
	delete(w.files, absPath)

	dir := filepath.Dir(absPath)
	w.dirs[dir]--
	if w.dirs[dir] > 0 {
		return nil
	}
	delete(w.dirs, dir)
	if err := w.fsWatcher.Remove(dir); err != nil {
		return fmt.Errorf("unwatch %s: %w", dir, err)
	}
	return nil
}

// Close stops the watcher and releases resources. Pending events are
// dropped.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	w.debouncer.Cancel()
	w.mu.Unlock()

	err := w.fsWatcher.Close()
	<-w.done
	return err
}

// WatchedFiles returns the watched files in sorted order.
func (w *Watcher) WatchedFiles() []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	paths := make([]string, 0, len(w.files))
	for p := range w.files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

func (w *Watcher) run() {
	defer close(w.done)
	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.loggerSafe().Warn("file watch error", "error", err)
			if w.errorHandler != nil {
				w.errorHandler(err)
			}
		}
	}
}

func (w *Watcher) handleEvent(fsEvent fsnotify.Event) {
	eventType := eventTypeFromFsnotify(fsEvent.Op)
	if eventType&w.eventFilter == 0 {
		return
	}

	path := filepath.Clean(fsEvent.Name)
	w.mu.Lock()
	if w.closed || !w.files[path] {
		w.mu.Unlock()
		return
	}
	w.pending[path] |= eventType
	w.mu.Unlock()

	w.debouncer.Trigger(w.flush)
}

func (w *Watcher) flush() {
	w.mu.Lock()
	if w.closed || len(w.pending) == 0 {
		w.mu.Unlock()
		return
	}
	evs := make([]Event, 0, len(w.pending))
	for p, t := range w.pending {
		evs = append(evs, Event{Path: p, Type: t})
	}
	w.pending = make(map[string]EventType)
	w.mu.Unlock()

	sort.Slice(evs, func(i, j int) bool { return evs[i].Path < evs[j].Path })
	w.loggerSafe().Debug("files changed", "count", len(evs))
	if w.handler != nil {
		w.handler(evs)
	}
}
