// Package events carries input from producer goroutines (signals, file
// watchers) to the single goroutine that owns the view.
package events

import (
	"errors"
	"fmt"
)

// ErrQueueFull is returned by SendErr when the queue has no room.
var ErrQueueFull = errors.New("event queue full")

// DefaultQueueSize is the queue capacity used when none is given.
const DefaultQueueSize = 64

// Event is one input. The set of events is closed.
type Event interface {
	isEvent()
}

// Key is a key press, named the way bubbletea names keys ("q", "ctrl+c",
// "pgdown").
type Key struct {
	Name string
}

// Mouse is a wheel movement; positive Wheel scrolls down.
type Mouse struct {
	X, Y  int
	Wheel int
}

// Resize reports a new terminal size.
type Resize struct {
	Width, Height int
}

// Reload asks for the file at Path to be read again.
type Reload struct {
	Path string
}

func (Key) isEvent()    {}
func (Mouse) isEvent()  {}
func (Resize) isEvent() {}
func (Reload) isEvent() {}

func (k Key) String() string    { return "key " + k.Name }
func (r Resize) String() string { return fmt.Sprintf("resize %dx%d", r.Width, r.Height) }
func (r Reload) String() string { return "reload " + r.Path }

// Queue is a bounded, non-blocking event channel. Any number of goroutines
// may send; one goroutine receives.
type Queue struct {
	ch chan Event
}

// NewQueue returns a queue holding up to size events.
func NewQueue(size int) *Queue {
	if size < 1 {
		size = DefaultQueueSize
	}
	return &Queue{ch: make(chan Event, size)}
}

// Send enqueues ev without blocking. It reports false, dropping ev, when
// the queue is full.
func (q *Queue) Send(ev Event) bool {
	select {
	case q.ch <- ev:
		return true
	default:
		return false
	}
}

// SendErr is Send for callers that propagate errors.
func (q *Queue) SendErr(ev Event) error {
	if !q.Send(ev) {
		return fmt.Errorf("%w: dropped %v", ErrQueueFull, ev)
	}
	return nil
}

// Poll returns the next event if one is waiting.
func (q *Queue) Poll() (Event, bool) {
	select {
	case ev := <-q.ch:
		return ev, true
	default:
		return nil, false
	}
}

// Drain returns every waiting event in order.
func (q *Queue) Drain() []Event {
	var out []Event
	for {
		ev, ok := q.Poll()
		if !ok {
			return out
		}
		out = append(out, ev)
	}
}

// C exposes the channel for use in select.
func (q *Queue) C() <-chan Event { return q.ch }

// Len returns the number of waiting events.
func (q *Queue) Len() int { return len(q.ch) }

// Cap returns the queue capacity.
func (q *Queue) Cap() int { return cap(q.ch) }
