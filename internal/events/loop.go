package events

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"
)

// DefaultTick is the redraw interval used when Loop.Tick is zero.
const DefaultTick = 50 * time.Millisecond

// Loop consumes a queue on the calling goroutine. Events are handled as
// they arrive; redraws are batched onto a ticker so a burst of resizes
// draws once.
type Loop struct {
	Queue *Queue
	Tick  time.Duration

	// Handle processes one event and reports whether the view changed.
	Handle func(Event) bool
	// Draw redraws the view. It is called once before the first event and
	// then on ticks after Handle reported a change.
	Draw func() error

	Logger *slog.Logger

	stop atomic.Bool
}

func (l *Loop) loggerSafe() *slog.Logger {
	if l != nil && l.Logger != nil {
		return l.Logger
	}
	return slog.Default()
}

// Stop asks Run to return. It is safe to call from any goroutine, including
// from Handle.
func (l *Loop) Stop() { l.stop.Store(true) }

// Stopped reports whether Stop was called.
func (l *Loop) Stopped() bool { return l.stop.Load() }

// Run processes events until Stop is called, ctx is done, or Draw fails.
// The stop flag is checked once per iteration. Stop makes Run return nil;
// cancellation returns ctx.Err().
func (l *Loop) Run(ctx context.Context) error {
	tick := l.Tick
	if tick <= 0 {
		tick = DefaultTick
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	if err := l.draw(); err != nil {
		return err
	}
	dirty := false
	for {
		if l.stop.Load() {
			l.loggerSafe().Debug("event loop stopped")
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-l.Queue.C():
			dirty = l.handle(ev) || dirty
			for _, ev := range l.Queue.Drain() {
				dirty = l.handle(ev) || dirty
			}
		case <-ticker.C:
			if dirty {
				dirty = false
				if err := l.draw(); err != nil {
					return err
				}
			}
		}
	}
}

func (l *Loop) handle(ev Event) bool {
	if l.Handle == nil {
		return false
	}
	return l.Handle(ev)
}

func (l *Loop) draw() error {
	if l.Draw == nil {
		return nil
	}
	return l.Draw()
}
