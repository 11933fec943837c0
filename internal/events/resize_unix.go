//go:build unix

package events

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// WatchResize sends a Resize to q on every SIGWINCH until ctx is done. size
// reports the current terminal size; failures are skipped.
func WatchResize(ctx context.Context, q *Queue, size func() (width, height int, err error)) {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGWINCH)
	go func() {
		defer signal.Stop(sig)
		for {
			select {
			case <-ctx.Done():
				return
			case <-sig:
				w, h, err := size()
				if err != nil {
					continue
				}
				q.Send(Resize{Width: w, Height: h})
			}
		}
	}()
}
