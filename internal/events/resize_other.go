//go:build !unix

package events

import "context"

// WatchResize is a no-op where the platform has no resize signal.
func WatchResize(ctx context.Context, q *Queue, size func() (width, height int, err error)) {}
