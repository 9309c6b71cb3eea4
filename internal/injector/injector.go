// File: internal/injector/injector.go

// Package injector provides the delivery backends for synthetic keystrokes:
// the local operating system, a browser tab driven over the Chrome DevTools
// Protocol, and an in-memory recorder for dry runs.
package injector

import (
	"context"
	"time"
)

// sleepFor waits for d or until ctx is done, whichever comes first.
func sleepFor(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
