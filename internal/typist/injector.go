// File: internal/typist/injector.go
package typist

import (
	"context"
	"time"
)

// Injector is the contract for the actuator that receives the engine's key
// stream. The engine never consults injector state; calls are fire-and-forget
// and any returned error is fatal for the run. Implementations live in
// internal/injector (OS-level, browser, recording).
type Injector interface {
	// SendText types a short run of literal characters, typically length 1.
	SendText(ctx context.Context, text string) error

	// PressKey clicks a named non-literal key such as Backspace or Enter.
	PressKey(ctx context.Context, key Key) error

	// Sleep pauses the key stream for the given duration (context-aware).
	Sleep(ctx context.Context, d time.Duration) error
}

// Key identifies a named control key understood by every Injector.
type Key string

const (
	KeyBackspace Key = "backspace"
	KeyEnter     Key = "enter"
)
