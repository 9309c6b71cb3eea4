// File: internal/injector/recorder.go
package injector

import (
	"context"
	"sync"
	"time"

	"github.com/xkilldash9x/ghosttype-cli/internal/typist"
)

// ActionKind labels a recorded injector call.
type ActionKind string

const (
	ActionText  ActionKind = "text"
	ActionKey   ActionKind = "key"
	ActionSleep ActionKind = "sleep"
)

// Action is one recorded injector call. Only the payload field matching
// Kind carries a value.
type Action struct {
	Kind    ActionKind `json:"kind"`
	Text    string     `json:"text,omitempty"`
	Key     string     `json:"key,omitempty"`
	SleepMs int64      `json:"sleep_ms,omitempty"`
}

// Recorder captures the action stream instead of delivering it anywhere.
// Dry runs print the result, tests inspect it. Sleeps are recorded without
// waiting, so a multi-minute session replays instantly.
type Recorder struct {
	mu      sync.Mutex
	actions []Action
}

var _ typist.Injector = (*Recorder)(nil)

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) SendText(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.actions = append(r.actions, Action{Kind: ActionText, Text: text})
	return nil
}

func (r *Recorder) PressKey(ctx context.Context, key typist.Key) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.actions = append(r.actions, Action{Kind: ActionKey, Key: string(key)})
	return nil
}

func (r *Recorder) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.actions = append(r.actions, Action{Kind: ActionSleep, SleepMs: d.Milliseconds()})
	return nil
}

// Actions returns a copy of everything recorded so far.
func (r *Recorder) Actions() []Action {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Action, len(r.actions))
	copy(out, r.actions)
	return out
}
