// File: internal/typist/mocks_test.go
package typist

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"
)

// mockInjector implements the Injector interface for testing. It records
// every call in arrival order so scenarios can assert on the exact action
// stream the engine produced.
type mockInjector struct {
	t  *testing.T
	mu sync.Mutex

	sentKeys    []string
	pressedKeys []Key
	sleeps      []time.Duration
	// events interleaves all three call kinds: "text:<s>", "key:<k>",
	// "sleep:<duration>".
	events []string

	returnErr error

	// For advanced scenario control. callCount spans all three methods.
	cancelOnCall int
	failOnCall   int
	callCount    int
	cancelFunc   context.CancelFunc

	// Function overrides. If set, these replace the default behavior; the
	// override can call the corresponding Default* method if the standard
	// recording is still wanted.
	MockSendText func(ctx context.Context, text string) error
	MockPressKey func(ctx context.Context, key Key) error
	MockSleep    func(ctx context.Context, d time.Duration) error
}

func newMockInjector(t *testing.T) *mockInjector {
	return &mockInjector{
		t:           t,
		sentKeys:    make([]string, 0),
		pressedKeys: make([]Key, 0),
		sleeps:      make([]time.Duration, 0),
		events:      make([]string, 0),
	}
}

// record bumps the shared call counter and applies the failure/cancellation
// knobs. Callers must hold m.mu.
func (m *mockInjector) record(ctx context.Context) error {
	m.callCount++
	if m.cancelOnCall > 0 && m.callCount == m.cancelOnCall && m.cancelFunc != nil {
		m.cancelFunc()
	}
	if m.returnErr != nil && (m.failOnCall == 0 || m.callCount >= m.failOnCall) {
		return m.returnErr
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return nil
}

func (m *mockInjector) SendText(ctx context.Context, text string) error {
	if m.MockSendText != nil {
		return m.MockSendText(ctx, text)
	}
	return m.DefaultSendText(ctx, text)
}

func (m *mockInjector) DefaultSendText(ctx context.Context, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	// Record the attempt even when failing, mirroring what a half-broken
	// output channel would have received.
	m.sentKeys = append(m.sentKeys, text)
	m.events = append(m.events, "text:"+text)
	return m.record(ctx)
}

func (m *mockInjector) PressKey(ctx context.Context, key Key) error {
	if m.MockPressKey != nil {
		return m.MockPressKey(ctx, key)
	}
	return m.DefaultPressKey(ctx, key)
}

func (m *mockInjector) DefaultPressKey(ctx context.Context, key Key) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pressedKeys = append(m.pressedKeys, key)
	m.events = append(m.events, "key:"+string(key))
	return m.record(ctx)
}

func (m *mockInjector) Sleep(ctx context.Context, d time.Duration) error {
	if m.MockSleep != nil {
		return m.MockSleep(ctx, d)
	}
	return m.DefaultSleep(ctx, d)
}

func (m *mockInjector) DefaultSleep(ctx context.Context, d time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sleeps = append(m.sleeps, d)
	m.events = append(m.events, fmt.Sprintf("sleep:%s", d))
	return m.record(ctx)
}

// -- Recorded-state accessors --

func (m *mockInjector) recordedEvents() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.events))
	copy(out, m.events)
	return out
}

func (m *mockInjector) recordedSentKeys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.sentKeys))
	copy(out, m.sentKeys)
	return out
}

func (m *mockInjector) recordedPressedKeys() []Key {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Key, len(m.pressedKeys))
	copy(out, m.pressedKeys)
	return out
}

func (m *mockInjector) recordedSleeps() []time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]time.Duration, len(m.sleeps))
	copy(out, m.sleeps)
	return out
}

// -- Deterministic entropy --

// neverValue maps to 99 through Int31, which fails every 1-in-N trial the
// engine makes (N <= 100) and loses every sub-100-percent chance the default
// persona uses.
const neverValue = int64(99) << 32

// scriptedSource replays a fixed sequence through math/rand so tests can
// force individual probability draws. Exhausted scripts fall back to
// neverValue. Values are consumed one per Intn call; encode the desired
// Int31 result shifted left by 32.
type scriptedSource struct {
	values []int64
	pos    int
}

func (s *scriptedSource) Int63() int64 {
	if s.pos >= len(s.values) {
		return neverValue
	}
	v := s.values[s.pos]
	s.pos++
	return v
}

func (s *scriptedSource) Seed(int64) {}

// draw encodes an Int31 outcome for scriptedSource.
func draw(v int64) int64 { return v << 32 }
