// File: internal/typist/config.go
package typist

import (
	"math/rand"
	"time"
)

// DelayRange bounds a uniformly sampled pause. Min is inclusive, Max is
// exclusive; a degenerate range (Max <= Min) always yields Min.
type DelayRange struct {
	Min time.Duration
	Max time.Duration
}

// random draws a duration from the range using the supplied entropy source.
func (r DelayRange) random(rng *rand.Rand) time.Duration {
	if r.Max <= r.Min {
		return r.Min
	}
	return r.Min + time.Duration(rng.Int63n(int64(r.Max-r.Min)))
}

// Config holds the numeric ranges and probabilities governing pacing and
// mistake behavior. It is pure data, immutable once the engine is built.
type Config struct {
	// BaseDelay is the inter-keystroke delay applied after every emitted
	// character.
	BaseDelay DelayRange

	// ThinkingDelay is the pause occasionally taken before whitespace and
	// always taken after a line break.
	ThinkingDelay DelayRange

	// CorrectionDelay is the pause between typing a wrong character and
	// noticing it (before the backspace).
	CorrectionDelay DelayRange

	// LongPauseDelay is the extended stop occasionally taken after
	// sentence punctuation.
	LongPauseDelay DelayRange

	// MistakeOneIn is the 1-in-N odds of mis-typing a printable character.
	// Values <= 0 disable mistakes entirely; 1 mis-types every character.
	MistakeOneIn int

	// LongPausePercent is the chance in [0,100] of a long pause after one
	// of the pause punctuation marks. Values <= 0 disable the pause.
	LongPausePercent int

	// Rng is the entropy source for every random draw the engine makes.
	// Leave nil for a time-seeded source; supply a seeded one for
	// deterministic runs.
	Rng *rand.Rand
}

// DefaultConfig returns the stock typing persona.
func DefaultConfig() Config {
	return Config{
		BaseDelay:        DelayRange{Min: 20 * time.Millisecond, Max: 100 * time.Millisecond},
		ThinkingDelay:    DelayRange{Min: 500 * time.Millisecond, Max: 1500 * time.Millisecond},
		CorrectionDelay:  DelayRange{Min: 300 * time.Millisecond, Max: 700 * time.Millisecond},
		LongPauseDelay:   DelayRange{Min: 1000 * time.Millisecond, Max: 3000 * time.Millisecond},
		MistakeOneIn:     10,
		LongPausePercent: 5,
	}
}
