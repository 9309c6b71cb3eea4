// File: internal/typist/typist.go

// Package typist implements the human-typing simulation engine: given a
// string, it decides the sequence and timing of emitted keystrokes, including
// probabilistic mistake injection and backspace self-correction, and drives
// them through an Injector.
package typist

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"
	"unicode"

	"go.uber.org/zap"

	"github.com/xkilldash9x/ghosttype-cli/internal/keyboard"
)

const (
	// thinkingPauseOneIn is the fixed odds of pausing to "think" before a
	// whitespace character.
	thinkingPauseOneIn = 100

	// pausePunctuation lists the marks that can trigger an extended stop
	// after being typed.
	pausePunctuation = ".,?!;:"
)

// Stats summarizes a completed (or aborted) typing run.
type Stats struct {
	// Characters is the number of characters emitted, line breaks included.
	// Skipped carriage returns are not counted.
	Characters int
	// Mistakes is the number of wrong characters typed and corrected.
	Mistakes int
	// Elapsed is the wall-clock duration of the run.
	Elapsed time.Duration
}

// Typist walks input text one character at a time and emits key actions with
// human-like cadence. It is single-threaded: one run at a time, blocking on
// the calling goroutine, with sleeps as the only time-based behavior.
type Typist struct {
	cfg      Config
	layout   *keyboard.Layout
	injector Injector
	logger   *zap.Logger
	rng      *rand.Rand
}

// New creates a Typist. A nil layout falls back to the QWERTY layout, a nil
// logger to a no-op logger, and a nil cfg.Rng to a time-seeded source.
func New(cfg Config, layout *keyboard.Layout, injector Injector, logger *zap.Logger) *Typist {
	if layout == nil {
		layout = keyboard.NewQwerty()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	rng := cfg.Rng
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Typist{
		cfg:      cfg,
		layout:   layout,
		injector: injector,
		logger:   logger,
		rng:      rng,
	}
}

// Type runs the full simulation over text. It returns early only on a
// canceled context or an injector failure; both are fatal for the run and
// never retried. Stats are valid on every return path.
func (t *Typist) Type(ctx context.Context, text string) (stats Stats, err error) {
	start := time.Now()
	defer func() { stats.Elapsed = time.Since(start) }()

	t.logger.Debug("typing run starting", zap.Int("input_bytes", len(text)))

	for _, c := range text {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		// Carriage returns never reach the injector: no emission, no delay.
		if c == '\r' {
			continue
		}

		// Humans sometimes pause before starting a new word or line.
		if unicode.IsSpace(c) && t.oneIn(thinkingPauseOneIn) {
			if err := t.pause(ctx, t.cfg.ThinkingDelay); err != nil {
				return stats, err
			}
		}

		if c == '\n' {
			// A line break is a named key, never a literal character, and it
			// always carries a thinking pause. No mistakes on line breaks.
			if err := t.injector.PressKey(ctx, KeyEnter); err != nil {
				return stats, fmt.Errorf("typist: failed to press %s: %w", KeyEnter, err)
			}
			if err := t.pause(ctx, t.cfg.ThinkingDelay); err != nil {
				return stats, err
			}
		} else {
			if err := t.emitCharacter(ctx, c, &stats); err != nil {
				return stats, err
			}
		}
		stats.Characters++

		if err := t.pause(ctx, t.cfg.BaseDelay); err != nil {
			return stats, err
		}

		// Independent of the pre-emission pauses, sentence punctuation can
		// hold the typist up for a longer stretch.
		if strings.ContainsRune(pausePunctuation, c) && t.chancePercent(t.cfg.LongPausePercent) {
			if err := t.pause(ctx, t.cfg.LongPauseDelay); err != nil {
				return stats, err
			}
		}
	}

	t.logger.Debug("typing run complete",
		zap.Int("characters", stats.Characters),
		zap.Int("mistakes", stats.Mistakes),
		zap.Duration("elapsed", time.Since(start)),
	)
	return stats, nil
}

// emitCharacter performs the mistake/emission step for a printable character:
// either the character itself, or a wrong neighbor followed by an immediate
// single-backspace correction.
func (t *Typist) emitCharacter(ctx context.Context, c rune, stats *Stats) error {
	if !t.oneIn(t.cfg.MistakeOneIn) {
		return t.sendRune(ctx, c)
	}

	wrong := t.layout.Nearby(t.rng, c)
	stats.Mistakes++
	t.logger.Debug("injecting mistake",
		zap.String("intended", string(c)),
		zap.String("typed", string(wrong)),
	)

	if err := t.sendRune(ctx, wrong); err != nil {
		return err
	}
	// The "noticing" delay before the fix.
	if err := t.pause(ctx, t.cfg.CorrectionDelay); err != nil {
		return err
	}
	if err := t.injector.PressKey(ctx, KeyBackspace); err != nil {
		return fmt.Errorf("typist: failed to press %s: %w", KeyBackspace, err)
	}
	return t.sendRune(ctx, c)
}

func (t *Typist) sendRune(ctx context.Context, c rune) error {
	if err := t.injector.SendText(ctx, string(c)); err != nil {
		return fmt.Errorf("typist: failed to send character %q: %w", c, err)
	}
	return nil
}

// pause sleeps for a duration drawn from r through the injector, so recorded
// runs capture pacing without really waiting.
func (t *Typist) pause(ctx context.Context, r DelayRange) error {
	if err := t.injector.Sleep(ctx, r.random(t.rng)); err != nil {
		return fmt.Errorf("typist: sleep interrupted: %w", err)
	}
	return nil
}

// oneIn reports a 1-in-n success. n <= 0 never succeeds and consumes no
// entropy; n == 1 always succeeds.
func (t *Typist) oneIn(n int) bool {
	if n <= 0 {
		return false
	}
	return t.rng.Intn(n) == 0
}

// chancePercent reports a p% success for p in [0,100]. Out-of-range values
// clamp without consuming entropy.
func (t *Typist) chancePercent(p int) bool {
	if p <= 0 {
		return false
	}
	if p >= 100 {
		return true
	}
	return t.rng.Intn(100) < p
}
