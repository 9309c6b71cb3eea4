// File: internal/injector/system.go
package injector

import (
	"context"
	"fmt"
	"time"

	"github.com/go-vgo/robotgo"
	"go.uber.org/zap"

	"github.com/xkilldash9x/ghosttype-cli/internal/typist"
)

// System delivers keystrokes to whatever window currently holds focus,
// using OS-level synthetic input events.
type System struct {
	logger *zap.Logger
}

var _ typist.Injector = (*System)(nil)

func NewSystem(logger *zap.Logger) *System {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &System{logger: logger}
}

func (s *System) SendText(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	robotgo.TypeStr(text)
	return nil
}

// PressKey taps a named key. Key values double as robotgo tap names, so no
// translation table is needed here.
func (s *System) PressKey(ctx context.Context, key typist.Key) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := robotgo.KeyTap(string(key)); err != nil {
		return fmt.Errorf("injector: key tap %q failed: %w", key, err)
	}
	return nil
}

func (s *System) Sleep(ctx context.Context, d time.Duration) error {
	return sleepFor(ctx, d)
}
