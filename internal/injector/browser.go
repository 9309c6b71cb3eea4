// File: internal/injector/browser.go
package injector

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/input"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	"github.com/xkilldash9x/ghosttype-cli/internal/typist"
)

// cdpKeyNames maps injector key names onto DOM UI Events key values, which
// is what DispatchKeyEvent expects.
var cdpKeyNames = map[typist.Key]string{
	typist.KeyBackspace: "Backspace",
	typist.KeyEnter:     "Enter",
}

// BrowserOptions controls how the browser backend launches and where it
// sends keystrokes.
type BrowserOptions struct {
	// TargetURL is opened before typing starts. Empty leaves the fresh tab
	// on about:blank.
	TargetURL string
	// Headless hides the browser window. Interactive runs want it visible
	// so the input field can be focused by hand.
	Headless bool
}

// Browser types into a Chrome tab that it launches and owns. Close must be
// called to tear the browser down again.
type Browser struct {
	logger      *zap.Logger
	ctx         context.Context
	cancel      context.CancelFunc
	allocCancel context.CancelFunc
}

var _ typist.Injector = (*Browser)(nil)

// NewBrowser starts a Chrome instance tied to ctx and, when opts.TargetURL
// is set, opens the page and waits for its body to be ready.
func NewBrowser(ctx context.Context, opts BrowserOptions, logger *zap.Logger) (*Browser, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		// Needed on hardened systems where the sandbox cannot start.
		chromedp.NoSandbox,
		// Recommended for stability in containers/headless envs.
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if !opts.Headless {
		// The default option set forces headless; undo it so the window
		// shows up on screen.
		allocOpts = append(allocOpts,
			chromedp.Flag("headless", false),
			chromedp.Flag("hide-scrollbars", false),
			chromedp.Flag("mute-audio", false),
		)
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, allocOpts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx, chromedp.WithLogf(logger.Sugar().Debugf))

	b := &Browser{
		logger:      logger,
		ctx:         browserCtx,
		cancel:      browserCancel,
		allocCancel: allocCancel,
	}

	actions := []chromedp.Action{}
	if opts.TargetURL != "" {
		logger.Info("opening target page", zap.String("url", opts.TargetURL))
		actions = append(actions, chromedp.Navigate(opts.TargetURL), chromedp.WaitReady("body"))
	}
	// Running even an empty action list launches the browser, surfacing
	// startup failures here instead of on the first keystroke.
	if err := chromedp.Run(browserCtx, actions...); err != nil {
		b.Close()
		return nil, fmt.Errorf("injector: browser launch failed: %w", err)
	}
	return b, nil
}

func (b *Browser) SendText(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := chromedp.Run(b.ctx, chromedp.KeyEvent(text)); err != nil {
		return fmt.Errorf("injector: send keys failed: %w", err)
	}
	return nil
}

func (b *Browser) PressKey(ctx context.Context, key typist.Key) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	name, ok := cdpKeyNames[key]
	if !ok {
		return fmt.Errorf("injector: no DOM key name for %q", key)
	}
	err := chromedp.Run(b.ctx,
		input.DispatchKeyEvent(input.KeyDown).WithKey(name),
		input.DispatchKeyEvent(input.KeyUp).WithKey(name),
	)
	if err != nil {
		return fmt.Errorf("injector: press %q failed: %w", key, err)
	}
	return nil
}

// Sleep waits through the browser context so a dying browser interrupts
// pacing delays immediately.
func (b *Browser) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return chromedp.Run(b.ctx, chromedp.Sleep(d))
}

// Close shuts the tab and the browser process down.
func (b *Browser) Close() error {
	b.cancel()
	b.allocCancel()
	return nil
}
