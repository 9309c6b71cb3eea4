// File: cmd/root.go
package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	json "github.com/json-iterator/go"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xkilldash9x/ghosttype-cli/internal/config"
	"github.com/xkilldash9x/ghosttype-cli/internal/injector"
	"github.com/xkilldash9x/ghosttype-cli/internal/keyboard"
	"github.com/xkilldash9x/ghosttype-cli/internal/observability"
	"github.com/xkilldash9x/ghosttype-cli/internal/typist"
)

// rootOptions collects the root command's flag values.
type rootOptions struct {
	cfgFile  string
	textFile string
	delay    int
	dryRun   bool
	backend  string
	target   string
	headless bool
	seed     int64

	// Flag-change detection, filled in at the start of RunE.
	delaySet    bool
	seedSet     bool
	backendSet  bool
	targetSet   bool
	headlessSet bool
}

// NewRootCommand builds a fresh root command instance. Each execution gets
// its own instance so flag state never leaks between runs.
func NewRootCommand() *cobra.Command {
	o := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "ghosttype",
		Short: "Types text into the focused window the way a human would.",
		Long: `ghosttype replays text as individual keystrokes with natural pacing:
variable inter-key delays, thinking pauses before words and after line
breaks, the occasional mistyped neighbor key corrected with a backspace,
and longer stops after sentence punctuation.

With no flags it loads the configured text source (prompting on stdin
when none is set), counts down so the receiving window can be focused,
and starts typing.`,
		Version:       Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			o.delaySet = cmd.Flags().Changed("delay")
			o.seedSet = cmd.Flags().Changed("seed")
			o.backendSet = cmd.Flags().Changed("backend")
			o.targetSet = cmd.Flags().Changed("target")
			o.headlessSet = cmd.Flags().Changed("headless")

			loaded, logger, err := bootstrap(o.cfgFile, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer observability.Sync()

			deps := runDeps{
				stdin:         cmd.InOrStdin(),
				stdout:        cmd.OutOrStdout(),
				stderr:        cmd.ErrOrStderr(),
				buildInjector: buildInjector,
				wait:          waitFor,
			}
			return runTyping(cmd.Context(), o, loaded.Config, logger, deps)
		},
	}

	cmd.PersistentFlags().StringVarP(&o.cfgFile, "config", "c", "", "config file (default is ~/.ghosttype/config.yaml)")

	cmd.Flags().StringVar(&o.textFile, "text-file", "", "read the text to type from this file (overrides config)")
	cmd.Flags().IntVar(&o.delay, "delay", 0, "seconds to wait before typing starts (overrides config)")
	cmd.Flags().BoolVar(&o.dryRun, "dry-run", false, "inject nothing; print the recorded action trace as JSON")
	cmd.Flags().StringVar(&o.backend, "backend", "", `delivery backend: "system" or "browser" (overrides config)`)
	cmd.Flags().StringVar(&o.target, "target", "", "URL to open and type into (implies --backend browser)")
	cmd.Flags().BoolVar(&o.headless, "headless", false, "run the browser backend without a window (overrides config)")
	cmd.Flags().Int64Var(&o.seed, "seed", 0, "seed the cadence randomness for reproducible runs")

	cmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	cmd.AddCommand(newDoctorCmd(o))
	cmd.AddCommand(newConfigCmd(o))

	return cmd
}

// Execute runs the root command with the given signal-aware context.
func Execute(ctx context.Context) error {
	rootCmd := NewRootCommand()
	err := rootCmd.ExecuteContext(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		observability.GetLogger().Error("Command execution failed", zap.Error(err))
		fmt.Fprintln(rootCmd.ErrOrStderr(), "Error:", err)
	}
	return err
}

// bootstrap resolves the configuration, heals it if needed, and brings the
// global logger up. Heal warnings go to stderr so the user sees them even
// when logging is quiet.
func bootstrap(flagPath string, stderr io.Writer) (config.Loaded, *zap.Logger, error) {
	path, err := config.ResolvePath(flagPath)
	if err != nil {
		return config.Loaded{}, nil, err
	}
	loaded, err := config.Load(path)
	if err != nil {
		return config.Loaded{}, nil, err
	}

	observability.InitializeLogger(loaded.Config.Logger)
	logger := observability.GetLogger()
	if loaded.Healed {
		fmt.Fprintf(stderr, "Warning: %s\n", loaded.Warning)
		logger.Warn("Config healed", zap.String("path", loaded.Path), zap.String("detail", loaded.Warning))
	}
	logger.Info("Starting ghosttype", zap.String("version", Version), zap.String("config", loaded.Path))
	return loaded, logger, nil
}

// runDeps carries the seams runTyping needs, letting tests substitute
// stdio, the injector, and the countdown clock.
type runDeps struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	// buildInjector constructs the delivery backend; the teardown func is
	// called once typing ends.
	buildInjector func(ctx context.Context, cfg config.InjectorConfig, logger *zap.Logger) (typist.Injector, func(), error)
	// wait paces the countdown.
	wait func(ctx context.Context, d time.Duration) error
}

// runTyping is the testable core of the root command: resolve the text and
// countdown, build the injector, and drive one typing session.
func runTyping(ctx context.Context, o *rootOptions, cfg *config.Config, logger *zap.Logger, deps runDeps) error {
	// Flag overrides onto the effective config.
	if o.backendSet {
		switch o.backend {
		case config.BackendSystem, config.BackendBrowser:
			cfg.Injector.Backend = o.backend
		default:
			return fmt.Errorf("--backend must be %q or %q, got %q", config.BackendSystem, config.BackendBrowser, o.backend)
		}
	}
	if o.targetSet {
		cfg.Injector.TargetURL = o.target
		// A target URL only makes sense in a browser, so it selects the
		// backend unless one was named explicitly.
		if !o.backendSet {
			cfg.Injector.Backend = config.BackendBrowser
		}
	}
	if o.headlessSet {
		cfg.Injector.Headless = o.headless
	}

	engineCfg := cfg.EngineConfig()
	if o.seedSet {
		engineCfg.Rng = rand.New(rand.NewSource(o.seed))
		logger.Debug("Using fixed seed", zap.Int64("seed", o.seed))
	}

	in := bufio.NewReader(deps.stdin)

	text, prompted, err := resolveText(o, cfg, in, deps)
	if err != nil {
		return err
	}

	delay := resolveDelay(o, cfg, prompted, in, deps)
	if !o.dryRun && delay > 0 {
		if err := countdown(ctx, delay, deps); err != nil {
			return err
		}
	}

	var (
		inj      typist.Injector
		teardown func()
		rec      *injector.Recorder
	)
	if o.dryRun {
		rec = injector.NewRecorder()
		inj = rec
	} else {
		inj, teardown, err = deps.buildInjector(ctx, cfg.Injector, logger)
		if err != nil {
			return err
		}
	}
	if teardown != nil {
		defer teardown()
	}

	sessionID := uuid.New().String()
	logger.Info("Typing session starting",
		zap.String("session_id", sessionID),
		zap.String("backend", backendName(o.dryRun, cfg.Injector.Backend)),
		zap.Int("input_characters", len([]rune(text))),
	)

	ty := typist.New(engineCfg, keyboard.NewQwerty(), inj, logger.Named("typist"))
	stats, err := ty.Type(ctx, text)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Warn("Typing aborted", zap.String("session_id", sessionID))
			return err
		}
		logger.Error("Typing failed", zap.Error(err), zap.String("session_id", sessionID))
		return err
	}

	logger.Info("Typing session complete",
		zap.String("session_id", sessionID),
		zap.Int("characters", stats.Characters),
		zap.Int("mistakes", stats.Mistakes),
		zap.Duration("elapsed", stats.Elapsed),
	)

	if o.dryRun {
		if err := printTrace(deps.stdout, rec.Actions()); err != nil {
			return err
		}
	}

	fmt.Fprintf(deps.stdout, "\nDone. Typed %d characters (%d corrected) in %s.\n",
		stats.Characters, stats.Mistakes, stats.Elapsed.Round(time.Millisecond))
	return nil
}

// resolveText finds the text to type: the --text-file flag wins, then the
// configured source, then an interactive prompt. The bool reports whether
// the user was prompted.
func resolveText(o *rootOptions, cfg *config.Config, in *bufio.Reader, deps runDeps) (string, bool, error) {
	path := o.textFile
	if path == "" {
		path = cfg.Text.File
	}
	if path != "" {
		res, err := config.LoadText(path)
		if err != nil {
			return "", false, err
		}
		if res.Created {
			fmt.Fprintf(deps.stderr, "Warning: %s\n", res.Warning)
		}
		return res.Text, false, nil
	}

	fmt.Fprint(deps.stdout, "Enter the text you want to type: ")
	line, err := readLine(in)
	if err != nil {
		return "", true, fmt.Errorf("reading text from stdin: %w", err)
	}
	return line, true, nil
}

// resolveDelay picks the countdown length: the --delay flag wins, then an
// interactive prompt (only when the text was prompted too), then the
// configured default. Unparseable prompt input falls back to the default.
func resolveDelay(o *rootOptions, cfg *config.Config, prompted bool, in *bufio.Reader, deps runDeps) int {
	if o.delaySet {
		if o.delay < 0 {
			return 0
		}
		return o.delay
	}
	if prompted {
		fmt.Fprint(deps.stdout, "Enter the number of seconds to wait before starting: ")
		line, err := readLine(in)
		if err == nil {
			if n, perr := strconv.Atoi(strings.TrimSpace(line)); perr == nil && n >= 0 {
				return n
			}
		}
	}
	return cfg.Injector.CountdownSeconds
}

// countdown gives the user time to focus the receiving window.
func countdown(ctx context.Context, seconds int, deps runDeps) error {
	fmt.Fprintln(deps.stdout, "\nStarting in...")
	for i := seconds; i > 0; i-- {
		fmt.Fprintf(deps.stdout, "%d...\n", i)
		if err := deps.wait(ctx, time.Second); err != nil {
			return err
		}
	}
	fmt.Fprintln(deps.stdout, "Go!")
	return nil
}

// readLine reads one line, tolerating a final line with no newline.
func readLine(in *bufio.Reader) (string, error) {
	line, err := in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// buildInjector constructs the configured delivery backend.
func buildInjector(ctx context.Context, cfg config.InjectorConfig, logger *zap.Logger) (typist.Injector, func(), error) {
	switch cfg.Backend {
	case config.BackendBrowser:
		b, err := injector.NewBrowser(ctx, injector.BrowserOptions{
			TargetURL: cfg.TargetURL,
			Headless:  cfg.Headless,
		}, logger.Named("browser"))
		if err != nil {
			return nil, nil, err
		}
		return b, func() { _ = b.Close() }, nil
	case config.BackendSystem:
		return injector.NewSystem(logger.Named("system")), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown injector backend %q", cfg.Backend)
	}
}

func backendName(dryRun bool, backend string) string {
	if dryRun {
		return "recorder"
	}
	return backend
}

// waitFor sleeps for d unless ctx ends first.
func waitFor(ctx context.Context, d time.Duration) error {
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// printTrace pretty-prints the recorded action stream.
func printTrace(w io.Writer, actions []injector.Action) error {
	traceJSON, err := json.MarshalIndent(actions, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize action trace: %w", err)
	}
	_, err = fmt.Fprintln(w, string(traceJSON))
	return err
}
