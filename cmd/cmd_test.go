// File: cmd/cmd_test.go
package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xkilldash9x/ghosttype-cli/internal/config"
	"github.com/xkilldash9x/ghosttype-cli/internal/injector"
	"github.com/xkilldash9x/ghosttype-cli/internal/observability"
)

// resetForTest silences the global logger so command runs stay quiet. The
// once guard then swallows the InitializeLogger call inside RunE.
func resetForTest(t *testing.T) {
	t.Helper()
	observability.ResetForTest()
	observability.InitializeLogger(config.LoggerConfig{Level: "fatal", Format: "console", ServiceName: "test"})
}

// writeTestConfig writes a valid config into dir and returns its path. The
// defaults are adjusted so test runs never write logs outside dir and never
// sleep through a countdown.
func writeTestConfig(t *testing.T, dir string, mutate func(*config.Config)) string {
	t.Helper()
	cfg := config.NewDefaultConfig()
	cfg.Logger.Level = "fatal"
	cfg.Logger.LogFile = filepath.Join(dir, "ghosttype.log")
	cfg.Injector.CountdownSeconds = 0
	if mutate != nil {
		mutate(cfg)
	}
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, config.Write(path, cfg))
	return path
}

func writeTempText(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "text.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// executeCommand runs a fresh root command with the given stdin and args,
// returning captured stdout and stderr. A new instance per call keeps flag
// state from leaking between tests.
func executeCommand(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	resetForTest(t)

	root := NewRootCommand()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

// replayActions applies a recorded action stream the way a receiving window
// would, yielding the text that ends up on screen.
func replayActions(t *testing.T, actions []injector.Action) string {
	t.Helper()
	var screen []rune
	for _, a := range actions {
		switch a.Kind {
		case injector.ActionText:
			screen = append(screen, []rune(a.Text)...)
		case injector.ActionKey:
			switch a.Key {
			case "enter":
				screen = append(screen, '\n')
			case "backspace":
				require.NotEmpty(t, screen, "backspace with nothing typed")
				screen = screen[:len(screen)-1]
			}
		}
	}
	return string(screen)
}
