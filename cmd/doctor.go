// File: cmd/doctor.go
package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"

	json "github.com/json-iterator/go"
	"github.com/spf13/cobra"

	"github.com/xkilldash9x/ghosttype-cli/internal/config"
)

const (
	statusOK   = "ok"
	statusWarn = "warn"
	statusFail = "fail"
)

// checkResult is one line of doctor output.
type checkResult struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	Detail string `json:"detail"`
}

// doctorDeps carries the environment probes so tests can fake the host.
type doctorDeps struct {
	stdout   io.Writer
	asJSON   bool
	goos     string
	getenv   func(string) string
	lookPath func(string) (string, error)
}

func newDoctorCmd(o *rootOptions) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check that this machine can run a typing session.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDoctor(o, doctorDeps{
				stdout:   cmd.OutOrStdout(),
				asJSON:   asJSON,
				goos:     runtime.GOOS,
				getenv:   os.Getenv,
				lookPath: exec.LookPath,
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit the results as JSON")
	return cmd
}

// runDoctor probes the config, the text source, the desktop session, and
// the browser binary, then reports one result per probe. It returns an
// error only when a probe failed outright, so scripts get a non-zero exit.
func runDoctor(o *rootOptions, deps doctorDeps) error {
	checks := []checkResult{}

	path, err := config.ResolvePath(o.cfgFile)
	if err != nil {
		return err
	}
	loaded, loadErr := config.Load(path)
	switch {
	case loadErr != nil:
		checks = append(checks, checkResult{Name: "config", Status: statusFail, Detail: loadErr.Error()})
	case loaded.Healed:
		checks = append(checks, checkResult{Name: "config", Status: statusWarn, Detail: loaded.Warning})
	default:
		checks = append(checks, checkResult{Name: "config", Status: statusOK, Detail: "loaded " + loaded.Path})
	}

	if loadErr == nil {
		switch textPath := loaded.Config.Text.File; {
		case textPath == "":
			checks = append(checks, checkResult{Name: "text source", Status: statusWarn, Detail: "no text.file configured, runs will prompt on stdin"})
		default:
			if _, statErr := os.Stat(textPath); statErr != nil {
				checks = append(checks, checkResult{Name: "text source", Status: statusWarn, Detail: fmt.Sprintf("%s is missing, the next run will seed it with placeholder text", textPath)})
			} else {
				checks = append(checks, checkResult{Name: "text source", Status: statusOK, Detail: textPath})
			}
		}
	}

	switch deps.goos {
	case "linux":
		if deps.getenv("DISPLAY") == "" && deps.getenv("WAYLAND_DISPLAY") == "" {
			checks = append(checks, checkResult{Name: "display", Status: statusWarn, Detail: "neither DISPLAY nor WAYLAND_DISPLAY is set, the system backend cannot reach a desktop"})
		} else {
			checks = append(checks, checkResult{Name: "display", Status: statusOK, Detail: "desktop session detected"})
		}
	default:
		checks = append(checks, checkResult{Name: "display", Status: statusOK, Detail: "not applicable on " + deps.goos})
	}

	browserCheck := checkResult{Name: "browser", Status: statusWarn, Detail: "no Chrome or Chromium binary on PATH, the browser backend will not start"}
	for _, name := range []string{"google-chrome", "chromium", "chromium-browser", "chrome"} {
		if found, lookErr := deps.lookPath(name); lookErr == nil {
			browserCheck = checkResult{Name: "browser", Status: statusOK, Detail: found}
			break
		}
	}
	checks = append(checks, browserCheck)

	if deps.asJSON {
		out, err := json.MarshalIndent(checks, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to serialize doctor report: %w", err)
		}
		fmt.Fprintln(deps.stdout, string(out))
	} else {
		for _, c := range checks {
			fmt.Fprintf(deps.stdout, "%-12s %-5s %s\n", c.Name, c.Status, c.Detail)
		}
	}

	for _, c := range checks {
		if c.Status == statusFail {
			return errors.New("one or more checks failed")
		}
	}
	return nil
}
