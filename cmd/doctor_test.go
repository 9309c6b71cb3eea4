// File: cmd/doctor_test.go
package cmd

import (
	"bytes"
	"encoding/json"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xkilldash9x/ghosttype-cli/internal/config"
)

// fakeDoctorDeps is a doctorDeps with a silent host: no display variables
// and no browser on PATH unless a test says otherwise.
func fakeDoctorDeps(out *bytes.Buffer) doctorDeps {
	return doctorDeps{
		stdout: out,
		goos:   "linux",
		getenv: func(string) string { return "" },
		lookPath: func(string) (string, error) {
			return "", exec.ErrNotFound
		},
	}
}

func TestRunDoctor_ReportsHostProbes(t *testing.T) {
	tmp := t.TempDir()
	textPath := writeTempText(t, tmp, "abc")
	cfgPath := writeTestConfig(t, tmp, func(c *config.Config) {
		c.Text.File = textPath
	})

	var out bytes.Buffer
	deps := fakeDoctorDeps(&out)
	deps.getenv = func(key string) string {
		if key == "DISPLAY" {
			return ":0"
		}
		return ""
	}
	deps.lookPath = func(name string) (string, error) {
		if name == "chromium" {
			return "/usr/bin/chromium", nil
		}
		return "", exec.ErrNotFound
	}

	err := runDoctor(&rootOptions{cfgFile: cfgPath}, deps)
	require.NoError(t, err)

	report := out.String()
	assert.Contains(t, report, "loaded "+cfgPath)
	assert.Contains(t, report, textPath)
	assert.Contains(t, report, "desktop session detected")
	assert.Contains(t, report, "/usr/bin/chromium")
}

func TestRunDoctor_WarnsOnBareHost(t *testing.T) {
	cfgPath := writeTestConfig(t, t.TempDir(), nil)

	var out bytes.Buffer
	err := runDoctor(&rootOptions{cfgFile: cfgPath}, fakeDoctorDeps(&out))
	require.NoError(t, err, "warnings alone must not fail the doctor")

	report := out.String()
	assert.Contains(t, report, "runs will prompt on stdin")
	assert.Contains(t, report, "neither DISPLAY nor WAYLAND_DISPLAY is set")
	assert.Contains(t, report, "no Chrome or Chromium binary on PATH")
}

func TestRunDoctor_SkipsDisplayProbeOffLinux(t *testing.T) {
	cfgPath := writeTestConfig(t, t.TempDir(), nil)

	var out bytes.Buffer
	deps := fakeDoctorDeps(&out)
	deps.goos = "darwin"

	err := runDoctor(&rootOptions{cfgFile: cfgPath}, deps)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "not applicable on darwin")
}

func TestRunDoctor_ReportsHealedConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	var out bytes.Buffer
	err := runDoctor(&rootOptions{cfgFile: path}, fakeDoctorDeps(&out))
	require.NoError(t, err)

	assert.Contains(t, out.String(), "warn")
	assert.Contains(t, out.String(), "wrote defaults")
	require.FileExists(t, path)
}

func TestDoctorCmd_JSONOutput(t *testing.T) {
	cfgPath := writeTestConfig(t, t.TempDir(), nil)

	out, _, err := executeCommand(t, "", "doctor", "--json", "-c", cfgPath)
	require.NoError(t, err)

	var checks []checkResult
	require.NoError(t, json.Unmarshal([]byte(out), &checks))
	require.Len(t, checks, 4)

	assert.Equal(t, "config", checks[0].Name)
	assert.Equal(t, statusOK, checks[0].Status)
	for _, c := range checks {
		assert.Contains(t, []string{statusOK, statusWarn, statusFail}, c.Status, "check %s", c.Name)
	}
}
