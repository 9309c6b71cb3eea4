// File: internal/config/config.go

// Package config loads, validates, and persists the ghosttype
// configuration file, regenerating defaults when the file on disk is
// missing or unusable.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/xkilldash9x/ghosttype-cli/internal/typist"
)

// Config is the full persisted configuration tree.
type Config struct {
	Typing   TypingConfig   `mapstructure:"typing" yaml:"typing"`
	Text     TextConfig     `mapstructure:"text" yaml:"text"`
	Injector InjectorConfig `mapstructure:"injector" yaml:"injector"`
	Logger   LoggerConfig   `mapstructure:"logger" yaml:"logger"`
}

// TypingConfig is the persisted form of the cadence parameters. All
// durations are integer milliseconds so the file stays hand-editable.
type TypingConfig struct {
	BaseDelayMinMs       int `mapstructure:"base_delay_min_ms" yaml:"base_delay_min_ms"`
	BaseDelayMaxMs       int `mapstructure:"base_delay_max_ms" yaml:"base_delay_max_ms"`
	ThinkingDelayMinMs   int `mapstructure:"thinking_delay_min_ms" yaml:"thinking_delay_min_ms"`
	ThinkingDelayMaxMs   int `mapstructure:"thinking_delay_max_ms" yaml:"thinking_delay_max_ms"`
	MistakeOneIn         int `mapstructure:"mistake_one_in" yaml:"mistake_one_in"`
	CorrectionDelayMinMs int `mapstructure:"correction_delay_min_ms" yaml:"correction_delay_min_ms"`
	CorrectionDelayMaxMs int `mapstructure:"correction_delay_max_ms" yaml:"correction_delay_max_ms"`
	LongPausePercent     int `mapstructure:"long_pause_percent" yaml:"long_pause_percent"`
	LongPauseDelayMinMs  int `mapstructure:"long_pause_delay_min_ms" yaml:"long_pause_delay_min_ms"`
	LongPauseDelayMaxMs  int `mapstructure:"long_pause_delay_max_ms" yaml:"long_pause_delay_max_ms"`
}

// TextConfig points at the text to type.
type TextConfig struct {
	// File is the path of the text source. Empty means prompt on stdin.
	File string `mapstructure:"file" yaml:"file"`
}

// InjectorConfig selects and parameterizes the delivery backend.
type InjectorConfig struct {
	// Backend is "system" or "browser".
	Backend string `mapstructure:"backend" yaml:"backend"`
	// TargetURL is opened by the browser backend before typing starts.
	TargetURL string `mapstructure:"target_url" yaml:"target_url"`
	// Headless hides the browser window.
	Headless bool `mapstructure:"headless" yaml:"headless"`
	// CountdownSeconds is the lead-in before the first keystroke, giving
	// the user time to focus the receiving window.
	CountdownSeconds int `mapstructure:"countdown_seconds" yaml:"countdown_seconds"`
}

// LoggerConfig mirrors the shape the observability package consumes.
type LoggerConfig struct {
	Level       string      `mapstructure:"level" yaml:"level"`
	Format      string      `mapstructure:"format" yaml:"format"`
	AddSource   bool        `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string      `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string      `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int         `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int         `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int         `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool        `mapstructure:"compress" yaml:"compress"`
	Colors      ColorConfig `mapstructure:"colors" yaml:"colors"`
}

// ColorConfig names the terminal color for each console log level.
type ColorConfig struct {
	Debug  string `mapstructure:"debug" yaml:"debug"`
	Info   string `mapstructure:"info" yaml:"info"`
	Warn   string `mapstructure:"warn" yaml:"warn"`
	Error  string `mapstructure:"error" yaml:"error"`
	DPanic string `mapstructure:"dpanic" yaml:"dpanic"`
	Panic  string `mapstructure:"panic" yaml:"panic"`
	Fatal  string `mapstructure:"fatal" yaml:"fatal"`
}

// Injector backend names accepted by InjectorConfig.Backend.
const (
	BackendSystem  = "system"
	BackendBrowser = "browser"
)

// NewDefaultConfig creates a configuration struct populated with the
// default values.
func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		// Cannot happen with the static defaults below.
		panic(fmt.Sprintf("failed to unmarshal default config: %v", err))
	}
	return &cfg
}

// SetDefaults initializes default values for all configuration parameters.
func SetDefaults(v *viper.Viper) {
	// -- Typing --
	v.SetDefault("typing.base_delay_min_ms", 20)
	v.SetDefault("typing.base_delay_max_ms", 100)
	v.SetDefault("typing.thinking_delay_min_ms", 500)
	v.SetDefault("typing.thinking_delay_max_ms", 1500)
	v.SetDefault("typing.mistake_one_in", 10)
	v.SetDefault("typing.correction_delay_min_ms", 300)
	v.SetDefault("typing.correction_delay_max_ms", 700)
	v.SetDefault("typing.long_pause_percent", 5)
	v.SetDefault("typing.long_pause_delay_min_ms", 1000)
	v.SetDefault("typing.long_pause_delay_max_ms", 3000)

	// -- Text --
	v.SetDefault("text.file", "")

	// -- Injector --
	v.SetDefault("injector.backend", BackendSystem)
	v.SetDefault("injector.target_url", "")
	v.SetDefault("injector.headless", false)
	v.SetDefault("injector.countdown_seconds", 5)

	// -- Logger --
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "ghosttype")
	v.SetDefault("logger.log_file", "ghosttype.log")
	v.SetDefault("logger.max_size", 10)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 30)
	v.SetDefault("logger.compress", true)
	v.SetDefault("logger.colors.debug", "cyan")
	v.SetDefault("logger.colors.info", "green")
	v.SetDefault("logger.colors.warn", "yellow")
	v.SetDefault("logger.colors.error", "red")
	v.SetDefault("logger.colors.dpanic", "magenta")
	v.SetDefault("logger.colors.panic", "magenta")
	v.SetDefault("logger.colors.fatal", "red")
}

// Validate checks the invariants the rest of the application relies on.
func (c *Config) Validate() error {
	t := c.Typing
	ranges := []struct {
		name     string
		min, max int
	}{
		{"base_delay", t.BaseDelayMinMs, t.BaseDelayMaxMs},
		{"thinking_delay", t.ThinkingDelayMinMs, t.ThinkingDelayMaxMs},
		{"correction_delay", t.CorrectionDelayMinMs, t.CorrectionDelayMaxMs},
		{"long_pause_delay", t.LongPauseDelayMinMs, t.LongPauseDelayMaxMs},
	}
	for _, r := range ranges {
		if r.min < 0 {
			return fmt.Errorf("typing.%s_min_ms must not be negative, got %d", r.name, r.min)
		}
		if r.max < r.min {
			return fmt.Errorf("typing.%s_max_ms (%d) is below typing.%s_min_ms (%d)", r.name, r.max, r.name, r.min)
		}
	}
	if t.MistakeOneIn < 1 {
		return fmt.Errorf("typing.mistake_one_in must be at least 1, got %d", t.MistakeOneIn)
	}
	if t.LongPausePercent < 0 || t.LongPausePercent > 100 {
		return fmt.Errorf("typing.long_pause_percent must be between 0 and 100, got %d", t.LongPausePercent)
	}

	switch c.Injector.Backend {
	case BackendSystem, BackendBrowser:
	default:
		return fmt.Errorf("injector.backend must be %q or %q, got %q", BackendSystem, BackendBrowser, c.Injector.Backend)
	}
	if c.Injector.CountdownSeconds < 0 {
		return fmt.Errorf("injector.countdown_seconds must not be negative, got %d", c.Injector.CountdownSeconds)
	}
	return nil
}

// EngineConfig converts the persisted millisecond fields into the
// duration-based engine configuration. The entropy source is left nil so
// the engine seeds itself unless the caller injects one.
func (c *Config) EngineConfig() typist.Config {
	t := c.Typing
	ms := func(n int) time.Duration { return time.Duration(n) * time.Millisecond }
	return typist.Config{
		BaseDelay:        typist.DelayRange{Min: ms(t.BaseDelayMinMs), Max: ms(t.BaseDelayMaxMs)},
		ThinkingDelay:    typist.DelayRange{Min: ms(t.ThinkingDelayMinMs), Max: ms(t.ThinkingDelayMaxMs)},
		CorrectionDelay:  typist.DelayRange{Min: ms(t.CorrectionDelayMinMs), Max: ms(t.CorrectionDelayMaxMs)},
		LongPauseDelay:   typist.DelayRange{Min: ms(t.LongPauseDelayMinMs), Max: ms(t.LongPauseDelayMaxMs)},
		MistakeOneIn:     t.MistakeOneIn,
		LongPausePercent: t.LongPausePercent,
	}
}
