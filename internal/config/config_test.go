// File: internal/config/config_test.go
package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -- Constructor and Defaults Tests --

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	assert.Equal(t, 20, cfg.Typing.BaseDelayMinMs)
	assert.Equal(t, 100, cfg.Typing.BaseDelayMaxMs)
	assert.Equal(t, 500, cfg.Typing.ThinkingDelayMinMs)
	assert.Equal(t, 1500, cfg.Typing.ThinkingDelayMaxMs)
	assert.Equal(t, 10, cfg.Typing.MistakeOneIn)
	assert.Equal(t, 300, cfg.Typing.CorrectionDelayMinMs)
	assert.Equal(t, 700, cfg.Typing.CorrectionDelayMaxMs)
	assert.Equal(t, 5, cfg.Typing.LongPausePercent)
	assert.Equal(t, 1000, cfg.Typing.LongPauseDelayMinMs)
	assert.Equal(t, 3000, cfg.Typing.LongPauseDelayMaxMs)

	assert.Empty(t, cfg.Text.File)
	assert.Equal(t, BackendSystem, cfg.Injector.Backend)
	assert.Equal(t, 5, cfg.Injector.CountdownSeconds)
	assert.False(t, cfg.Injector.Headless)

	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, "console", cfg.Logger.Format)
	assert.Equal(t, "ghosttype", cfg.Logger.ServiceName)
	assert.Equal(t, "ghosttype.log", cfg.Logger.LogFile)

	require.NoError(t, cfg.Validate(), "defaults must always validate")
}

// -- Validation Logic Tests --

func TestConfigValidation(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{
			name:   "defaults are valid",
			mutate: func(c *Config) {},
		},
		{
			name:   "collapsed range is valid",
			mutate: func(c *Config) { c.Typing.BaseDelayMaxMs = c.Typing.BaseDelayMinMs },
		},
		{
			name:    "inverted base range",
			mutate:  func(c *Config) { c.Typing.BaseDelayMaxMs = c.Typing.BaseDelayMinMs - 1 },
			wantErr: "typing.base_delay_max_ms",
		},
		{
			name:    "negative thinking minimum",
			mutate:  func(c *Config) { c.Typing.ThinkingDelayMinMs = -1 },
			wantErr: "typing.thinking_delay_min_ms",
		},
		{
			name: "inverted long pause range",
			mutate: func(c *Config) {
				c.Typing.LongPauseDelayMinMs = 4000
				c.Typing.LongPauseDelayMaxMs = 3000
			},
			wantErr: "typing.long_pause_delay_max_ms",
		},
		{
			name:    "zero mistake odds",
			mutate:  func(c *Config) { c.Typing.MistakeOneIn = 0 },
			wantErr: "typing.mistake_one_in must be at least 1",
		},
		{
			name:    "percent above bounds",
			mutate:  func(c *Config) { c.Typing.LongPausePercent = 101 },
			wantErr: "typing.long_pause_percent",
		},
		{
			name:    "percent below bounds",
			mutate:  func(c *Config) { c.Typing.LongPausePercent = -1 },
			wantErr: "typing.long_pause_percent",
		},
		{
			name:    "unknown backend",
			mutate:  func(c *Config) { c.Injector.Backend = "typewriter" },
			wantErr: "injector.backend",
		},
		{
			name:    "negative countdown",
			mutate:  func(c *Config) { c.Injector.CountdownSeconds = -3 },
			wantErr: "injector.countdown_seconds",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := NewDefaultConfig()
			tc.mutate(cfg)

			err := cfg.Validate()
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

// -- Engine Bridge Tests --

func TestEngineConfig(t *testing.T) {
	cfg := NewDefaultConfig()
	engine := cfg.EngineConfig()

	assert.Equal(t, 20*time.Millisecond, engine.BaseDelay.Min)
	assert.Equal(t, 100*time.Millisecond, engine.BaseDelay.Max)
	assert.Equal(t, 500*time.Millisecond, engine.ThinkingDelay.Min)
	assert.Equal(t, 1500*time.Millisecond, engine.ThinkingDelay.Max)
	assert.Equal(t, 300*time.Millisecond, engine.CorrectionDelay.Min)
	assert.Equal(t, 700*time.Millisecond, engine.CorrectionDelay.Max)
	assert.Equal(t, 1*time.Second, engine.LongPauseDelay.Min)
	assert.Equal(t, 3*time.Second, engine.LongPauseDelay.Max)
	assert.Equal(t, 10, engine.MistakeOneIn)
	assert.Equal(t, 5, engine.LongPausePercent)
	assert.Nil(t, engine.Rng)
}
