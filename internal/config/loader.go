// File: internal/config/loader.go
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	envPrefix = "GHOSTTYPE"
	// EnvHome names the environment variable that relocates the
	// configuration directory.
	EnvHome = "GHOSTTYPE_HOME"

	defaultDirName  = ".ghosttype"
	defaultFileName = "config.yaml"
)

// ResolvePath returns the config file location: the explicit flag value if
// given, else the directory named by $GHOSTTYPE_HOME, else
// ~/.ghosttype/config.yaml.
func ResolvePath(flagPath string) (string, error) {
	if flagPath != "" {
		return flagPath, nil
	}
	if env := os.Getenv(EnvHome); env != "" {
		return filepath.Join(env, defaultFileName), nil
	}
	home, err := homedir.Dir()
	if err != nil {
		return "", fmt.Errorf("cannot locate home directory: %w", err)
	}
	return filepath.Join(home, defaultDirName, defaultFileName), nil
}

// Loaded is the result of a Load call: the effective configuration, where
// it lives, and any recovery the loader performed on the way.
type Loaded struct {
	Config *Config
	Path   string
	// Healed reports that the file was regenerated from defaults.
	Healed bool
	// Warning describes the recovery in user terms. Empty unless Healed.
	Warning string
}

// Load reads the configuration at path, healing anything unusable. A
// missing, unreadable, unparseable, or invalid file is replaced with the
// defaults, persisted back, and reported through Loaded.Warning. Only a
// failure to write the replacement surfaces as an error, so a broken
// config file never strands the user.
func Load(path string) (Loaded, error) {
	v := viper.New()
	SetDefaults(v)
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.Is(err, fs.ErrNotExist) || errors.As(err, &notFound) {
			return heal(path, fmt.Sprintf("no config file at %s, wrote defaults", path))
		}
		return heal(path, fmt.Sprintf("config file %s cannot be read or parsed (%v), rewrote defaults", path, err))
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return heal(path, fmt.Sprintf("config file %s does not match the expected shape (%v), rewrote defaults", path, err))
	}
	if err := cfg.Validate(); err != nil {
		return heal(path, fmt.Sprintf("config file %s is invalid (%v), rewrote defaults", path, err))
	}
	return Loaded{Config: &cfg, Path: path}, nil
}

func heal(path, warning string) (Loaded, error) {
	cfg := NewDefaultConfig()
	if err := Write(path, cfg); err != nil {
		return Loaded{}, fmt.Errorf("healing config at %s failed: %w", path, err)
	}
	return Loaded{Config: cfg, Path: path, Healed: true, Warning: warning}, nil
}

// Write serializes cfg to path, creating parent directories as needed.
// Marshaling goes through yaml.v3 in struct field order, so writing the
// same configuration twice produces identical bytes.
func Write(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating config directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file %s: %w", path, err)
	}
	return nil
}
