// Package config handles configuration loading and defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix prefixes every environment override, e.g. TADA_STORAGE.
const EnvPrefix = "TADA"

// Default values.
const (
	DefaultStorage   = "file"
	DefaultKey       = "todos"
	DefaultTheme     = "classic"
	DefaultColor     = "auto"
	DefaultLogLevel  = "warn"
	DefaultLogFormat = "text"

	ProjectFileName = "tada.toml"
	userDirName     = ".tada"
	userFileName    = "config.toml"
)

// Config holds the full configuration for tada.
type Config struct {
	// Storage selects the key-value backend: file, sqlite or memory.
	Storage string `toml:"storage" envconfig:"STORAGE" validate:"oneof=file sqlite memory"`
	// DataDir is where backends keep their files. Empty means the working
	// directory.
	DataDir string `toml:"data_dir" envconfig:"DATA_DIR"`
	// Key is the backend key the list is stored under.
	Key string `toml:"key" envconfig:"KEY" validate:"required,excludesall=/\\"`

	Theme string `toml:"theme" envconfig:"THEME" validate:"oneof=classic neon mono"`
	Color string `toml:"color" envconfig:"COLOR" validate:"oneof=auto always never"`

	LogLevel  string `toml:"log_level" envconfig:"LOG_LEVEL" validate:"oneof=debug info warn error"`
	LogFormat string `toml:"log_format" envconfig:"LOG_FORMAT" validate:"oneof=text json logfmt"`
	LogFile   string `toml:"log_file" envconfig:"LOG_FILE"`
}

// Default returns a Config with every field at its default.
func Default() *Config {
	return &Config{
		Storage:   DefaultStorage,
		Key:       DefaultKey,
		Theme:     DefaultTheme,
		Color:     DefaultColor,
		LogLevel:  DefaultLogLevel,
		LogFormat: DefaultLogFormat,
	}
}

// Load reads configuration from multiple sources in priority order:
// 1. Defaults
// 2. User config file (~/.tada/config.toml)
// 3. Project config file (./tada.toml), or path when it is not empty
// 4. Environment variables (TADA_*)
//
// Flags are applied by the caller, which then calls Validate.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := loadFile(cfg, path); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
	} else {
		for _, p := range []string{userConfigFile(), ProjectFileName} {
			if p == "" || !exists(p) {
				continue
			}
			if err := loadFile(cfg, p); err != nil {
				return nil, fmt.Errorf("loading config file %s: %w", p, err)
			}
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}
	return cfg, nil
}

// SQLitePath is the database file used by the sqlite backend.
func (c *Config) SQLitePath() string {
	return filepath.Join(c.DataDir, c.Key+".db")
}

var validate = validator.New()

// Validate checks every field against its allowed values.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		msgs = append(msgs, formatFieldError(e))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

func formatFieldError(e validator.FieldError) string {
	field := strings.ToLower(e.Field())
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s (got %q)", field, e.Param(), e.Value())
	case "excludesall":
		return fmt.Sprintf("%s must not contain path separators", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

func loadFile(cfg *Config, path string) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	return nil
}

func userConfigFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, userDirName, userFileName)
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
