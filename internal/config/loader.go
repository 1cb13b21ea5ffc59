package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// ConfigFileName is looked up in the data directory when SD_CONFIG is unset.
const ConfigFileName = "config.yaml"

// Loader handles loading configuration from multiple sources
type Loader struct {
	config *Config
}

// NewLoader creates a new configuration loader
func NewLoader() *Loader {
	return &Loader{
		config: NewConfig(),
	}
}

// Load loads configuration using the cascading strategy:
// 1. Start with defaults
// 2. Override with the YAML config file, if any
// 3. Override with environment variables
// 4. Override with command line flags (LoadWithOverrides)
func (l *Loader) Load() (*Config, error) {
	if err := l.loadFile(ConfigFilePath()); err != nil {
		return nil, err
	}

	if err := l.config.LoadFromEnvironment(); err != nil {
		return nil, err
	}

	if err := l.config.Validate(); err != nil {
		return nil, err
	}

	return l.config, nil
}

// loadFile merges a YAML config file into the loader's config. A missing
// file is not an error.
func (l *Loader) loadFile(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := v.Unmarshal(l.config); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// ConfigFilePath returns SD_CONFIG, or config.yaml inside the data
// directory (SD_DATA_DIR or the default).
func ConfigFilePath() string {
	if path := os.Getenv("SD_CONFIG"); path != "" {
		return path
	}
	dir := os.Getenv("SD_DATA_DIR")
	if dir == "" {
		dir = DefaultDataDir()
	}
	return filepath.Join(dir, ConfigFileName)
}

// LoadWithOverrides loads configuration and applies command line overrides
func (l *Loader) LoadWithOverrides(overrides *ConfigOverrides) (*Config, error) {
	config, err := l.Load()
	if err != nil {
		return nil, err
	}

	config.ApplyOverrides(overrides)

	// Re-validate after applying overrides
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// ConfigOverrides holds command line flag overrides
type ConfigOverrides struct {
	// Storage overrides
	Backend        *string
	DataDir        *string
	Filename       *string
	DirPermissions *uint32
	WriteTimeout   *time.Duration

	// Display overrides
	CompletionDelay        *time.Duration
	DoubleActivationWindow *time.Duration
	DefaultWhen            *string

	// Application overrides
	Timeout *time.Duration
	Verbose *bool

	// Commands overrides
	ListDefaultFormat   *string
	ExportDefaultFormat *string
}

// ApplyOverrides applies command line overrides to the configuration.
// A nil overrides value changes nothing.
func (c *Config) ApplyOverrides(overrides *ConfigOverrides) {
	if overrides == nil {
		return
	}

	// Storage overrides
	if overrides.Backend != nil {
		c.Storage.Backend = *overrides.Backend
	}
	if overrides.DataDir != nil {
		c.Storage.Dir = *overrides.DataDir
	}
	if overrides.Filename != nil {
		c.Storage.Filename = *overrides.Filename
	}
	if overrides.DirPermissions != nil {
		c.Storage.DirPermissions = *overrides.DirPermissions
	}
	if overrides.WriteTimeout != nil {
		c.Storage.WriteTimeout = *overrides.WriteTimeout
	}

	// Display overrides
	if overrides.CompletionDelay != nil {
		c.Display.CompletionDelay = *overrides.CompletionDelay
	}
	if overrides.DoubleActivationWindow != nil {
		c.Display.DoubleActivationWindow = *overrides.DoubleActivationWindow
	}
	if overrides.DefaultWhen != nil {
		c.Display.DefaultWhen = *overrides.DefaultWhen
	}

	// Application overrides
	if overrides.Timeout != nil {
		c.Application.Timeout = *overrides.Timeout
	}
	if overrides.Verbose != nil {
		c.Application.Verbose = *overrides.Verbose
	}

	// Commands overrides
	if overrides.ListDefaultFormat != nil {
		c.Commands.ListDefaultFormat = *overrides.ListDefaultFormat
	}
	if overrides.ExportDefaultFormat != nil {
		c.Commands.ExportDefaultFormat = *overrides.ExportDefaultFormat
	}
}
