package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"someday/internal/domain"
)

// Default storage filenames per backend
const (
	DefaultSQLiteFilename = "someday.db"
	DefaultFileFilename   = "someday.json"
)

// Storage backends
const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
	BackendMemory = "memory"
)

// Config holds all configuration options for the application
type Config struct {
	Storage     StorageConfig     `mapstructure:"storage"`
	Display     DisplayConfig     `mapstructure:"display"`
	Application ApplicationConfig `mapstructure:"application"`
	Commands    CommandsConfig    `mapstructure:"commands"`
}

// StorageConfig holds durable storage configuration
type StorageConfig struct {
	Backend        string        `mapstructure:"backend" env:"SD_STORAGE_BACKEND"`
	Dir            string        `mapstructure:"dir" env:"SD_DATA_DIR"`
	Filename       string        `mapstructure:"filename" env:"SD_STORAGE_FILENAME"`
	DirPermissions uint32        `mapstructure:"dir_permissions" env:"SD_DATA_DIR_PERMISSIONS"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout" env:"SD_STORAGE_WRITE_TIMEOUT"`
}

// DisplayConfig holds terminal UI timing and defaults
type DisplayConfig struct {
	CompletionDelay        time.Duration `mapstructure:"completion_delay" env:"SD_DISPLAY_COMPLETION_DELAY"`
	DoubleActivationWindow time.Duration `mapstructure:"double_activation_window" env:"SD_DISPLAY_DOUBLE_ACTIVATION_WINDOW"`
	DefaultWhen            string        `mapstructure:"default_when" env:"SD_DISPLAY_DEFAULT_WHEN"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Timeout time.Duration `mapstructure:"timeout" env:"SD_APP_TIMEOUT"`
	Verbose bool          `mapstructure:"verbose" env:"SD_APP_VERBOSE"`
}

// CommandsConfig holds command-specific defaults
type CommandsConfig struct {
	ListDefaultFormat   string `mapstructure:"list_default_format" env:"SD_LIST_DEFAULT_FORMAT"`
	ExportDefaultFormat string `mapstructure:"export_default_format" env:"SD_EXPORT_DEFAULT_FORMAT"`
}

// DefaultDataDir returns ~/.someday, or .someday when there is no home.
func DefaultDataDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".someday"
	}
	return filepath.Join(homeDir, ".someday")
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			Backend:        BackendSQLite,
			Dir:            DefaultDataDir(),
			Filename:       DefaultSQLiteFilename,
			DirPermissions: 0755,
			WriteTimeout:   5 * time.Second,
		},
		Display: DisplayConfig{
			CompletionDelay:        300 * time.Millisecond,
			DoubleActivationWindow: 400 * time.Millisecond,
			DefaultWhen:            string(domain.WhenToday),
		},
		Application: ApplicationConfig{
			Timeout: 60 * time.Second,
			Verbose: false,
		},
		Commands: CommandsConfig{
			ListDefaultFormat:   "table",
			ExportDefaultFormat: "json",
		},
	}
}

// GetStoragePath returns the full path to the storage file. The file
// backend swaps the default database name for a .json one.
func (c *Config) GetStoragePath() string {
	name := c.Storage.Filename
	if c.Storage.Backend == BackendFile && name == DefaultSQLiteFilename {
		name = DefaultFileFilename
	}
	return filepath.Join(c.Storage.Dir, name)
}

// GetWriteTimeout returns the per-save timeout
func (c *Config) GetWriteTimeout() time.Duration {
	return c.Storage.WriteTimeout
}

// GetDefaultWhen returns the bucket preselected for new tasks
func (c *Config) GetDefaultWhen() domain.When {
	w, err := domain.ParseWhen(c.Display.DefaultWhen)
	if err != nil {
		return domain.WhenToday
	}
	return w
}

// LoadFromEnvironment loads configuration from environment variables
func (c *Config) LoadFromEnvironment() error {
	// Storage configuration
	if backend := os.Getenv("SD_STORAGE_BACKEND"); backend != "" {
		c.Storage.Backend = backend
	}
	if dir := os.Getenv("SD_DATA_DIR"); dir != "" {
		c.Storage.Dir = dir
	}
	if filename := os.Getenv("SD_STORAGE_FILENAME"); filename != "" {
		c.Storage.Filename = filename
	}
	if perms := os.Getenv("SD_DATA_DIR_PERMISSIONS"); perms != "" {
		c.Storage.DirPermissions = ParseUint32WithFallback(perms, 8, c.Storage.DirPermissions)
	}
	if timeout := os.Getenv("SD_STORAGE_WRITE_TIMEOUT"); timeout != "" {
		c.Storage.WriteTimeout = ParseDurationWithFallback(timeout, c.Storage.WriteTimeout)
	}

	// Display configuration
	if delay := os.Getenv("SD_DISPLAY_COMPLETION_DELAY"); delay != "" {
		c.Display.CompletionDelay = ParseDurationWithFallback(delay, c.Display.CompletionDelay)
	}
	if window := os.Getenv("SD_DISPLAY_DOUBLE_ACTIVATION_WINDOW"); window != "" {
		c.Display.DoubleActivationWindow = ParseDurationWithFallback(window, c.Display.DoubleActivationWindow)
	}
	if when := os.Getenv("SD_DISPLAY_DEFAULT_WHEN"); when != "" {
		c.Display.DefaultWhen = when
	}

	// Application configuration
	if timeout := os.Getenv("SD_APP_TIMEOUT"); timeout != "" {
		c.Application.Timeout = ParseDurationWithFallback(timeout, c.Application.Timeout)
	}
	if verbose := os.Getenv("SD_APP_VERBOSE"); verbose != "" {
		c.Application.Verbose = ParseBoolWithFallback(verbose, c.Application.Verbose)
	}

	// Commands configuration
	if format := os.Getenv("SD_LIST_DEFAULT_FORMAT"); format != "" {
		c.Commands.ListDefaultFormat = format
	}
	if format := os.Getenv("SD_EXPORT_DEFAULT_FORMAT"); format != "" {
		c.Commands.ExportDefaultFormat = format
	}

	return nil
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	// Validate storage configuration
	switch c.Storage.Backend {
	case BackendSQLite, BackendFile:
		if c.Storage.Dir == "" {
			return &ConfigError{Field: "storage.dir", Message: "data directory cannot be empty"}
		}
		if c.Storage.Filename == "" {
			return &ConfigError{Field: "storage.filename", Message: "storage filename cannot be empty"}
		}
	case BackendMemory:
	default:
		return &ConfigError{Field: "storage.backend", Message: "backend must be sqlite, file or memory"}
	}
	if c.Storage.WriteTimeout <= 0 {
		return &ConfigError{Field: "storage.write_timeout", Message: "write timeout must be positive"}
	}

	// Validate display configuration
	if c.Display.CompletionDelay < 0 {
		return &ConfigError{Field: "display.completion_delay", Message: "completion delay cannot be negative"}
	}
	if c.Display.DoubleActivationWindow <= 0 {
		return &ConfigError{Field: "display.double_activation_window", Message: "double activation window must be positive"}
	}
	if _, err := domain.ParseWhen(c.Display.DefaultWhen); err != nil {
		return &ConfigError{Field: "display.default_when", Message: err.Error()}
	}

	// Validate application configuration
	if c.Application.Timeout <= 0 {
		return &ConfigError{Field: "application.timeout", Message: "application timeout must be positive"}
	}

	// Validate command defaults
	if !isOneOf(c.Commands.ListDefaultFormat, "table", "json", "yaml") {
		return &ConfigError{Field: "commands.list_default_format", Message: "format must be table, json or yaml"}
	}
	if !isOneOf(c.Commands.ExportDefaultFormat, "json", "yaml") {
		return &ConfigError{Field: "commands.export_default_format", Message: "format must be json or yaml"}
	}

	return nil
}

func isOneOf(s string, options ...string) bool {
	for _, o := range options {
		if s == o {
			return true
		}
	}
	return false
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}

// ParseDurationWithFallback parses a duration string with a fallback value
func ParseDurationWithFallback(s string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	return fallback
}

// ParseBoolWithFallback parses a boolean string with a fallback value
func ParseBoolWithFallback(s string, fallback bool) bool {
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return fallback
}

// ParseUint32WithFallback parses a uint32 string with a fallback value
func ParseUint32WithFallback(s string, base int, fallback uint32) uint32 {
	if u, err := strconv.ParseUint(s, base, 32); err == nil {
		return uint32(u)
	}
	return fallback
}
