package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/papapumpkin/dungeontracker/internal/kv"
)

// EnvPrefix is the prefix of every environment override.
const EnvPrefix = "DUNGEONTRACKER"

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// StorageConfig selects and locates the progress store.
type StorageConfig struct {
	Driver string `mapstructure:"driver"`
	Path   string `mapstructure:"path"`
}

// LogConfig controls diagnostic logging.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Config holds all runtime configuration for a tracker session.
// Values are populated from .dungeontracker.yaml, a .env file,
// DUNGEONTRACKER_* env vars, and CLI flags.
type Config struct {
	Storage     StorageConfig `mapstructure:"storage"`
	CatalogPath string        `mapstructure:"catalog_path"`
	Log         LogConfig     `mapstructure:"log"`
	Locale      string        `mapstructure:"locale"`
	MetricsFile string        `mapstructure:"metrics_file"`
	JournalFile string        `mapstructure:"journal_file"`
	Verbose     bool          `mapstructure:"verbose"`
}

// DefaultStoragePath returns the progress database location under the
// user's config directory, or a file in the working directory when that
// directory cannot be determined.
func DefaultStoragePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "progress.db"
	}
	return filepath.Join(dir, "dungeontracker", "progress.db")
}

// LoadDotEnv loads a .env file from the working directory into the process
// environment when one exists. Variables already set win.
func LoadDotEnv() {
	_ = godotenv.Load()
}

// BindEnv maps DUNGEONTRACKER_* variables onto config keys, with nested
// keys joined by underscores (DUNGEONTRACKER_STORAGE_DRIVER).
func BindEnv() {
	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags.
func Load() (Config, error) {
	viper.SetDefault("storage.driver", kv.DriverSQLite)
	viper.SetDefault("storage.path", DefaultStoragePath())
	viper.SetDefault("catalog_path", "")
	viper.SetDefault("log.level", "warn")
	viper.SetDefault("log.format", "text")
	viper.SetDefault("locale", "en")
	viper.SetDefault("metrics_file", "")
	viper.SetDefault("journal_file", "")
	viper.SetDefault("verbose", false)

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	cfg.Storage.Driver = strings.ToLower(strings.TrimSpace(cfg.Storage.Driver))
	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))
	cfg.Log.Format = strings.ToLower(strings.TrimSpace(cfg.Log.Format))
	if cfg.Verbose {
		cfg.Log.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the enumerated settings.
func (c Config) Validate() error {
	var errs []error
	switch c.Storage.Driver {
	case kv.DriverSQLite, kv.DriverBolt, kv.DriverMemory:
	default:
		errs = append(errs, fmt.Errorf("storage.driver %q: want %s, %s or %s: %w",
			c.Storage.Driver, kv.DriverSQLite, kv.DriverBolt, kv.DriverMemory, ErrInvalid))
	}
	if c.Storage.Driver != kv.DriverMemory && c.Storage.Path == "" {
		errs = append(errs, fmt.Errorf("storage.path is empty: %w", ErrInvalid))
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level %q: want debug, info, warn or error: %w", c.Log.Level, ErrInvalid))
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format %q: want text or json: %w", c.Log.Format, ErrInvalid))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}
