package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
)

// resetViper clears all viper state between tests to avoid cross-contamination.
func resetViper() {
	viper.Reset()
}

func TestLoad_Defaults(t *testing.T) {
	resetViper()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"Storage.Driver", cfg.Storage.Driver, "sqlite"},
		{"Storage.Path", cfg.Storage.Path, DefaultStoragePath()},
		{"CatalogPath", cfg.CatalogPath, ""},
		{"Log.Level", cfg.Log.Level, "warn"},
		{"Log.Format", cfg.Log.Format, "text"},
		{"Locale", cfg.Locale, "en"},
		{"MetricsFile", cfg.MetricsFile, ""},
		{"JournalFile", cfg.JournalFile, ""},
		{"Verbose", cfg.Verbose, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
			}
		})
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	tests := []struct {
		name   string
		envKey string
		envVal string
		field  func(Config) any
		want   any
	}{
		{
			name:   "storage.driver",
			envKey: "DUNGEONTRACKER_STORAGE_DRIVER",
			envVal: "Bolt",
			field:  func(c Config) any { return c.Storage.Driver },
			want:   "bolt",
		},
		{
			name:   "storage.path",
			envKey: "DUNGEONTRACKER_STORAGE_PATH",
			envVal: "/tmp/progress.db",
			field:  func(c Config) any { return c.Storage.Path },
			want:   "/tmp/progress.db",
		},
		{
			name:   "journal_file",
			envKey: "DUNGEONTRACKER_JOURNAL_FILE",
			envVal: "/tmp/journal.jsonl",
			field:  func(c Config) any { return c.JournalFile },
			want:   "/tmp/journal.jsonl",
		},
		{
			name:   "catalog_path",
			envKey: "DUNGEONTRACKER_CATALOG_PATH",
			envVal: "/etc/catalog.toml",
			field:  func(c Config) any { return c.CatalogPath },
			want:   "/etc/catalog.toml",
		},
		{
			name:   "log.format",
			envKey: "DUNGEONTRACKER_LOG_FORMAT",
			envVal: "json",
			field:  func(c Config) any { return c.Log.Format },
			want:   "json",
		},
		{
			name:   "locale",
			envKey: "DUNGEONTRACKER_LOCALE",
			envVal: "de",
			field:  func(c Config) any { return c.Locale },
			want:   "de",
		},
		{
			name:   "verbose raises log level",
			envKey: "DUNGEONTRACKER_VERBOSE",
			envVal: "true",
			field:  func(c Config) any { return c.Log.Level },
			want:   "debug",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetViper()
			BindEnv()
			t.Setenv(tt.envKey, tt.envVal)

			cfg, err := Load()
			if err != nil {
				t.Fatalf("Load() returned unexpected error: %v", err)
			}
			got := tt.field(cfg)
			if got != tt.want {
				t.Errorf("%s: got %v (%T), want %v (%T)", tt.name, got, got, tt.want, tt.want)
			}
		})
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	resetViper()

	path := filepath.Join(t.TempDir(), ".dungeontracker.yaml")
	data := []byte("storage:\n  driver: memory\nlog:\n  level: info\n  format: json\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	viper.SetConfigFile(path)
	if err := viper.ReadInConfig(); err != nil {
		t.Fatalf("ReadInConfig: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	if cfg.Storage.Driver != "memory" || cfg.Log.Level != "info" || cfg.Log.Format != "json" {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  any
	}{
		{"unknown driver", "storage.driver", "postgres"},
		{"unknown level", "log.level", "loud"},
		{"unknown format", "log.format", "xml"},
		{"empty path", "storage.path", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetViper()
			viper.Set(tt.key, tt.val)

			_, err := Load()
			if !errors.Is(err, ErrInvalid) {
				t.Fatalf("Load() error = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestValidate_MemoryNeedsNoPath(t *testing.T) {
	cfg := Config{
		Storage: StorageConfig{Driver: "memory"},
		Log:     LogConfig{Level: "warn", Format: "text"},
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}
