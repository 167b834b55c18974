package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config is the root configuration for wlog, stored in ~/.wlog/config.yaml.
// Every key can also be set through a WLOG_ environment variable, e.g.
// WLOG_STORAGE_BACKEND=sqlite.
type Config struct {
	Storage StorageConfig `mapstructure:"storage" yaml:"storage"`
	Log     LogConfig     `mapstructure:"log"     yaml:"log"`
	Presets PresetsConfig `mapstructure:"presets" yaml:"presets"`
}

// StorageConfig selects where the entry collection lives.
type StorageConfig struct {
	// Backend is one of "json", "diskv" or "sqlite".
	Backend string `mapstructure:"backend" yaml:"backend"`
	// Path is the data directory shared by all backends.
	Path string `mapstructure:"path"    yaml:"path"`
}

type LogConfig struct {
	Level      string         `mapstructure:"level"       yaml:"level"`
	TimeFormat string         `mapstructure:"time_format" yaml:"time_format"`
	File       string         `mapstructure:"file"        yaml:"file"`
	NoColor    bool           `mapstructure:"no_color"    yaml:"no_color"`
	JSON       bool           `mapstructure:"json"        yaml:"json"`
	Rotation   RotationConfig `mapstructure:"rotation"    yaml:"rotation"`
}

type RotationConfig struct {
	MaxSize    int  `mapstructure:"max_size"    yaml:"max_size"`
	MaxBackups int  `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge     int  `mapstructure:"max_age"     yaml:"max_age"`
	Compress   bool `mapstructure:"compress"    yaml:"compress"`
}

// PresetsConfig holds the details filled in by a quick log.
type PresetsConfig struct {
	SVTDuration      string `mapstructure:"svt_duration"      yaml:"svt_duration"`
	MedicationDosage string `mapstructure:"medication_dosage" yaml:"medication_dosage"`
}

const (
	BackendJSON   = "json"
	BackendDiskv  = "diskv"
	BackendSQLite = "sqlite"

	// EnvPrefix is prepended to every environment override.
	EnvPrefix = "WLOG"
)

// ErrUnknownBackend is returned when storage.backend names no backend.
var ErrUnknownBackend = errors.New("unknown storage backend")

// Dir returns the wlog home directory (~/.wlog).
func Dir() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".wlog"), nil
}

// DefaultPath returns the path to ~/.wlog/config.yaml.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

var envFiles = []string{".env", ".env.local"}

// Load reads the configuration into v and returns the merged result. An
// empty path means ~/.wlog/config.yaml, which is created with annotated
// defaults on first run. An explicit path must exist.
func Load(v *viper.Viper, path string) (*Config, error) {
	for _, envFile := range envFiles {
		// Missing .env files are fine.
		_ = godotenv.Load(envFile)
	}

	defaulted := path == ""
	if defaulted {
		var err error
		if path, err = DefaultPath(); err != nil {
			return nil, err
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			// First run: write the annotated template so users can discover options.
			if writeErr := WriteTemplate(path); writeErr != nil {
				fmt.Fprintf(os.Stderr, "Warning: could not create config file %s: %v\n", path, writeErr)
			}
		}
	} else if expanded, err := homedir.Expand(path); err == nil {
		path = expanded
	}

	configDir := filepath.Dir(path)
	for _, envFile := range envFiles {
		_ = godotenv.Load(filepath.Join(configDir, envFile))
	}

	setDefaults(v)
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// The default file may be missing when the template could not be written.
		if defaulted && errors.Is(err, fs.ErrNotExist) {
			return decode(v)
		}
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}
	return decode(v)
}

func decode(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) normalize() error {
	c.Storage.Backend = strings.ToLower(strings.TrimSpace(c.Storage.Backend))
	switch c.Storage.Backend {
	case BackendJSON, BackendDiskv, BackendSQLite:
	default:
		return fmt.Errorf("%w: %q (want json, diskv or sqlite)", ErrUnknownBackend, c.Storage.Backend)
	}

	var err error
	if c.Storage.Path, err = homedir.Expand(c.Storage.Path); err != nil {
		return fmt.Errorf("expanding storage.path: %w", err)
	}
	if c.Log.File != "" {
		if c.Log.File, err = homedir.Expand(c.Log.File); err != nil {
			return fmt.Errorf("expanding log.file: %w", err)
		}
	}
	return nil
}
