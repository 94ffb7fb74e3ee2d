// Package config resolves where the movie database and interchange files live.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds every setting the CLI needs. It is built once at startup and
// passed to the components that need it.
type Config struct {
	DBPath     string `yaml:"db_path"`            // SQLite database file
	ImportPath string `yaml:"import_path"`        // Default document for import
	ExportPath string `yaml:"export_path"`        // Default document for export
	LogLevel   string `yaml:"log_level"`          // info, error, fatal, off
	LogFile    string `yaml:"log_file,omitempty"` // Empty logs to stderr
}

const (
	// ConfigDir is the directory name under XDG_CONFIG_HOME.
	ConfigDir = "movies"
	// ConfigFile is the config file name.
	ConfigFile = "config.yml"

	DefaultDBPath     = "movies.db"
	DefaultImportPath = "movies.json"
	DefaultExportPath = "exported.json"
	DefaultLogLevel   = "off"
)

// Environment variables that override the config file.
const (
	EnvDBPath     = "MOVIES_DB"
	EnvImportPath = "MOVIES_IMPORT_FILE"
	EnvExportPath = "MOVIES_EXPORT_FILE"
	EnvLogLevel   = "MOVIES_LOG_LEVEL"
	EnvLogFile    = "MOVIES_LOG_FILE"
)

// ValidLogLevels lists the accepted log_level values.
var ValidLogLevels = []string{"info", "error", "fatal", "off"}

// ErrEmptyDBPath is returned by Validate when no database path is set.
var ErrEmptyDBPath = errors.New("db_path must not be empty")

// Default returns the configuration used when nothing else is set.
func Default() *Config {
	return &Config{
		DBPath:     DefaultDBPath,
		ImportPath: DefaultImportPath,
		ExportPath: DefaultExportPath,
		LogLevel:   DefaultLogLevel,
	}
}

// DefaultPath returns the path to the user config file.
// Respects XDG_CONFIG_HOME, defaults to ~/.config/movies/config.yml.
func DefaultPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, ConfigDir, ConfigFile)
}

// Load builds a Config from defaults, the YAML file at path, and the
// environment, in that order. A missing file is not an error. An empty path
// means DefaultPath().
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = DefaultPath()
	}
	if path != "" {
		data, err := os.ReadFile(ExpandPath(path))
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config %s: %w", path, err)
			}
		case os.IsNotExist(err):
		default:
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	cfg.applyEnv()

	cfg.DBPath = ExpandPath(cfg.DBPath)
	cfg.ImportPath = ExpandPath(cfg.ImportPath)
	cfg.ExportPath = ExpandPath(cfg.ExportPath)
	cfg.LogFile = ExpandPath(cfg.LogFile)
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))

	return cfg, nil
}

func (c *Config) applyEnv() {
	overrides := []struct {
		env   string
		field *string
	}{
		{EnvDBPath, &c.DBPath},
		{EnvImportPath, &c.ImportPath},
		{EnvExportPath, &c.ExportPath},
		{EnvLogLevel, &c.LogLevel},
		{EnvLogFile, &c.LogFile},
	}
	for _, o := range overrides {
		if v := os.Getenv(o.env); v != "" {
			*o.field = v
		}
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.DBPath) == "" {
		return ErrEmptyDBPath
	}
	for _, valid := range ValidLogLevels {
		if c.LogLevel == valid {
			return nil
		}
	}
	return fmt.Errorf("invalid log_level: %s (valid: %v)", c.LogLevel, ValidLogLevels)
}

// Save writes the configuration as YAML to path, creating parent directories.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// ExpandPath expands ~ to the user's home directory.
// Returns the original path unchanged if it doesn't start with ~.
func ExpandPath(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path // Return original if we can't get home directory
	}

	return filepath.Join(home, path[1:])
}
