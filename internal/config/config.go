// ABOUTME: Nutri configuration management with backend selection.
// ABOUTME: Handles settings, preferences, and storage backend factory function.

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/harperreed/nutri/internal/charm"
	"github.com/harperreed/nutri/internal/storage"
)

// DefaultTrendDays is the trailing window used when none is configured.
const DefaultTrendDays = 7

// Config stores nutri tool configuration.
type Config struct {
	// Backend selects the storage backend: "sqlite" (default) or "charm".
	Backend string `json:"backend,omitempty" validate:"omitempty,oneof=sqlite charm"`

	// DataDir is the root directory for data storage.
	// SQLite puts nutri.db here. Supports ~ expansion for home directory.
	// Defaults to ~/.local/share/nutri.
	DataDir string `json:"data_dir,omitempty"`

	// DBPath overrides the SQLite file location entirely.
	DBPath string `json:"db_path,omitempty"`

	// DefaultUser is a user name, ID or ID prefix used when --user is omitted.
	DefaultUser string `json:"default_user,omitempty"`

	// TrendDays is the default trailing window for trends and recommendations.
	TrendDays int `json:"trend_days,omitempty" validate:"gte=0,lte=365"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("invalid config: %s=%v (%s)", strings.ToLower(fe.Field()), fe.Value(), fe.Tag())
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// GetBackend returns the configured backend, defaulting to "sqlite".
func (c *Config) GetBackend() string {
	if c.Backend == "" {
		return "sqlite"
	}
	return c.Backend
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return storage.DataDir()
	}
	return ExpandPath(c.DataDir)
}

// GetDBPath returns the SQLite database path.
func (c *Config) GetDBPath() string {
	if c.DBPath != "" {
		return ExpandPath(c.DBPath)
	}
	return filepath.Join(c.GetDataDir(), "nutri.db")
}

// GetTrendDays returns the trailing window length, defaulting to a week.
func (c *Config) GetTrendDays() int {
	if c.TrendDays <= 0 {
		return DefaultTrendDays
	}
	return c.TrendDays
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// OpenStorage creates a Repository implementation based on the configured backend.
func (c *Config) OpenStorage() (storage.Repository, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return OpenBackend(c.GetBackend(), c.GetDBPath())
}

// OpenBackend opens a named backend. dbPath is only used by sqlite.
func OpenBackend(backend, dbPath string) (storage.Repository, error) {
	switch backend {
	case "sqlite":
		return storage.Open(dbPath)
	case "charm":
		return charm.InitClient()
	default:
		return nil, fmt.Errorf("unknown backend: %q", backend)
	}
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "nutri", "config.json")
}

// Load reads config from disk.
func Load() (*Config, error) {
	path := GetConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	if err := c.Validate(); err != nil {
		return err
	}
	path := GetConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
