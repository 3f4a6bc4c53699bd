// Package config loads service configuration from TOML files and AICOMPLY_*
// environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/JaimeStill/aicomply/pkg/database"
	"github.com/JaimeStill/aicomply/pkg/envvar"
	"github.com/JaimeStill/aicomply/pkg/storage"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"

	EnvName = "AICOMPLY_ENV"
)

var databaseEnv = &database.Env{
	Host:            "AICOMPLY_DB_HOST",
	Port:            "AICOMPLY_DB_PORT",
	Name:            "AICOMPLY_DB_NAME",
	User:            "AICOMPLY_DB_USER",
	Password:        "AICOMPLY_DB_PASSWORD",
	SSLMode:         "AICOMPLY_DB_SSL_MODE",
	MaxOpenConns:    "AICOMPLY_DB_MAX_OPEN_CONNS",
	MaxIdleConns:    "AICOMPLY_DB_MAX_IDLE_CONNS",
	ConnMaxLifetime: "AICOMPLY_DB_CONN_MAX_LIFETIME",
	ConnTimeout:     "AICOMPLY_DB_CONN_TIMEOUT",
}

var storageEnv = &storage.Env{
	ContainerName:    "AICOMPLY_STORAGE_CONTAINER_NAME",
	ConnectionString: "AICOMPLY_STORAGE_CONNECTION_STRING",
	AccountURL:       "AICOMPLY_STORAGE_ACCOUNT_URL",
	MaxListSize:      "AICOMPLY_STORAGE_MAX_LIST_SIZE",
}

// Config is the root configuration for the service.
type Config struct {
	Server          ServerConfig    `toml:"server"`
	Database        database.Config `toml:"database"`
	Storage         storage.Config  `toml:"storage"`
	API             APIConfig       `toml:"api"`
	Risk            RiskConfig      `toml:"risk"`
	ShutdownTimeout string          `toml:"shutdown_timeout"`
	Version         string          `toml:"version"`
}

// Env returns the AICOMPLY_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvName); env != "" {
		return env
	}
	return "local"
}

func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Load reads config.toml from the working directory when present, merges the
// config.<env>.toml overlay when present, and finalizes every section.
func Load() (*Config, error) {
	cfg := &Config{}

	base, err := load(BaseConfigFile)
	switch {
	case err == nil:
		cfg = base
	case !errors.Is(err, fs.ErrNotExist):
		return nil, err
	}

	if env := os.Getenv(EnvName); env != "" {
		path := fmt.Sprintf(OverlayConfigPattern, env)
		overlay, err := load(path)
		switch {
		case err == nil:
			cfg.Merge(overlay)
		case !errors.Is(err, fs.ErrNotExist):
			return nil, fmt.Errorf("load overlay %s: %w", path, err)
		}
	}

	if err := cfg.finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}
	return cfg, nil
}

// Merge overwrites non-zero fields from overlay across all sections.
func (c *Config) Merge(overlay *Config) {
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	c.Server.Merge(&overlay.Server)
	c.Database.Merge(&overlay.Database)
	c.Storage.Merge(&overlay.Storage)
	c.API.Merge(&overlay.API)
	c.Risk.Merge(&overlay.Risk)
}

func (c *Config) finalize() error {
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "30s"
	}
	if c.Version == "" {
		c.Version = "0.1.0"
	}
	envvar.String(&c.ShutdownTimeout, "AICOMPLY_SHUTDOWN_TIMEOUT")
	envvar.String(&c.Version, "AICOMPLY_VERSION")

	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}

	sections := []struct {
		name     string
		finalize func() error
	}{
		{"server", c.Server.Finalize},
		{"database", func() error { return c.Database.Finalize(databaseEnv) }},
		{"storage", func() error { return c.Storage.Finalize(storageEnv) }},
		{"api", c.API.Finalize},
		{"risk", c.Risk.Finalize},
	}
	for _, s := range sections {
		if err := s.finalize(); err != nil {
			return fmt.Errorf("%s: %w", s.name, err)
		}
	}
	return nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}
