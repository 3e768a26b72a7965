// Package config loads runtime settings from the environment, honouring an
// optional .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/goliatone/go-formflow/pkg/submit"
)

// Storage backends understood by the CLI.
const (
	StorageMemory = "memory"
	StorageFile   = "file"
	StorageSQLite = "sqlite"
)

// Environment variable names.
const (
	EnvLoginURL     = "FORMFLOW_LOGIN_URL"
	EnvStorage      = "FORMFLOW_STORAGE"
	EnvStoragePath  = "FORMFLOW_STORAGE_PATH"
	EnvTimeout      = "FORMFLOW_TIMEOUT"
	EnvDefaultRoute = "FORMFLOW_DEFAULT_ROUTE"
	EnvLoginFields  = "FORMFLOW_LOGIN_FIELDS"
)

const (
	defaultLoginURL   = "https://staging.regripindia.com/api/login"
	defaultTimeout    = 30 * time.Second
	defaultRoute      = "/"
	defaultFilePath   = "formflow-session.json"
	defaultSQLitePath = "formflow.db"
)

// ErrUnknownStorage is returned for an unsupported FORMFLOW_STORAGE value.
var ErrUnknownStorage = errors.New("config: unknown storage backend")

// Config holds the settings shared by the CLI commands.
type Config struct {
	LoginURL     string
	Storage      string
	StoragePath  string
	Timeout      time.Duration
	DefaultRoute string
	// LoginFields overrides the form-to-request field names; nil keeps the
	// login endpoint defaults.
	LoginFields []submit.FieldMapping
}

// Logger receives the notice printed when no .env file is present.
type Logger interface {
	Printf(format string, args ...any)
}

// Load reads files (default ".env") into the environment without overriding
// variables that are already set, then builds a Config.
func Load(logger Logger, files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil && logger != nil {
		logger.Printf("config: no .env file loaded, using system environment variables")
	}
	return FromEnv()
}

// FromEnv builds a Config from the current process environment.
func FromEnv() (*Config, error) {
	cfg := &Config{
		LoginURL:     getEnv(EnvLoginURL, defaultLoginURL),
		Timeout:      defaultTimeout,
		DefaultRoute: getEnv(EnvDefaultRoute, defaultRoute),
	}

	if raw := getEnv(EnvTimeout, ""); raw != "" {
		timeout, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", EnvTimeout, err)
		}
		if timeout <= 0 {
			return nil, fmt.Errorf("config: %s must be positive, got %s", EnvTimeout, raw)
		}
		cfg.Timeout = timeout
	}

	if raw := getEnv(EnvLoginFields, ""); raw != "" {
		fields, err := submit.ParseFieldMappings(raw)
		if err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", EnvLoginFields, err)
		}
		cfg.LoginFields = fields
	}

	if err := cfg.SetStorage(getEnv(EnvStorage, StorageMemory), getEnv(EnvStoragePath, "")); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SetStorage selects the storage backend. File and SQLite backends get a
// default path when path is empty.
func (c *Config) SetStorage(kind, path string) error {
	kind = strings.ToLower(strings.TrimSpace(kind))
	path = strings.TrimSpace(path)
	switch kind {
	case StorageMemory:
	case StorageFile:
		if path == "" {
			path = defaultFilePath
		}
	case StorageSQLite:
		if path == "" {
			path = defaultSQLitePath
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStorage, kind)
	}
	c.Storage = kind
	c.StoragePath = path
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}
