// Package config handles resolving configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"unicode"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

// Supported database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Roles a configured user may hold.
const (
	RoleAdmin  = "admin"
	RoleViewer = "viewer"
)

// User is a single credential store entry. The password is stored as a bcrypt
// hash; use `pointsboard user hash` to generate one.
type User struct {
	Name         string `yaml:"name"`
	PasswordHash string `yaml:"password_hash"`
	Role         string `yaml:"role"`
}

// Config is the full application configuration.
type Config struct {
	// LogLevel is one of debug, info, warn, or error.
	LogLevel      string `yaml:"log_level"`
	ListenAddress string `yaml:"listen_address"`

	DBDriver   string `yaml:"db_driver"`
	DBFilepath string `yaml:"db_filepath"`
	DBDSN      string `yaml:"db_dsn"`
	// DBInsecureSkipTLSVerify downgrades the postgres connection from full
	// certificate and hostname verification to an unverified TLS session.
	// Leave this false unless the server certificate genuinely cannot be
	// validated.
	DBInsecureSkipTLSVerify bool `yaml:"db_insecure_skip_tls_verify"`

	Users []User `yaml:"users"`
}

// Default returns a version of the config with all default values populated.
// Note that this configuration is _not_ valid, as at least one credential
// entry must be configured.
func Default() *Config {
	return &Config{
		LogLevel:      "info",
		ListenAddress: "localhost:9980",
		DBDriver:      DriverSQLite,
		DBFilepath:    filepath.Join(xdg.DataHome, "pointsboard", "db.sqlite"),
	}
}

// Load loads a YAML configuration file from a path, merges it with defaults,
// and validates it for completeness.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // allow the config file to be loaded from anywhere
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg := Default()
	if err = yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config file at %s: %w", path, err)
	}
	if err = cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.DBDriver {
	case DriverSQLite:
		if c.DBFilepath == "" {
			return fmt.Errorf("db_filepath is required for the %s driver", DriverSQLite)
		}
	case DriverPostgres:
		if c.DBDSN == "" {
			return fmt.Errorf("db_dsn is required for the %s driver", DriverPostgres)
		}
	default:
		return fmt.Errorf("unknown db_driver %q", c.DBDriver)
	}

	if len(c.Users) == 0 {
		return fmt.Errorf("at least one user must be configured")
	}
	seen := make(map[string]struct{}, len(c.Users))
	for _, user := range c.Users {
		if err := validateUser(user); err != nil {
			return err
		}
		if _, ok := seen[user.Name]; ok {
			return fmt.Errorf("duplicate user %q", user.Name)
		}
		seen[user.Name] = struct{}{}
	}
	return nil
}

func validateUser(user User) error {
	if user.Name == "" {
		return fmt.Errorf("user entry is missing a name")
	}
	for _, r := range user.Name {
		if unicode.IsControl(r) || r == ':' {
			return fmt.Errorf("user %q: names may not contain control characters or colons", user.Name)
		}
	}
	if user.PasswordHash == "" {
		return fmt.Errorf("user %q is missing a password_hash", user.Name)
	}
	if user.Role != RoleAdmin && user.Role != RoleViewer {
		return fmt.Errorf("user %q has unknown role %q", user.Name, user.Role)
	}
	return nil
}

// LookupUser returns the credential entry for name, if one exists.
func (c *Config) LookupUser(name string) (User, bool) {
	for _, user := range c.Users {
		if user.Name == name {
			return user, true
		}
	}
	return User{}, false
}
