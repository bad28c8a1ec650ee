// Package config holds the process configuration. Everything comes from
// named environment variables with documented defaults; the configuration is
// built once at startup and passed down explicitly, never read ambiently
// inside operations.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Driver names accepted for the database connection.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config represents the complete server configuration.
type Config struct {
	Database    DatabaseConfig    `mapstructure:"database"`
	Attachments AttachmentsConfig `mapstructure:"attachments"`
	HTTP        HTTPConfig        `mapstructure:"http"`
	Logging     LoggingConfig     `mapstructure:"logging"`
}

// DatabaseConfig contains relational store connection settings.
type DatabaseConfig struct {
	Driver   string `mapstructure:"driver"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Name     string `mapstructure:"name"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	// Path is the database file location when Driver is sqlite.
	Path string `mapstructure:"path"`
}

// AttachmentsConfig contains the fetched-content directory settings.
type AttachmentsConfig struct {
	Dir string `mapstructure:"dir"`
}

// HTTPConfig contains the HTTP transport settings.
type HTTPConfig struct {
	Addr string `mapstructure:"addr"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Format string `mapstructure:"format"`
	Level  string `mapstructure:"level"`
}

// envBindings maps config keys to their environment variables.
var envBindings = map[string]string{
	"database.driver":   "DB_DRIVER",
	"database.host":     "DB_HOST",
	"database.port":     "DB_PORT",
	"database.name":     "DB_NAME",
	"database.user":     "DB_USER",
	"database.password": "DB_PASSWORD",
	"database.path":     "DB_PATH",
	"attachments.dir":   "ATTACHMENTS_DIR",
	"http.addr":         "HTTP_ADDR",
	"logging.format":    "LOG_FORMAT",
	"logging.level":     "LOG_LEVEL",
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Driver:   DriverPostgres,
			Host:     "db",
			Port:     5432,
			Name:     "genealogy",
			User:     "genealogy",
			Password: "genealogy",
			Path:     "genealogy.db",
		},
		Attachments: AttachmentsConfig{
			Dir: "/attachments",
		},
		HTTP: HTTPConfig{
			Addr: ":8080",
		},
		Logging: LoggingConfig{
			Format: "json",
			Level:  "info",
		},
	}
}

// Load builds the configuration from the environment, falling back to
// defaults for anything unset.
func Load() (*Config, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("database.driver", defaults.Database.Driver)
	v.SetDefault("database.host", defaults.Database.Host)
	v.SetDefault("database.port", defaults.Database.Port)
	v.SetDefault("database.name", defaults.Database.Name)
	v.SetDefault("database.user", defaults.Database.User)
	v.SetDefault("database.password", defaults.Database.Password)
	v.SetDefault("database.path", defaults.Database.Path)
	v.SetDefault("attachments.dir", defaults.Attachments.Dir)
	v.SetDefault("http.addr", defaults.HTTP.Addr)
	v.SetDefault("logging.format", defaults.Logging.Format)
	v.SetDefault("logging.level", defaults.Logging.Level)

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks if the configuration is usable.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return &ConfigError{Field: "database.driver", Message: "must be postgres or sqlite"}
	}
	if c.Database.Port <= 0 || c.Database.Port > 65535 {
		return &ConfigError{Field: "database.port", Message: "out of range"}
	}
	if c.Attachments.Dir == "" {
		return &ConfigError{Field: "attachments.dir", Message: "must not be empty"}
	}
	return nil
}

// DSN returns the data source name for the configured driver.
func (d DatabaseConfig) DSN() string {
	if d.Driver == DriverSQLite {
		return d.Path
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		d.User, d.Password, d.Host, d.Port, d.Name)
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}
