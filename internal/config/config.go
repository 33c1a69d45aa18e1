// Package config loads the service configuration from a YAML file with
// environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigPath is used when neither a flag nor GUILDRPC_CONFIG names a file.
	DefaultConfigPath = "config.yaml"
	// DefaultListen matches the address bot clients dial by default.
	DefaultListen = "[::1]:50051"

	envConfigPath = "GUILDRPC_CONFIG"
)

// AppConfig carries command-line level settings.
type AppConfig struct {
	ConfigPath string
}

// Config is the full service configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Logging  LoggingConfig  `yaml:"logging"`
	Auth     AuthConfig     `yaml:"auth"`
	Notify   NotifyConfig   `yaml:"notify"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Listen          string        `yaml:"listen"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// DatabaseConfig holds the store DSN and pool sizing.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
}

// LoggingConfig controls logrus output and file rotation.
type LoggingConfig struct {
	Level      string `yaml:"level"`
	Format     string `yaml:"format"` // text or json
	File       string `yaml:"file"`   // optional rotating log file
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// AuthConfig enables service-token authentication when JWTSecret is set.
type AuthConfig struct {
	JWTSecret   string        `yaml:"jwt_secret"`
	TokenExpiry time.Duration `yaml:"token_expiry"`
}

// Enabled reports whether RPC calls require a bearer token.
func (a AuthConfig) Enabled() bool {
	return strings.TrimSpace(a.JWTSecret) != ""
}

// NotifyConfig enables redis mutation events when RedisURL is set.
type NotifyConfig struct {
	RedisURL string        `yaml:"redis_url"`
	Channel  string        `yaml:"channel"`
	Timeout  time.Duration `yaml:"timeout"`
}

// MetricsConfig toggles the /metrics endpoint.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Listen:          DefaultListen,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			MaxOpenConns:    5,
			MaxIdleConns:    5,
			ConnMaxLifetime: 30 * time.Minute,
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "text",
			MaxSizeMB:  100,
			MaxBackups: 5,
			MaxAgeDays: 28,
		},
		Auth: AuthConfig{
			TokenExpiry: 30 * 24 * time.Hour,
		},
		Notify: NotifyConfig{
			Channel: "guildrpc:events",
			Timeout: time.Second,
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}

// ResolveConfigPath picks the config file: explicit flag, then GUILDRPC_CONFIG, then config.yaml.
func ResolveConfigPath(flagValue string) string {
	if trimmed := strings.TrimSpace(flagValue); trimmed != "" {
		return trimmed
	}
	if value, ok := os.LookupEnv(envConfigPath); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return DefaultConfigPath
}

// Load reads path over the defaults and applies environment overrides. A
// missing file is only tolerated for the default path, so a deployment can run
// from DATABASE_URL alone.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, errRead := os.ReadFile(path)
	switch {
	case errRead == nil:
		if errUnmarshal := yaml.Unmarshal(data, &cfg); errUnmarshal != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, errUnmarshal)
		}
	case errors.Is(errRead, os.ErrNotExist) && path == DefaultConfigPath:
	default:
		return nil, fmt.Errorf("config: read %s: %w", path, errRead)
	}
	if errEnv := cfg.applyEnv(); errEnv != nil {
		return nil, errEnv
	}
	if errValidate := cfg.Validate(); errValidate != nil {
		return nil, errValidate
	}
	return &cfg, nil
}

// LoadDatabaseDSN returns only the database DSN, for commands that do not serve.
func LoadDatabaseDSN(path string) (string, error) {
	cfg, err := Load(path)
	if err != nil {
		return "", err
	}
	return cfg.Database.DSN, nil
}

func (c *Config) applyEnv() error {
	if value := lookupEnv("DATABASE_URL"); value != "" {
		c.Database.DSN = value
	}
	if value := lookupEnv("GUILDRPC_LISTEN"); value != "" {
		c.Server.Listen = value
	}
	if value := lookupEnv("GUILDRPC_JWT_SECRET"); value != "" {
		c.Auth.JWTSecret = value
	}
	if value := lookupEnv("REDIS_URL"); value != "" {
		c.Notify.RedisURL = value
	}
	if value := lookupEnv("LOG_LEVEL"); value != "" {
		c.Logging.Level = value
	}
	if value := lookupEnv("DATABASE_MAX_CONNECTIONS"); value != "" {
		n, errParse := strconv.Atoi(value)
		if errParse != nil {
			return fmt.Errorf("config: DATABASE_MAX_CONNECTIONS: %w", errParse)
		}
		c.Database.MaxOpenConns = n
	}
	return nil
}

func lookupEnv(key string) string {
	value, ok := os.LookupEnv(key)
	if !ok {
		return ""
	}
	return strings.TrimSpace(value)
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Server.Listen) == "" {
		errs = append(errs, errors.New("server.listen is required"))
	}
	if strings.TrimSpace(c.Database.DSN) == "" {
		errs = append(errs, errors.New("database.dsn is required (or set DATABASE_URL)"))
	}
	if c.Database.MaxOpenConns < 0 {
		errs = append(errs, fmt.Errorf("database.max_open_conns must not be negative, got %d", c.Database.MaxOpenConns))
	}
	if c.Database.MaxIdleConns < 0 {
		errs = append(errs, fmt.Errorf("database.max_idle_conns must not be negative, got %d", c.Database.MaxIdleConns))
	}
	switch strings.ToLower(strings.TrimSpace(c.Logging.Level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal", "panic":
	default:
		errs = append(errs, fmt.Errorf("logging.level %q is not a known level", c.Logging.Level))
	}
	switch strings.ToLower(strings.TrimSpace(c.Logging.Format)) {
	case "", "text", "json":
	default:
		errs = append(errs, fmt.Errorf("logging.format must be 'text' or 'json', got %q", c.Logging.Format))
	}
	if c.Auth.TokenExpiry < 0 {
		errs = append(errs, errors.New("auth.token_expiry must not be negative"))
	}
	return errors.Join(errs...)
}
