package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Supported drivers
const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
	DriverRedis    = "redis"
)

// ServerConfig holds the HTTP server settings
type ServerConfig struct {
	Port         string   `yaml:"port" env:"SERVER_PORT"`
	Mode         string   `yaml:"mode" env:"SERVER_MODE"`
	ReadTimeout  string   `yaml:"read_timeout" env:"SERVER_READ_TIMEOUT"`
	WriteTimeout string   `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT"`
	CORSOrigins  []string `yaml:"cors_origins" env:"SERVER_CORS_ORIGINS"`
	Timezone     string   `yaml:"timezone" env:"SERVER_TIMEZONE"`

	// ShutdownTimeout bounds how long in-flight requests may drain
	ShutdownTimeout string `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT"`
}

// DatabaseConfig holds the document store settings
type DatabaseConfig struct {
	Driver          string `yaml:"driver" env:"DB_DRIVER"`
	Host            string `yaml:"host" env:"DB_HOST"`
	Port            string `yaml:"port" env:"DB_PORT"`
	User            string `yaml:"user" env:"DB_USER"`
	Password        string `yaml:"password" env:"DB_PASSWORD"`
	DBName          string `yaml:"dbname" env:"DB_NAME"`
	SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE"`
	MaxIdleConns    int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
	MaxOpenConns    int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
	ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
	MigrationsDir   string `yaml:"migrations_dir" env:"DB_MIGRATIONS_DIR"`
}

// JWTConfig holds the token settings
type JWTConfig struct {
	Secret                 string `yaml:"secret" env:"JWT_SECRET"`
	AccessTokenExpiration  string `yaml:"access_token_expiration" env:"JWT_ACCESS_TOKEN_EXPIRATION"`
	RefreshTokenExpiration string `yaml:"refresh_token_expiration" env:"JWT_REFRESH_TOKEN_EXPIRATION"`
	Issuer                 string `yaml:"issuer" env:"JWT_ISSUER"`
}

// LoggingConfig holds the logger settings
type LoggingConfig struct {
	Level  string `yaml:"level" env:"LOG_LEVEL"`
	Format string `yaml:"format" env:"LOG_FORMAT"`
}

// StateConfig selects where per-user state (progress, bookmarks) lives
type StateConfig struct {
	Driver        string `yaml:"driver" env:"STATE_DRIVER"`
	RedisAddr     string `yaml:"redis_addr" env:"REDIS_ADDR"`
	RedisPassword string `yaml:"redis_password" env:"REDIS_PASSWORD"`
	RedisDB       int    `yaml:"redis_db" env:"REDIS_DB"`
	KeyPrefix     string `yaml:"key_prefix" env:"STATE_KEY_PREFIX"`
}

// DescriberConfig holds the generative description API settings
type DescriberConfig struct {
	APIKey  string `yaml:"api_key" env:"DESCRIBER_API_KEY"`
	BaseURL string `yaml:"base_url" env:"DESCRIBER_BASE_URL"`
	Model   string `yaml:"model" env:"DESCRIBER_MODEL"`
	Timeout string `yaml:"timeout" env:"DESCRIBER_TIMEOUT"`
}

// GeocodingConfig holds the address lookup settings
type GeocodingConfig struct {
	BaseURL   string `yaml:"base_url" env:"GEOCODING_BASE_URL"`
	UserAgent string `yaml:"user_agent" env:"GEOCODING_USER_AGENT"`
	Timeout   string `yaml:"timeout" env:"GEOCODING_TIMEOUT"`
	Limit     int    `yaml:"limit" env:"GEOCODING_LIMIT"`
}

// AdminConfig is the account seeded on first start
type AdminConfig struct {
	Email       string `yaml:"email" env:"ADMIN_EMAIL"`
	Password    string `yaml:"password" env:"ADMIN_PASSWORD"`
	DisplayName string `yaml:"display_name" env:"ADMIN_DISPLAY_NAME"`
}

// Config structure represents the application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	JWT       JWTConfig       `yaml:"jwt"`
	Logging   LoggingConfig   `yaml:"logging"`
	State     StateConfig     `yaml:"state"`
	Describer DescriberConfig `yaml:"describer"`
	Geocoding GeocodingConfig `yaml:"geocoding"`
	Admin     AdminConfig     `yaml:"admin"`
}

// LoadConfig loads configuration from a file and environment variables.
// A .env file in the working directory is loaded first when present.
func LoadConfig(configPath string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	config := &Config{}
	setDefaults(config)

	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := loadFromEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.Server.Port = "8080"
	config.Server.Mode = "development"
	config.Server.ReadTimeout = "15s"
	config.Server.WriteTimeout = "30s"
	config.Server.CORSOrigins = []string{"http://localhost:5173"}
	config.Server.Timezone = "UTC"
	config.Server.ShutdownTimeout = "10s"

	config.Database.Driver = DriverPostgres
	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "uniportal"
	config.Database.SSLMode = "disable"
	config.Database.MaxIdleConns = 5
	config.Database.MaxOpenConns = 20
	config.Database.ConnMaxLifetime = "1h"
	config.Database.MigrationsDir = "migrations"

	config.JWT.AccessTokenExpiration = "1h"
	config.JWT.RefreshTokenExpiration = "720h"
	config.JWT.Issuer = "uniportal.app"

	config.Logging.Level = "info"
	config.Logging.Format = "json"

	config.State.Driver = DriverPostgres
	config.State.KeyPrefix = "uniportal:"

	config.Describer.Timeout = "30s"
	config.Geocoding.Timeout = "10s"
	config.Geocoding.Limit = 5

	config.Admin.DisplayName = "Administrator"
}

// loadFromEnv overrides configuration with environment variables
func loadFromEnv(config *Config) error {
	return applyEnv(reflect.ValueOf(config), "")
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	switch config.Database.Driver {
	case DriverPostgres:
		if config.Database.Host == "" {
			return fmt.Errorf("database host is required")
		}
		if _, err := time.ParseDuration(config.Database.ConnMaxLifetime); err != nil {
			return fmt.Errorf("invalid database connection max lifetime: %w", err)
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unknown database driver %q", config.Database.Driver)
	}

	switch config.State.Driver {
	case DriverRedis:
		if config.State.RedisAddr == "" {
			return fmt.Errorf("redis address is required for the redis state driver")
		}
	case DriverPostgres:
		if config.Database.Driver != DriverPostgres {
			return fmt.Errorf("the postgres state driver needs the postgres database driver")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unknown state driver %q", config.State.Driver)
	}

	if config.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}

	durations := map[string]string{
		"JWT access token expiration":  config.JWT.AccessTokenExpiration,
		"JWT refresh token expiration": config.JWT.RefreshTokenExpiration,
		"server read timeout":          config.Server.ReadTimeout,
		"server write timeout":         config.Server.WriteTimeout,
		"server shutdown timeout":      config.Server.ShutdownTimeout,
		"describer timeout":            config.Describer.Timeout,
		"geocoding timeout":            config.Geocoding.Timeout,
	}
	for name, value := range durations {
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("invalid %s format: %w", name, err)
		}
	}

	if config.Server.Timezone != "" {
		if _, err := time.LoadLocation(config.Server.Timezone); err != nil {
			return fmt.Errorf("invalid server timezone: %w", err)
		}
	}

	return nil
}

// GetPostgresConnectionString returns postgres connection string
func (c *Config) GetPostgresConnectionString() string {
	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
		sslMode,
	)
}

// Location returns the configured time zone, UTC when unset
func (c *Config) Location() *time.Location {
	if c.Server.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(c.Server.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// IsProduction reports whether the server runs in release mode
func (c *Config) IsProduction() bool {
	mode := strings.ToLower(c.Server.Mode)
	return mode == "production" || mode == "release"
}
